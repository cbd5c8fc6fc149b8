package forms

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-service/internal/model"
	"catalog-service/internal/policy"
	"catalog-service/internal/repository"
)

const maxVersionRows = 100

// ProductForm holds the bound product fields of a submission. Only fields
// the resolved policy allows are bound; everything else keeps the stored
// value untouched.
type ProductForm struct {
	policy policy.EditPolicy

	Name           string
	Description    *string
	Photo          *string
	CategoryID     *uint
	Price          *int
	ManufacturedAt *time.Time
	IsPublished    bool
}

// BindProductForm reads the policy-allowed product fields from submitted
// values. Syntax errors (bad number, bad date) are reported per field.
func BindProductForm(values url.Values, p policy.EditPolicy, errs Errors) *ProductForm {
	f := &ProductForm{policy: p}

	if p.Allows(policy.FieldName) {
		f.Name = strings.TrimSpace(values.Get("name"))
	}
	if p.Allows(policy.FieldDescription) {
		f.Description = optionalString(values.Get("description"))
	}
	if p.Allows(policy.FieldPhoto) {
		f.Photo = optionalString(values.Get("photo"))
	}
	if p.Allows(policy.FieldCategory) {
		if raw := strings.TrimSpace(values.Get("category_id")); raw != "" {
			id, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				errs.Add("category_id", "category must be a valid id")
			} else {
				cid := uint(id)
				f.CategoryID = &cid
			}
		}
	}
	if p.Allows(policy.FieldPrice) {
		if raw := strings.TrimSpace(values.Get("price")); raw != "" {
			price, err := strconv.Atoi(raw)
			if err != nil {
				errs.Add("price", "price must be an integer")
			} else if price < 0 {
				errs.Add("price", "price must not be negative")
			} else {
				f.Price = &price
			}
		}
	}
	if p.Allows(policy.FieldManufacturedAt) {
		if raw := strings.TrimSpace(values.Get("manufactured_at")); raw != "" {
			t, err := time.Parse("2006-01-02", raw)
			if err != nil {
				errs.Add("manufactured_at", "date must be in YYYY-MM-DD format")
			} else {
				f.ManufacturedAt = &t
			}
		}
	}
	if p.Allows(policy.FieldIsPublished) {
		f.IsPublished = checkbox(values.Get("is_published"))
	}

	return f
}

// Validate checks entity constraints. categoryExists is consulted only when
// a category reference was submitted.
func (f *ProductForm) Validate(categoryExists func(uint) bool, errs Errors) {
	if f.policy.Allows(policy.FieldName) {
		if f.Name == "" {
			errs.Add("name", "name is required")
		} else if len(f.Name) > 100 {
			errs.Add("name", "name must be at most 100 characters")
		}
	}
	if f.CategoryID != nil && !categoryExists(*f.CategoryID) {
		errs.Add("category_id", "category does not exist")
	}
}

// Apply copies the policy-allowed fields onto the product. Fields outside
// the policy's subset are left as stored.
func (f *ProductForm) Apply(product *model.Product) {
	if f.policy.Allows(policy.FieldName) {
		product.Name = f.Name
	}
	if f.policy.Allows(policy.FieldDescription) {
		product.Description = f.Description
	}
	if f.policy.Allows(policy.FieldPhoto) && f.Photo != nil {
		product.Photo = f.Photo
	}
	if f.policy.Allows(policy.FieldCategory) {
		product.CategoryID = f.CategoryID
		product.Category = nil
	}
	if f.policy.Allows(policy.FieldPrice) {
		product.Price = f.Price
	}
	if f.policy.Allows(policy.FieldManufacturedAt) {
		product.ManufacturedAt = f.ManufacturedAt
	}
	if f.policy.Allows(policy.FieldIsPublished) {
		product.IsPublished = f.IsPublished
	}
}

// BindVersionFormset reads the nested version rows of a product submission.
// Row fields are named "versions.<i>.<field>"; an entirely blank row is
// skipped, not an error. A row marked for deletion must carry the id of a
// row in existing; updates likewise.
func BindVersionFormset(values url.Values, existing []model.Version, errs Errors) repository.VersionChanges {
	known := make(map[uint]bool, len(existing))
	for _, v := range existing {
		known[v.ID] = true
	}

	var changes repository.VersionChanges
	for i := 0; i < maxVersionRows; i++ {
		prefix := fmt.Sprintf("versions.%d.", i)
		if !rowPresent(values, prefix) {
			break
		}

		rawID := strings.TrimSpace(values.Get(prefix + "id"))
		number := strings.TrimSpace(values.Get(prefix + "version_number"))
		name := strings.TrimSpace(values.Get(prefix + "version_name"))
		active := checkbox(values.Get(prefix + "is_version_active"))
		remove := checkbox(values.Get(prefix + "delete"))

		// Blank extra row: nothing filled in, nothing to do
		if rawID == "" && number == "" && name == "" && !active && !remove {
			continue
		}

		var id uint
		if rawID != "" {
			parsed, err := strconv.ParseUint(rawID, 10, 32)
			if err != nil || !known[uint(parsed)] {
				errs.Add(prefix+"id", "unknown version")
				continue
			}
			id = uint(parsed)
		}

		if remove {
			if id == 0 {
				// Deleting a row that was never saved is a no-op
				continue
			}
			changes.DeleteIDs = append(changes.DeleteIDs, id)
			continue
		}

		if len(number) > 10 {
			errs.Add(prefix+"version_number", "version number must be at most 10 characters")
		}
		if len(name) > 100 {
			errs.Add(prefix+"version_name", "version name must be at most 100 characters")
		}

		version := model.Version{
			ID:              id,
			VersionNumber:   optionalString(number),
			VersionName:     optionalString(name),
			IsVersionActive: active,
		}
		if id == 0 {
			changes.Create = append(changes.Create, version)
		} else {
			changes.Update = append(changes.Update, version)
		}
	}

	return changes
}

func rowPresent(values url.Values, prefix string) bool {
	for _, field := range []string{"id", "version_number", "version_name", "is_version_active", "delete"} {
		if _, ok := values[prefix+field]; ok {
			return true
		}
	}
	return false
}

func optionalString(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

func checkbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
