// Package policy decides which product fields an actor may edit.
//
// An owner edits everything. A non-owner must hold the full moderator
// permission set and is then restricted to the moderator field subset.
// Anything else is rejected before validation runs.
package policy

import (
	"errors"

	"catalog-service/internal/model"
)

// Permission names checked against the actor's grants
const (
	PermEditDescription   = "catalog.can_edit_product_description"
	PermEditCategory      = "catalog.can_edit_product_category"
	PermCancelPublication = "catalog.can_cancel_publication"
)

// ErrForbidden is returned when the actor neither owns the product nor
// holds the complete moderator permission set.
var ErrForbidden = errors.New("actor may not edit this product")

// Actor is the authenticated identity attached to a request
type Actor struct {
	UserID uint
	Email  string
	Perms  []string
}

// HasPerm reports whether the actor holds the named permission
func (a Actor) HasPerm(name string) bool {
	for _, p := range a.Perms {
		if p == name {
			return true
		}
	}
	return false
}

// Kind tags the resolved edit-policy variant
type Kind int

const (
	OwnerEdit Kind = iota
	ModeratorEdit
)

// Product form field names, shared with the forms package
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldPhoto          = "photo"
	FieldCategory       = "category"
	FieldPrice          = "price"
	FieldManufacturedAt = "manufactured_at"
	FieldIsPublished    = "is_published"
)

// EditPolicy is the resolved variant plus its allowed field subset.
// Resolution happens once at request entry; handlers and forms only
// consult Allows afterwards.
type EditPolicy struct {
	Kind    Kind
	allowed map[string]bool
}

// Allows reports whether the policy permits editing the named field
func (p EditPolicy) Allows(field string) bool {
	return p.allowed[field]
}

// Fields returns the allowed field names, for form rendering
func (p EditPolicy) Fields() []string {
	order := []string{
		FieldName, FieldDescription, FieldPhoto, FieldCategory,
		FieldPrice, FieldManufacturedAt, FieldIsPublished,
	}
	var fields []string
	for _, f := range order {
		if p.allowed[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

func ownerPolicy() EditPolicy {
	return EditPolicy{
		Kind: OwnerEdit,
		allowed: map[string]bool{
			FieldName:           true,
			FieldDescription:    true,
			FieldPhoto:          true,
			FieldCategory:       true,
			FieldPrice:          true,
			FieldManufacturedAt: true,
			FieldIsPublished:    true,
		},
	}
}

func moderatorPolicy() EditPolicy {
	// Exactly the fields the three moderator permissions name
	return EditPolicy{
		Kind: ModeratorEdit,
		allowed: map[string]bool{
			FieldDescription: true,
			FieldCategory:    true,
			FieldIsPublished: true,
		},
	}
}

// OwnerCreatePolicy is the policy used on the create path, where the actor
// becomes the owner and no role branching applies.
func OwnerCreatePolicy() EditPolicy {
	return ownerPolicy()
}

// ResolveEdit picks the edit-policy variant for an actor and product.
// The moderator check is all-or-nothing: holding two of the three
// permissions is a denial, not a narrower allowance.
func ResolveEdit(actor Actor, product *model.Product) (EditPolicy, error) {
	if actor.UserID == product.OwnerID {
		return ownerPolicy(), nil
	}
	if actor.HasPerm(PermEditDescription) &&
		actor.HasPerm(PermEditCategory) &&
		actor.HasPerm(PermCancelPublication) {
		return moderatorPolicy(), nil
	}
	return EditPolicy{}, ErrForbidden
}
