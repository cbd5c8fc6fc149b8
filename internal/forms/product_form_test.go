package forms

import (
	"net/url"
	"testing"

	"catalog-service/internal/model"
	"catalog-service/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerPolicy(t *testing.T) policy.EditPolicy {
	t.Helper()
	p, err := policy.ResolveEdit(policy.Actor{UserID: 1}, &model.Product{OwnerID: 1})
	require.NoError(t, err)
	return p
}

func moderatorPolicy(t *testing.T) policy.EditPolicy {
	t.Helper()
	p, err := policy.ResolveEdit(policy.Actor{UserID: 2, Perms: []string{
		policy.PermEditDescription,
		policy.PermEditCategory,
		policy.PermCancelPublication,
	}}, &model.Product{OwnerID: 1})
	require.NoError(t, err)
	return p
}

func TestBindProductFormOwner(t *testing.T) {
	values := url.Values{
		"name":            {"Hammer"},
		"description":     {"Heavy one"},
		"category_id":     {"3"},
		"price":           {"10"},
		"manufactured_at": {"2023-04-01"},
		"is_published":    {"on"},
	}

	errs := Errors{}
	form := BindProductForm(values, ownerPolicy(t), errs)
	form.Validate(func(uint) bool { return true }, errs)

	require.False(t, errs.Any(), "unexpected errors: %v", errs)
	assert.Equal(t, "Hammer", form.Name)
	require.NotNil(t, form.Description)
	assert.Equal(t, "Heavy one", *form.Description)
	require.NotNil(t, form.CategoryID)
	assert.Equal(t, uint(3), *form.CategoryID)
	require.NotNil(t, form.Price)
	assert.Equal(t, 10, *form.Price)
	require.NotNil(t, form.ManufacturedAt)
	assert.True(t, form.IsPublished)
}

func TestProductFormValidation(t *testing.T) {
	testCases := []struct {
		name           string
		values         url.Values
		categoryExists bool
		expectedFields []string
	}{
		{
			name:           "Missing name",
			values:         url.Values{"name": {"  "}},
			categoryExists: true,
			expectedFields: []string{"name"},
		},
		{
			name:           "Non-numeric price",
			values:         url.Values{"name": {"Hammer"}, "price": {"cheap"}},
			categoryExists: true,
			expectedFields: []string{"price"},
		},
		{
			name:           "Negative price",
			values:         url.Values{"name": {"Hammer"}, "price": {"-5"}},
			categoryExists: true,
			expectedFields: []string{"price"},
		},
		{
			name:           "Unknown category",
			values:         url.Values{"name": {"Hammer"}, "category_id": {"9"}},
			categoryExists: false,
			expectedFields: []string{"category_id"},
		},
		{
			name:           "Bad date",
			values:         url.Values{"name": {"Hammer"}, "manufactured_at": {"01.04.2023"}},
			categoryExists: true,
			expectedFields: []string{"manufactured_at"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Errors{}
			form := BindProductForm(tc.values, ownerPolicy(t), errs)
			form.Validate(func(uint) bool { return tc.categoryExists }, errs)

			assert.True(t, errs.Any())
			for _, field := range tc.expectedFields {
				assert.True(t, errs.Has(field), "expected an error on %s, got %v", field, errs)
			}
		})
	}
}

func TestModeratorFormBindsOnlyItsSubset(t *testing.T) {
	values := url.Values{
		"name":        {"Renamed"},
		"description": {"moderated"},
		"price":       {"999"},
		"category_id": {"4"},
	}

	errs := Errors{}
	form := BindProductForm(values, moderatorPolicy(t), errs)
	// name is outside the moderator subset, so its absence is not an error
	form.Validate(func(uint) bool { return true }, errs)
	require.False(t, errs.Any(), "unexpected errors: %v", errs)

	price := 10
	product := &model.Product{
		Name:    "Hammer",
		OwnerID: 1,
		Price:   &price,
	}
	form.Apply(product)

	assert.Equal(t, "Hammer", product.Name, "moderator must not rename")
	require.NotNil(t, product.Price)
	assert.Equal(t, 10, *product.Price, "moderator must not reprice")
	require.NotNil(t, product.Description)
	assert.Equal(t, "moderated", *product.Description)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, uint(4), *product.CategoryID)
	assert.False(t, product.IsPublished, "unchecked box cancels publication")
}

func TestBindVersionFormset(t *testing.T) {
	existing := []model.Version{{ID: 11}, {ID: 12}}

	values := url.Values{
		"versions.0.id":                {"11"},
		"versions.0.version_number":    {"1.0"},
		"versions.0.version_name":      {"first"},
		"versions.0.is_version_active": {"on"},
		"versions.1.id":                {"12"},
		"versions.1.delete":            {"on"},
		"versions.2.version_number":    {"2.0"},
		"versions.2.version_name":      {"second"},
		// row 3 is entirely blank: a no-op, not an error
		"versions.3.version_number": {""},
		"versions.3.version_name":   {" "},
	}

	errs := Errors{}
	changes := BindVersionFormset(values, existing, errs)

	require.False(t, errs.Any(), "unexpected errors: %v", errs)

	require.Len(t, changes.Update, 1)
	assert.Equal(t, uint(11), changes.Update[0].ID)
	assert.True(t, changes.Update[0].IsVersionActive)

	assert.Equal(t, []uint{12}, changes.DeleteIDs)

	require.Len(t, changes.Create, 1)
	assert.Zero(t, changes.Create[0].ID)
	require.NotNil(t, changes.Create[0].VersionNumber)
	assert.Equal(t, "2.0", *changes.Create[0].VersionNumber)
}

func TestBindVersionFormsetRejectsForeignRows(t *testing.T) {
	existing := []model.Version{{ID: 11}}

	values := url.Values{
		"versions.0.id":             {"999"},
		"versions.0.version_number": {"1.0"},
	}

	errs := Errors{}
	changes := BindVersionFormset(values, existing, errs)

	assert.True(t, errs.Has("versions.0.id"))
	assert.True(t, changes.Empty())
}

func TestBindVersionFormsetValidatesLengths(t *testing.T) {
	values := url.Values{
		"versions.0.version_number": {"12345678901"}, // 11 chars
	}

	errs := Errors{}
	BindVersionFormset(values, nil, errs)

	assert.True(t, errs.Has("versions.0.version_number"))
}

func TestBindVersionFormsetStopsAtFirstMissingRow(t *testing.T) {
	values := url.Values{
		"versions.0.version_number": {"1.0"},
		// index 1 absent: later indices are never read
		"versions.2.version_number": {"3.0"},
	}

	errs := Errors{}
	changes := BindVersionFormset(values, nil, errs)

	require.False(t, errs.Any())
	require.Len(t, changes.Create, 1)
	assert.Equal(t, "1.0", *changes.Create[0].VersionNumber)
}
