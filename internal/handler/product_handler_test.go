package handler

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"catalog-service/internal/model"
	"catalog-service/internal/policy"
	"catalog-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockProductStore struct {
	Products map[uint]*model.Product

	GetErr    error
	CreateErr error
	UpdateErr error
	DeleteErr error

	CreatedProduct  *model.Product
	CreatedVersions []model.Version
	UpdatedProduct  *model.Product
	UpdatedChanges  *repository.VersionChanges
	DeletedID       uint
}

func (m *MockProductStore) ListProducts() ([]model.Product, error) {
	var products []model.Product
	for _, p := range m.Products {
		products = append(products, *p)
	}
	return products, nil
}

func (m *MockProductStore) GetProduct(id uint) (*model.Product, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *MockProductStore) CreateWithVersions(product *model.Product, versions []model.Version) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	product.ID = 5
	m.CreatedProduct = product
	m.CreatedVersions = versions
	return nil
}

func (m *MockProductStore) UpdateWithVersions(product *model.Product, changes repository.VersionChanges) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	m.UpdatedProduct = product
	m.UpdatedChanges = &changes
	return nil
}

func (m *MockProductStore) DeleteProduct(id uint) error {
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	m.DeletedID = id
	return nil
}

type MockCategories struct {
	Categories []model.Category
	Err        error
}

func (m *MockCategories) Get() ([]model.Category, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Categories, nil
}

func storedProduct() *model.Product {
	desc := "old description"
	price := 10
	cid := uint(1)
	return &model.Product{
		ID:          7,
		Name:        "Hammer",
		Description: &desc,
		Price:       &price,
		CategoryID:  &cid,
		OwnerID:     42,
		IsPublished: true,
		Versions:    []model.Version{{ID: 11}},
	}
}

func productHandler(store *MockProductStore) *ProductHandler {
	return NewProductHandler(store, &MockCategories{
		Categories: []model.Category{{ID: 1, Name: "Tools"}},
	}, "")
}

var moderatorPerms = []string{
	policy.PermEditDescription,
	policy.PermEditCategory,
	policy.PermCancelPublication,
}

// --- Tests: product update (core workflow) ---

func TestProductUpdateAuthorization(t *testing.T) {
	validForm := url.Values{
		"name":         {"Hammer"},
		"description":  {"new description"},
		"category_id":  {"1"},
		"is_published": {"on"},
	}

	testCases := []struct {
		name           string
		actor          policy.Actor
		expectedStatus int
		expectWrite    bool
	}{
		{
			name:           "Owner may edit",
			actor:          policy.Actor{UserID: 42},
			expectedStatus: http.StatusSeeOther,
			expectWrite:    true,
		},
		{
			name:           "Moderator with full permission set may edit",
			actor:          policy.Actor{UserID: 9, Perms: moderatorPerms},
			expectedStatus: http.StatusSeeOther,
			expectWrite:    true,
		},
		{
			name:           "Partial permission set is rejected before validation",
			actor:          policy.Actor{UserID: 9, Perms: moderatorPerms[:2]},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Stranger is rejected",
			actor:          policy.Actor{UserID: 9},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockProductStore{Products: map[uint]*model.Product{7: storedProduct()}}
			h := productHandler(store)

			c, rec, _ := newContext(t, testRequest{
				method: http.MethodPost,
				target: "/product/7/update",
				form:   validForm,
				actor:  &tc.actor,
				id:     "7",
			})

			require.NoError(t, h.Update(c))
			assert.Equal(t, tc.expectedStatus, rec.Code)

			if tc.expectWrite {
				require.NotNil(t, store.UpdatedProduct, "expected the store to be written")
			} else {
				assert.Nil(t, store.UpdatedProduct, "denied request must not reach the store")
				assert.Nil(t, store.UpdatedChanges, "denied request must not touch versions")
			}
		})
	}
}

func TestProductUpdateModeratorFieldSubset(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{7: storedProduct()}}
	h := productHandler(store)

	actor := policy.Actor{UserID: 9, Perms: moderatorPerms}
	c, rec, _ := newContext(t, testRequest{
		method: http.MethodPost,
		target: "/product/7/update",
		form: url.Values{
			// a moderator submitting owner-only fields: they are ignored, not applied
			"name":        {"Renamed"},
			"price":       {"999"},
			"description": {"moderated"},
			"category_id": {"1"},
			// is_published left unchecked: publication cancelled
		},
		actor: &actor,
		id:    "7",
	})

	require.NoError(t, h.Update(c))
	assertRedirect(t, rec, "/product/7")

	saved := store.UpdatedProduct
	require.NotNil(t, saved)
	assert.Equal(t, "Hammer", saved.Name)
	require.NotNil(t, saved.Price)
	assert.Equal(t, 10, *saved.Price)
	require.NotNil(t, saved.Description)
	assert.Equal(t, "moderated", *saved.Description)
	assert.False(t, saved.IsPublished)
}

func TestProductUpdateValidationBlocksWrite(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{7: storedProduct()}}
	h := productHandler(store)

	actor := policy.Actor{UserID: 42}
	c, rec, renderer := newContext(t, testRequest{
		method: http.MethodPost,
		target: "/product/7/update",
		form: url.Values{
			"name":                      {""},
			"price":                     {"not-a-number"},
			"versions.0.id":             {"11"},
			"versions.0.version_number": {"12345678901"},
		},
		actor: &actor,
		id:    "7",
	})

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "product_form.html", renderer.name)
	assert.Nil(t, store.UpdatedProduct, "a submission with errors must not write")

	// parent and child errors are reported together, and the re-rendered
	// form carries the allowed field list for the template to honor
	errs := renderer.data["Errors"]
	require.NotNil(t, errs)
	assert.Equal(t, policy.OwnerCreatePolicy().Fields(), renderer.data["Fields"])
}

func TestProductUpdateCarriesVersionChanges(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{7: storedProduct()}}
	h := productHandler(store)

	actor := policy.Actor{UserID: 42}
	c, rec, _ := newContext(t, testRequest{
		method: http.MethodPost,
		target: "/product/7/update",
		form: url.Values{
			"name":                      {"Hammer"},
			"is_published":              {"on"},
			"versions.0.id":             {"11"},
			"versions.0.delete":         {"on"},
			"versions.1.version_number": {"2.0"},
			"versions.1.version_name":   {"second"},
		},
		actor: &actor,
		id:    "7",
	})

	require.NoError(t, h.Update(c))
	assertRedirect(t, rec, "/product/7")

	// product and version changes travel in one store call
	require.NotNil(t, store.UpdatedChanges)
	assert.Equal(t, []uint{11}, store.UpdatedChanges.DeleteIDs)
	require.Len(t, store.UpdatedChanges.Create, 1)
	assert.Equal(t, "2.0", *store.UpdatedChanges.Create[0].VersionNumber)
}

func TestProductUpdateNotFound(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{}}
	h := productHandler(store)

	actor := policy.Actor{UserID: 42}
	c, rec, _ := newContext(t, testRequest{
		method: http.MethodPost,
		target: "/product/999/update",
		form:   url.Values{"name": {"x"}},
		actor:  &actor,
		id:     "999",
	})

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductUpdateStoreFailure(t *testing.T) {
	store := &MockProductStore{
		Products:  map[uint]*model.Product{7: storedProduct()},
		UpdateErr: errors.New("constraint violation"),
	}
	h := productHandler(store)

	actor := policy.Actor{UserID: 42}
	c, rec, _ := newContext(t, testRequest{
		method: http.MethodPost,
		target: "/product/7/update",
		form:   url.Values{"name": {"Hammer"}},
		actor:  &actor,
		id:     "7",
	})

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// --- Tests: product create ---

func TestProductCreateAssignsOwnerAndVersions(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{}}
	h := productHandler(store)

	actor := policy.Actor{UserID: 42}
	c, rec, _ := newContext(t, testRequest{
		method: http.MethodPost,
		target: "/product/create",
		form: url.Values{
			"name":                      {"Hammer"},
			"category_id":               {"1"},
			"price":                     {"10"},
			"is_published":              {"on"},
			"versions.0.version_number": {"1.0"},
			"versions.0.version_name":   {"initial"},
		},
		actor: &actor,
		id:    "",
	})

	require.NoError(t, h.Create(c))
	assertRedirect(t, rec, "/product/5")

	require.NotNil(t, store.CreatedProduct)
	assert.Equal(t, uint(42), store.CreatedProduct.OwnerID)
	assert.Equal(t, "Hammer", store.CreatedProduct.Name)
	require.Len(t, store.CreatedVersions, 1)
	assert.Equal(t, "1.0", *store.CreatedVersions[0].VersionNumber)
}

func TestProductCreateValidationBlocksWrite(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{}}
	h := productHandler(store)

	actor := policy.Actor{UserID: 42}
	c, rec, renderer := newContext(t, testRequest{
		method: http.MethodPost,
		target: "/product/create",
		form:   url.Values{"name": {""}},
		actor:  &actor,
	})

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "product_form.html", renderer.name)
	assert.Nil(t, store.CreatedProduct)
}

// --- Tests: product delete ---

func TestProductDeleteOwnerOnly(t *testing.T) {
	testCases := []struct {
		name           string
		actor          policy.Actor
		expectedStatus int
		expectDeleted  bool
	}{
		{
			name:           "Owner may delete",
			actor:          policy.Actor{UserID: 42},
			expectedStatus: http.StatusSeeOther,
			expectDeleted:  true,
		},
		{
			name:           "Moderator may not delete",
			actor:          policy.Actor{UserID: 9, Perms: moderatorPerms},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := &MockProductStore{Products: map[uint]*model.Product{7: storedProduct()}}
			h := productHandler(store)

			c, rec, _ := newContext(t, testRequest{
				method: http.MethodPost,
				target: "/product/7/delete",
				form:   url.Values{},
				actor:  &tc.actor,
				id:     "7",
			})

			require.NoError(t, h.Delete(c))
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectDeleted {
				assert.Equal(t, uint(7), store.DeletedID)
			} else {
				assert.Zero(t, store.DeletedID)
			}
		})
	}
}

// --- Tests: product detail ---

func TestProductDetail(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{7: storedProduct()}}
	h := productHandler(store)

	c, rec, renderer := newContext(t, testRequest{
		method: http.MethodGet,
		target: "/product/7",
		id:     "7",
	})

	require.NoError(t, h.Detail(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "product_detail.html", renderer.name)
}

func TestProductDetailNotFound(t *testing.T) {
	store := &MockProductStore{Products: map[uint]*model.Product{}}
	h := productHandler(store)

	c, rec, _ := newContext(t, testRequest{
		method: http.MethodGet,
		target: "/product/999",
		id:     "999",
	})

	require.NoError(t, h.Detail(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
