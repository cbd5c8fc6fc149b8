package handler

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-service/internal/forms"
	"catalog-service/internal/middleware"
	"catalog-service/internal/model"
	"catalog-service/internal/policy"
	"catalog-service/internal/render"
	"catalog-service/internal/repository"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ProductStore is the entity-store surface the product workflows consume
type ProductStore interface {
	ListProducts() ([]model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	CreateWithVersions(product *model.Product, versions []model.Version) error
	UpdateWithVersions(product *model.Product, changes repository.VersionChanges) error
	DeleteProduct(id uint) error
}

// CategoryProvider serves the category list for sidebars and referential
// checks. Backed by the injected category cache.
type CategoryProvider interface {
	Get() ([]model.Category, error)
}

type ProductHandler struct {
	store      ProductStore
	categories CategoryProvider
	mediaDir   string
}

func NewProductHandler(store ProductStore, categories CategoryProvider, mediaDir string) *ProductHandler {
	return &ProductHandler{store: store, categories: categories, mediaDir: mediaDir}
}

// List renders the product list, ordered by category name then product name
func (h *ProductHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	products, err := h.store.ListProducts()
	if err != nil {
		log.Error("Failed to list products", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve products",
		})
	}

	categories, err := h.categories.Get()
	if err != nil {
		log.Error("Failed to load category list", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve categories",
		})
	}

	prometheus.RecordProductOperation("list")
	log.Info("Products retrieved", zap.Int("count", len(products)))
	return c.Render(http.StatusOK, "product_list.html", echo.Map{
		"Products":   products,
		"Categories": categories,
	})
}

// Detail renders a single product with its version rows
func (h *ProductHandler) Detail(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Product not found")
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			log.Warn("Product not found", zap.Uint("product_id", id))
			return notFound(c, "Product not found")
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve product",
		})
	}

	prometheus.RecordProductOperation("detail")
	return c.Render(http.StatusOK, "product_detail.html", echo.Map{
		"Product": product,
	})
}

// CreateForm renders an empty product form with one blank version row
func (h *ProductHandler) CreateForm(c echo.Context) error {
	categories, err := h.categories.Get()
	if err != nil {
		logger.FromContext(c).Error("Failed to load category list", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve categories",
		})
	}
	return c.Render(http.StatusOK, "product_form.html", echo.Map{
		"Categories": categories,
		"Fields":     policy.OwnerCreatePolicy().Fields(),
		"Errors":     forms.Errors{},
	})
}

// Create handles the product create workflow: any authenticated actor may
// create a product, becomes its owner, and may attach initial version rows
// in the same transaction.
func (h *ProductHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	values, err := c.FormParams()
	if err != nil {
		log.Error("Invalid form data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	editPolicy := policy.OwnerCreatePolicy()
	errs := forms.Errors{}
	form := forms.BindProductForm(values, editPolicy, errs)
	changes := forms.BindVersionFormset(values, nil, errs)
	form.Validate(h.categoryExists(c), errs)

	photo, err := render.SavePhoto(c, "photo", h.mediaDir)
	if err != nil {
		log.Error("Failed to store uploaded photo", zap.Error(err))
		errs.Add("photo", "could not store the uploaded image")
	}
	if photo != nil {
		form.Photo = photo
	}

	if errs.Any() {
		log.Info("Product create rejected by validation", zap.Int("error_fields", len(errs)))
		return h.renderForm(c, nil, form, editPolicy.Fields(), errs)
	}

	product := &model.Product{OwnerID: actor.UserID, IsPublished: true}
	form.Apply(product)

	if err := h.store.CreateWithVersions(product, changes.Create); err != nil {
		log.Error("Failed to create product", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to create product",
		})
	}

	prometheus.RecordProductOperation("create")
	log.Info("Product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Uint("owner_id", product.OwnerID),
		zap.Int("versions", len(changes.Create)))
	return c.Redirect(http.StatusSeeOther, "/product/"+strconv.FormatUint(uint64(product.ID), 10))
}

// UpdateForm renders the edit form restricted to the actor's policy
func (h *ProductHandler) UpdateForm(c echo.Context) error {
	log := logger.FromContext(c)

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Product not found")
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return notFound(c, "Product not found")
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve product",
		})
	}

	editPolicy, err := policy.ResolveEdit(actor, product)
	if err != nil {
		prometheus.AuthDeniedCounter.Inc()
		log.Warn("Edit denied",
			zap.Uint("product_id", id),
			zap.Uint("user_id", actor.UserID))
		return c.Render(http.StatusForbidden, "error.html", echo.Map{
			"Message": "You don't have permission to edit this product",
		})
	}

	categories, err := h.categories.Get()
	if err != nil {
		log.Error("Failed to load category list", zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve categories",
		})
	}

	return c.Render(http.StatusOK, "product_form.html", echo.Map{
		"Product":    product,
		"Categories": categories,
		"Fields":     editPolicy.Fields(),
		"Errors":     forms.Errors{},
	})
}

// Update handles the product edit workflow. The policy resolves once at
// entry: owners edit every field, full-permission moderators the moderator
// subset, anyone else is rejected before validation. Product and version
// writes commit as one transaction.
func (h *ProductHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Product not found")
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			log.Warn("Product not found for update", zap.Uint("product_id", id))
			return notFound(c, "Product not found")
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve product",
		})
	}

	editPolicy, err := policy.ResolveEdit(actor, product)
	if err != nil {
		prometheus.AuthDeniedCounter.Inc()
		log.Warn("Edit denied",
			zap.Uint("product_id", id),
			zap.Uint("user_id", actor.UserID),
			zap.Uint("owner_id", product.OwnerID))
		return c.Render(http.StatusForbidden, "error.html", echo.Map{
			"Message": "You don't have permission to edit this product",
		})
	}

	values, err := c.FormParams()
	if err != nil {
		log.Error("Invalid form data", zap.Uint("product_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid form data"})
	}

	errs := forms.Errors{}
	form := forms.BindProductForm(values, editPolicy, errs)
	changes := forms.BindVersionFormset(values, product.Versions, errs)
	form.Validate(h.categoryExists(c), errs)

	var photo *string
	if editPolicy.Allows(policy.FieldPhoto) {
		photo, err = render.SavePhoto(c, "photo", h.mediaDir)
		if err != nil {
			log.Error("Failed to store uploaded photo", zap.Error(err))
			errs.Add("photo", "could not store the uploaded image")
		}
		if photo != nil {
			form.Photo = photo
		}
	}

	if errs.Any() {
		log.Info("Product update rejected by validation",
			zap.Uint("product_id", id),
			zap.Int("error_fields", len(errs)))
		return h.renderForm(c, product, form, editPolicy.Fields(), errs)
	}

	form.Apply(product)
	product.Versions = nil

	if err := h.store.UpdateWithVersions(product, changes); err != nil {
		log.Error("Failed to update product", zap.Uint("product_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to update product",
		})
	}

	prometheus.RecordProductOperation("update")
	log.Info("Product updated",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
		zap.Int("versions_created", len(changes.Create)),
		zap.Int("versions_updated", len(changes.Update)),
		zap.Int("versions_deleted", len(changes.DeleteIDs)))
	return c.Redirect(http.StatusSeeOther, "/product/"+strconv.FormatUint(uint64(product.ID), 10))
}

// Delete removes a product. Owner only; moderators manage products through
// the edit workflow, never deletion.
func (h *ProductHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	id, err := idParam(c)
	if err != nil {
		return notFound(c, "Product not found")
	}

	product, err := h.store.GetProduct(id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return notFound(c, "Product not found")
		}
		log.Error("Failed to get product", zap.Uint("product_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve product",
		})
	}

	if product.OwnerID != actor.UserID {
		prometheus.AuthDeniedCounter.Inc()
		log.Warn("Delete denied",
			zap.Uint("product_id", id),
			zap.Uint("user_id", actor.UserID))
		return c.Render(http.StatusForbidden, "error.html", echo.Map{
			"Message": "You don't have permission to delete this product",
		})
	}

	if err := h.store.DeleteProduct(id); err != nil {
		log.Error("Failed to delete product", zap.Uint("product_id", id), zap.Error(err))
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to delete product",
		})
	}

	prometheus.RecordProductOperation("delete")
	log.Info("Product deleted", zap.Uint("product_id", id))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *ProductHandler) renderForm(c echo.Context, product *model.Product, form *forms.ProductForm, fields []string, errs forms.Errors) error {
	categories, err := h.categories.Get()
	if err != nil {
		return c.Render(http.StatusInternalServerError, "error.html", echo.Map{
			"Message": "Failed to retrieve categories",
		})
	}
	return c.Render(http.StatusOK, "product_form.html", echo.Map{
		"Product":    product,
		"Form":       form,
		"Categories": categories,
		"Fields":     fields,
		"Errors":     errs,
	})
}

// categoryExists builds the referential check against the cached list
func (h *ProductHandler) categoryExists(c echo.Context) func(uint) bool {
	return func(id uint) bool {
		categories, err := h.categories.Get()
		if err != nil {
			logger.FromContext(c).Error("Failed to load categories for validation", zap.Error(err))
			return false
		}
		for _, category := range categories {
			if category.ID == id {
				return true
			}
		}
		return false
	}
}
