package handler

import (
	"errors"
	"net/http"
	"strings"

	"catalog-service/internal/model"
	"catalog-service/internal/repository"
	"catalog-service/pkg/logger"
	"catalog-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CategoryRequest defines the structure for category creation/update requests
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CategoryStore is the entity-store surface the category API consumes
type CategoryStore interface {
	ListCategories() ([]model.Category, error)
	GetCategory(id uint) (*model.Category, error)
	CreateCategory(category *model.Category) error
	UpdateCategory(category *model.Category) error
	DeleteCategory(id uint) error
}

// CacheInvalidator drops the cached category list after a mutation
type CacheInvalidator interface {
	Invalidate()
}

// CategoryHandler is the JSON back-office API for categories. Every
// mutation invalidates the injected category cache before responding.
type CategoryHandler struct {
	store CategoryStore
	cache CacheInvalidator
}

func NewCategoryHandler(store CategoryStore, cache CacheInvalidator) *CategoryHandler {
	return &CategoryHandler{store: store, cache: cache}
}

// List retrieves all categories
func (h *CategoryHandler) List(c echo.Context) error {
	log := logger.FromContext(c)

	categories, err := h.store.ListCategories()
	if err != nil {
		log.Error("Failed to retrieve categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve categories",
		})
	}

	prometheus.RecordCategoryOperation("list")
	log.Info("Categories retrieved", zap.Int("count", len(categories)))
	return c.JSON(http.StatusOK, categories)
}

// Get retrieves a specific category by ID
func (h *CategoryHandler) Get(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	category, err := h.store.GetCategory(id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			log.Warn("Category not found", zap.Uint("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to get category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve category",
		})
	}

	prometheus.RecordCategoryOperation("get")
	return c.JSON(http.StatusOK, category)
}

// Create adds a new category
func (h *CategoryHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.store.CreateCategory(category); err != nil {
		log.Error("Failed to create category", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create category",
		})
	}

	h.cache.Invalidate()
	prometheus.RecordCategoryOperation("create")
	log.Info("Category created",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusCreated, category)
}

// Update modifies an existing category
func (h *CategoryHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	category, err := h.store.GetCategory(id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			log.Warn("Category not found for update", zap.Uint("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to get category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve category",
		})
	}

	category.Name = req.Name
	category.Description = req.Description

	if err := h.store.UpdateCategory(category); err != nil {
		log.Error("Failed to update category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update category",
		})
	}

	h.cache.Invalidate()
	prometheus.RecordCategoryOperation("update")
	log.Info("Category updated",
		zap.Uint("category_id", category.ID),
		zap.String("name", category.Name))
	return c.JSON(http.StatusOK, category)
}

// Delete removes a category. Products referencing it lose the reference
// but are never deleted with it.
func (h *CategoryHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
	}

	if err := h.store.DeleteCategory(id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			log.Warn("Category not found for deletion", zap.Uint("category_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Category not found"})
		}
		log.Error("Failed to delete category", zap.Uint("category_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete category",
		})
	}

	h.cache.Invalidate()
	prometheus.RecordCategoryOperation("delete")
	log.Info("Category deleted", zap.Uint("category_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Category deleted successfully",
	})
}
