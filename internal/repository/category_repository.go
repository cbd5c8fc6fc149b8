package repository

import (
	"errors"
	"time"

	"catalog-service/internal/model"
	"catalog-service/prometheus"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListCategories returns all categories ordered by name
func (r *CategoryRepository) ListCategories() ([]model.Category, error) {
	defer prometheus.TrackDBOperation("category_list")(time.Now())

	var categories []model.Category
	if err := r.db.Order("name").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns a single category by ID
func (r *CategoryRepository) GetCategory(id uint) (*model.Category, error) {
	defer prometheus.TrackDBOperation("category_get")(time.Now())

	var category model.Category
	if err := r.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory persists a new category
func (r *CategoryRepository) CreateCategory(category *model.Category) error {
	defer prometheus.TrackDBOperation("category_create")(time.Now())

	return r.db.Create(category).Error
}

// UpdateCategory persists changes to an existing category
func (r *CategoryRepository) UpdateCategory(category *model.Category) error {
	defer prometheus.TrackDBOperation("category_update")(time.Now())

	return r.db.Save(category).Error
}

// DeleteCategory removes a category. Products referencing it keep existing
// with a cleared category reference, never a cascade delete.
func (r *CategoryRepository) DeleteCategory(id uint) error {
	defer prometheus.TrackDBOperation("category_delete")(time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Category{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCategoryNotFound
		}
		return nil
	})
}
