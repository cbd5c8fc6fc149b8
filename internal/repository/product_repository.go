package repository

import (
	"errors"
	"time"

	"catalog-service/internal/model"
	"catalog-service/prometheus"

	"gorm.io/gorm"
)

// VersionChanges describes the child rows submitted alongside a product edit.
// Creates have no ID, updates carry the ID of an existing row, and DeleteIDs
// name rows the caller marked for removal.
type VersionChanges struct {
	Create    []model.Version
	Update    []model.Version
	DeleteIDs []uint
}

// Empty reports whether the change set carries no work at all
func (vc VersionChanges) Empty() bool {
	return len(vc.Create) == 0 && len(vc.Update) == 0 && len(vc.DeleteIDs) == 0
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListProducts returns all products ordered by category name, then product
// name. Products without a category sort last.
func (r *ProductRepository) ListProducts() ([]model.Product, error) {
	defer prometheus.TrackDBOperation("product_list")(time.Now())

	var products []model.Product
	err := r.db.
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Order("categories.name NULLS LAST").
		Order("products.name").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a product with its category and version rows
func (r *ProductRepository) GetProduct(id uint) (*model.Product, error) {
	defer prometheus.TrackDBOperation("product_get")(time.Now())

	var product model.Product
	err := r.db.
		Preload("Category").
		Preload("Versions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version_number").Order("version_name")
		}).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// CreateWithVersions persists a new product together with its initial version
// rows in one transaction. Either everything is written or nothing is.
func (r *ProductRepository) CreateWithVersions(product *model.Product, versions []model.Version) error {
	defer prometheus.TrackDBOperation("product_create")(time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return err
		}
		for i := range versions {
			versions[i].ID = 0
			versions[i].ProductID = &product.ID
			if err := tx.Create(&versions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateWithVersions persists a product update and its version changes as a
// single unit. The product row is always written, so UpdatedAt refreshes even
// for a no-change submission.
func (r *ProductRepository) UpdateWithVersions(product *model.Product, changes VersionChanges) error {
	defer prometheus.TrackDBOperation("product_update")(time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(product).Error; err != nil {
			return err
		}
		for i := range changes.Create {
			changes.Create[i].ID = 0
			changes.Create[i].ProductID = &product.ID
			if err := tx.Create(&changes.Create[i]).Error; err != nil {
				return err
			}
		}
		for i := range changes.Update {
			changes.Update[i].ProductID = &product.ID
			if err := tx.Save(&changes.Update[i]).Error; err != nil {
				return err
			}
		}
		for _, id := range changes.DeleteIDs {
			// Only rows that actually belong to this product may be removed
			result := tx.Where("product_id = ?", product.ID).Delete(&model.Version{}, id)
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
}

// DeleteProduct removes a product. Its version rows keep existing with a
// cleared product reference.
func (r *ProductRepository) DeleteProduct(id uint) error {
	defer prometheus.TrackDBOperation("product_delete")(time.Now())

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Version{}).
			Where("product_id = ?", id).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Product{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}
		return nil
	})
}
