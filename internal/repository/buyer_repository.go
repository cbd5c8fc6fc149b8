package repository

import (
	"time"

	"catalog-service/internal/model"
	"catalog-service/prometheus"

	"gorm.io/gorm"
)

type BuyerRepository struct {
	db *gorm.DB
}

func NewBuyerRepository(db *gorm.DB) *BuyerRepository {
	return &BuyerRepository{db: db}
}

// CreateBuyer stores a contact-form message. Buyers are write-only: there
// is no read, update or delete path.
func (r *BuyerRepository) CreateBuyer(buyer *model.Buyer) error {
	defer prometheus.TrackDBOperation("buyer_create")(time.Now())

	return r.db.Create(buyer).Error
}
