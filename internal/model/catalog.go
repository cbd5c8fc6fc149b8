package model

import (
	"time"
)

// Category groups products in the catalog
type Category struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Name        string  `json:"name" gorm:"type:varchar(100);not null"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
}

// Product represents a catalog item owned by the user who created it
type Product struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	Name           string     `json:"name" gorm:"type:varchar(100);not null"`
	Description    *string    `json:"description,omitempty" gorm:"type:text"`
	Photo          *string    `json:"photo,omitempty" gorm:"type:varchar(255)"`
	CategoryID     *uint      `json:"category_id,omitempty" gorm:"index"`
	Category       *Category  `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Price          *int       `json:"price,omitempty"`
	OwnerID        uint       `json:"owner_id" gorm:"index;not null"`
	IsPublished    bool       `json:"is_published" gorm:"default:true"`
	ManufacturedAt *time.Time `json:"manufactured_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Versions       []Version  `json:"versions,omitempty" gorm:"foreignKey:ProductID"`
}

// Version is a variant/release record attached to a product
type Version struct {
	ID              uint     `json:"id" gorm:"primarykey"`
	ProductID       *uint    `json:"product_id,omitempty" gorm:"index"`
	Product         *Product `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL"`
	VersionNumber   *string  `json:"version_number,omitempty" gorm:"type:varchar(10)"`
	VersionName     *string  `json:"version_name,omitempty" gorm:"type:varchar(100)"`
	IsVersionActive bool     `json:"is_version_active" gorm:"default:false"`
}
