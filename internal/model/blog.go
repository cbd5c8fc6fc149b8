package model

import (
	"time"
)

// Blog is a published article. Slug is derived from Title on every save;
// ViewsCount only ever grows.
type Blog struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	Title       string    `json:"title" gorm:"type:varchar(150);not null"`
	Slug        *string   `json:"slug,omitempty" gorm:"type:varchar(150)"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	Photo       *string   `json:"photo,omitempty" gorm:"type:varchar(255)"`
	IsPublished bool      `json:"is_published" gorm:"default:true"`
	ViewsCount  uint      `json:"views_count" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
}
