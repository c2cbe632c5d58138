package model

import (
	"time"

	"gorm.io/gorm"
)

// ProductImage belongs to a product; when ColorID is set the image is shown
// only while that color is selected.
type ProductImage struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	ColorID   *uint          `gorm:"index" json:"color_id,omitempty"`
	Path      string         `gorm:"not null" json:"path"`
	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductImage) TableName() string {
	return "product_images"
}

type ProductVideo struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	Path      string         `gorm:"not null" json:"path"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProductVideo) TableName() string {
	return "product_videos"
}
