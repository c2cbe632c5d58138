package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"type:varchar(50);index" json:"category"`
	DiscountID  *uint          `gorm:"index" json:"discount_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Discount *Discount      `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Colors   []ProductColor `gorm:"foreignKey:ProductID" json:"colors,omitempty"`
	Images   []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Videos   []ProductVideo `gorm:"foreignKey:ProductID" json:"videos,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// PrimaryImage returns the first product-level image path, or "" when the
// product has no media yet.
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.ColorID == nil {
			return img.Path
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].Path
	}
	return ""
}
