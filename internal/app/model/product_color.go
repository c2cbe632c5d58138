package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// ProductColor is one color variant of a product. ExtraPrice is an additive
// delta on top of the product price and is never negative. Sizes is stored as
// a comma-joined list of labels ("S,M,L,XL") and exposed as a slice.
type ProductColor struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	ProductID  uint           `gorm:"index;not null" json:"product_id"`
	Name       string         `gorm:"not null" json:"name"`
	Code       string         `gorm:"type:varchar(20)" json:"code"` // swatch hex, e.g. #1a1a2e
	ExtraPrice float64        `gorm:"default:0" json:"extra_price"`
	Sizes      string         `gorm:"type:varchar(255)" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product        `gorm:"foreignKey:ProductID" json:"-"`
	Images  []ProductImage `gorm:"foreignKey:ColorID" json:"images,omitempty"`
}

func (ProductColor) TableName() string {
	return "product_colors"
}

// SizeList splits the stored size labels into a slice, skipping blanks.
func (c *ProductColor) SizeList() []string {
	if c.Sizes == "" {
		return []string{}
	}
	parts := strings.Split(c.Sizes, ",")
	sizes := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// SetSizeList stores the size labels, trimming whitespace.
func (c *ProductColor) SetSizeList(sizes []string) {
	cleaned := make([]string, 0, len(sizes))
	for _, s := range sizes {
		if t := strings.TrimSpace(s); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	c.Sizes = strings.Join(cleaned, ",")
}

// HasSize reports whether the label is one of the color's available sizes.
func (c *ProductColor) HasSize(size string) bool {
	for _, s := range c.SizeList() {
		if s == size {
			return true
		}
	}
	return false
}
