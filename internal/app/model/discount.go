package model

import (
	"time"

	"gorm.io/gorm"
)

// DiscountKind matches the wire contract: 0 = percentage, 1 = fixed amount.
type DiscountKind int

const (
	DiscountPercentage DiscountKind = 0
	DiscountFixed      DiscountKind = 1
)

type Discount struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name"`
	Kind      DiscountKind   `gorm:"not null;default:0" json:"type"`
	Value     float64        `gorm:"not null;default:0" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Discount) TableName() string {
	return "discounts"
}

// IsActive reports whether the discount actually reduces the price.
// A zero-value discount must render and total exactly like no discount at all.
func (d *Discount) IsActive() bool {
	return d != nil && d.Value > 0
}
