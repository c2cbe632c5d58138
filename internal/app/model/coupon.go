package model

import (
	"time"

	"gorm.io/gorm"
)

type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null;type:varchar(50)" json:"code"`
	Kind           DiscountKind   `gorm:"not null;default:0" json:"type"`
	Value          float64        `gorm:"not null" json:"value"`
	MinOrderAmount float64        `gorm:"default:0" json:"min_order_amount"`
	UsageLimit     int            `gorm:"default:0" json:"usage_limit"` // 0 = unlimited
	UsedCount      int            `gorm:"default:0" json:"used_count"`
	Active         bool           `gorm:"default:true" json:"active"`
	ExpiresAt      *time.Time     `json:"expires_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// IsExpired reports whether the coupon's expiry has passed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// IsExhausted reports whether the usage limit has been reached.
func (c *Coupon) IsExhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}
