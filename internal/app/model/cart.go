package model

import (
	"time"

	"gorm.io/gorm"
)

// Cart is created lazily on a user's first add-to-cart and is cleared, never
// deleted, while the account exists. The applied coupon lives on the cart so
// the summary survives page reloads.
type Cart struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	CouponCode     *string        `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	CouponDiscount float64        `gorm:"default:0" json:"coupon_discount"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"-"`
	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}

// CartItem is one persisted line: a (product, color, size) variant at a
// quantity, with the unit price captured at the time of adding. Product and
// color rows cannot be deleted out from under a line item.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CartID    uint           `gorm:"index;not null" json:"cart_id"`
	ProductID uint           `gorm:"index;not null" json:"product_id"`
	ColorID   uint           `gorm:"index;not null" json:"color_id"`
	Size      string         `gorm:"type:varchar(20);not null" json:"size"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64        `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Cart    Cart         `gorm:"foreignKey:CartID" json:"-"`
	Product Product      `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"product,omitempty"`
	Color   ProductColor `gorm:"foreignKey:ColorID;constraint:OnDelete:RESTRICT" json:"color,omitempty"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

// LineTotal is the item's contribution to the cart subtotal.
func (i *CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}
