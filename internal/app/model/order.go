package model

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order snapshots the cart at checkout. Totals are recomputed server-side
// from the line items at creation time; client-supplied totals are never
// trusted.
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	Status         OrderStatus    `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Subtotal       float64        `gorm:"not null" json:"subtotal"`
	Tax            float64        `gorm:"not null" json:"tax"`
	DeliveryFee    float64        `gorm:"not null" json:"delivery_fee"`
	CouponCode     *string        `gorm:"type:varchar(50)" json:"coupon_code,omitempty"`
	CouponDiscount float64        `gorm:"default:0" json:"coupon_discount"`
	Total          float64        `gorm:"not null" json:"total"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User    User          `gorm:"foreignKey:UserID" json:"-"`
	Items   []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Address *OrderAddress `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"address,omitempty"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem denormalizes the product and color names so the order history
// keeps rendering after catalog edits.
type OrderItem struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	OrderID     uint           `gorm:"index;not null" json:"order_id"`
	ProductID   uint           `gorm:"index;not null" json:"product_id"`
	ProductName string         `gorm:"not null" json:"product_name"`
	ColorID     uint           `gorm:"not null" json:"color_id"`
	ColorName   string         `json:"color_name"`
	Size        string         `gorm:"type:varchar(20);not null" json:"size"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   float64        `gorm:"not null" json:"unit_price"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

type OrderAddress struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	OrderID    uint           `gorm:"uniqueIndex;not null" json:"order_id"`
	FullName   string         `gorm:"not null" json:"full_name"`
	Phone      string         `json:"phone"`
	Line1      string         `gorm:"not null" json:"line1"`
	Line2      string         `json:"line2"`
	City       string         `gorm:"not null" json:"city"`
	State      string         `json:"state"`
	PostalCode string         `gorm:"not null" json:"postal_code"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OrderAddress) TableName() string {
	return "order_addresses"
}
