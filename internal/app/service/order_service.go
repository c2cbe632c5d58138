package service

import (
	"errors"
	"fmt"

	"github.com/velmora/storefront-backend/config"
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/pricing"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("invalid delivery address")
)

// AddressInput carries the delivery address collected at checkout.
type AddressInput struct {
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
}

func (a AddressInput) validate() error {
	if a.FullName == "" || a.Line1 == "" || a.City == "" || a.PostalCode == "" {
		return ErrInvalidAddress
	}
	return nil
}

type OrderService interface {
	CreateOrderFromCart(userID uint, address AddressInput) (*model.Order, error)
	GetUserOrders(userID uint) ([]model.Order, error)
	GetOrderByID(userID, orderID uint) (*model.Order, error)
	UpdateOrderStatus(orderID uint, status model.OrderStatus) error
}

type orderService struct {
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	couponRepo repository.CouponRepository
	pricingCfg config.PricingConfig
	db         *gorm.DB
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	couponRepo repository.CouponRepository,
	pricingCfg config.PricingConfig,
	db *gorm.DB,
) OrderService {
	return &orderService{
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		couponRepo: couponRepo,
		pricingCfg: pricingCfg,
		db:         db,
	}
}

// CreateOrderFromCart snapshots the cart into an order and clears the cart
// in one transaction. All totals, including the coupon discount, are
// re-derived here from the persisted lines; nothing the client displayed is
// trusted.
func (s *orderService) CreateOrderFromCart(userID uint, address AddressInput) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id": userID,
	})

	if err := address.validate(); err != nil {
		logger.Warn("Checkout rejected: invalid address", map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		logger.Error("Failed to fetch cart for checkout", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cart.Items) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	// Re-derive the coupon discount against the cart as persisted. A code
	// that no longer qualifies is silently dropped from the order.
	var (
		couponDiscount float64
		couponCode     *string
		coupon         *model.Coupon
	)
	if cart.CouponCode != nil {
		discount, err := couponDiscountFor(s.couponRepo, *cart.CouponCode, cart.Items, s.pricingCfg)
		if err == nil {
			couponDiscount = discount
			couponCode = cart.CouponCode
			coupon, _ = s.couponRepo.FindByCode(*cart.CouponCode)
		} else {
			logger.Info("Coupon dropped at checkout", map[string]interface{}{
				"user_id": userID,
				"code":    *cart.CouponCode,
				"reason":  err.Error(),
			})
		}
	}

	summary := pricing.CartTotals(cartLines(cart.Items), s.pricingCfg.TaxRate, s.pricingCfg.DeliveryFee, couponDiscount)

	order := &model.Order{
		UserID:         userID,
		Status:         model.OrderStatusPending,
		Subtotal:       summary.Subtotal,
		Tax:            summary.Tax,
		DeliveryFee:    summary.DeliveryFee,
		CouponCode:     couponCode,
		CouponDiscount: couponDiscount,
		Total:          summary.Total,
		Items:          make([]model.OrderItem, 0, len(cart.Items)),
		Address: &model.OrderAddress{
			FullName:   address.FullName,
			Phone:      address.Phone,
			Line1:      address.Line1,
			Line2:      address.Line2,
			City:       address.City,
			State:      address.State,
			PostalCode: address.PostalCode,
		},
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			ColorID:     item.ColorID,
			ColorName:   item.Color.Name,
			Size:        item.Size,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.CreateInTx(tx, order); err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart after order: %w", err)
		}
		if err := tx.Model(&model.Cart{}).
			Where("id = ?", cart.ID).
			Updates(map[string]interface{}{
				"coupon_code":     nil,
				"coupon_discount": 0,
			}).Error; err != nil {
			return fmt.Errorf("failed to reset cart coupon after order: %w", err)
		}

		if coupon != nil {
			if err := tx.Model(&model.Coupon{}).
				Where("id = ?", coupon.ID).
				UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return fmt.Errorf("failed to record coupon usage: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":  userID,
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	})
	return order, nil
}

func (s *orderService) GetUserOrders(userID uint) ([]model.Order, error) {
	logger.Debug("Fetching user orders", map[string]interface{}{
		"user_id": userID,
	})
	return s.orderRepo.FindByUserID(userID)
}

func (s *orderService) GetOrderByID(userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if order.UserID != userID {
		logger.Warn("Order access denied: ownership mismatch", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
			"owner_id": order.UserID,
		})
		return nil, ErrOrderNotFound
	}

	return order, nil
}

func (s *orderService) UpdateOrderStatus(orderID uint, status model.OrderStatus) error {
	logger.Info("Updating order status", map[string]interface{}{
		"order_id": orderID,
		"status":   status,
	})

	if _, err := s.orderRepo.FindByID(orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}

	return s.orderRepo.UpdateStatus(orderID, status)
}
