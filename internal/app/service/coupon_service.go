package service

import (
	"errors"
	"strings"
	"time"

	"github.com/velmora/storefront-backend/config"
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/pricing"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/pkg/logger"
	"github.com/velmora/storefront-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound      = errors.New("coupon not found")
	ErrCouponExpired       = errors.New("coupon has expired")
	ErrCouponExhausted     = errors.New("coupon usage limit reached")
	ErrCouponMinOrder      = errors.New("order does not meet the coupon minimum")
	ErrCouponNotApplicable = errors.New("coupon discount exceeds the amount due")
	ErrCouponInvalidValue  = errors.New("coupon value is out of range")
	ErrCouponCodeExists    = errors.New("coupon code already exists")
)

// CouponResult is what ApplyCoupon hands back for display. The discount and
// new total are authoritative; clients never compute them locally.
type CouponResult struct {
	Code     string          `json:"code"`
	Discount float64         `json:"discount"`
	Summary  pricing.Summary `json:"summary"`
}

// CreateCouponInput describes a new coupon. A blank Code gets one generated
// from the prefix, so promo batches can be minted without hand-picking codes.
type CreateCouponInput struct {
	Code           string
	CodePrefix     string
	Kind           model.DiscountKind
	Value          float64
	MinOrderAmount float64
	UsageLimit     int
	ExpiresAt      *time.Time
}

type CouponService interface {
	ApplyCoupon(userID uint, code string) (*CouponResult, error)
	RemoveCoupon(userID uint) error
	CreateCoupon(input CreateCouponInput) (*model.Coupon, error)
	ExpireCoupons(now time.Time) (int64, error)
}

type couponService struct {
	couponRepo repository.CouponRepository
	cartRepo   repository.CartRepository
	pricingCfg config.PricingConfig
}

func NewCouponService(
	couponRepo repository.CouponRepository,
	cartRepo repository.CartRepository,
	pricingCfg config.PricingConfig,
) CouponService {
	return &couponService{
		couponRepo: couponRepo,
		cartRepo:   cartRepo,
		pricingCfg: pricingCfg,
	}
}

// ApplyCoupon validates the code against the user's current cart, persists
// it on the cart, and returns the recomputed summary.
func (s *couponService) ApplyCoupon(userID uint, code string) (*CouponResult, error) {
	logger.Info("Applying coupon", map[string]interface{}{
		"user_id": userID,
		"code":    code,
	})

	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		logger.Warn("Cannot apply coupon: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	discount, err := couponDiscountFor(s.couponRepo, code, cart.Items, s.pricingCfg)
	if err != nil {
		logger.Warn("Coupon rejected", map[string]interface{}{
			"user_id": userID,
			"code":    code,
			"reason":  err.Error(),
		})
		return nil, err
	}

	if err := s.cartRepo.SetCoupon(cart.ID, &code, discount); err != nil {
		return nil, err
	}

	lines := cartLines(cart.Items)
	result := &CouponResult{
		Code:     code,
		Discount: discount,
		Summary:  pricing.CartTotals(lines, s.pricingCfg.TaxRate, s.pricingCfg.DeliveryFee, discount),
	}

	logger.Info("Coupon applied successfully", map[string]interface{}{
		"user_id":   userID,
		"code":      code,
		"discount":  discount,
		"new_total": result.Summary.Total,
	})
	return result, nil
}

func (s *couponService) RemoveCoupon(userID uint) error {
	cart, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.cartRepo.SetCoupon(cart.ID, nil, 0)
}

func (s *couponService) CreateCoupon(input CreateCouponInput) (*model.Coupon, error) {
	if input.Value <= 0 {
		return nil, ErrCouponInvalidValue
	}
	if input.Kind == model.DiscountPercentage && input.Value > 100 {
		return nil, ErrCouponInvalidValue
	}
	if input.MinOrderAmount < 0 || input.UsageLimit < 0 {
		return nil, ErrCouponInvalidValue
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		code = util.GenerateCouponCode(input.CodePrefix)
	}

	if _, err := s.couponRepo.FindByCode(code); err == nil {
		return nil, ErrCouponCodeExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	coupon := &model.Coupon{
		Code:           code,
		Kind:           input.Kind,
		Value:          input.Value,
		MinOrderAmount: input.MinOrderAmount,
		UsageLimit:     input.UsageLimit,
		Active:         true,
		ExpiresAt:      input.ExpiresAt,
	}
	if err := s.couponRepo.Create(coupon); err != nil {
		logger.Error("Failed to create coupon", err, map[string]interface{}{
			"code": code,
		})
		return nil, err
	}

	logger.Info("Coupon created", map[string]interface{}{
		"code": coupon.Code,
		"kind": coupon.Kind,
	})
	return coupon, nil
}

// ExpireCoupons deactivates coupons past their expiry. Called by the nightly
// scheduler.
func (s *couponService) ExpireCoupons(now time.Time) (int64, error) {
	count, err := s.couponRepo.DeactivateExpired(now)
	if err != nil {
		logger.Error("Failed to expire coupons", err)
		return 0, err
	}
	if count > 0 {
		logger.Info("Expired coupons deactivated", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}

// couponDiscountFor computes the discount a code yields on the given lines,
// or an error naming why the code does not apply. Shared by coupon apply
// and the cart-change revalidation path.
func couponDiscountFor(
	couponRepo repository.CouponRepository,
	code string,
	items []model.CartItem,
	cfg config.PricingConfig,
) (float64, error) {
	coupon, err := couponRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCouponNotFound
		}
		return 0, err
	}

	if !coupon.Active {
		return 0, ErrCouponNotFound
	}
	if coupon.IsExpired(time.Now()) {
		return 0, ErrCouponExpired
	}
	if coupon.IsExhausted() {
		return 0, ErrCouponExhausted
	}

	lines := cartLines(items)
	subtotal := pricing.CartTotals(lines, 0, 0, 0).Subtotal
	if subtotal < coupon.MinOrderAmount {
		return 0, ErrCouponMinOrder
	}

	var discount float64
	switch coupon.Kind {
	case model.DiscountPercentage:
		discount = subtotal * coupon.Value / 100
	case model.DiscountFixed:
		discount = coupon.Value
	}

	if discount > pricing.MaxCouponDiscount(lines, cfg.TaxRate, cfg.DeliveryFee) {
		return 0, ErrCouponNotApplicable
	}

	return discount, nil
}

func cartLines(items []model.CartItem) []pricing.Line {
	lines := make([]pricing.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return lines
}
