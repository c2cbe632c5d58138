package repository

import (
	"time"

	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	FindByCode(code string) (*model.Coupon, error)
	IncrementUsage(id uint) error
	DeactivateExpired(now time.Time) (int64, error)
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	logger.Debug("Creating coupon in database", map[string]interface{}{
		"code": coupon.Code,
	})

	if err := r.db.Create(coupon).Error; err != nil {
		logger.Error("Failed to create coupon in database", err, map[string]interface{}{
			"code": coupon.Code,
		})
		return err
	}
	return nil
}

func (r *couponRepository) FindByCode(code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.Where("code = ?", code).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// IncrementUsage bumps the used counter atomically at checkout.
func (r *couponRepository) IncrementUsage(id uint) error {
	err := r.db.Model(&model.Coupon{}).
		Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
	if err != nil {
		logger.Error("Failed to increment coupon usage in database", err, map[string]interface{}{
			"coupon_id": id,
		})
		return err
	}
	return nil
}

// DeactivateExpired flips active off for coupons whose expiry has passed.
// Run by the nightly scheduler.
func (r *couponRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.Coupon{}).
		Where("active = ? AND expires_at IS NOT NULL AND expires_at < ?", true, now).
		Update("active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired coupons in database", result.Error, nil)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
