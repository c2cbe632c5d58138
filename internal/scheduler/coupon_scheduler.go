package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/velmora/storefront-backend/internal/app/service"
	"github.com/velmora/storefront-backend/pkg/logger"
)

// CouponScheduler deactivates expired coupons on a nightly cron.
type CouponScheduler struct {
	cron          *cron.Cron
	couponService service.CouponService
}

func NewCouponScheduler(couponService service.CouponService) *CouponScheduler {
	return &CouponScheduler{
		cron:          cron.New(),
		couponService: couponService,
	}
}

// Start registers the nightly sweep. Coupons are also re-validated on every
// cart mutation, so the sweep only keeps the catalog tidy for admin listings.
func (s *CouponScheduler) Start() error {
	_, err := s.cron.AddFunc("5 0 * * *", func() {
		logger.Info("Starting scheduled coupon expiry sweep", nil)

		expired, err := s.couponService.ExpireCoupons(time.Now())
		if err != nil {
			logger.Error("Failed to expire coupons from scheduler", err)
			return
		}

		logger.Info("Coupon expiry sweep completed", map[string]interface{}{
			"expired_count": expired,
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for coupon expiry", err)
		return err
	}

	s.cron.Start()
	logger.Info("Coupon scheduler started successfully (daily at 00:05)", nil)

	return nil
}

func (s *CouponScheduler) Stop() {
	logger.Info("Stopping coupon scheduler...", nil)
	s.cron.Stop()
	logger.Info("Coupon scheduler stopped", nil)
}
