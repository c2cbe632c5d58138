package db

import (
	"time"

	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.Discount{},
		&model.Product{},
		&model.ProductColor{},
		&model.ProductImage{},
		&model.ProductVideo{},
		&model.Cart{},
		&model.CartItem{},
		&model.Coupon{},
		&model.Order{},
		&model.OrderItem{},
		&model.OrderAddress{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds initial data to the database (optional)
func Seed() error {
	return seedCoupons()
}

// seedCoupons creates the launch coupons unless coupons already exist.
func seedCoupons() error {
	var count int64
	if err := DB.Model(&model.Coupon{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Coupons already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	logger.Info("Seeding coupon data...")

	expiry := time.Now().AddDate(0, 3, 0)
	coupons := []model.Coupon{
		{Code: "WELCOME10", Kind: model.DiscountPercentage, Value: 10, MinOrderAmount: 500, Active: true, ExpiresAt: &expiry},
		{Code: "FLAT200", Kind: model.DiscountFixed, Value: 200, MinOrderAmount: 1500, Active: true, ExpiresAt: &expiry},
		{Code: "FESTIVE25", Kind: model.DiscountPercentage, Value: 25, MinOrderAmount: 3000, UsageLimit: 500, Active: true, ExpiresAt: &expiry},
	}

	for _, coupon := range coupons {
		if err := DB.Create(&coupon).Error; err != nil {
			logger.Error("Failed to create coupon", err, map[string]interface{}{
				"code": coupon.Code,
			})
			return err
		}
	}

	logger.Info("Coupons seeded successfully", map[string]interface{}{
		"total_coupons": len(coupons),
	})
	return nil
}
