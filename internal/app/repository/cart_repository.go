package repository

import (
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/pkg/logger"
	"gorm.io/gorm"
)

type CartRepository interface {
	FindOrCreateByUserID(userID uint) (*model.Cart, error)
	FindByUserID(userID uint) (*model.Cart, error)
	FindItemsByProduct(cartID, productID uint) ([]model.CartItem, error)
	ReplaceProductItems(cartID, productID uint, items []model.CartItem) error
	ClearItems(cartID uint) error
	SetCoupon(cartID uint, code *string, discount float64) error
	CountItems(cartID uint) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// FindOrCreateByUserID returns the user's cart, creating it lazily on the
// first add-to-cart. Carts are never deleted while the account exists.
func (r *cartRepository) FindOrCreateByUserID(userID uint) (*model.Cart, error) {
	logger.Debug("Finding or creating cart for user in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.Where(model.Cart{UserID: userID}).FirstOrCreate(&cart).Error
	if err != nil {
		logger.Error("Failed to find or create cart in database", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return &cart, nil
}

// FindByUserID loads the cart with its lines and the product/color rows the
// summary view renders from. Returns gorm.ErrRecordNotFound when the user
// has no cart yet.
func (r *cartRepository) FindByUserID(userID uint) (*model.Cart, error) {
	logger.Debug("Finding cart by user ID in database", map[string]interface{}{
		"user_id": userID,
	})

	var cart model.Cart
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("cart_items.id ASC")
		}).
		Preload("Items.Product").
		Preload("Items.Product.Discount").
		Preload("Items.Color").
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartRepository) FindItemsByProduct(cartID, productID uint) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		logger.Error("Failed to find cart items by product in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return nil, err
	}
	return items, nil
}

// ReplaceProductItems swaps a product's lines for the given set in one
// transaction, so a cart edit either fully applies or leaves the cart as it
// was.
func (r *cartRepository) ReplaceProductItems(cartID, productID uint, items []model.CartItem) error {
	logger.Debug("Replacing product items in cart in database", map[string]interface{}{
		"cart_id":    cartID,
		"product_id": productID,
		"new_count":  len(items),
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		logger.Error("Failed to replace product items in cart in database", err, map[string]interface{}{
			"cart_id":    cartID,
			"product_id": productID,
		})
		return err
	}
	return nil
}

// ClearItems empties the cart and drops any applied coupon with it.
func (r *cartRepository) ClearItems(cartID uint) error {
	logger.Debug("Clearing cart items in database", map[string]interface{}{
		"cart_id": cartID,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Cart{}).
			Where("id = ?", cartID).
			Updates(map[string]interface{}{
				"coupon_code":     nil,
				"coupon_discount": 0,
			}).Error
	})
	if err != nil {
		logger.Error("Failed to clear cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) SetCoupon(cartID uint, code *string, discount float64) error {
	logger.Debug("Setting cart coupon in database", map[string]interface{}{
		"cart_id":  cartID,
		"discount": discount,
	})

	err := r.db.Model(&model.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"coupon_code":     code,
			"coupon_discount": discount,
		}).Error
	if err != nil {
		logger.Error("Failed to set cart coupon in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return err
	}
	return nil
}

func (r *cartRepository) CountItems(cartID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CartItem{}).
		Where("cart_id = ?", cartID).
		Count(&count).Error
	if err != nil {
		logger.Error("Failed to count cart items in database", err, map[string]interface{}{
			"cart_id": cartID,
		})
		return 0, err
	}
	return count, nil
}
