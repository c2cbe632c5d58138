package service

import (
	"testing"
	"time"

	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/internal/app/selection"
	"github.com/velmora/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (CouponService, CartService, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	couponService := NewCouponService(couponRepo, cartRepo, testPricingConfig())
	cartService := NewCartService(cartRepo, productRepo, couponRepo, testPricingConfig())

	user := &model.User{
		Email:        "coupon@example.com",
		PasswordHash: "hash",
		Name:         "Coupon User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	return couponService, cartService, user, testDB
}

// fillCart puts a single 1000x2 line in the user's cart (subtotal 2000).
func fillCart(t *testing.T, testDB *gorm.DB, cartService CartService, userID uint) {
	product := &model.Product{Name: "Cotton Shirt", Price: 1000, Category: "shirts"}
	require.NoError(t, testDB.Create(product).Error)
	color := &model.ProductColor{ProductID: product.ID, Name: "White"}
	color.SetSizeList([]string{"M"})
	require.NoError(t, testDB.Create(color).Error)

	sel := selection.New()
	sel.Toggle(color.ID, "M", 0)
	sel.SetQuantity(color.ID, "M", 2, 10)
	require.NoError(t, cartService.UpdateProductSelections(userID, product.ID, sel))
}

func TestCouponService_ApplyCoupon_Percentage(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	testDB.Create(&model.Coupon{
		Code: "SAVE10", Kind: model.DiscountPercentage, Value: 10, Active: true,
	})

	result, err := couponService.ApplyCoupon(user.ID, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "SAVE10", result.Code)
	assert.Equal(t, 200.0, result.Discount) // 10% of 2000

	// subtotal 2000, tax 240, delivery 99, minus 200
	assert.Equal(t, 2139.0, result.Summary.Total)

	view, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Cart.CouponCode)
	assert.Equal(t, "SAVE10", *view.Cart.CouponCode)
	assert.Equal(t, 200.0, view.Cart.CouponDiscount)
}

func TestCouponService_ApplyCoupon_Fixed(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	testDB.Create(&model.Coupon{
		Code: "FLAT200", Kind: model.DiscountFixed, Value: 200,
		MinOrderAmount: 1500, Active: true,
	})

	result, err := couponService.ApplyCoupon(user.ID, "FLAT200")
	require.NoError(t, err)
	assert.Equal(t, 200.0, result.Discount)
}

func TestCouponService_ApplyCoupon_EmptyCart(t *testing.T) {
	couponService, _, user, testDB := setupCouponServiceTest(t)

	testDB.Create(&model.Coupon{Code: "SAVE10", Kind: model.DiscountPercentage, Value: 10, Active: true})

	_, err := couponService.ApplyCoupon(user.ID, "SAVE10")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCouponService_ApplyCoupon_NotFound(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	_, err := couponService.ApplyCoupon(user.ID, "NOPE")
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestCouponService_ApplyCoupon_Inactive(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	testDB.Create(&model.Coupon{Code: "OLD", Kind: model.DiscountFixed, Value: 100, Active: false})

	// Deactivated codes are indistinguishable from unknown ones
	_, err := couponService.ApplyCoupon(user.ID, "OLD")
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestCouponService_ApplyCoupon_Expired(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	past := time.Now().Add(-24 * time.Hour)
	testDB.Create(&model.Coupon{
		Code: "BYGONE", Kind: model.DiscountFixed, Value: 100,
		Active: true, ExpiresAt: &past,
	})

	_, err := couponService.ApplyCoupon(user.ID, "BYGONE")
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestCouponService_ApplyCoupon_Exhausted(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	testDB.Create(&model.Coupon{
		Code: "LIMITED", Kind: model.DiscountFixed, Value: 100,
		UsageLimit: 5, UsedCount: 5, Active: true,
	})

	_, err := couponService.ApplyCoupon(user.ID, "LIMITED")
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestCouponService_ApplyCoupon_BelowMinimum(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	testDB.Create(&model.Coupon{
		Code: "BIGSPEND", Kind: model.DiscountPercentage, Value: 25,
		MinOrderAmount: 3000, Active: true,
	})

	_, err := couponService.ApplyCoupon(user.ID, "BIGSPEND")
	assert.ErrorIs(t, err, ErrCouponMinOrder)
}

func TestCouponService_ApplyCoupon_DiscountExceedsTotal(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	// More than subtotal + tax + delivery (2339)
	testDB.Create(&model.Coupon{
		Code: "TOOBIG", Kind: model.DiscountFixed, Value: 5000, Active: true,
	})

	_, err := couponService.ApplyCoupon(user.ID, "TOOBIG")
	assert.ErrorIs(t, err, ErrCouponNotApplicable)
}

func TestCouponService_RemoveCoupon(t *testing.T) {
	couponService, cartService, user, testDB := setupCouponServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	testDB.Create(&model.Coupon{Code: "SAVE10", Kind: model.DiscountPercentage, Value: 10, Active: true})
	_, err := couponService.ApplyCoupon(user.ID, "SAVE10")
	require.NoError(t, err)

	err = couponService.RemoveCoupon(user.ID)
	assert.NoError(t, err)

	view, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Nil(t, view.Cart.CouponCode)
	assert.Equal(t, 0.0, view.Cart.CouponDiscount)
}

func TestCouponService_RemoveCoupon_NoCart(t *testing.T) {
	couponService, _, user, _ := setupCouponServiceTest(t)

	err := couponService.RemoveCoupon(user.ID)
	assert.NoError(t, err)
}

func TestCouponService_ExpireCoupons(t *testing.T) {
	couponService, _, _, testDB := setupCouponServiceTest(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	testDB.Create(&model.Coupon{Code: "STALE", Kind: model.DiscountFixed, Value: 50, Active: true, ExpiresAt: &past})
	testDB.Create(&model.Coupon{Code: "FRESH", Kind: model.DiscountFixed, Value: 50, Active: true, ExpiresAt: &future})
	testDB.Create(&model.Coupon{Code: "OPENENDED", Kind: model.DiscountFixed, Value: 50, Active: true})

	count, err := couponService.ExpireCoupons(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var stale, fresh model.Coupon
	testDB.Where("code = ?", "STALE").First(&stale)
	testDB.Where("code = ?", "FRESH").First(&fresh)
	assert.False(t, stale.Active)
	assert.True(t, fresh.Active)
}

func TestCouponService_CreateCoupon(t *testing.T) {
	couponService, _, _, testDB := setupCouponServiceTest(t)

	coupon, err := couponService.CreateCoupon(CreateCouponInput{
		Code:           "diwali20",
		Kind:           model.DiscountPercentage,
		Value:          20,
		MinOrderAmount: 2500,
		UsageLimit:     100,
	})
	require.NoError(t, err)
	assert.Equal(t, "DIWALI20", coupon.Code)
	assert.True(t, coupon.Active)

	var stored model.Coupon
	require.NoError(t, testDB.Where("code = ?", "DIWALI20").First(&stored).Error)
	assert.Equal(t, float64(20), stored.Value)
}

func TestCouponService_CreateCoupon_GeneratedCode(t *testing.T) {
	couponService, _, _, _ := setupCouponServiceTest(t)

	coupon, err := couponService.CreateCoupon(CreateCouponInput{
		CodePrefix: "sale",
		Kind:       model.DiscountFixed,
		Value:      150,
	})
	require.NoError(t, err)
	assert.Regexp(t, `^SALE-[0-9A-F]{8}$`, coupon.Code)
}

func TestCouponService_CreateCoupon_InvalidValue(t *testing.T) {
	couponService, _, _, _ := setupCouponServiceTest(t)

	cases := []CreateCouponInput{
		{Code: "ZERO", Kind: model.DiscountFixed, Value: 0},
		{Code: "OVER", Kind: model.DiscountPercentage, Value: 150},
		{Code: "NEGMIN", Kind: model.DiscountFixed, Value: 100, MinOrderAmount: -1},
	}
	for _, input := range cases {
		_, err := couponService.CreateCoupon(input)
		assert.ErrorIs(t, err, ErrCouponInvalidValue, "input %+v", input)
	}
}

func TestCouponService_CreateCoupon_DuplicateCode(t *testing.T) {
	couponService, _, _, testDB := setupCouponServiceTest(t)

	testDB.Create(&model.Coupon{Code: "TAKEN", Kind: model.DiscountFixed, Value: 50, Active: true})

	_, err := couponService.CreateCoupon(CreateCouponInput{
		Code: "taken", Kind: model.DiscountFixed, Value: 100,
	})
	assert.ErrorIs(t, err, ErrCouponCodeExists)
}
