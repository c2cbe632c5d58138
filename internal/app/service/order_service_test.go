package service

import (
	"testing"

	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (OrderService, CartService, CouponService, *model.User, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)

	orderService := NewOrderService(orderRepo, cartRepo, couponRepo, testPricingConfig(), testDB)
	cartService := NewCartService(cartRepo, productRepo, couponRepo, testPricingConfig())
	couponService := NewCouponService(couponRepo, cartRepo, testPricingConfig())

	user := &model.User{
		Email:        "order@example.com",
		PasswordHash: "hash",
		Name:         "Order User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	return orderService, cartService, couponService, user, testDB
}

func testAddress() AddressInput {
	return AddressInput{
		FullName:   "Asha Rao",
		Phone:      "+91 98765 43210",
		Line1:      "14 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
	}
}

func TestOrderService_CreateOrderFromCart_Success(t *testing.T) {
	orderService, cartService, _, user, testDB := setupOrderServiceTest(t)
	fillCart(t, testDB, cartService, user.ID) // 1000 x 2

	order, err := orderService.CreateOrderFromCart(user.ID, testAddress())
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, 2000.0, order.Subtotal)
	assert.Equal(t, 240.0, order.Tax)
	assert.Equal(t, 99.0, order.DeliveryFee)
	assert.Equal(t, 2339.0, order.Total)

	require.Len(t, order.Items, 1)
	assert.Equal(t, "Cotton Shirt", order.Items[0].ProductName)
	assert.Equal(t, "White", order.Items[0].ColorName)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 1000.0, order.Items[0].UnitPrice)

	require.NotNil(t, order.Address)
	assert.Equal(t, "Bengaluru", order.Address.City)

	// Cart is emptied by checkout
	view, err := cartService.GetCart(user.ID)
	require.NoError(t, err)
	assert.Len(t, view.Cart.Items, 0)
}

func TestOrderService_CreateOrderFromCart_WithCoupon(t *testing.T) {
	orderService, cartService, couponService, user, testDB := setupOrderServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	coupon := &model.Coupon{Code: "SAVE10", Kind: model.DiscountPercentage, Value: 10, Active: true}
	testDB.Create(coupon)
	_, err := couponService.ApplyCoupon(user.ID, "SAVE10")
	require.NoError(t, err)

	order, err := orderService.CreateOrderFromCart(user.ID, testAddress())
	require.NoError(t, err)

	require.NotNil(t, order.CouponCode)
	assert.Equal(t, "SAVE10", *order.CouponCode)
	assert.Equal(t, 200.0, order.CouponDiscount)
	assert.Equal(t, 2139.0, order.Total)

	// Usage is recorded inside the checkout transaction
	var updated model.Coupon
	testDB.First(&updated, coupon.ID)
	assert.Equal(t, 1, updated.UsedCount)
}

func TestOrderService_CreateOrderFromCart_DropsStaleCoupon(t *testing.T) {
	orderService, cartService, couponService, user, testDB := setupOrderServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	coupon := &model.Coupon{Code: "SAVE10", Kind: model.DiscountPercentage, Value: 10, Active: true}
	testDB.Create(coupon)
	_, err := couponService.ApplyCoupon(user.ID, "SAVE10")
	require.NoError(t, err)

	// Coupon gets deactivated between apply and checkout
	testDB.Model(coupon).Update("active", false)

	order, err := orderService.CreateOrderFromCart(user.ID, testAddress())
	require.NoError(t, err)

	assert.Nil(t, order.CouponCode)
	assert.Equal(t, 0.0, order.CouponDiscount)
	assert.Equal(t, 2339.0, order.Total)

	var updated model.Coupon
	testDB.First(&updated, coupon.ID)
	assert.Equal(t, 0, updated.UsedCount)
}

func TestOrderService_CreateOrderFromCart_EmptyCart(t *testing.T) {
	orderService, _, _, user, _ := setupOrderServiceTest(t)

	_, err := orderService.CreateOrderFromCart(user.ID, testAddress())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderService_CreateOrderFromCart_InvalidAddress(t *testing.T) {
	orderService, cartService, _, user, testDB := setupOrderServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	addr := testAddress()
	addr.PostalCode = ""
	_, err := orderService.CreateOrderFromCart(user.ID, addr)
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestOrderService_GetUserOrders(t *testing.T) {
	orderService, cartService, _, user, testDB := setupOrderServiceTest(t)

	orders, err := orderService.GetUserOrders(user.ID)
	assert.NoError(t, err)
	assert.Len(t, orders, 0)

	fillCart(t, testDB, cartService, user.ID)
	_, err = orderService.CreateOrderFromCart(user.ID, testAddress())
	require.NoError(t, err)

	orders, err = orderService.GetUserOrders(user.ID)
	assert.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 1)
	require.NotNil(t, orders[0].Address)
}

func TestOrderService_GetOrderByID_OwnershipMismatch(t *testing.T) {
	orderService, cartService, _, user, testDB := setupOrderServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	order, err := orderService.CreateOrderFromCart(user.ID, testAddress())
	require.NoError(t, err)

	// Owner sees it
	found, err := orderService.GetOrderByID(user.ID, order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	// Anyone else gets not-found, not forbidden
	_, err = orderService.GetOrderByID(user.ID+1, order.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_GetOrderByID_NotFound(t *testing.T) {
	orderService, _, _, user, _ := setupOrderServiceTest(t)

	_, err := orderService.GetOrderByID(user.ID, 9999)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	orderService, cartService, _, user, testDB := setupOrderServiceTest(t)
	fillCart(t, testDB, cartService, user.ID)

	order, err := orderService.CreateOrderFromCart(user.ID, testAddress())
	require.NoError(t, err)

	err = orderService.UpdateOrderStatus(order.ID, model.OrderStatusShipped)
	assert.NoError(t, err)

	found, err := orderService.GetOrderByID(user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, found.Status)
}

func TestOrderService_UpdateOrderStatus_NotFound(t *testing.T) {
	orderService, _, _, _, _ := setupOrderServiceTest(t)

	err := orderService.UpdateOrderStatus(9999, model.OrderStatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
