package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/internal/app/selection"
	"github.com/velmora/storefront-backend/internal/app/service"
	"github.com/velmora/storefront-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOrderControllerTest(t *testing.T) (*OrderController, *gin.Engine, *gorm.DB, *model.User) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	cartRepo := repository.NewCartRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	orderService := service.NewOrderService(orderRepo, cartRepo, couponRepo, testPricingConfig(), testDB)
	orderController := NewOrderController(orderService)

	user := &model.User{
		Email:        "order@example.com",
		PasswordHash: "hash",
		Name:         "Order User",
		Role:         model.RoleUser,
	}
	testDB.Create(user)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return orderController, router, testDB, user
}

// seedCartLine puts one 1000x2 line into the user's cart through the cart
// service so prices come from the catalog.
func seedCartLine(t *testing.T, testDB *gorm.DB, userID uint) {
	product := &model.Product{Name: "Cotton Shirt", Price: 1000, Category: "shirts"}
	require.NoError(t, testDB.Create(product).Error)
	color := &model.ProductColor{ProductID: product.ID, Name: "White"}
	color.SetSizeList([]string{"M"})
	require.NoError(t, testDB.Create(color).Error)

	cartRepo := repository.NewCartRepository(testDB)
	productRepo := repository.NewProductRepository(testDB)
	couponRepo := repository.NewCouponRepository(testDB)
	cartService := service.NewCartService(cartRepo, productRepo, couponRepo, testPricingConfig())

	sel := selection.New()
	sel.Toggle(color.ID, "M", 0)
	sel.SetQuantity(color.ID, "M", 2, 10)
	require.NoError(t, cartService.UpdateProductSelections(userID, product.ID, sel))
}

func validOrderBody(t *testing.T) []byte {
	body, err := json.Marshal(CreateOrderRequest{
		FullName:   "Asha Rao",
		Phone:      "+91 98765 43210",
		Line1:      "14 MG Road",
		City:       "Bengaluru",
		State:      "Karnataka",
		PostalCode: "560001",
	})
	require.NoError(t, err)
	return body
}

func TestOrderController_CreateOrder(t *testing.T) {
	controller, router, testDB, user := setupOrderControllerTest(t)
	seedCartLine(t, testDB, user.ID)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])

	order := response["order"].(map[string]interface{})
	assert.Equal(t, float64(2000), order["subtotal"])
	assert.Equal(t, float64(2339), order["total"]) // + tax 240 + delivery 99
	assert.Equal(t, "pending", order["status"])
}

func TestOrderController_CreateOrder_EmptyCart(t *testing.T) {
	controller, router, _, user := setupOrderControllerTest(t)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CART_EMPTY")
}

func TestOrderController_CreateOrder_MissingAddress(t *testing.T) {
	controller, router, testDB, user := setupOrderControllerTest(t)
	seedCartLine(t, testDB, user.ID)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})

	body := []byte(`{"full_name": "Asha Rao"}`)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderController_ListOrders(t *testing.T) {
	controller, router, testDB, user := setupOrderControllerTest(t)
	seedCartLine(t, testDB, user.ID)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.GET("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.ListOrders(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["count"])
}

func TestOrderController_GetOrder_NotOwned(t *testing.T) {
	controller, router, testDB, user := setupOrderControllerTest(t)
	seedCartLine(t, testDB, user.ID)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.GET("/orders/:id", func(c *gin.Context) {
		setUserIDInContext(c, user.ID+1)
		controller.GetOrder(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "ORDER_NOT_FOUND")
}

func TestOrderController_UpdateOrderStatus_InvalidStatus(t *testing.T) {
	controller, router, testDB, user := setupOrderControllerTest(t)
	seedCartLine(t, testDB, user.ID)

	router.POST("/orders", func(c *gin.Context) {
		setUserIDInContext(c, user.ID)
		controller.CreateOrder(c)
	})
	router.PATCH("/orders/:id/status", controller.UpdateOrderStatus)

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(validOrderBody(t)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	body := []byte(`{"status": "teleported"}`)
	req = httptest.NewRequest(http.MethodPatch, "/orders/1/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
