package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/velmora/storefront-backend/internal/app/selection"
	"github.com/velmora/storefront-backend/internal/app/service"
	apperrors "github.com/velmora/storefront-backend/internal/errors"
	"github.com/velmora/storefront-backend/internal/middleware"
)

type CartController struct {
	cartService   service.CartService
	couponService service.CouponService
	maxQuantity   int
}

func NewCartController(cartService service.CartService, couponService service.CouponService, maxQuantity int) *CartController {
	return &CartController{
		cartService:   cartService,
		couponService: couponService,
		maxQuantity:   maxQuantity,
	}
}

// SelectionEntry is one (color, size, quantity) row of the update payload.
type SelectionEntry struct {
	ColorID  uint   `json:"color_id" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type UpdateCartItemRequest struct {
	Selections []SelectionEntry `json:"selections" binding:"required"`
}

type ApplyCouponRequest struct {
	CouponCode string `json:"coupon_code" binding:"required"`
}

// GetCart returns the user's cart with a freshly computed summary
// GET /api/v1/cart
func (ctrl *CartController) GetCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	view, err := ctrl.cartService.GetCart(userID)
	if err != nil {
		log.Error("Failed to fetch cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to fetch cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cart":    view.Cart,
		"summary": view.Summary,
	})
}

// GetProductWithSelections returns the edit-modal payload for one product
// GET /api/v1/cart/products/:id
func (ctrl *CartController) GetProductWithSelections(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	data, err := ctrl.cartService.GetProductWithSelections(userID, productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
			return
		}
		log.Error("Failed to fetch product selections", err, map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// UpdateCartItem replaces a product's cart lines with the posted selections
// PUT /api/v1/cart/products/:id
func (ctrl *CartController) UpdateCartItem(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid cart update request", map[string]interface{}{
			"user_id":    userID,
			"product_id": productID,
			"error":      err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	sel := selection.New()
	for _, entry := range req.Selections {
		sel.Toggle(entry.ColorID, entry.Size, 0)
		sel.SetQuantity(entry.ColorID, entry.Size, entry.Quantity, ctrl.maxQuantity)
	}

	if err := ctrl.cartService.UpdateProductSelections(userID, productID, sel); err != nil {
		switch {
		case errors.Is(err, service.ErrEmptySelection):
			apperrors.BadRequest(c, apperrors.ValidationEmptySelection, "Select at least one color and size")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		case errors.Is(err, service.ErrColorMismatch):
			apperrors.BadRequest(c, apperrors.ProductColorNotFound, "Color does not belong to this product")
		case errors.Is(err, service.ErrInvalidSize):
			apperrors.BadRequest(c, apperrors.ProductInvalidSize, "Size not available for this color")
		default:
			log.Error("Failed to update cart item", err, map[string]interface{}{
				"user_id":    userID,
				"product_id": productID,
			})
			apperrors.InternalError(c, "Failed to update cart")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Cart updated",
	})
}

// ClearCart removes every line from the user's cart
// DELETE /api/v1/cart
func (ctrl *CartController) ClearCart(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.cartService.ClearCart(userID); err != nil {
		log.Error("Failed to clear cart", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// ApplyCoupon validates a coupon against the current cart
// POST /api/v1/cart/coupon
func (ctrl *CartController) ApplyCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Coupon code is required")
		return
	}

	result, err := ctrl.couponService.ApplyCoupon(userID, req.CouponCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			apperrors.BadRequest(c, apperrors.CartEmpty, "Your cart is empty")
		case errors.Is(err, service.ErrCouponNotFound):
			apperrors.NotFound(c, apperrors.CouponNotFound, "Invalid coupon code")
		case errors.Is(err, service.ErrCouponExpired):
			apperrors.BadRequest(c, apperrors.CouponExpired, "This coupon has expired")
		case errors.Is(err, service.ErrCouponExhausted):
			apperrors.BadRequest(c, apperrors.CouponExhausted, "This coupon is no longer available")
		case errors.Is(err, service.ErrCouponMinOrder):
			apperrors.BadRequest(c, apperrors.CouponMinOrder, "Your order does not meet the coupon minimum")
		case errors.Is(err, service.ErrCouponNotApplicable):
			apperrors.BadRequest(c, apperrors.CouponNotApplicable, "This coupon cannot be applied to your order")
		default:
			log.Error("Failed to apply coupon", err, map[string]interface{}{
				"user_id": userID,
				"code":    req.CouponCode,
			})
			apperrors.InternalError(c, "Failed to apply coupon")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"code":      result.Code,
		"discount":  result.Discount,
		"new_total": result.Summary.Total,
		"summary":   result.Summary,
	})
}

// RemoveCoupon takes the applied coupon off the cart
// DELETE /api/v1/cart/coupon
func (ctrl *CartController) RemoveCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.couponService.RemoveCoupon(userID); err != nil {
		log.Error("Failed to remove coupon", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "Failed to remove coupon")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// CountItems returns the cart badge count
// GET /api/v1/cart/count
func (ctrl *CartController) CountItems(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	count, err := ctrl.cartService.CountItems(userID)
	if err != nil {
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}

// parseIDParam reads a positive integer path parameter, responding with a
// validation error on bad input.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid id")
		return 0, false
	}
	return uint(id), true
}
