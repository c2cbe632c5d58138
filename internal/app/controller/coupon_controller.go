package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velmora/storefront-backend/internal/app/model"
	"github.com/velmora/storefront-backend/internal/app/service"
	apperrors "github.com/velmora/storefront-backend/internal/errors"
	"github.com/velmora/storefront-backend/internal/middleware"
)

type CouponController struct {
	couponService service.CouponService
}

func NewCouponController(couponService service.CouponService) *CouponController {
	return &CouponController{
		couponService: couponService,
	}
}

type CreateCouponRequest struct {
	Code           string     `json:"code"`
	CodePrefix     string     `json:"code_prefix"`
	Type           *int       `json:"type" binding:"required"`
	Value          float64    `json:"value" binding:"required,gt=0"`
	MinOrderAmount float64    `json:"min_order_amount"`
	UsageLimit     int        `json:"usage_limit"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

// CreateCoupon mints a new coupon
// POST /api/v1/coupons (admin)
func (ctrl *CouponController) CreateCoupon(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create coupon request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid coupon data")
		return
	}

	kind := model.DiscountKind(*req.Type)
	if kind != model.DiscountPercentage && kind != model.DiscountFixed {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Unknown discount type")
		return
	}

	coupon, err := ctrl.couponService.CreateCoupon(service.CreateCouponInput{
		Code:           req.Code,
		CodePrefix:     req.CodePrefix,
		Kind:           kind,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		UsageLimit:     req.UsageLimit,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponInvalidValue):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Coupon value is out of range")
		case errors.Is(err, service.ErrCouponCodeExists):
			apperrors.Conflict(c, apperrors.ResourceAlreadyExists, "Coupon code already exists")
		default:
			log.Error("Failed to create coupon", err)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"coupon":  coupon,
	})
}
