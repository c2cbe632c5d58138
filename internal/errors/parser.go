package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database errors into user-facing code/message pairs
// without leaking driver internals. context names the resource being acted
// on ("product", "cart item", "coupon", "order").
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    notFoundCode(context),
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL constraint violations

	// Unique violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "That " + contextOrResource(context) + " already exists",
		}
	}

	// Foreign key violation (23503), e.g. deleting a product that cart
	// lines still reference (restrict-on-delete)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "This " + contextOrResource(context) + " is still referenced and cannot be removed",
		}
	}

	// Not-null violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "A required field is missing",
		}
	}

	// Check violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidRange,
			Message: "A value is out of its allowed range",
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: "Something went wrong. Please try again shortly",
	}
}

func notFoundCode(context string) string {
	switch context {
	case "product":
		return ProductNotFound
	case "color":
		return ProductColorNotFound
	case "cart item":
		return CartItemNotFound
	case "coupon":
		return CouponNotFound
	case "order":
		return OrderNotFound
	default:
		return ResourceNotFound
	}
}

func notFoundMessage(context string) string {
	if context == "" {
		return "Requested resource was not found"
	}
	return "Requested " + context + " was not found"
}

func contextOrResource(context string) string {
	if context == "" {
		return "resource"
	}
	return context
}
