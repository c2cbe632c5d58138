package util

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateCouponCode produces a short uppercase code with the given prefix,
// e.g. "SALE-9F2C41B7". The random part comes from a UUID so codes generated
// in the same instant never collide.
func GenerateCouponCode(prefix string) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	if prefix == "" {
		return random
	}
	return strings.ToUpper(prefix) + "-" + random
}
