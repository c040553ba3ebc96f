package lookstore

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"stylist/internal/domain"
)

// Fingerprint derives the dedup cache key from shopping intent: the per-slot
// queries in plan order, the budget, the currency, and the target region.
// The look id is deliberately excluded so two requests with identical intent
// collapse onto the same cache entry.
func Fingerprint(plan *domain.StylePlan) string {
	h := sha256.New()
	for _, slot := range plan.Slots {
		fmt.Fprintf(h, "q:%s=%s\n", slot, strings.TrimSpace(plan.Queries[slot]))
	}
	fmt.Fprintf(h, "budget=%.2f\n", plan.Budget)
	fmt.Fprintf(h, "currency=%s\n", strings.ToUpper(strings.TrimSpace(plan.Currency)))
	fmt.Fprintf(h, "region=%s\n", strings.ToUpper(strings.TrimSpace(plan.Region)))
	return hex.EncodeToString(h.Sum(nil))
}
