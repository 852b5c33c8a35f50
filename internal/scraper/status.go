package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/logger"
)

// statusGroup maps a set of lower-case phrases to a canonical status.
type statusGroup struct {
	status  domain.OrderStatus
	phrases []string
}

// statusGroups are checked in order; the first group with a matching phrase wins.
// Completion phrases come before "confirmed" so that "confirmed receipt"
// is not read as an order confirmation.
var statusGroups = []statusGroup{
	{domain.StatusDelivered, []string{"completed", "complete", "received", "confirmed receipt", "receipt confirmed", "finished"}},
	{domain.StatusDelivered, []string{"successfully delivered", "delivered"}},
	{domain.StatusShipped, []string{"shipped", "in transit", "awaiting delivery", "dispatched", "out for delivery", "on the way"}},
	{domain.StatusOrdered, []string{"to ship", "awaiting shipment", "processing", "confirmed", "placed"}},
	{domain.StatusPending, []string{"pending", "awaiting payment", "unpaid", "payment pending", "to pay"}},
	{domain.StatusCancelled, []string{"cancelled", "canceled", "refunded", "refund", "closed"}},
}

// CanonicalStatus maps source status text onto one of the canonical statuses.
// Unrecognised text is logged and reported as ordered.
func CanonicalStatus(text string) domain.OrderStatus {
	lower := strings.ToLower(cleanText(text))
	if lower == "" {
		return domain.StatusOrdered
	}
	for _, group := range statusGroups {
		for _, phrase := range group.phrases {
			if strings.Contains(lower, phrase) {
				return group.status
			}
		}
	}
	logger.Warn("unknown order status %q, defaulting to %s", text, domain.StatusOrdered)
	return domain.StatusOrdered
}

func statusStrategies() []Strategy[string] {
	return []Strategy[string]{
		textStrategy("header-status", "[class*='order-item-header-status-text']", "[class*='header-status']"),
		textStrategy("order-status", "[class*='order-status']"),
		textStrategy("status-text", "[class*='status-text']", "[class*='status']"),
	}
}

// textStrategy returns the first non-empty rendered text among selectors.
func textStrategy(name string, selectors ...string) Strategy[string] {
	return Strategy[string]{
		Name: name,
		Extract: func(s *goquery.Selection) (string, bool) {
			return firstText(s, selectors...)
		},
	}
}
