package driven

import (
	"context"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

// OrderExtractor scrapes purchase orders out of an order-history page.
type OrderExtractor interface {
	// Extract returns the orders found in html, in document order.
	// images maps original image URLs to local public URLs and may be empty.
	// When nothing usable is found it returns a *domain.DocumentFormatError
	// with reason NoOrdersFound, never an empty slice.
	Extract(ctx context.Context, html string, images domain.ImageMap, progress domain.ProgressFunc) ([]domain.ParsedOrder, error)
}
