package driven

import (
	"context"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

// OrderStore is the import ledger: a staging record of completed imports.
type OrderStore interface {
	// SaveImport stores a batch with all its orders.
	SaveImport(ctx context.Context, batch *domain.ImportBatch) error

	// GetImport retrieves a batch by ID. Returns domain.ErrNotFound if absent.
	GetImport(ctx context.Context, id string) (*domain.ImportBatch, error)

	// ListImports returns summaries of all batches, newest first.
	ListImports(ctx context.Context) ([]domain.ImportSummary, error)

	// ListOrders returns the orders of a batch.
	ListOrders(ctx context.Context, batchID string) ([]domain.ParsedOrder, error)

	// DeleteImport removes a batch and its orders.
	DeleteImport(ctx context.Context, id string) error
}
