package driving

import (
	"context"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

// LedgerService records and inspects completed imports.
type LedgerService interface {
	// Record saves an import result as a new batch and returns it.
	Record(ctx context.Context, sourceName string, result *ImportResult) (*domain.ImportBatch, error)

	// List returns summaries of all recorded batches, newest first.
	List(ctx context.Context) ([]domain.ImportSummary, error)

	// Get returns a batch with its orders.
	Get(ctx context.Context, batchID string) (*domain.ImportBatch, error)

	// Delete removes a batch.
	Delete(ctx context.Context, batchID string) error
}
