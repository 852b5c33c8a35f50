package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
)

// Ensure LedgerService implements the interface.
var _ driving.LedgerService = (*LedgerService)(nil)

// LedgerService records completed imports in the order store.
type LedgerService struct {
	store driven.OrderStore
	now   func() time.Time
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(store driven.OrderStore) *LedgerService {
	return &LedgerService{store: store, now: time.Now}
}

// Record saves an import result as a new batch.
func (s *LedgerService) Record(ctx context.Context, sourceName string, result *driving.ImportResult) (*domain.ImportBatch, error) {
	if result == nil || len(result.Orders) == 0 {
		return nil, fmt.Errorf("%w: nothing to record", domain.ErrInvalidInput)
	}

	batch := &domain.ImportBatch{
		ID:         uuid.New().String(),
		SourceName: sourceName,
		Format:     result.Format,
		ImportedAt: s.now().UTC(),
		Orders:     result.Orders,
	}
	if err := s.store.SaveImport(ctx, batch); err != nil {
		return nil, fmt.Errorf("save import: %w", err)
	}
	return batch, nil
}

// List returns summaries of all recorded batches, newest first.
func (s *LedgerService) List(ctx context.Context) ([]domain.ImportSummary, error) {
	return s.store.ListImports(ctx)
}

// Get returns a batch with its orders.
func (s *LedgerService) Get(ctx context.Context, batchID string) (*domain.ImportBatch, error) {
	if batchID == "" {
		return nil, fmt.Errorf("%w: batch id is required", domain.ErrInvalidInput)
	}
	return s.store.GetImport(ctx, batchID)
}

// Delete removes a batch.
func (s *LedgerService) Delete(ctx context.Context, batchID string) error {
	if batchID == "" {
		return fmt.Errorf("%w: batch id is required", domain.ErrInvalidInput)
	}
	return s.store.DeleteImport(ctx, batchID)
}
