package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
)

// Ensure OrderStore implements the interface.
var _ driven.OrderStore = (*OrderStore)(nil)

// OrderStore is an in-memory implementation of driven.OrderStore.
// Batches are stored as deep copies so callers cannot mutate the ledger.
type OrderStore struct {
	mu      sync.RWMutex
	batches map[string][]byte
}

// NewOrderStore creates a new in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		batches: make(map[string][]byte),
	}
}

// SaveImport stores or replaces a batch.
func (s *OrderStore) SaveImport(_ context.Context, batch *domain.ImportBatch) error {
	if batch == nil || batch.ID == "" {
		return domain.ErrInvalidInput
	}
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[batch.ID] = data
	return nil
}

// GetImport retrieves a batch by ID.
func (s *OrderStore) GetImport(_ context.Context, id string) (*domain.ImportBatch, error) {
	s.mu.RLock()
	data, ok := s.batches[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	var batch domain.ImportBatch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ListImports returns summaries of all batches, newest first.
func (s *OrderStore) ListImports(ctx context.Context) ([]domain.ImportSummary, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.batches))
	for id := range s.batches {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	result := make([]domain.ImportSummary, 0, len(ids))
	for _, id := range ids {
		batch, err := s.GetImport(ctx, id)
		if err != nil {
			continue
		}
		result = append(result, domain.ImportSummary{
			ID:         batch.ID,
			SourceName: batch.SourceName,
			Format:     batch.Format,
			ImportedAt: batch.ImportedAt,
			OrderCount: len(batch.Orders),
			ItemCount:  batch.ItemCount(),
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ImportedAt.After(result[j].ImportedAt)
	})
	return result, nil
}

// ListOrders returns the orders of a batch.
func (s *OrderStore) ListOrders(ctx context.Context, batchID string) ([]domain.ParsedOrder, error) {
	batch, err := s.GetImport(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return batch.Orders, nil
}

// DeleteImport removes a batch.
func (s *OrderStore) DeleteImport(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.batches[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.batches, id)
	return nil
}
