package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ordersnap/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
)

func newLedger(now time.Time) (*LedgerService, *memory.OrderStore) {
	store := memory.NewOrderStore()
	svc := NewLedgerService(store)
	svc.now = func() time.Time { return now }
	return svc, store
}

func TestLedgerService_RecordAndGet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newLedger(now)
	result := &driving.ImportResult{
		Format: domain.FormatMHTML,
		Orders: []domain.ParsedOrder{orderWithImages("https://ae01.alicdn.com/kf/S1.jpg")},
	}

	batch, err := svc.Record(ctx, "orders.mhtml", result)
	require.NoError(t, err)
	assert.NotEmpty(t, batch.ID)
	assert.Equal(t, "orders.mhtml", batch.SourceName)
	assert.Equal(t, domain.FormatMHTML, batch.Format)
	assert.Equal(t, now, batch.ImportedAt)

	got, err := svc.Get(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, got.ID)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, "8123456789012345", got.Orders[0].OrderNumber)
}

func TestLedgerService_RecordRejectsEmptyResult(t *testing.T) {
	svc, _ := newLedger(time.Now())

	_, err := svc.Record(context.Background(), "x.html", &driving.ImportResult{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Record(context.Background(), "x.html", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedgerService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newLedger(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	result := &driving.ImportResult{Format: domain.FormatHTML, Orders: []domain.ParsedOrder{orderWithImages("a", "b")}}

	batch, err := svc.Record(ctx, "orders.html", result)
	require.NoError(t, err)

	summaries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].OrderCount)
	assert.Equal(t, 2, summaries[0].ItemCount)

	require.NoError(t, svc.Delete(ctx, batch.ID))
	_, err = svc.Get(ctx, batch.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, batch.ID), domain.ErrNotFound)
}

func TestLedgerService_RequiresBatchID(t *testing.T) {
	svc, _ := newLedger(time.Now())

	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, svc.Delete(context.Background(), ""), domain.ErrInvalidInput)
}
