package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

func testBatch(id string, at time.Time) *domain.ImportBatch {
	return &domain.ImportBatch{
		ID:         id,
		SourceName: id + ".mhtml",
		Format:     domain.FormatMHTML,
		ImportedAt: at,
		Orders: []domain.ParsedOrder{{
			OrderNumber: "8123456789",
			OrderDate:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			TotalAmount: 25,
			Supplier:    "AliExpress",
			Status:      domain.StatusDelivered,
			Items: []domain.ParsedOrderItem{
				{ProductTitle: "10K resistor", Quantity: 3, UnitPrice: 10, TotalPrice: 25},
				{ProductTitle: "LED", Quantity: 1, UnitPrice: 1, TotalPrice: 1},
			},
		}},
	}
}

func TestOrderStore_SaveAndGet(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()
	batch := testBatch("b1", time.Now().UTC())

	require.NoError(t, store.SaveImport(ctx, batch))
	batch.Orders[0].OrderNumber = "mutated"

	got, err := store.GetImport(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "b1.mhtml", got.SourceName)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, "8123456789", got.Orders[0].OrderNumber)
	assert.Len(t, got.Orders[0].Items, 2)
}

func TestOrderStore_SaveInvalid(t *testing.T) {
	store := NewOrderStore()

	assert.ErrorIs(t, store.SaveImport(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.SaveImport(context.Background(), &domain.ImportBatch{}), domain.ErrInvalidInput)
}

func TestOrderStore_GetNotFound(t *testing.T) {
	store := NewOrderStore()

	_, err := store.GetImport(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOrderStore_ListImportsNewestFirst(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.SaveImport(ctx, testBatch("old", base)))
	require.NoError(t, store.SaveImport(ctx, testBatch("new", base.Add(time.Hour))))

	summaries, err := store.ListImports(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "new", summaries[0].ID)
	assert.Equal(t, "old", summaries[1].ID)
	assert.Equal(t, 1, summaries[0].OrderCount)
	assert.Equal(t, 2, summaries[0].ItemCount)
}

func TestOrderStore_ListOrdersAndDelete(t *testing.T) {
	store := NewOrderStore()
	ctx := context.Background()
	require.NoError(t, store.SaveImport(ctx, testBatch("b1", time.Now())))

	orders, err := store.ListOrders(ctx, "b1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	require.NoError(t, store.DeleteImport(ctx, "b1"))
	assert.ErrorIs(t, store.DeleteImport(ctx, "b1"), domain.ErrNotFound)

	_, err = store.ListOrders(ctx, "b1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
