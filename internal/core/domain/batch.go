package domain

import "time"

// ImportBatch is one completed import recorded in the ledger.
type ImportBatch struct {
	// ID is the unique identifier for the batch.
	ID string `json:"id"`

	// SourceName is the snapshot file name or URI.
	SourceName string `json:"sourceName"`

	// Format is how the snapshot was saved.
	Format SnapshotFormat `json:"format"`

	// ImportedAt is when the import finished.
	ImportedAt time.Time `json:"importedAt"`

	// Orders are the extracted orders, in document order.
	Orders []ParsedOrder `json:"orders"`
}

// ItemCount returns the total number of items across all orders.
func (b *ImportBatch) ItemCount() int {
	n := 0
	for i := range b.Orders {
		n += len(b.Orders[i].Items)
	}
	return n
}

// ImportSummary is a lightweight listing entry for a batch.
type ImportSummary struct {
	ID         string
	SourceName string
	Format     SnapshotFormat
	ImportedAt time.Time
	OrderCount int
	ItemCount  int
}
