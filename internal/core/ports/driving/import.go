package driving

import (
	"context"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

// ImportService turns a saved order-history snapshot into purchase orders.
type ImportService interface {
	// Import runs the full pipeline on one snapshot. Progress events are
	// delivered synchronously and in order to progress, which may be nil.
	// The only failure returned for bad content is a *domain.DocumentFormatError.
	Import(ctx context.Context, snapshot domain.RawSnapshot, progress domain.ProgressFunc) (*ImportResult, error)
}

// ImportResult is the outcome of a successful import.
type ImportResult struct {
	// Format is how the snapshot was saved.
	Format domain.SnapshotFormat

	// Orders are the extracted orders, in document order. Never empty.
	Orders []domain.ParsedOrder

	// ImagesMaterialised counts archive images written or reused on disk.
	ImagesMaterialised int

	// ImagesDownloaded counts external images fetched and stored.
	ImagesDownloaded int

	// ImagesFailed counts external images that could not be stored.
	ImagesFailed int
}
