package driven

import "github.com/custodia-labs/ordersnap/internal/core/domain"

// SnapshotDecoder unpacks an MHTML archive into its HTML and image parts.
type SnapshotDecoder interface {
	// Decode parses an archive. The only error it returns is a
	// *domain.DocumentFormatError; individual bad parts are skipped.
	Decode(content string) (*domain.ParsedDocument, error)
}
