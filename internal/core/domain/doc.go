// Package domain defines the core business entities for ordersnap.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawSnapshot: The saved order-history page as it arrived
//   - ParsedDocument: HTML plus decoded image attachments of an MHTML archive
//   - ParsedOrder / ParsedOrderItem: Extracted purchase-order records
//   - ParsedComponent: Structured electrical attributes inferred from a title
//   - ProgressEvent: Ordered progress notifications for a single import
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
