package domain

import "strings"

// RawSnapshot is a browser-saved order-history page before any decoding.
type RawSnapshot struct {
	// Name is the original file name or URI, used for logs and the import ledger.
	Name string

	// Content is the raw bytes (MHTML archive or plain HTML).
	Content []byte
}

// SnapshotFormat identifies how a snapshot was saved.
type SnapshotFormat string

// Known snapshot formats.
const (
	// FormatMHTML is a single-file multipart/related web archive.
	FormatMHTML SnapshotFormat = "mhtml"

	// FormatHTML is a plain HTML page.
	FormatHTML SnapshotFormat = "html"
)

// mhtmlMarkers must all be present for content to be treated as MHTML.
var mhtmlMarkers = []string{
	"MIME-Version:",
	"Content-Type: multipart/related",
	"boundary=",
}

// DetectFormat sniffs the snapshot format. Anything lacking one of the
// MIME markers is plain HTML.
func DetectFormat(content string) SnapshotFormat {
	for _, marker := range mhtmlMarkers {
		if !strings.Contains(content, marker) {
			return FormatHTML
		}
	}
	return FormatMHTML
}
