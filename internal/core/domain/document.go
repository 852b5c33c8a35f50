package domain

import "strings"

// MHTMLPart is one MIME part of an archive, before transfer decoding.
// It only lives for the duration of a decode.
type MHTMLPart struct {
	// Headers holds lower-cased header names; the last duplicate wins.
	Headers map[string]string

	// Content is the raw part body.
	Content string

	// ContentType is the value of the content-type header.
	ContentType string

	// Encoding is the content-transfer-encoding, lower-cased. Empty if absent.
	Encoding string
}

// Header returns a header value by case-insensitive name.
func (p *MHTMLPart) Header(name string) string {
	if p.Headers == nil {
		return ""
	}
	return p.Headers[strings.ToLower(name)]
}

// DecodedImage is an image attachment recovered from an archive.
type DecodedImage struct {
	// URL is the original identity of the image (Content-Location or synthesized).
	URL string

	// Data is the decoded image bytes.
	Data []byte

	// ContentType is the declared MIME type (e.g., "image/jpeg").
	ContentType string

	// Filename is the deterministic on-disk name derived from URL and ContentType.
	Filename string
}

// ParsedDocument is the decoder's output: the page HTML plus its images.
type ParsedDocument struct {
	// HTMLContent is the decoded HTML of the page.
	HTMLContent string

	// Images are the decoded image parts in archive order.
	Images []DecodedImage
}
