package driven

import "context"

// FetchedImage is the raw result of an image download.
// Content validation is the caller's responsibility.
type FetchedImage struct {
	// Data is the response body.
	Data []byte

	// ContentType is the response content type header.
	ContentType string
}

// ImageFetcher downloads a remote image.
// Implementations make one attempt per call with no retry.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*FetchedImage, error)
}
