// Package fetch downloads product images over HTTP.
package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.ImageFetcher = (*Fetcher)(nil)

// Fetcher is a rate-limited HTTP image fetcher.
// It applies no timeout or retry of its own; the caller's context bounds each request.
type Fetcher struct {
	http *resty.Client
}

// Option configures a Fetcher.
type Option func(*resty.Client)

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *resty.Client) {
		if ua != "" {
			c.SetHeader("User-Agent", ua)
		}
	}
}

// WithReferer sets the Referer header some CDNs require for hotlinked images.
func WithReferer(referer string) Option {
	return func(c *resty.Client) {
		if referer != "" {
			c.SetHeader("Referer", referer)
		}
	}
}

// New creates a Fetcher limited to ratePerSecond requests per second.
// A non-positive rate disables limiting.
func New(ratePerSecond float64, opts ...Option) *Fetcher {
	client := resty.New()
	client.SetHeader("Accept", "image/avif,image/webp,image/png,image/*;q=0.8,*/*;q=0.5")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	if ratePerSecond > 0 {
		burst := int(ratePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(ratePerSecond), burst)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	for _, opt := range opts {
		opt(client)
	}

	return &Fetcher{http: client}
}

// Fetch downloads url and returns its body and content type.
// Non-2xx responses are failures wrapping domain.ErrImageFetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*driven.FetchedImage, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrImageFetch, url, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s: status %d", domain.ErrImageFetch, url, res.StatusCode())
	}

	contentType := res.Header().Get("Content-Type")
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}

	return &driven.FetchedImage{
		Data:        res.Body(),
		ContentType: strings.ToLower(strings.TrimSpace(contentType)),
	}, nil
}
