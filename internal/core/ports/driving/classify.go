package driving

import "github.com/custodia-labs/ordersnap/internal/core/domain"

// ClassifyService exposes the component classifier to driving adapters.
type ClassifyService interface {
	// Classify infers a component from a free-text title.
	Classify(title string, specs map[string]string) domain.ParsedComponent
}
