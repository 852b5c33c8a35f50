package driven

import "github.com/custodia-labs/ordersnap/internal/core/domain"

// ComponentClassifier infers structured electrical attributes from a product title.
// Implementations are pure and total: they never fail and never panic.
type ComponentClassifier interface {
	Classify(title string, specs map[string]string) domain.ParsedComponent
}
