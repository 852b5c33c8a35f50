package services

import (
	"github.com/custodia-labs/ordersnap/internal/core/domain"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driven"
	"github.com/custodia-labs/ordersnap/internal/core/ports/driving"
)

// Ensure ClassifyService implements the interface.
var _ driving.ClassifyService = (*ClassifyService)(nil)

// ClassifyService exposes the component classifier.
type ClassifyService struct {
	classifier driven.ComponentClassifier
}

// NewClassifyService creates a new classify service.
func NewClassifyService(classifier driven.ComponentClassifier) *ClassifyService {
	return &ClassifyService{classifier: classifier}
}

// Classify infers a component from a free-text title.
func (s *ClassifyService) Classify(title string, specs map[string]string) domain.ParsedComponent {
	return s.classifier.Classify(title, specs)
}
