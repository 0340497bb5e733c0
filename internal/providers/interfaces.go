package providers

import (
	"context"

	"sctr/internal/models"
)

// Document is a file ready to send to the extraction service.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

type Extractor interface {
	Validate(ctx context.Context, doc Document, personName string) (models.ValidationResult, error)
}

// ExtractorFunc adapts a plain function to Extractor.
type ExtractorFunc func(ctx context.Context, doc Document, personName string) (models.ValidationResult, error)

func (f ExtractorFunc) Validate(ctx context.Context, doc Document, personName string) (models.ValidationResult, error) {
	return f(ctx, doc, personName)
}
