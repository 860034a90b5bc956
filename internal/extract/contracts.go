// Package extract defines the boundary to the text-extraction
// collaborator. The engine only ever sees plain text; how it was pulled
// out of a PDF, DOCX, or scan is someone else's problem.
package extract

import (
	"context"
	"time"
)

// TextExtractor is the file -> text boundary.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string
	ModTime  time.Time
	Warnings []string
}
