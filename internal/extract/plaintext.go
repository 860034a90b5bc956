package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PlainText reads already-textual files (.txt, .md) straight off disk.
// It stands in for the OCR/PDF pipeline in the CLI and in tests.
type PlainText struct{}

var textExts = map[string]struct{}{
	".txt": {}, ".md": {}, ".text": {},
}

// Supported reports whether path looks like a plain-text document.
func (PlainText) Supported(path string) bool {
	_, ok := textExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

func (p PlainText) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	if err := ctx.Err(); err != nil {
		return TextExtractionResult{}, err
	}
	if !p.Supported(path) {
		return TextExtractionResult{}, fmt.Errorf("unsupported extension: %s", filepath.Ext(path))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return TextExtractionResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	mtime := time.Time{}
	if st, err := os.Stat(path); err == nil {
		mtime = st.ModTime()
	}
	return TextExtractionResult{Text: string(b), ModTime: mtime}, nil
}
