package llm

import (
	"regexp"
	"strings"

	"github.com/amara-obi/docsorter/constants"
	"github.com/amara-obi/docsorter/internal/entity"
)

var (
	reAngleBrackets = regexp.MustCompile(`[<>]`)
	reJSURI         = regexp.MustCompile(`(?i)javascript\s*:`)
	reEventHandler  = regexp.MustCompile(`(?i)\bon\w+\s*=\s*(?:"[^"]*"|'[^']*'|\S+)`)
	reWhitespace    = regexp.MustCompile(`\s+`)
)

// SanitizeText scrubs a model-supplied string of markup and script
// droppings and collapses whitespace. Removals loop to a fixed point so
// sanitizing is idempotent even against nested payloads
// (e.g. "javasjavascript:cript:").
func SanitizeText(s string) string {
	s = reAngleBrackets.ReplaceAllString(s, "")
	for {
		next := reJSURI.ReplaceAllString(s, "")
		next = reEventHandler.ReplaceAllString(next, "")
		if next == s {
			break
		}
		s = next
	}
	s = reWhitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SanitizeFields applies SanitizeText to every text field, clamps all
// confidences into [0,1], and caps snippets to the analysis limits.
// Sanitized-to-empty values become nulls.
func SanitizeFields(f DocumentFields) DocumentFields {
	clean := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := SanitizeText(*p)
		if s == "" {
			return nil
		}
		return &s
	}
	f.ClientName = clean(f.ClientName)
	f.Date = clean(f.Date)
	f.DocType = clean(f.DocType)

	f.ClientConfidence = entity.Clamp01(f.ClientConfidence)
	f.DateConfidence = entity.Clamp01(f.DateConfidence)
	f.DocTypeConfidence = entity.Clamp01(f.DocTypeConfidence)
	f.OverallConfidence = entity.Clamp01(f.OverallConfidence)

	var snippets []string
	for _, s := range f.Snippets {
		s = SanitizeText(s)
		if s == "" {
			continue
		}
		s = constants.TruncateSnippet(s)
		snippets = append(snippets, s)
		if len(snippets) >= constants.MaxSnippets {
			break
		}
	}
	f.Snippets = snippets
	return f
}
