// Package heuristic implements the pattern-and-keyword first pass of the
// document classifier: doc-type scoring over weighted zones, title, date,
// and client-name detection, plus the pure per-field confidence scorers.
// It is entirely deterministic and never fails; a document with no usable
// evidence comes back with empty fields and zero confidence.
package heuristic

import (
	"strings"

	"github.com/amara-obi/docsorter/constants"
	"github.com/amara-obi/docsorter/internal/entity"
)

// Extract runs the full heuristic pass over a document's text and builds
// the first-pass analysis with Source = regex.
func Extract(text string) entity.Analysis {
	a := entity.Analysis{
		DocType: string(constants.Unclassified),
		Source:  entity.SourceRegex,
	}
	if strings.TrimSpace(text) == "" {
		return a
	}

	lines := strings.Split(text, "\n")
	words := strings.Fields(text)
	content := strings.ToLower(text)

	docType, typeConf := classifyDocType(lines, words, content)
	if typeConf < 0.3 {
		if fbType, fbConf := classifyByFrequency(words); fbConf > typeConf {
			docType, typeConf = fbType, fbConf
		}
	}

	a.Title = detectTitle(lines)

	date := detectDate(text)
	a.Date = date.date

	client, _ := detectClient(lines)
	a.ClientName = client

	a.DocType = string(docType)
	a.ClientConfidence = ScoreClientName(a.ClientName, text)
	a.DateConfidence = ScoreDate(date, text)
	a.DocTypeConfidence = ScoreDocType(docType, text)
	a.Snippets = collectSnippets(lines, a.ClientName, date.raw, docType)
	a.RecomputeOverall()
	return a
}

// collectSnippets keeps the lines that back up each extracted field as
// evidence, capped and truncated to the analysis snippet limits.
func collectSnippets(lines []string, client, rawDate string, docType constants.DocType) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(line string) {
		line = strings.TrimSpace(line)
		if line == "" || len(out) >= constants.MaxSnippets {
			return
		}
		line = constants.TruncateSnippet(line)
		if _, dup := seen[line]; dup {
			return
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}

	keywords := typeKeywords[docType]
	for _, line := range lines {
		lower := strings.ToLower(line)
		if client != "" && strings.Contains(line, client) {
			add(line)
			client = "" // first occurrence only
			continue
		}
		if rawDate != "" && strings.Contains(line, rawDate) {
			add(line)
			rawDate = ""
			continue
		}
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				add(line)
				keywords = nil
				break
			}
		}
	}
	return out
}
