package heuristic

import (
	"regexp"
	"strings"
)

var (
	// Explicit labels like "Bill To: Acme Corporation" are the strongest
	// client signal a document can carry.
	reBillingLabel = regexp.MustCompile(`(?i)^\s*(bill(?:ed)?\s*to|sold\s*to|from|attention|attn|re)\s*[:\-]\s*(.{2,80})$`)
	// Company names: consecutive capitalized words ending in a legal suffix.
	reCompanySuffix = regexp.MustCompile(`\b((?:[A-Z][\w&'.\-]*\s+){1,5}(?:Inc|Corp|Corporation|Incorporated|LLC|LLP|Ltd|Limited|Co|Company|GmbH|PLC)\b\.?)`)
	// A standalone Title-Case personal or business name on its own line.
	reStandaloneName = regexp.MustCompile(`^([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})$`)
)

// Candidate scores, mirroring how strongly each pattern implies "this is
// who the document is for".
const (
	clientBaseScore    = 10
	billingLabelBonus  = 20
	companySuffixBonus = 15
	earlyLineBonus     = 10
	earlyLineWindow    = 5
)

type clientCandidate struct {
	name  string
	score int
	line  int
}

// detectClient runs the label, company-suffix, and standalone-name passes
// over the document lines and keeps the highest-scoring candidate.
// Duplicate names keep their best score.
func detectClient(lines []string) (string, int) {
	byName := make(map[string]clientCandidate)
	record := func(name string, score, lineIdx int) {
		name = cleanClientName(name)
		if name == "" {
			return
		}
		if lineIdx < earlyLineWindow {
			score += earlyLineBonus
		}
		if prev, ok := byName[name]; !ok || score > prev.score {
			byName[name] = clientCandidate{name: name, score: score, line: lineIdx}
		}
	}

	nonEmpty := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		idx := nonEmpty
		nonEmpty++

		if m := reBillingLabel.FindStringSubmatch(trimmed); m != nil {
			record(m[2], clientBaseScore+billingLabelBonus, idx)
		}
		if m := reCompanySuffix.FindStringSubmatch(trimmed); m != nil {
			record(m[1], clientBaseScore+companySuffixBonus, idx)
		}
		if m := reStandaloneName.FindStringSubmatch(trimmed); m != nil {
			record(m[1], clientBaseScore, idx)
		}
	}

	best := clientCandidate{}
	for _, c := range byName {
		if c.score > best.score || (c.score == best.score && c.line < best.line) {
			best = c
		}
	}
	return best.name, best.score
}

// cleanClientName trims labels' leftover punctuation and rejects values
// that are clearly not names (bare numbers, dates).
func cleanClientName(s string) string {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ".,;:-"))
	if s == "" {
		return ""
	}
	if reNumericDate.MatchString(s) || reMonthFirst.MatchString(s) {
		return ""
	}
	hasLetter := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return ""
	}
	return s
}
