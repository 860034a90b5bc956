package heuristic

import (
	"regexp"
	"strings"
)

var (
	reBoilerplate = regexp.MustCompile(`(?i)^\s*(page\s+\d+|copyright|©|\(c\)\s+\d{4}|confidential|all rights reserved|draft|do not distribute)`)
	rePhoneLike   = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]\d{3}[\s.\-]\d{4}`)
	reAddressLike = regexp.MustCompile(`(?i)\b(street|avenue|suite|ste\.|blvd|boulevard|road|drive|p\.?o\.?\s*box|zip)\b`)
)

const (
	titleScanLines = 10
	minTitleScore  = 25
)

// detectTitle scans the first few non-empty lines for the most
// headline-looking one. Boilerplate lines are rejected outright; the rest
// are scored by word count, casing, and position, with a penalty for
// lines that look like dates, phone numbers, or addresses.
func detectTitle(lines []string) string {
	best := ""
	bestScore := 0
	seen := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if seen >= titleScanLines {
			break
		}
		position := seen
		seen++

		if reBoilerplate.MatchString(trimmed) {
			continue
		}

		score := 0
		wc := len(strings.Fields(trimmed))
		switch {
		case wc >= 1 && wc <= 5:
			score += 30
		case wc <= 8:
			score += 10
		}
		if isAllCaps(trimmed) {
			score += 20
		}
		if isTitleCase(trimmed) {
			score += 15
		}
		score += titleScanLines - position

		if reNumericDate.MatchString(trimmed) || reMonthFirst.MatchString(trimmed) ||
			rePhoneLike.MatchString(trimmed) || reAddressLike.MatchString(trimmed) {
			score -= 25
		}

		if score > bestScore {
			best = trimmed
			bestScore = score
		}
	}
	if bestScore < minTitleScore {
		return ""
	}
	return best
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := rune(w[0])
		if r >= 'a' && r <= 'z' {
			return false
		}
	}
	return true
}
