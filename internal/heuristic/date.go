package heuristic

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Numeric dates with a four-digit year, e.g. 01/15/2024 or 15-01-2024.
	reNumericDate = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})\b`)
	// Numeric dates with a two-digit year, e.g. 15-01-24.
	reShortDate = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{2})\b`)
	// Month-name dates, e.g. "January 15, 2024" or "15 January 2024".
	reMonthFirst = regexp.MustCompile(`(?i)\b(` + monthAlternation + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?\s*,?\s+(\d{4})\b`)
	reDayFirst   = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(` + monthAlternation + `)\.?\s*,?\s+(\d{4})\b`)
)

const monthAlternation = `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec`

var monthIndex = map[string]int{
	"january": 1, "jan": 1,
	"february": 2, "feb": 2,
	"march": 3, "mar": 3,
	"april": 4, "apr": 4,
	"may": 5,
	"june": 6, "jun": 6,
	"july": 7, "jul": 7,
	"august": 8, "aug": 8,
	"september": 9, "sep": 9, "sept": 9,
	"october": 10, "oct": 10,
	"november": 11, "nov": 11,
	"december": 12, "dec": 12,
}

// dateMatch carries the normalized date plus the raw text it came from,
// which the confidence scorer and snippet collection both want.
type dateMatch struct {
	date string // YYYY-MM-DD
	raw  string
	kind dateKind
}

type dateKind int

const (
	dateKindNone dateKind = iota
	dateKindNumeric
	dateKindShortYear
	dateKindMonthName
)

// detectDate tries the patterns in fixed order: numeric four-digit year,
// numeric two-digit year, then month names. Ambiguous numeric dates use
// the month-first reading whenever the first group can be a month.
func detectDate(text string) dateMatch {
	if m := reNumericDate.FindStringSubmatch(text); m != nil {
		if d := normalizeNumeric(m[1], m[2], m[3]); d != "" {
			return dateMatch{date: d, raw: m[0], kind: dateKindNumeric}
		}
	}
	if m := reShortDate.FindStringSubmatch(text); m != nil {
		if d := normalizeNumeric(m[1], m[2], "20"+m[3]); d != "" {
			return dateMatch{date: d, raw: m[0], kind: dateKindShortYear}
		}
	}
	if m := reMonthFirst.FindStringSubmatch(text); m != nil {
		if d := normalizeMonthName(m[1], m[2], m[3]); d != "" {
			return dateMatch{date: d, raw: m[0], kind: dateKindMonthName}
		}
	}
	if m := reDayFirst.FindStringSubmatch(text); m != nil {
		if d := normalizeMonthName(m[2], m[1], m[3]); d != "" {
			return dateMatch{date: d, raw: m[0], kind: dateKindMonthName}
		}
	}
	return dateMatch{}
}

// normalizeNumeric resolves a/b/year into YYYY-MM-DD. When the first group
// fits a month it is read month-first (US convention), otherwise day-first.
func normalizeNumeric(a, b, year string) string {
	first, _ := strconv.Atoi(a)
	second, _ := strconv.Atoi(b)
	y, _ := strconv.Atoi(year)

	month, day := first, second
	if first > 12 {
		month, day = second, first
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || y < 1900 || y > 2199 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, month, day)
}

func normalizeMonthName(month, day, year string) string {
	m, ok := monthIndex[strings.ToLower(strings.TrimSuffix(month, "."))]
	if !ok {
		return ""
	}
	d, _ := strconv.Atoi(day)
	y, _ := strconv.Atoi(year)
	if d < 1 || d > 31 || y < 1900 || y > 2199 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}
