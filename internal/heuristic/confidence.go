package heuristic

import (
	"strings"

	"github.com/amara-obi/docsorter/constants"
	"github.com/amara-obi/docsorter/internal/entity"
)

// Per-field confidence scorers. Each is a pure function of the extracted
// value and the source text, and always lands in [0, 1]. They are kept
// independent of the candidate scores used to pick a winner: the winner
// score answers "which candidate", these answer "how sure are we".

// ScoreClientName rates an extracted client name.
func ScoreClientName(name, text string) float64 {
	if name == "" {
		return 0
	}
	conf := 0.4

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if !strings.Contains(line, name) {
			continue
		}
		if reBillingLabel.MatchString(strings.TrimSpace(line)) {
			conf += 0.25
		}
		if i < earlyLineWindow {
			conf += 0.1
		}
		break
	}
	if reCompanySuffix.MatchString(name) {
		conf += 0.15
	}
	if strings.Count(text, name) > 1 {
		conf += 0.1
	}
	return entity.Clamp01(conf)
}

// ScoreDate rates a normalized date by how specific its source pattern
// was and whether it sat next to an explicit date label.
func ScoreDate(m dateMatch, text string) float64 {
	if m.date == "" {
		return 0
	}
	conf := 0.5
	switch m.kind {
	case dateKindMonthName:
		conf += 0.3
	case dateKindNumeric:
		conf += 0.2
	case dateKindShortYear:
		conf += 0.05
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.Contains(line, m.raw) {
			if strings.Contains(strings.ToLower(line), "date") {
				conf += 0.15
			}
			break
		}
	}
	return entity.Clamp01(conf)
}

// ScoreDocType rates a classified type by keyword coverage and whether
// the type name itself appears as an exact phrase.
func ScoreDocType(docType constants.DocType, text string) float64 {
	if docType == constants.Unclassified || docType == "" {
		return 0
	}
	keywords := typeKeywords[docType]
	if len(keywords) == 0 {
		return 0
	}
	content := strings.ToLower(text)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			matched++
		}
	}
	if matched == 0 {
		return 0
	}
	conf := 0.3 + 0.5*float64(matched)/float64(len(keywords))
	if strings.Contains(content, strings.ToLower(string(docType))) {
		conf += 0.2
	}
	return entity.Clamp01(conf)
}
