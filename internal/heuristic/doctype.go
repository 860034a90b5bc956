package heuristic

import (
	"strings"

	"github.com/amara-obi/docsorter/constants"
)

// Zone weights for the keyword classifier. Header matches are worth the
// most; a whole-document match is a weak signal on its own.
const (
	headerZoneLines  = 20
	earlyZoneWords   = 100
	headerMatchScore = 20
	earlyMatchScore  = 15
	bodyMatchScore   = 5
	exactPhraseBonus = 50
	minTypeScore     = 10
)

var typeKeywords = map[constants.DocType][]string{
	constants.Invoice:       {"invoice", "bill to", "amount due", "invoice number", "remit to", "payment due", "net 30"},
	constants.Receipt:       {"receipt", "total paid", "change due", "cashier", "transaction id", "thank you for your purchase"},
	constants.Contract:      {"contract", "agreement", "terms and conditions", "hereinafter", "party of the first part", "governing law", "in witness whereof"},
	constants.Report:        {"report", "executive summary", "findings", "methodology", "conclusion", "quarterly", "annual"},
	constants.Letter:        {"dear", "sincerely", "best regards", "yours truly", "to whom it may concern"},
	constants.Memo:          {"memo", "memorandum", "subject:", "interoffice", "distribution"},
	constants.Proposal:      {"proposal", "scope of work", "deliverables", "estimate", "quotation", "statement of work"},
	constants.Statement:     {"statement", "account number", "opening balance", "closing balance", "statement period", "minimum payment"},
	constants.PurchaseOrder: {"purchase order", "po number", "ship to", "vendor", "unit price", "qty"},
	constants.Resume:        {"resume", "curriculum vitae", "work experience", "education", "skills", "references available"},
}

// classifyDocType runs the zone-weighted keyword pass described above and
// returns the winning type with its raw score converted to a confidence.
// A winner needs a score above minTypeScore; otherwise it reports
// Unclassified with zero confidence.
func classifyDocType(lines []string, words []string, content string) (constants.DocType, float64) {
	header := strings.ToLower(strings.Join(headSlice(lines, headerZoneLines), "\n"))
	early := strings.ToLower(strings.Join(headSlice(words, earlyZoneWords), " "))

	best := constants.Unclassified
	bestScore := 0
	for dt, keywords := range typeKeywords {
		score := 0
		for _, kw := range keywords {
			if strings.Contains(header, kw) {
				score += headerMatchScore
			}
			if strings.Contains(early, kw) {
				score += earlyMatchScore
			}
			if strings.Contains(content, kw) {
				score += bodyMatchScore
			}
		}
		if strings.Contains(content, strings.ToLower(string(dt))) {
			score += exactPhraseBonus
		}
		if score > bestScore || (score == bestScore && best != constants.Unclassified && dt < best) {
			best = dt
			bestScore = score
		}
	}
	if bestScore <= minTypeScore {
		return constants.Unclassified, 0
	}
	return best, min(float64(bestScore)/100, 1)
}

// frequencyKeywords maps high-signal single tokens to a type for the
// fallback classifier. Smaller than typeKeywords on purpose: only words
// whose frequency alone says something about the document.
var frequencyKeywords = map[string]constants.DocType{
	"invoice":   constants.Invoice,
	"billed":    constants.Invoice,
	"receipt":   constants.Receipt,
	"purchase":  constants.Receipt,
	"contract":  constants.Contract,
	"agreement": constants.Contract,
	"clause":    constants.Contract,
	"report":    constants.Report,
	"findings":  constants.Report,
	"memo":      constants.Memo,
	"proposal":  constants.Proposal,
	"estimate":  constants.Proposal,
	"statement": constants.Statement,
	"balance":   constants.Statement,
	"order":     constants.PurchaseOrder,
	"vendor":    constants.PurchaseOrder,
	"resume":    constants.Resume,
	"education": constants.Resume,
}

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "at": {}, "for": {}, "with": {}, "by": {}, "is": {},
	"are": {}, "was": {}, "were": {}, "be": {}, "been": {}, "this": {},
	"that": {}, "it": {}, "as": {}, "from": {}, "your": {}, "our": {},
	"we": {}, "you": {}, "not": {}, "no": {}, "if": {}, "any": {}, "all": {},
}

// frequencyConfidenceCap bounds the fallback classifier: word counts are a
// weaker signal than zone-weighted keyword hits.
const frequencyConfidenceCap = 0.8

// classifyByFrequency is the secondary classifier used when the keyword
// pass stays under the confidence floor. It strips stop-words, counts the
// remaining tokens, and scores types by how often their signal words occur.
func classifyByFrequency(words []string) (constants.DocType, float64) {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		token := strings.ToLower(strings.Trim(w, ".,;:!?()[]{}\"'"))
		if token == "" {
			continue
		}
		if _, stop := stopWords[token]; stop {
			continue
		}
		freq[token]++
	}

	scores := make(map[constants.DocType]int)
	for token, dt := range frequencyKeywords {
		if n := freq[token]; n > 0 {
			scores[dt] += n
		}
	}

	best := constants.Unclassified
	bestScore := 0
	for dt, score := range scores {
		if score > bestScore || (score == bestScore && dt < best) {
			best = dt
			bestScore = score
		}
	}
	if bestScore == 0 {
		return constants.Unclassified, 0
	}
	return best, min(float64(bestScore)/10, frequencyConfidenceCap)
}

func headSlice[T any](s []T, n int) []T {
	if len(s) < n {
		return s
	}
	return s[:n]
}
