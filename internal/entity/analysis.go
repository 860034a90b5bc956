package entity

// Source marks which extraction path produced an analysis.
type Source string

const (
	SourceRegex    Source = "regex"
	SourceAI       Source = "ai"
	SourceAICached Source = "ai-cached"
	SourceHybrid   Source = "hybrid"
)

// Analysis represents the extracted metadata for one document, for data
// transfer between layers. Empty string fields mean "not found"; DocType
// falls back to "Unclassified". Values are immutable once built: the
// merger and the cache always work on copies.
type Analysis struct {
	ClientName        string   `json:"client_name,omitempty"`
	ClientConfidence  float64  `json:"client_confidence"`
	Date              string   `json:"date,omitempty"` // YYYY-MM-DD
	DateConfidence    float64  `json:"date_confidence"`
	DocType           string   `json:"doc_type"`
	DocTypeConfidence float64  `json:"doc_type_confidence"`
	OverallConfidence float64  `json:"overall_confidence"`
	Snippets          []string `json:"snippets,omitempty"`
	Source            Source   `json:"source"`
	Title             string   `json:"title,omitempty"`
	ContentHash       string   `json:"content_hash,omitempty"` // hex SHA-256 of the source text
}

// confidentFloor is the per-field confidence at which a field counts as
// "confident" for the overall-confidence bonus.
const confidentFloor = 0.5

// OverallConfidence derives the overall score from per-field confidences:
// the mean over non-zero entries (no entries means 0), plus a 0.1 bonus
// when at least two fields are confident, capped at 1.0.
func OverallConfidence(client, date, docType float64) float64 {
	sum := 0.0
	nonZero := 0
	confident := 0
	for _, c := range []float64{client, date, docType} {
		if c > 0 {
			sum += c
			nonZero++
		}
		if c >= confidentFloor {
			confident++
		}
	}
	if nonZero == 0 {
		return 0
	}
	overall := sum / float64(nonZero)
	if confident >= 2 {
		overall += 0.1
	}
	return Clamp01(overall)
}

// RecomputeOverall refreshes the derived overall confidence in place.
// It is the only supported way to set OverallConfidence.
func (a *Analysis) RecomputeOverall() {
	a.OverallConfidence = OverallConfidence(a.ClientConfidence, a.DateConfidence, a.DocTypeConfidence)
}

// HasClient, HasDate, HasDocType report whether a field carries a usable
// value (DocType "Unclassified" counts as missing).
func (a *Analysis) HasClient() bool { return a.ClientName != "" }
func (a *Analysis) HasDate() bool   { return a.Date != "" }
func (a *Analysis) HasDocType() bool {
	return a.DocType != "" && a.DocType != "Unclassified"
}

// Clamp01 forces a confidence into [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
