package llm

import "context"

// DocumentFields is the normalized shape we want from the LLM.
// Pointer fields distinguish "not found" (null) from an empty string,
// which the wire contract treats as a violation.
type DocumentFields struct {
	ClientName        *string  `json:"clientName"`
	ClientConfidence  float64  `json:"clientConfidence"` // 0..1
	Date              *string  `json:"date"`             // YYYY-MM-DD
	DateConfidence    float64  `json:"dateConfidence"`   // 0..1
	DocType           *string  `json:"docType"`
	DocTypeConfidence float64  `json:"docTypeConfidence"` // 0..1
	Snippets          []string `json:"snippets"`
	// OverallConfidence may be present in responses but is never trusted;
	// the analyzer always recomputes it from the per-field values.
	OverallConfidence float64 `json:"overallConfidence,omitempty"`
}

// Request is one extraction call against the model.
type Request struct {
	Text         string
	FilenameHint string
	Model        string // empty means the client default
}

// Extractor is the interface the analyzer depends on. Extract returns the
// model's raw message content; parsing and validation happen upstream so
// the retry loop can see exactly why a response was unusable.
type Extractor interface {
	Extract(ctx context.Context, req Request) ([]byte, error)
	Model() string
}

// BatchExtractor is implemented by clients that can answer several
// documents in one logical call. Responses come back positionally: the
// i-th element answers the i-th request, nil where the model gave nothing.
type BatchExtractor interface {
	Extractor
	ExtractBatch(ctx context.Context, reqs []Request) ([][]byte, error)
}
