package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amara-obi/docsorter/internal/entity"
)

func TestMergeNilAIPassesThrough(t *testing.T) {
	regex := entity.Analysis{
		ClientName:       "Acme Corporation",
		ClientConfidence: 0.9,
		Source:           entity.SourceRegex,
	}
	got := Merge(regex, nil)
	assert.Equal(t, regex, got)
	assert.Equal(t, entity.SourceRegex, got.Source)
}

func TestMergeHigherConfidenceWinsPerField(t *testing.T) {
	regex := entity.Analysis{
		ClientName:        "Acme",
		ClientConfidence:  0.5,
		Date:              "2024-01-15",
		DateConfidence:    0.9,
		DocType:           "Invoice",
		DocTypeConfidence: 0.4,
		Title:             "INVOICE",
		Snippets:          []string{"from the text"},
		Source:            entity.SourceRegex,
	}
	ai := &entity.Analysis{
		ClientName:        "Acme Corporation",
		ClientConfidence:  0.9,
		Date:              "2024-02-01",
		DateConfidence:    0.6,
		DocType:           "Receipt",
		DocTypeConfidence: 0.8,
		Snippets:          []string{"Bill to: Acme Corporation"},
		Source:            entity.SourceAI,
	}

	got := Merge(regex, ai)

	assert.Equal(t, entity.SourceHybrid, got.Source)
	assert.Equal(t, "Acme Corporation", got.ClientName, "higher AI confidence takes the client")
	assert.Equal(t, 0.9, got.ClientConfidence)
	assert.Equal(t, "2024-01-15", got.Date, "higher regex confidence keeps the date")
	assert.Equal(t, 0.9, got.DateConfidence)
	assert.Equal(t, "Receipt", got.DocType)
	assert.Equal(t, 0.8, got.DocTypeConfidence)
	assert.Equal(t, []string{"Bill to: Acme Corporation"}, got.Snippets)
	assert.Equal(t, "INVOICE", got.Title, "title is heuristic-only")

	want := entity.OverallConfidence(0.9, 0.9, 0.8)
	assert.InDelta(t, want, got.OverallConfidence, 1e-9)
}

func TestMergeTieKeepsRegexValue(t *testing.T) {
	regex := entity.Analysis{
		ClientName:       "Acme",
		ClientConfidence: 0.7,
		Source:           entity.SourceRegex,
	}
	ai := &entity.Analysis{
		ClientName:       "Acme Corporation",
		ClientConfidence: 0.7,
		Source:           entity.SourceAI,
	}

	got := Merge(regex, ai)
	assert.Equal(t, "Acme", got.ClientName)
	assert.Equal(t, entity.SourceHybrid, got.Source)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	regex := entity.Analysis{ClientConfidence: 0.2, Source: entity.SourceRegex}
	ai := &entity.Analysis{ClientName: "Acme", ClientConfidence: 0.8, Source: entity.SourceAI}

	_ = Merge(regex, ai)

	assert.Equal(t, entity.SourceRegex, regex.Source)
	assert.Equal(t, entity.SourceAI, ai.Source)
	assert.Equal(t, 0.2, regex.ClientConfidence)
}

func TestMergeEmptyAISnippetsKeepRegexSnippets(t *testing.T) {
	regex := entity.Analysis{Snippets: []string{"kept"}, Source: entity.SourceRegex}
	ai := &entity.Analysis{Source: entity.SourceAI}

	got := Merge(regex, ai)
	assert.Equal(t, []string{"kept"}, got.Snippets)
}
