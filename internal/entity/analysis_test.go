package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverallConfidence(t *testing.T) {
	tests := []struct {
		name                  string
		client, date, docType float64
		want                  float64
	}{
		{name: "all zero", client: 0, date: 0, docType: 0, want: 0},
		{name: "single field no bonus", client: 0.9, date: 0, docType: 0, want: 0.9},
		{name: "two confident fields get bonus", client: 0.6, date: 0.6, docType: 0, want: 0.7},
		{name: "bonus capped at one", client: 1, date: 1, docType: 1, want: 1},
		{name: "low fields no bonus", client: 0.2, date: 0.3, docType: 0.1, want: 0.2},
		{name: "zeroes excluded from mean", client: 0.8, date: 0, docType: 0.4, want: 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OverallConfidence(tt.client, tt.date, tt.docType)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestRecomputeOverall(t *testing.T) {
	a := Analysis{ClientConfidence: 0.6, DateConfidence: 0.6}
	a.RecomputeOverall()
	assert.InDelta(t, 0.7, a.OverallConfidence, 1e-9)
}

func TestHasDocType(t *testing.T) {
	a := Analysis{DocType: "Unclassified"}
	assert.False(t, a.HasDocType())
	a.DocType = "Invoice"
	assert.True(t, a.HasDocType())
	a.DocType = ""
	assert.False(t, a.HasDocType())
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.42, Clamp01(0.42))
}
