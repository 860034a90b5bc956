package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/amara-obi/docsorter/constants"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Acme Corporation",
			want: "Acme Corporation",
		},
		{
			name: "angle brackets stripped",
			in:   "<script>alert(1)</script>Acme",
			want: "scriptalert(1)/scriptAcme",
		},
		{
			name: "javascript uri removed",
			in:   "click javascript:alert(1) here",
			want: "click alert(1) here",
		},
		{
			name: "nested javascript uri removed",
			in:   "javasjavascript:cript:alert(1)",
			want: "alert(1)",
		},
		{
			name: "event handler removed",
			in:   `img onerror="steal()" src`,
			want: "img src",
		},
		{
			name: "whitespace collapsed and trimmed",
			in:   "  Acme \t\n Corporation  ",
			want: "Acme Corporation",
		},
		{
			name: "empty stays empty",
			in:   "",
			want: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeText(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, SanitizeText(got), "sanitizing must be idempotent")
		})
	}
}

func TestSanitizeFields(t *testing.T) {
	dirty := "<b>Acme</b> Corp"
	empty := "<>"
	date := "2024-01-15"

	f := SanitizeFields(DocumentFields{
		ClientName:        &dirty,
		Date:              &date,
		DocType:           &empty,
		ClientConfidence:  1.5,
		DateConfidence:    -0.2,
		DocTypeConfidence: 0.7,
		OverallConfidence: 2.0,
		Snippets:          []string{"one", "", "two", "three", "four", "five", "six"},
	})

	if assert.NotNil(t, f.ClientName) {
		assert.Equal(t, "bAcme/b Corp", *f.ClientName)
	}
	if assert.NotNil(t, f.Date) {
		assert.Equal(t, date, *f.Date)
	}
	assert.Nil(t, f.DocType, "sanitized-to-empty fields become null")

	assert.Equal(t, 1.0, f.ClientConfidence)
	assert.Equal(t, 0.0, f.DateConfidence)
	assert.Equal(t, 0.7, f.DocTypeConfidence)
	assert.Equal(t, 1.0, f.OverallConfidence)

	assert.Equal(t, []string{"one", "two", "three", "four", "five"}, f.Snippets)
}

func TestSanitizeFieldsTruncatesLongSnippets(t *testing.T) {
	long := strings.Repeat("abcd ", 200) // 1000 chars
	f := SanitizeFields(DocumentFields{Snippets: []string{long}})

	if assert.Len(t, f.Snippets, 1) {
		got := f.Snippets[0]
		assert.LessOrEqual(t, len(got), constants.MaxSnippetLen)
		// A second pass must not shrink the snippet further.
		again := SanitizeFields(DocumentFields{Snippets: []string{got}})
		assert.Equal(t, got, again.Snippets[0])
	}
}

func TestSanitizeFieldsTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", constants.MaxSnippetLen) // 2 bytes per rune
	f := SanitizeFields(DocumentFields{Snippets: []string{long}})

	if assert.Len(t, f.Snippets, 1) {
		got := f.Snippets[0]
		assert.True(t, utf8.ValidString(got), "truncation must not split a rune")
		assert.LessOrEqual(t, len(got), constants.MaxSnippetLen)
	}
}

func TestSanitizeFieldsNilPointers(t *testing.T) {
	f := SanitizeFields(DocumentFields{})
	assert.Nil(t, f.ClientName)
	assert.Nil(t, f.Date)
	assert.Nil(t, f.DocType)
	assert.Empty(t, f.Snippets)
}
