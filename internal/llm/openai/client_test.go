package openai

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amara-obi/docsorter/constants"
)

func TestBuildSystemPromptListsDocTypes(t *testing.T) {
	prompt := buildSystemPrompt()
	for _, dt := range constants.AsStringSlice() {
		assert.Contains(t, prompt, dt)
	}
}

func TestStripIndexField(t *testing.T) {
	raw := json.RawMessage(`{"index": 2, "clientName": "Acme", "snippets": []}`)
	got := stripIndexField(raw)

	var m map[string]any
	require.NoError(t, json.Unmarshal(got, &m))
	assert.NotContains(t, m, "index")
	assert.Equal(t, "Acme", m["clientName"])

	// Malformed input passes through untouched.
	bad := json.RawMessage(`not json`)
	assert.Equal(t, []byte(bad), stripIndexField(bad))
}

func TestTruncateText(t *testing.T) {
	short := "short document"
	assert.Equal(t, short, truncateText(short))

	long := strings.Repeat("x", 5000)
	assert.Len(t, truncateText(long), 4000)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(Config{APIKey: "sk-test"}, nil)
	assert.Equal(t, "gpt-4o-mini", c.Model())
	assert.Equal(t, "https://api.openai.com/v1", c.cfg.BaseURL)
}
