package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amara-obi/docsorter/constants"
	"github.com/amara-obi/docsorter/internal/llm"
)

// Extract implements llm.Extractor using text-only chat/completions and
// returns the model's raw message content. Validation happens upstream.
func (c *Client) Extract(ctx context.Context, req llm.Request) ([]byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", model,
		"temp", c.cfg.Temperature,
		"text_len", len(req.Text),
		"filename_hint", req.FilenameHint,
	)

	body := map[string]any{
		"model":           model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildSystemPrompt()},
			{"role": "user", "content": buildUserPrompt(req.Text, req.FilenameHint) + "\n\nReturn ONLY JSON that matches the provided schema."},
			{"role": "system", "content": "JSON Schema:\n" + mustJSON(llm.BuildAnalysisJSONSchema())},
		},
	}

	content, err := c.complete(ctx, body)
	if err != nil {
		c.log.Error("llm.extract.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return content, nil
}

// ExtractBatch implements llm.BatchExtractor: all documents go out in one
// chat call, numbered, and the model answers with a JSON array of objects
// each carrying an "index" field. The returned slice is positional; a
// document the model skipped comes back nil.
func (c *Client) ExtractBatch(ctx context.Context, reqs []llm.Request) ([][]byte, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	rid := uuid.New().String()
	start := time.Now()
	model := reqs[0].Model
	if model == "" {
		model = c.cfg.Model
	}

	c.log.Info("llm.extract_batch.start",
		"req_id", rid,
		"model", model,
		"items", len(reqs),
	)

	var user strings.Builder
	user.WriteString("Extract metadata for each numbered document below.\n")
	for i, r := range reqs {
		fmt.Fprintf(&user, "\n--- DOCUMENT %d", i)
		if r.FilenameHint != "" {
			fmt.Fprintf(&user, " (file: %s)", r.FilenameHint)
		}
		user.WriteString(" ---\n")
		user.WriteString(truncateText(r.Text))
		user.WriteString("\n")
	}
	user.WriteString("\nReturn ONLY a JSON object {\"results\": [...]} where each element matches the provided schema plus an integer \"index\" naming the document it answers.")

	body := map[string]any{
		"model":           model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": buildSystemPrompt()},
			{"role": "user", "content": user.String()},
			{"role": "system", "content": "Per-document JSON Schema:\n" + mustJSON(llm.BuildAnalysisJSONSchema())},
		},
	}

	content, err := c.complete(ctx, body)
	if err != nil {
		c.log.Error("llm.extract_batch.failed",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, err
	}

	var envelope struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(content, &envelope); err != nil {
		c.log.Error("llm.extract_batch.decode_error", "req_id", rid, "error", err)
		return nil, fmt.Errorf("decode batch envelope: %w", err)
	}

	out := make([][]byte, len(reqs))
	matched := 0
	for _, raw := range envelope.Results {
		var idx struct {
			Index int `json:"index"`
		}
		if err := json.Unmarshal(raw, &idx); err != nil {
			continue
		}
		if idx.Index < 0 || idx.Index >= len(reqs) || out[idx.Index] != nil {
			continue
		}
		out[idx.Index] = stripIndexField(raw)
		matched++
	}

	c.log.Info("llm.extract_batch.ok",
		"req_id", rid,
		"items", len(reqs),
		"matched", matched,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// complete posts a chat/completions body and returns the first choice's
// message content.
func (c *Client) complete(ctx context.Context, body map[string]any) ([]byte, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return nil, fmt.Errorf("no choices in openai response")
	}
	return []byte(strings.TrimSpace(cc.Choices[0].Message.Content)), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai http error: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			c.log.Warn("openai response body close error", "error", err)
		}
	}(resp.Body)

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai status %d: %s", resp.StatusCode, buf.String())
	}
	return buf.Bytes(), nil
}

// stripIndexField removes the routing "index" key so each element conforms
// to the per-document schema (which forbids unknown fields).
func stripIndexField(raw json.RawMessage) []byte {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	delete(m, "index")
	b, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return b
}

func buildSystemPrompt() string {
	parts := []string{
		"You are a document-filing assistant. Return ONLY JSON that matches the JSON Schema provided.",
		"Extract the client or counterparty name, the document's primary date, and the document type.",
		"Use ISO-8601 dates (YYYY-MM-DD).",
		"Document type should be one of: " + strings.Join(constants.AsStringSlice(), ", ") + ".",
		"Set each confidence between 0 and 1 reflecting how certain you are of that field.",
		"Include up to 5 short verbatim snippets from the text as supporting evidence.",
		"Use JSON null for any field you cannot determine. Never invent values.",
	}
	return strings.Join(parts, " ")
}

func buildUserPrompt(text, filename string) string {
	var b strings.Builder
	if filename != "" {
		b.WriteString("Filename: ")
		b.WriteString(filename)
		b.WriteString("\n\n")
	}
	b.WriteString("Document text (first ~4k chars):\n")
	b.WriteString(truncateText(text))
	return b.String()
}

func truncateText(s string) string {
	const maxPromptChars = 4000
	if len(s) > maxPromptChars {
		return s[:maxPromptChars]
	}
	return s
}

func mustJSON(v any) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}
