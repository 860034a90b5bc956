package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlainTextSupported(t *testing.T) {
	p := PlainText{}
	assert.True(t, p.Supported("doc.txt"))
	assert.True(t, p.Supported("DOC.TXT"))
	assert.True(t, p.Supported("notes.md"))
	assert.False(t, p.Supported("scan.pdf"))
	assert.False(t, p.Supported("noext"))
}

func TestPlainTextExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.txt")
	require.NoError(t, os.WriteFile(path, []byte("Bill to: Acme Corporation"), 0o600))

	p := PlainText{}
	res, err := p.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Bill to: Acme Corporation", res.Text)
	assert.False(t, res.ModTime.IsZero())
}

func TestPlainTextExtractUnsupported(t *testing.T) {
	_, err := PlainText{}.Extract(context.Background(), "scan.pdf")
	assert.Error(t, err)
}

func TestPlainTextExtractMissingFile(t *testing.T) {
	_, err := PlainText{}.Extract(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestPlainTextExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PlainText{}.Extract(ctx, "doc.txt")
	assert.ErrorIs(t, err, context.Canceled)
}
