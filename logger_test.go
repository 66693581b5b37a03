package activeset

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewJSONLogger(&buf, slog.LevelDebug)

	l.WithBlob("poro").WithCount(3).Debug("listed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "listed", rec["msg"])
	assert.Equal(t, "poro", rec["blob"])
	assert.Equal(t, float64(3), rec["count"])
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf, slog.LevelInfo)

	sel := New()
	sel.AddIndices(1, 4)

	l.LogRead(t.Context(), sel, 2, 1, nil)
	assert.Empty(t, buf.String(), "debug record below level")

	l.LogWrite(t.Context(), sel, 2, 1, nil)
	assert.Contains(t, buf.String(), "msg=\"write completed\"")
	assert.Contains(t, buf.String(), "active=2")

	buf.Reset()
	l.WithBlob("perm").LogRead(t.Context(), sel, 0, 0, errors.New("boom"))
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "blob=perm")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()
	assert.False(t, l.Enabled(t.Context(), slog.LevelError))
	l.WithCount(1).Error("dropped")
}
