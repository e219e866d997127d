package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestNewHandlerRejectsUnknownEncoding(t *testing.T) {
	_, err := NewHandler(&bytes.Buffer{}, &Config{Encoding: "xml"})
	assert.Error(t, err)
}

func TestHandlerAddsRequestID(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, err := NewHandler(buf, &Config{Encoding: "json", Level: "debug"})
	require.NoError(t, err)

	log := slog.New(handler)
	ctx := WithRequestID(context.Background(), "req-42")
	log.InfoContext(ctx, "hello", "key", "value")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "req-42", record["request_id"])
	assert.Equal(t, "value", record["key"])

	buf.Reset()
	log.Info("no request")
	var plain map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &plain))
	_, ok := plain["request_id"]
	assert.False(t, ok)
}

func TestHandlerRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	handler, err := NewHandler(buf, &Config{Level: "warn"})
	require.NoError(t, err)

	log := slog.New(handler)
	log.Info("skipped")
	assert.Empty(t, buf.String())

	log.Warn("written")
	assert.Contains(t, buf.String(), "written")
}
