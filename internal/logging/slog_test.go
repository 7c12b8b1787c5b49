package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), buf
}

func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()

	for _, level := range []string{"DEBUG", "INFO", "WARN", "ERROR"} {
		log, buf := newBufLogger(t)
		switch level {
		case "DEBUG":
			log.Debug(ctx, "msg", "k", "v")
		case "INFO":
			log.Info(ctx, "msg", "k", "v")
		case "WARN":
			log.Warn(ctx, "msg", "k", "v")
		case "ERROR":
			log.Error(ctx, "msg", "k", "v")
		}
		rec := lastRecord(t, buf)
		assert.Equal(t, level, rec["level"])
		assert.Equal(t, "msg", rec["msg"])
		assert.Equal(t, "v", rec["k"])
	}
}

func TestNewJSONLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewJSONLogger(buf)

	log.Info(context.Background(), "ready", "addr", ":8080")

	rec := lastRecord(t, buf)
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "ready", rec["msg"])
	assert.Equal(t, ":8080", rec["addr"])
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newBufLogger(t)

	child := log.With("component", "moderation")
	child.Info(context.Background(), "approved")

	rec := lastRecord(t, buf)
	assert.Equal(t, "moderation", rec["component"])
}
