package logger

import (
	"Journaly/internal/api/config"
	"bytes"
	"context"
	log "log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_AddsTraceID(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&ContextHandler{log.NewJSONHandler(&buf, nil)}).With("component", "test")

	ctx := context.WithValue(context.Background(), TraceIDKey, "abc")
	l.InfoContext(ctx, "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "abc", rec["trace_id"])
	assert.Equal(t, "test", rec["component"])
}

func TestRemoteFilterHandler_OnlyTraced(t *testing.T) {
	var local, remote bytes.Buffer
	tee := &TeeHandler{handlers: []log.Handler{
		log.NewJSONHandler(&local, nil),
		&RemoteFilterHandler{next: log.NewJSONHandler(&remote, nil)},
	}}
	l := log.New(&ContextHandler{tee})

	l.Info("untraced")
	assert.Contains(t, local.String(), "untraced")
	assert.Empty(t, remote.String())

	l.InfoContext(NewTraceContext(context.Background(), "job-test"), "traced")
	assert.Contains(t, remote.String(), "traced")
	assert.Contains(t, remote.String(), "job-test-")
}

func TestTraceID(t *testing.T) {
	ctx := NewTraceContext(context.Background(), "kafka")
	assert.True(t, strings.HasPrefix(TraceID(ctx), "kafka-"))
	assert.Equal(t, "", TraceID(context.Background()))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, log.LevelWarn, parseLevel("warn"))
	assert.Equal(t, log.LevelInfo, parseLevel(""))
}

func TestFormatAccess(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/notifications", nil)
	req = req.WithContext(context.WithValue(req.Context(), TraceIDKey, "t-1"))
	line := formatAccess(gin.LogFormatterParams{
		Request:    req,
		TimeStamp:  time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		StatusCode: 200,
		Latency:    time.Millisecond,
		ClientIP:   "10.0.0.1",
		Method:     "GET",
		Path:       "/api/notifications",
	}, config.LogstashConfig{Token: "tok", Index: "logstash-journaly"})

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	assert.Equal(t, "t-1", rec["trace_id"])
	assert.Equal(t, "tok", rec["log_token"])
	assert.Equal(t, "logstash-journaly", rec["target_index"])
	assert.Equal(t, float64(0), rec["user_id"])
	assert.Equal(t, float64(200), rec["status"])
}
