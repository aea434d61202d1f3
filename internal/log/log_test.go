package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigFrom(t *testing.T) {
	cfg, err := ConfigFrom("debug", "JSON", ComponentWorker)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, ComponentWorker, cfg.Component)

	_, err = ConfigFrom("info", "yaml", "")
	assert.Error(t, err)
}

func TestNew_JSONCarriesComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Component: ComponentHTTP, Output: &buf})

	logger.Info("hello", FieldCount, 3)
	logger.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, ComponentHTTP, rec[FieldComponent])
	assert.EqualValues(t, 3, rec[FieldCount])
	assert.Equal(t, 1, strings.Count(lines[0], `"component"`))
}

func TestMiddleware_LoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Format: "json", Output: &buf}).With(FieldRequestID, "req-1")

	h := Middleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
}

func TestFromContextOr(t *testing.T) {
	fallback := New(Config{Component: ComponentTrace, Output: io.Discard})
	assert.Same(t, fallback, FromContextOr(context.Background(), fallback))

	inCtx := New(Config{Component: ComponentHTTP, Output: io.Discard})
	assert.Same(t, inCtx, FromContextOr(NewContext(context.Background(), inCtx), fallback))
}

func TestForComponentFollowsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	SetDefault(New(Config{Format: "json", Output: &buf}))
	ForComponent(ComponentAMQP).Info("published")

	assert.Contains(t, buf.String(), `"component":"amqp"`)
}

func TestFromContext_Default(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, "unknown", l.Component())
}

func TestStructuredLogger(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Format: "json", Output: &buf}))
	ctx := context.Background()

	r := httptest.NewRequest(http.MethodPost, "/api/expenses?x=1", nil)
	sl.LogHTTPEnd(ctx, r, "req-9", http.StatusUnprocessableEntity, 12, "10.0.0.1")
	sl.LogEntityChange(ctx, OpCreate, "expenses", "e1")
	sl.LogError(ctx, "boom", errors.New("bad"), OpDelete, ErrorTypeDatabase)

	out := buf.String()
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"status_code":422`)
	assert.Contains(t, out, `"request_id":"req-9"`)
	assert.Contains(t, out, `"entity_id":"e1"`)
	assert.Contains(t, out, `"error_type":"database_error"`)
}
