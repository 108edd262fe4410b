package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name string
		in   []any
		want []any
	}{
		{"empty", nil, nil},
		{"plain", []any{"model", "llama"}, []any{"model", "llama"}},
		{"api key", []any{"llm.api-key", "gsk_123"}, []any{"llm.api-key", "[REDACTED]"}},
		{"authorization", []any{"Authorization", "Bearer x"}, []any{"Authorization", "[REDACTED]"}},
		{"tokens are not secrets", []any{"input_tokens", 12}, []any{"input_tokens", 12}},
		{"dangling key", []any{"a", 1, "b"}, []any{"a", 1, "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeKVs(tt.in))
		})
	}
}

func TestLoggerRedactsOnWrite(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "llm").Info("configured", "api_key", "secret-value", "model", "m")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "[REDACTED]", fields["api_key"])
	assert.Equal(t, "m", fields["model"])
	assert.Equal(t, "llm", fields["component"])
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", "text")
	require.Error(t, err)

	l, err := New("warn", "json")
	require.NoError(t, err)
	assert.NotNil(t, l.SugaredLogger)
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Debug("nothing")
	l.Error("still nothing", "k", "v")
}
