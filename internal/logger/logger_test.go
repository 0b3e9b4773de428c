package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(l *Logger) (*Logger, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	return &Logger{l.Output(buf)}, buf
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_Roles(t *testing.T) {
	for _, role := range []string{"go-forum-server", "key-sweeper"} {
		t.Run(role, func(t *testing.T) {
			l, buf := capture(NewLogger(role))

			l.Debug().Str("route", "/threads/<id>").Msg("dispatched")

			entry := decode(t, buf)
			assert.Equal(t, role, entry["role"])
			assert.Equal(t, "debug", entry["level"])
			assert.Equal(t, "/threads/<id>", entry["route"])
			assert.Contains(t, entry, "time")
			assert.Contains(t, entry["func"], "TestNewLogger_Roles")
		})
	}
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_DropsBelowWarn(t *testing.T) {
	l, buf := capture(NewClientLogger("go-forum-client"))

	l.Info().Msg("request sent")
	assert.Empty(t, buf.String())

	l.Warn().Msg("server unreachable")
	entry := decode(t, buf)
	assert.Equal(t, "go-forum-client", entry["role"])
	assert.Equal(t, "server unreachable", entry["message"])
}

func TestNop_DiscardsOutput(t *testing.T) {
	l, buf := capture(Nop())

	l.Error().Msg("discarded")

	assert.Empty(t, buf.String())
	assert.Equal(t, zerolog.Disabled, Nop().GetLevel())
}

func TestGetChildLogger_KeepsRole(t *testing.T) {
	parent, buf := capture(NewLogger("go-forum-server"))

	child := parent.GetChildLogger()
	child.Logger = child.With().Str("worker", "key-sweeper").Logger()
	child.Info().Msg("sweep done")

	require.NotSame(t, parent, child)
	entry := decode(t, buf)
	assert.Equal(t, "go-forum-server", entry["role"])
	assert.Equal(t, "key-sweeper", entry["worker"])
}

func TestFromContext(t *testing.T) {
	t.Run("attached", func(t *testing.T) {
		buf := new(bytes.Buffer)
		ctx := zerolog.New(buf).With().Str("trace_id", "abc123").Logger().WithContext(context.Background())

		FromContext(ctx).Info().Msg("guard failed")

		assert.Equal(t, "abc123", decode(t, buf)["trace_id"])
	})

	t.Run("missing", func(t *testing.T) {
		l := FromContext(context.Background())
		require.NotNil(t, l)
		assert.Equal(t, zerolog.Disabled, l.GetLevel())
	})
}

func TestFromRequest(t *testing.T) {
	buf := new(bytes.Buffer)
	ctx := zerolog.New(buf).With().Str("trace_id", "req-1").Logger().WithContext(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/threads", nil).WithContext(ctx)

	FromRequest(req).Info().Msg("listing threads")

	assert.Equal(t, "req-1", decode(t, buf)["trace_id"])
}

func TestStdLogger_WritesErrorEntries(t *testing.T) {
	l, buf := capture(NewLogger("go-forum-server"))

	l.StdLogger().Print("http: TLS handshake error from 10.0.0.1:5000: EOF")

	entry := decode(t, buf)
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "http: TLS handshake error from 10.0.0.1:5000: EOF", entry["message"])
}
