package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
)

// TestNewLogTransport_DefaultLength tests the fallback maximum dump length.
func TestNewLogTransport_DefaultLength(t *testing.T) {
	t.Parallel()

	transport, ok := NewLogTransport(http.DefaultTransport, 0).(*LogTransport)
	require.True(t, ok)
	assert.Equal(t, uint64(config.DefaultMaxLogLength), transport.maxLogLength)
}

// TestLogTransport_NilRequest tests that a nil request is rejected.
func TestLogTransport_NilRequest(t *testing.T) {
	t.Parallel()

	resp, err := NewLogTransport(http.DefaultTransport, 10).RoundTrip(nil) //nolint:bodyclose // Nil response.
	require.ErrorIs(t, err, ErrNilRequest)
	assert.Nil(t, resp)
}

// TestLogTransport_RoundTripAtDebugLevel tests that dumping leaves the response body readable.
//
//nolint:paralleltest // Changes the global log level.
func TestLogTransport_RoundTripAtDebugLevel(t *testing.T) {
	originalLevel := logger.Level()
	defer logger.SetLevel(originalLevel)

	logger.SetLevel(zapcore.DebugLevel)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title":"Test Song"}`))
	}))
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := NewLogTransport(http.DefaultTransport, 0).RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Test Song"}`, string(body))
}

// TestLogTransport_Truncate tests the dump truncation.
func TestLogTransport_Truncate(t *testing.T) {
	t.Parallel()

	transport := &LogTransport{next: http.DefaultTransport, maxLogLength: 4}

	assert.Equal(t, "abc", transport.truncate([]byte("abc")))
	assert.True(t, strings.HasSuffix(transport.truncate([]byte("abcdefgh")), "... [truncated]"))
	assert.True(t, strings.HasPrefix(transport.truncate([]byte("abcdefgh")), "abcd"))
}
