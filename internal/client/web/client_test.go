package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/spot-grabber/internal/config"
)

const testTrackURL = "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC"

// newTestClient returns a client whose oEmbed endpoint points at server.
func newTestClient(t *testing.T, server *httptest.Server) Client {
	t.Helper()

	client, err := NewClient(&config.Config{OEmbedEndpoint: server.URL + "/oembed"})
	require.NoError(t, err)

	return client
}

// TestGetOEmbedTitle tests title resolution and caching.
func TestGetOEmbedTitle(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		assert.Equal(t, "/oembed", r.URL.Path)
		assert.Equal(t, testTrackURL, r.URL.Query().Get("url"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"title":"  Never Gonna Give You Up ","type":"rich"}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	title, err := client.GetOEmbedTitle(context.Background(), testTrackURL)
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", title)

	// Second lookup is served from the cache.
	title, err = client.GetOEmbedTitle(context.Background(), testTrackURL)
	require.NoError(t, err)
	assert.Equal(t, "Never Gonna Give You Up", title)
	assert.Equal(t, int32(1), calls.Load())
}

// TestGetOEmbedTitle_Failures tests the error paths of title resolution.
func TestGetOEmbedTitle_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		errorIs error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{}`, errorIs: ErrUnexpectedHTTPStatus},
		{name: "empty title", status: http.StatusOK, body: `{"title":"   "}`, errorIs: ErrEmptyTitle},
		{name: "malformed body", status: http.StatusOK, body: `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := newTestClient(t, server).GetOEmbedTitle(context.Background(), testTrackURL)
			require.Error(t, err)

			if tt.errorIs != nil {
				require.ErrorIs(t, err, tt.errorIs)
			}
		})
	}

	_, err := (&ClientImpl{}).GetOEmbedTitle(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyURL)
}

// TestDownloadFromURL tests payload downloads.
func TestDownloadFromURL(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)

			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer server.Close()

	client := newTestClient(t, server)

	result, err := client.DownloadFromURL(context.Background(), server.URL+"/cover.png")
	require.NoError(t, err)

	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	assert.Equal(t, "image/png", result.ContentType)
	assert.Equal(t, int64(4), result.TotalBytes)

	_, err = client.DownloadFromURL(context.Background(), server.URL+"/missing")
	require.ErrorIs(t, err, ErrUnexpectedHTTPStatus)

	_, err = client.DownloadFromURL(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyURL)
}
