package grabber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_web "github.com/oshokin/spot-grabber/internal/client/web/mocks"
)

// TestTitleResolver_ResolveTitle tests that lookups never fail the caller.
func TestTitleResolver_ResolveTitle(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		webClient := mock_web.NewMockClient(gomock.NewController(t))
		webClient.EXPECT().GetOEmbedTitle(gomock.Any(), testTrackURL).Return("  Test Song  ", nil)

		assert.Equal(t, "Test Song", NewTitleResolver(webClient, time.Second).ResolveTitle(t.Context(), testTrackURL))
	})

	t.Run("failure yields empty title", func(t *testing.T) {
		t.Parallel()

		webClient := mock_web.NewMockClient(gomock.NewController(t))
		webClient.EXPECT().GetOEmbedTitle(gomock.Any(), testTrackURL).Return("", errors.New("status 404"))

		assert.Empty(t, NewTitleResolver(webClient, time.Second).ResolveTitle(t.Context(), testTrackURL))
	})

	t.Run("timeout is applied", func(t *testing.T) {
		t.Parallel()

		webClient := mock_web.NewMockClient(gomock.NewController(t))
		webClient.EXPECT().
			GetOEmbedTitle(gomock.Any(), testTrackURL).
			DoAndReturn(func(ctx context.Context, _ string) (string, error) {
				<-ctx.Done()

				return "", ctx.Err()
			})

		started := time.Now()
		assert.Empty(t, NewTitleResolver(webClient, 50*time.Millisecond).ResolveTitle(t.Context(), testTrackURL))
		assert.Less(t, time.Since(started), 5*time.Second)
	})

	t.Run("no client", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, NewTitleResolver(nil, 0).ResolveTitle(t.Context(), testTrackURL))
	})
}

// TestBuildSearchQuery tests backend query construction.
func TestBuildSearchQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ytsearch1:Test Song", BuildSearchQuery("ytsearch1", " Test Song ", testTrackURL))
	assert.Equal(t, "ytsearch1:"+testTrackURL, BuildSearchQuery("ytsearch1", "", testTrackURL))
	assert.Equal(t, "Test Song", BuildSearchQuery("", "Test Song", testTrackURL))
}

// TestArtworkFetcher_FetchArtwork tests cover downloads.
func TestArtworkFetcher_FetchArtwork(t *testing.T) {
	t.Parallel()

	t.Run("png cover", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		webClient := mock_web.NewMockClient(gomock.NewController(t))
		webClient.EXPECT().
			DownloadFromURL(gomock.Any(), "https://img.example/cover").
			Return(newDownloadResult("png-bytes", "image/png"), nil)

		coverPath := NewArtworkFetcher(webClient, time.Second).
			FetchArtwork(t.Context(), "https://img.example/cover", dir, "Test Song")
		assert.Equal(t, filepath.Join(dir, "Test Song.png"), coverPath)

		data, err := os.ReadFile(coverPath) //nolint:gosec // Test file.
		require.NoError(t, err)
		assert.Equal(t, "png-bytes", string(data))
	})

	t.Run("download failure yields empty path", func(t *testing.T) {
		t.Parallel()

		webClient := mock_web.NewMockClient(gomock.NewController(t))
		webClient.EXPECT().DownloadFromURL(gomock.Any(), gomock.Any()).Return(nil, errors.New("status 500"))

		assert.Empty(t, NewArtworkFetcher(webClient, 0).FetchArtwork(t.Context(), "https://img.example/x", t.TempDir(), "a"))
	})

	t.Run("empty URL", func(t *testing.T) {
		t.Parallel()

		webClient := mock_web.NewMockClient(gomock.NewController(t))

		assert.Empty(t, NewArtworkFetcher(webClient, 0).FetchArtwork(t.Context(), "", t.TempDir(), "a"))
	})
}
