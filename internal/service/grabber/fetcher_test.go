package grabber

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/spot-grabber/internal/client/ytdlp"
	mock_ytdlp "github.com/oshokin/spot-grabber/internal/client/ytdlp/mocks"
	"github.com/oshokin/spot-grabber/internal/constants"
)

// TestMapDownloadProgress tests the byte to overall progress mapping.
func TestMapDownloadProgress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		downloaded int64
		total      int64
		expected   int
	}{
		{name: "start", downloaded: 0, total: 1000, expected: 10},
		{name: "quarter", downloaded: 250, total: 1000, expected: 30},
		{name: "half", downloaded: 500, total: 1000, expected: 50},
		{name: "done", downloaded: 1000, total: 1000, expected: 90},
		{name: "overshoot is clamped", downloaded: 1500, total: 1000, expected: 90},
		{name: "negative is clamped", downloaded: -5, total: 1000, expected: 10},
		{name: "unknown total", downloaded: 12345, total: 0, expected: 15},
		{name: "negative total", downloaded: 1, total: -1, expected: 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, MapDownloadProgress(tt.downloaded, tt.total))
		})
	}
}

// TestResolveFetchedFile tests the fetched file lookup cascade.
func TestResolveFetchedFile(t *testing.T) {
	t.Parallel()

	writeFile := func(t *testing.T, path string) {
		t.Helper()
		require.NoError(t, os.WriteFile(path, []byte("x"), constants.DefaultFilePermissions))
	}

	t.Run("requested path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		requested := filepath.Join(dir, "abc.opus")
		writeFile(t, requested)
		writeFile(t, filepath.Join(dir, "abc.webm"))

		path, err := resolveFetchedFile(&ytdlp.FetchResponse{ID: "abc", RequestedPath: requested}, dir)
		require.NoError(t, err)
		assert.Equal(t, requested, path)
	})

	t.Run("prepared filename", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		filename := filepath.Join(dir, "abc.m4a")
		writeFile(t, filename)

		path, err := resolveFetchedFile(&ytdlp.FetchResponse{
			ID:            "abc",
			RequestedPath: filepath.Join(dir, "abc.f251.webm"),
			Filename:      filename,
		}, dir)
		require.NoError(t, err)
		assert.Equal(t, filename, path)
	})

	t.Run("content id glob skips side files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "abc.info.json"))
		writeFile(t, filepath.Join(dir, "abc.webm.part"))
		writeFile(t, filepath.Join(dir, "abc.webm"))

		path, err := resolveFetchedFile(&ytdlp.FetchResponse{ID: "abc"}, dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "abc.webm"), path)
	})

	t.Run("newest media file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		older := filepath.Join(dir, "first.webm")
		newer := filepath.Join(dir, "second.m4a")
		writeFile(t, older)
		writeFile(t, newer)
		writeFile(t, filepath.Join(dir, "second.ytdl"))

		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(older, past, past))

		path, err := resolveFetchedFile(&ytdlp.FetchResponse{ID: "zzz"}, dir)
		require.NoError(t, err)
		assert.Equal(t, newer, path)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "abc.info.json"))

		expected := filepath.Join(dir, "abc.webm")

		_, err := resolveFetchedFile(&ytdlp.FetchResponse{ID: "abc", RequestedPath: expected}, dir)
		require.ErrorIs(t, err, ErrDownloadOutputNotFound)
		assert.Contains(t, err.Error(), expected)
	})
}

// TestFetcher_Fetch tests outcome mapping and progress forwarding.
func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("fetched", func(t *testing.T) {
		t.Parallel()

		var (
			ctrl     = gomock.NewController(t)
			backend  = mock_ytdlp.NewMockClient(ctrl)
			workDir  = t.TempDir()
			reported []int
		)

		backend.EXPECT().
			Fetch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *ytdlp.FetchRequest) (*ytdlp.FetchResponse, error) {
				assert.Equal(t, "ytsearch1:Song", req.Query)
				assert.Equal(t, workDir, req.WorkDir)

				req.OnProgress(&ytdlp.Progress{DownloadedBytes: 0, TotalBytes: 0})
				req.OnProgress(&ytdlp.Progress{DownloadedBytes: 50, TotalBytes: 100})

				mediaPath := filepath.Join(workDir, "vid.webm")
				require.NoError(t, os.WriteFile(mediaPath, []byte("x"), constants.DefaultFilePermissions))

				return &ytdlp.FetchResponse{
					ID:        "vid",
					Extractor: "Youtube",
					Title:     "Song",
					Thumbnail: "https://i.ytimg.com/vi/vid/hq.jpg",
				}, nil
			})

		result, err := NewFetcher(backend).Fetch(t.Context(), &FetchRequest{
			Query:      "ytsearch1:Song",
			WorkDir:    workDir,
			OnProgress: func(progress int) { reported = append(reported, progress) },
		})
		require.NoError(t, err)

		assert.Equal(t, FetchOutcomeFetched, result.Outcome)
		assert.Equal(t, filepath.Join(workDir, "vid.webm"), result.FilePath)
		assert.Equal(t, "Song", result.Metadata.Title)
		assert.Equal(t, "https://i.ytimg.com/vi/vid/hq.jpg", result.Metadata.Thumbnail)
		assert.Equal(t, []int{15, 50}, reported)
	})

	t.Run("abort on cancellation", func(t *testing.T) {
		t.Parallel()

		var (
			ctrl    = gomock.NewController(t)
			backend = mock_ytdlp.NewMockClient(ctrl)
		)

		backend.EXPECT().
			Fetch(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req *ytdlp.FetchRequest) (*ytdlp.FetchResponse, error) {
				assert.Equal(t, ytdlp.ProgressAbort, req.OnProgress(&ytdlp.Progress{DownloadedBytes: 1, TotalBytes: 2}))

				return &ytdlp.FetchResponse{Aborted: true}, nil
			})

		result, err := NewFetcher(backend).Fetch(t.Context(), &FetchRequest{
			Query:       "q",
			WorkDir:     t.TempDir(),
			IsCancelled: func() bool { return true },
			OnProgress:  func(int) { t.Error("progress must not be reported after cancellation") },
		})
		require.NoError(t, err)
		assert.Equal(t, FetchOutcomeAborted, result.Outcome)
	})

	t.Run("skipped", func(t *testing.T) {
		t.Parallel()

		var (
			ctrl    = gomock.NewController(t)
			backend = mock_ytdlp.NewMockClient(ctrl)
		)

		backend.EXPECT().
			Fetch(gomock.Any(), gomock.Any()).
			Return(&ytdlp.FetchResponse{Skipped: true, ID: "vid"}, nil)

		result, err := NewFetcher(backend).Fetch(t.Context(), &FetchRequest{Query: "q", WorkDir: t.TempDir()})
		require.NoError(t, err)
		assert.Equal(t, FetchOutcomeSkipped, result.Outcome)
		assert.Empty(t, result.FilePath)
	})

	t.Run("backend error", func(t *testing.T) {
		t.Parallel()

		var (
			ctrl    = gomock.NewController(t)
			backend = mock_ytdlp.NewMockClient(ctrl)
		)

		backend.EXPECT().Fetch(gomock.Any(), gomock.Any()).Return(nil, ytdlp.ErrFetchFailed)

		_, err := NewFetcher(backend).Fetch(t.Context(), &FetchRequest{Query: "q", WorkDir: t.TempDir()})
		require.ErrorIs(t, err, ytdlp.ErrFetchFailed)
	})
}

// TestFetchOutcome_String tests the FetchOutcome String method.
func TestFetchOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "fetched", FetchOutcomeFetched.String())
	assert.Equal(t, "skipped", FetchOutcomeSkipped.String())
	assert.Equal(t, "aborted", FetchOutcomeAborted.String())
	assert.Equal(t, "unknown outcome: 9", FetchOutcome(9).String())
}
