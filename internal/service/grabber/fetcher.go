package grabber

//go:generate $MOCKGEN -source=fetcher.go -destination=mocks/fetcher_mock.go

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/spot-grabber/internal/client/ytdlp"
	"github.com/oshokin/spot-grabber/internal/constants"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// Fetcher drives the fetch backend for one task.
type Fetcher interface {
	// Fetch runs req.Query into req.WorkDir and locates the fetched file.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
	// Version returns the backend version string.
	Version(ctx context.Context) (string, error)
}

// FetchRequest describes one fetch.
type FetchRequest struct {
	// Query is the backend input.
	Query string
	// WorkDir is the isolated directory the backend writes into.
	WorkDir string
	// ArchivePath is the ledger file. Empty disables skip checks.
	ArchivePath string
	// IsCancelled is polled on every progress tick. It may be nil.
	IsCancelled func() bool
	// OnProgress receives the overall task progress mapped from byte progress. It may be nil.
	OnProgress func(progress int)
}

// FetcherImpl implements Fetcher on top of the backend client.
type FetcherImpl struct {
	// backend is the fetch backend client.
	backend ytdlp.Client
}

const (
	// downloadProgressStart is the overall progress at zero fetched bytes.
	downloadProgressStart = 10
	// downloadProgressSpan is the overall progress range covered by the byte transfer.
	downloadProgressSpan = 80
	// downloadProgressUnknownTotal is reported while the total size is unknown.
	downloadProgressUnknownTotal = 15
)

// NewFetcher creates and returns a new instance of FetcherImpl.
func NewFetcher(backend ytdlp.Client) Fetcher {
	return &FetcherImpl{backend: backend}
}

// Fetch runs req.Query into req.WorkDir and locates the fetched file.
func (f *FetcherImpl) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	response, err := f.backend.Fetch(ctx, &ytdlp.FetchRequest{
		Query:       req.Query,
		WorkDir:     req.WorkDir,
		ArchivePath: req.ArchivePath,
		OnProgress: func(progress *ytdlp.Progress) ytdlp.ProgressDecision {
			// Cancellation is observed on every tick.
			if req.IsCancelled != nil && req.IsCancelled() {
				return ytdlp.ProgressAbort
			}

			if req.OnProgress != nil {
				req.OnProgress(MapDownloadProgress(progress.DownloadedBytes, progress.TotalBytes))
			}

			return ytdlp.ProgressContinue
		},
	})
	if err != nil {
		return nil, err
	}

	result := &FetchResult{
		Outcome: FetchOutcomeFetched,
		WorkDir: req.WorkDir,
		Metadata: &Metadata{
			ID:        response.ID,
			Extractor: response.Extractor,
			Title:     response.Title,
			Artist:    response.Artist,
			Uploader:  response.Uploader,
			Album:     response.Album,
			Thumbnail: response.Thumbnail,
		},
	}

	switch {
	case response.Aborted:
		result.Outcome = FetchOutcomeAborted

		return result, nil
	case response.Skipped:
		result.Outcome = FetchOutcomeSkipped

		return result, nil
	}

	filePath, err := resolveFetchedFile(response, req.WorkDir)
	if err != nil {
		return nil, err
	}

	logger.Debugf(ctx, "Fetched file: %s", filePath)

	result.FilePath = filePath

	return result, nil
}

// Version returns the backend version string.
func (f *FetcherImpl) Version(ctx context.Context) (string, error) {
	return f.backend.Version(ctx)
}

// MapDownloadProgress maps byte progress into the overall 10..90 range.
// An unknown total reports a fixed early value.
func MapDownloadProgress(downloaded, total int64) int {
	if total <= 0 {
		return downloadProgressUnknownTotal
	}

	if downloaded < 0 {
		downloaded = 0
	}

	if downloaded > total {
		downloaded = total
	}

	return utils.SafeFloatToInt(float64(downloaded)/float64(total)*downloadProgressSpan) + downloadProgressStart
}

// resolveFetchedFile locates the fetched media, trying in order the path of the final
// progress update, the prepared filename, files named after the content id and
// finally the newest media file in the work directory.
func resolveFetchedFile(response *ytdlp.FetchResponse, workDir string) (string, error) {
	for _, candidate := range []string{response.RequestedPath, response.Filename} {
		if candidate == "" {
			continue
		}

		if exists, _ := utils.IsFileExist(candidate); exists && isMediaCandidate(candidate) {
			return candidate, nil
		}
	}

	expectedPath := workDir

	if response.ID != "" {
		pattern := filepath.Join(workDir, response.ID+".*")
		expectedPath = pattern

		matches, err := filepath.Glob(pattern)
		if err == nil {
			for _, match := range matches {
				if exists, _ := utils.IsFileExist(match); exists && isMediaCandidate(match) {
					return match, nil
				}
			}
		}
	}

	if newest := newestMediaFile(workDir); newest != "" {
		return newest, nil
	}

	switch {
	case response.RequestedPath != "":
		expectedPath = response.RequestedPath
	case response.Filename != "":
		expectedPath = response.Filename
	}

	return "", fmt.Errorf("%w: %s", ErrDownloadOutputNotFound, expectedPath)
}

// newestMediaFile returns the most recently modified media file directly inside dir.
func newestMediaFile(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}

	var (
		newestPath string
		newestTime int64
	)

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !isMediaCandidate(path) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if modTime := info.ModTime().UnixNano(); newestPath == "" || modTime > newestTime {
			newestPath = path
			newestTime = modTime
		}
	}

	return newestPath
}

// isMediaCandidate excludes backend side files from the cascade.
func isMediaCandidate(path string) bool {
	lower := strings.ToLower(path)

	switch {
	case ytdlp.IsInfoJSON(lower),
		strings.HasSuffix(lower, constants.ExtensionPart),
		strings.HasSuffix(lower, ".ytdl"),
		strings.HasSuffix(lower, ".temp"):
		return false
	}

	return true
}
