package ytdlp

//go:generate $MOCKGEN -source=client.go -destination=mocks/client_mock.go

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// Client defines the interface of the fetch backend.
type Client interface {
	// Fetch runs one search-and-download into req.WorkDir.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error)
	// Version returns the backend version string.
	Version(ctx context.Context) (string, error)
}

// ClientImpl implements the Client interface on top of the yt-dlp binary.
type ClientImpl struct {
	// executable is the yt-dlp binary. Empty means "yt-dlp" from PATH.
	executable string
}

const (
	// DefaultFormat selects the best audio-only stream, or the best muxed stream when there is none.
	DefaultFormat = "bestaudio/best"
	// outputTemplate names fetched files by content id so they can be found again.
	outputTemplate = "%(id)s.%(ext)s"
	// infoJSONSuffix is appended by the backend to the info JSON file name.
	infoJSONSuffix = ".info.json"
	// progressInterval is how often the backend reports progress.
	progressInterval = 500 * time.Millisecond
	// maxErrorOutputLength bounds the backend output quoted in errors.
	maxErrorOutputLength = 512
)

// Static error definitions for better error handling.
var (
	// ErrEmptyQuery indicates that a fetch was requested without a query.
	ErrEmptyQuery = errors.New("fetch query cannot be empty")
	// ErrEmptyWorkDir indicates that a fetch was requested without a work directory.
	ErrEmptyWorkDir = errors.New("fetch work directory cannot be empty")
	// ErrFetchFailed indicates that the backend exited with an error.
	ErrFetchFailed = errors.New("fetch backend failed")
	// ErrEmptyVersion indicates that the backend printed no version.
	ErrEmptyVersion = errors.New("fetch backend reported no version")
)

// archivedPattern matches the backend's notice for entries already in the download archive.
//
//nolint:gochecknoglobals // This is immutable, pre-compiled regex pattern and used as a constant.
var archivedPattern = regexp.MustCompile(`\[download\]\s+(?:(?P<id>[^\s:]+):\s+)?.*has already been recorded in the archive`)

// NewClient creates and returns a new instance of ClientImpl.
func NewClient(executable string) Client {
	return &ClientImpl{executable: strings.TrimSpace(executable)}
}

// Fetch runs one search-and-download into req.WorkDir.
// An abort requested by the progress callback cancels the backend process and
// yields a response with Aborted set and a nil error.
func (c *ClientImpl) Fetch(ctx context.Context, req *FetchRequest) (*FetchResponse, error) {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	if req.WorkDir == "" {
		return nil, ErrEmptyWorkDir
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	format := req.Format
	if format == "" {
		format = DefaultFormat
	}

	command := c.newCommand().
		Format(format).
		NoPlaylist().
		RestrictFilenames().
		WriteInfoJSON().
		Output(filepath.Join(req.WorkDir, outputTemplate))

	if req.ArchivePath != "" {
		command.DownloadArchive(req.ArchivePath)
	}

	tracker := &progressTracker{onProgress: req.OnProgress, abort: cancel}
	command.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
		tracker.handle(&Progress{
			DownloadedBytes: int64(update.DownloadedBytes),
			TotalBytes:      int64(update.TotalBytes),
			Filename:        update.Filename,
		})
	})

	logger.Debugf(ctx, "Running fetch backend for query %q in %s", req.Query, req.WorkDir)

	result, err := command.Run(runCtx, req.Query)
	if tracker.isAborted() {
		return &FetchResponse{Aborted: true}, nil
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, describeFailure(result, err))
	}

	response := &FetchResponse{RequestedPath: tracker.lastFilename()}

	if result != nil {
		if id, archived := findArchivedID(result.Stdout + "\n" + result.Stderr); archived {
			response.Skipped = true
			response.ID = id
		}
	}

	if document, readErr := readInfoJSON(req.WorkDir); readErr != nil {
		logger.Debugf(ctx, "No backend metadata in %s: %v", req.WorkDir, readErr)
	} else {
		applyInfoDocument(response, document)
	}

	return response, nil
}

// Version returns the backend version string.
func (c *ClientImpl) Version(ctx context.Context) (string, error) {
	result, err := c.newCommand().Version(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrFetchFailed, describeFailure(result, err))
	}

	version := strings.TrimSpace(result.Stdout)
	if version == "" {
		return "", ErrEmptyVersion
	}

	return version, nil
}

func (c *ClientImpl) newCommand() *ytdlp.Command {
	command := ytdlp.New()
	if c.executable != "" {
		command.SetExecutable(c.executable)
	}

	return command
}

// progressTracker forwards progress updates and latches the abort decision.
type progressTracker struct {
	onProgress ProgressFunc
	abort      context.CancelFunc

	mu       sync.Mutex
	aborted  bool
	filename string
}

func (t *progressTracker) handle(progress *Progress) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if progress.Filename != "" {
		t.filename = progress.Filename
	}

	if t.aborted || t.onProgress == nil {
		return
	}

	if t.onProgress(progress) == ProgressAbort {
		t.aborted = true
		t.abort()
	}
}

func (t *progressTracker) isAborted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.aborted
}

func (t *progressTracker) lastFilename() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.filename
}

// findArchivedID reports whether output contains an archive-hit notice and extracts the id when present.
func findArchivedID(output string) (string, bool) {
	if !archivedPattern.MatchString(output) {
		return "", false
	}

	return utils.ExtractNamedGroup(archivedPattern, "id", output), true
}

// readInfoJSON decodes the first info JSON file found in dir.
func readInfoJSON(dir string) (*infoDocument, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+infoJSONSuffix))
	if err != nil {
		return nil, err
	}

	if len(matches) == 0 {
		return nil, os.ErrNotExist
	}

	content, err := os.ReadFile(filepath.Clean(matches[0]))
	if err != nil {
		return nil, err
	}

	var document infoDocument
	if err = json.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(matches[0]), err)
	}

	return &document, nil
}

func applyInfoDocument(response *FetchResponse, document *infoDocument) {
	if response.ID == "" {
		response.ID = document.ID
	}

	response.Extractor = firstNonEmpty(document.ExtractorKey, document.Extractor)
	response.Title = firstNonEmpty(document.Track, document.Title)
	response.Artist = firstNonEmpty(document.Artist, document.Creator)
	response.Uploader = firstNonEmpty(document.Uploader, document.Channel)
	response.Album = document.Album
	response.Thumbnail = document.Thumbnail
	response.Ext = document.Ext
	response.Filename = firstNonEmpty(document.Filename, document.LegacyFilename)
}

// IsInfoJSON reports whether path is a backend info JSON file rather than media.
func IsInfoJSON(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), infoJSONSuffix)
}

func describeFailure(result *ytdlp.Result, err error) string {
	if result == nil {
		return err.Error()
	}

	output := strings.TrimSpace(result.Stderr)
	if output == "" {
		return err.Error()
	}

	// The last line usually carries the "ERROR: ..." summary.
	lines := strings.Split(output, "\n")

	output = strings.TrimSpace(lines[len(lines)-1])
	if len(output) > maxErrorOutputLength {
		output = output[:maxErrorOutputLength]
	}

	return output
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}

	return ""
}
