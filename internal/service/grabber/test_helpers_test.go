package grabber

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/spot-grabber/internal/client/web"
	mock_web "github.com/oshokin/spot-grabber/internal/client/web/mocks"
	"github.com/oshokin/spot-grabber/internal/client/ytdlp"
	mock_ytdlp "github.com/oshokin/spot-grabber/internal/client/ytdlp/mocks"
	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/constants"
)

const (
	testTrackID  = "4uLU6hMCjMI75M1A2tKUQC"
	testTrackURL = "https://open.spotify.com/track/" + testTrackID
	testMediaID  = "dQw4w9WgXcQ"
	testFFmpeg   = "/usr/bin/ffmpeg"
)

// errBinaryNotFound simulates a missing transcoder.
var errBinaryNotFound = errors.New("executable file not found in $PATH")

// recordingSink collects emitted events.
type recordingSink struct {
	mu     sync.Mutex
	events []*Event
}

func (rs *recordingSink) Emit(event *Event) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.events = append(rs.events, event)
}

// forTask returns the events of taskID in emission order.
func (rs *recordingSink) forTask(taskID string) []*Event {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	var result []*Event

	for _, event := range rs.events {
		if event.TaskID == taskID {
			result = append(result, event)
		}
	}

	return result
}

// fakeRunner stands in for the transcoder binary.
type fakeRunner struct {
	mu       sync.Mutex
	lookErr  error
	runErr   error
	output   []byte
	runCalls [][]string
}

func (fr *fakeRunner) LookPath(string) (string, error) {
	if fr.lookErr != nil {
		return "", fr.lookErr
	}

	return testFFmpeg, nil
}

// Run writes the output file named by the last argument.
func (fr *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	fr.mu.Lock()
	fr.runCalls = append(fr.runCalls, append([]string{name}, args...))
	fr.mu.Unlock()

	if fr.runErr != nil {
		return fr.output, fr.runErr
	}

	if err := os.WriteFile(args[len(args)-1], []byte("transcoded"), constants.DefaultFilePermissions); err != nil {
		return nil, err
	}

	return fr.output, nil
}

// fakeTagProcessor records tag requests.
type fakeTagProcessor struct {
	mu       sync.Mutex
	taggable bool
	err      error
	requests []*WriteTagsRequest
}

func (ftp *fakeTagProcessor) IsTaggable(string) bool {
	return ftp.taggable
}

func (ftp *fakeTagProcessor) WriteTags(_ context.Context, req *WriteTagsRequest) error {
	ftp.mu.Lock()
	defer ftp.mu.Unlock()

	ftp.requests = append(ftp.requests, req)

	return ftp.err
}

// testServiceSetup encapsulates common test dependencies and configuration.
type testServiceSetup struct {
	ctrl         *gomock.Controller
	backend      *mock_ytdlp.MockClient
	webClient    *mock_web.MockClient
	runner       *fakeRunner
	tagProcessor *fakeTagProcessor
	sink         *recordingSink
	service      Service
	config       *config.Config
	outputDir    string
}

// newTestServiceSetup creates a standard test setup with optional config overrides.
func newTestServiceSetup(t *testing.T, configOverrides ...func(*config.Config)) *testServiceSetup {
	t.Helper()

	var (
		ctrl      = gomock.NewController(t)
		backend   = mock_ytdlp.NewMockClient(ctrl)
		webClient = mock_web.NewMockClient(ctrl)
		outputDir = t.TempDir()
	)

	cfg := &config.Config{
		OutputPath:         outputDir,
		Bitrate:            config.DefaultBitrate,
		AudioFormat:        config.AudioFormatMP3,
		SearchPrefix:       config.DefaultSearchPrefix,
		MaxConcurrentTasks: 1,
		TempPath:           t.TempDir(),
	}

	for _, override := range configOverrides {
		override(cfg)
	}

	setup := &testServiceSetup{
		ctrl:         ctrl,
		backend:      backend,
		webClient:    webClient,
		runner:       new(fakeRunner),
		tagProcessor: new(fakeTagProcessor),
		sink:         new(recordingSink),
		config:       cfg,
		outputDir:    outputDir,
	}

	setup.service = NewService(
		cfg,
		setup.sink,
		NewURLProcessor(),
		NewTitleResolver(webClient, 0),
		NewFetcher(backend),
		NewTranscoder(setup.runner, ""),
		NewArtworkFetcher(webClient, 0),
		setup.tagProcessor,
	)

	return setup
}

// expectTitle sets up the title lookup.
func (s *testServiceSetup) expectTitle(title string) {
	s.webClient.EXPECT().GetOEmbedTitle(gomock.Any(), testTrackURL).Return(title, nil)
}

// newDownloadResult wraps body as a web download.
func newDownloadResult(body, contentType string) *web.DownloadResult {
	return &web.DownloadResult{
		Body:        io.NopCloser(strings.NewReader(body)),
		ContentType: contentType,
		TotalBytes:  int64(len(body)),
	}
}

// fetchFunc is the body of a mocked backend fetch.
type fetchFunc func(ctx context.Context, req *ytdlp.FetchRequest) (*ytdlp.FetchResponse, error)

// fetchWritingMedia writes <id>.webm into the work directory, reports the given byte
// progress steps and returns the matching response.
func fetchWritingMedia(t *testing.T, title string, steps ...int64) fetchFunc {
	t.Helper()

	return func(_ context.Context, req *ytdlp.FetchRequest) (*ytdlp.FetchResponse, error) {
		mediaPath := filepath.Join(req.WorkDir, testMediaID+".webm")
		require.NoError(t, os.WriteFile(mediaPath, []byte("media"), constants.DefaultFilePermissions))

		for _, step := range steps {
			decision := req.OnProgress(&ytdlp.Progress{DownloadedBytes: step, TotalBytes: 1000, Filename: mediaPath})
			if decision == ytdlp.ProgressAbort {
				return &ytdlp.FetchResponse{Aborted: true}, nil
			}
		}

		return &ytdlp.FetchResponse{
			ID:            testMediaID,
			Extractor:     "Youtube",
			Title:         title,
			Uploader:      "Test Channel",
			Ext:           "webm",
			RequestedPath: mediaPath,
		}, nil
	}
}

// assertEventOrder checks that progress never decreases before the terminal event
// and that exactly one terminal event closes the sequence.
func assertEventOrder(t *testing.T, events []*Event) {
	t.Helper()

	require.NotEmpty(t, events)

	lastProgress := 0

	for i, event := range events {
		isLast := i == len(events)-1

		assert.Equal(t, isLast, event.Status.IsTerminal(), "event %d: %s", i, event)

		if isLast {
			break
		}

		assert.GreaterOrEqual(t, event.Progress, lastProgress, "event %d: %s", i, event)
		lastProgress = event.Progress
	}
}

// statuses returns the status of every event.
func statuses(events []*Event) []TaskStatus {
	result := make([]TaskStatus, 0, len(events))
	for _, event := range events {
		result = append(result, event.Status)
	}

	return result
}
