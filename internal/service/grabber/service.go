package grabber

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/logger"
)

// Service runs download tasks and reports their progress as events.
type Service interface {
	// Start runs one task to its terminal event and returns that event.
	// It fails only when the task could not be registered.
	Start(ctx context.Context, req *StartRequest) (*Event, error)
	// Submit registers a task and runs it in the background.
	Submit(ctx context.Context, req *StartRequest) error
	// Wait blocks until every submitted task has finished.
	Wait()
	// DownloadURLs runs one task per link with the configured defaults and waits for all of them.
	DownloadURLs(ctx context.Context, urls []string)
	// Cancel flags a running task and reports whether it was found.
	Cancel(taskID string) bool
	// CancelAll flags every running task and returns their number.
	CancelAll() int
	// ActiveTasks returns the ids of the tasks that have not finished yet.
	ActiveTasks() []string
	// Validate classifies and normalizes a link without any network access.
	Validate(rawURL string) *ValidationResult
	// ExpandURLs expands text files into links and removes duplicates.
	ExpandURLs(inputs []string) ([]string, error)
	// BackendVersion reports the fetch backend version.
	BackendVersion(ctx context.Context) *VersionResult
	// SetTranscoderPath overrides the transcoder binary for tasks started afterwards.
	SetTranscoderPath(path string)
	// TranscoderPath returns the transcoder binary tasks will look up.
	TranscoderPath() string
	// Statistics returns a snapshot of the session statistics.
	Statistics() DownloadStatistics
	// PrintDownloadSummary prints a formatted summary of download statistics.
	PrintDownloadSummary(ctx context.Context)
}

// ServiceImpl implements Service.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// sink receives every task event.
	sink EventSink
	// urlProcessor validates and normalizes links.
	urlProcessor URLProcessor
	// titleResolver looks up human readable titles.
	titleResolver TitleResolver
	// fetcher drives the fetch backend.
	fetcher Fetcher
	// transcoder converts fetched media.
	transcoder Transcoder
	// artworkFetcher downloads cover images.
	artworkFetcher ArtworkFetcher
	// tagProcessor writes metadata tags to audio files.
	tagProcessor TagProcessor
	// registry tracks running tasks by id.
	registry *taskRegistry
	// semaphore bounds the number of tasks past the queued phase.
	semaphore chan struct{}
	// stats tracks download statistics for the current session.
	stats *statisticsCollector
	// wg tracks submitted tasks.
	wg sync.WaitGroup
}

// NewService creates a download service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	sink EventSink,
	urlProcessor URLProcessor,
	titleResolver TitleResolver,
	fetcher Fetcher,
	transcoder Transcoder,
	artworkFetcher ArtworkFetcher,
	tagProcessor TagProcessor,
) Service {
	// Without a registered sink events go to stdout as JSON lines.
	if sink == nil {
		sink = NewJSONLinesSink(os.Stdout)
	}

	maxConcurrentTasks := cfg.MaxConcurrentTasks
	if maxConcurrentTasks < 1 {
		maxConcurrentTasks = 1
	}

	return &ServiceImpl{
		cfg:            cfg,
		sink:           sink,
		urlProcessor:   urlProcessor,
		titleResolver:  titleResolver,
		fetcher:        fetcher,
		transcoder:     transcoder,
		artworkFetcher: artworkFetcher,
		tagProcessor:   tagProcessor,
		registry:       newTaskRegistry(),
		semaphore:      make(chan struct{}, maxConcurrentTasks),
		stats:          new(statisticsCollector),
	}
}

// Start runs one task to its terminal event and returns that event.
func (s *ServiceImpl) Start(ctx context.Context, req *StartRequest) (*Event, error) {
	t, err := s.newTask(req)
	if err != nil {
		return nil, err
	}

	return s.runTask(ctx, t), nil
}

// Submit registers a task and runs it in the background.
// Registration happens before Submit returns, so a duplicate id is rejected synchronously.
func (s *ServiceImpl) Submit(ctx context.Context, req *StartRequest) error {
	t, err := s.newTask(req)
	if err != nil {
		return err
	}

	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		s.runTask(ctx, t)
	}()

	return nil
}

// Wait blocks until every submitted task has finished.
func (s *ServiceImpl) Wait() {
	s.wg.Wait()
}

// DownloadURLs runs one task per link with the configured defaults and waits for all of them.
func (s *ServiceImpl) DownloadURLs(ctx context.Context, urls []string) {
	logger.Info(ctx, "Starting download process")

	for _, url := range urls {
		// Stop submitting once the user interrupts.
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Download process interrupted")
			s.Wait()

			return
		default:
		}

		req := &StartRequest{
			TaskID:       uuid.NewString(),
			URL:          url,
			OutputDir:    s.cfg.OutputPath,
			Bitrate:      s.cfg.Bitrate,
			SkipExisting: s.cfg.SkipExisting,
			EmbedArt:     s.cfg.EmbedArt,
		}

		if err := s.Submit(ctx, req); err != nil {
			logger.Errorf(ctx, "Failed to submit %s: %v", url, err)
		}
	}

	s.Wait()

	logger.Info(ctx, "Download process completed")
}

// Cancel flags a running task and reports whether it was found.
func (s *ServiceImpl) Cancel(taskID string) bool {
	return s.registry.cancel(taskID)
}

// CancelAll flags every running task and returns their number.
func (s *ServiceImpl) CancelAll() int {
	return s.registry.cancelAll()
}

// ActiveTasks returns the ids of the tasks that have not finished yet.
func (s *ServiceImpl) ActiveTasks() []string {
	return s.registry.ids()
}

// Validate classifies and normalizes a link without any network access.
func (s *ServiceImpl) Validate(rawURL string) *ValidationResult {
	return s.urlProcessor.Validate(rawURL)
}

// ExpandURLs expands text files into links and removes duplicates.
func (s *ServiceImpl) ExpandURLs(inputs []string) ([]string, error) {
	return s.urlProcessor.ExpandURLs(inputs)
}

// BackendVersion reports the fetch backend version.
func (s *ServiceImpl) BackendVersion(ctx context.Context) *VersionResult {
	version, err := s.fetcher.Version(ctx)
	if err != nil {
		return &VersionResult{
			Status:  versionStatusError,
			Message: err.Error(),
			Type:    EventTypeError,
		}
	}

	return &VersionResult{
		Status:  versionStatusSuccess,
		Version: backendName + " " + strings.TrimSpace(version),
		Type:    EventTypeInfo,
	}
}

// SetTranscoderPath overrides the transcoder binary for tasks started afterwards.
func (s *ServiceImpl) SetTranscoderPath(path string) {
	s.transcoder.SetBinaryPath(path)
}

// TranscoderPath returns the transcoder binary tasks will look up.
func (s *ServiceImpl) TranscoderPath() string {
	return s.transcoder.BinaryPath()
}

// Statistics returns a snapshot of the session statistics.
func (s *ServiceImpl) Statistics() DownloadStatistics {
	return s.stats.snapshot()
}

const (
	// backendName prefixes the reported backend version.
	backendName = "yt-dlp"
	// versionStatusSuccess marks a successful version query.
	versionStatusSuccess = "success"
	// versionStatusError marks a failed version query.
	versionStatusError = "error"
)
