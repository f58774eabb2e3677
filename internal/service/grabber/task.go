package grabber

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oshokin/spot-grabber/internal/config"
	"github.com/oshokin/spot-grabber/internal/constants"
	"github.com/oshokin/spot-grabber/internal/ledger"
	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/utils"
)

// task is one registered submission.
type task struct {
	// req is the submission.
	req *StartRequest
	// handle is the cancellation flag.
	handle *taskHandle
	// emitter orders the events of the task.
	emitter *eventEmitter
}

// taskResult is how a task ended without an error.
type taskResult struct {
	// outcome is the statistics bucket.
	outcome taskOutcome
	// filePath is the produced or existing file.
	filePath string
	// bytes is the size of a newly produced file.
	bytes int64
}

const (
	// ledgerServiceExtractor tags ledger entries keyed by the service content id.
	ledgerServiceExtractor = "spotify"
	// defaultAudioFormatLabel is reported when no audio format is configured.
	defaultAudioFormatLabel = config.AudioFormatMP3
)

// newTask registers req and emits its queued event.
func (s *ServiceImpl) newTask(req *StartRequest) (*task, error) {
	if req == nil || strings.TrimSpace(req.TaskID) == "" {
		return nil, ErrEmptyTaskID
	}

	handle, err := s.registry.register(req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, req.TaskID)
	}

	s.stats.started()

	t := &task{
		req:     req,
		handle:  handle,
		emitter: newEventEmitter(req.TaskID, s.sink),
	}

	t.emitter.phase(TaskStatusQueued, progressQueued, messageQueued)

	return t, nil
}

// runTask waits for a worker slot, executes t and emits its terminal event.
func (s *ServiceImpl) runTask(ctx context.Context, t *task) *Event {
	ctx = logger.WithKV(ctx, "task_id", t.req.TaskID)

	// Wait for a free slot unless the task is cancelled first.
	select {
	case s.semaphore <- struct{}{}:
	case <-t.handle.done():
		return s.finishTask(ctx, t, &taskResult{outcome: taskOutcomeCancelled}, nil)
	case <-ctx.Done():
		return s.finishTask(ctx, t, &taskResult{outcome: taskOutcomeCancelled}, nil)
	}

	defer func() { <-s.semaphore }()

	// Cancelling the task also cancels the context of running external commands.
	taskCtx, cancelTask := context.WithCancel(ctx)
	defer cancelTask()

	go func() {
		select {
		case <-t.handle.done():
			cancelTask()
		case <-taskCtx.Done():
		}
	}()

	result, err := s.executeTask(taskCtx, t)

	return s.finishTask(ctx, t, result, err)
}

// finishTask emits the terminal event of t and records it in the statistics.
// The id is retired first, so a sink may resubmit it from the terminal event.
func (s *ServiceImpl) finishTask(ctx context.Context, t *task, result *taskResult, err error) *Event {
	s.registry.remove(t.handle)

	if err != nil {
		// Failures observed after cancellation are reported as cancellation.
		if s.isCancelled(ctx, t) {
			logger.Debugf(ctx, "Task failed after cancellation: %v", err)

			result = &taskResult{outcome: taskOutcomeCancelled}
		} else {
			message := fmt.Sprintf(messageFailedFormat, err)
			if errors.Is(err, ErrInvalidURL) {
				message = invalidURLMessage
			}

			logger.Errorf(ctx, "Task failed: %v", err)

			s.stats.record(taskOutcomeFailed, 0, &TaskError{
				TaskID:       t.req.TaskID,
				URL:          t.req.URL,
				ErrorMessage: message,
			})

			return t.emitter.failed(message)
		}
	}

	s.stats.record(result.outcome, result.bytes, nil)

	switch result.outcome {
	case taskOutcomeCancelled:
		logger.Info(ctx, "Task cancelled")

		return t.emitter.cancelled()
	case taskOutcomeSkipped:
		logger.Info(ctx, "Content is already downloaded, skipping")

		return t.emitter.completed(messageAlreadyDownloaded, result.filePath)
	case taskOutcomeDegraded:
		logger.Infof(ctx, "Saved in original format: %s", result.filePath)

		return t.emitter.completed(messageCompletedDegraded, result.filePath)
	default:
		logger.Infof(ctx, "Saved: %s", result.filePath)

		return t.emitter.completed(messageCompleted, result.filePath)
	}
}

// isCancelled reports whether t was flagged or its context is done.
func (s *ServiceImpl) isCancelled(ctx context.Context, t *task) bool {
	return t.handle.isCancelled() || ctx.Err() != nil
}

// executeTask runs the phases of t. Cancellation is checked at every phase boundary.
//
//nolint:funlen,gocognit,cyclop // Linear pipeline, splitting it hides the phase order.
func (s *ServiceImpl) executeTask(ctx context.Context, t *task) (*taskResult, error) {
	cancelled := &taskResult{outcome: taskOutcomeCancelled}

	// Step 1: Validate the link before any network access.
	validation := s.urlProcessor.Validate(t.req.URL)
	if !validation.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, t.req.URL)
	}

	outputDir := strings.TrimSpace(t.req.OutputDir)
	if outputDir == "" {
		outputDir = s.cfg.OutputPath
	}

	bitrateText := strings.TrimSpace(t.req.Bitrate)
	if bitrateText == "" {
		bitrateText = s.cfg.Bitrate
	}

	bitrate, err := config.ParseBitrate(bitrateText)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(outputDir, constants.DefaultFolderPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Step 2: Consult the ledger of the destination.
	var downloadLedger *ledger.Ledger

	if t.req.SkipExisting {
		downloadLedger = ledger.New(outputDir)

		isKnown, containsErr := downloadLedger.Contains(validation.ID)
		if containsErr != nil {
			logger.Warnf(ctx, "Failed to read download ledger: %v", containsErr)
		} else if isKnown {
			return &taskResult{outcome: taskOutcomeSkipped}, nil
		}
	}

	if s.isCancelled(ctx, t) {
		return cancelled, nil
	}

	// Step 3: Resolve the title and build the backend query.
	t.emitter.phase(TaskStatusResolving, progressResolving, messageResolving)

	title := s.titleResolver.ResolveTitle(ctx, validation.URL)

	if s.isCancelled(ctx, t) {
		return cancelled, nil
	}

	t.emitter.phase(TaskStatusSearching, progressSearching, messageSearching)

	query := BuildSearchQuery(s.cfg.SearchPrefix, title, validation.URL)
	logger.Debugf(ctx, "Backend query: %s", query)

	// Step 4: Fetch into an isolated work directory.
	workDir, err := os.MkdirTemp(s.cfg.TempPath, constants.TempDirPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	defer s.cleanupWorkDir(ctx, workDir)

	if s.isCancelled(ctx, t) {
		return cancelled, nil
	}

	t.emitter.phase(TaskStatusDownloading, progressConnecting, messageConnecting)

	fetchRequest := &FetchRequest{
		Query:       query,
		WorkDir:     workDir,
		IsCancelled: func() bool { return s.isCancelled(ctx, t) },
		OnProgress:  t.emitter.download,
	}

	if downloadLedger != nil {
		fetchRequest.ArchivePath = downloadLedger.Path()
	}

	fetchResult, err := s.fetcher.Fetch(ctx, fetchRequest)
	if err != nil {
		return nil, err
	}

	switch fetchResult.Outcome {
	case FetchOutcomeAborted:
		return cancelled, nil
	case FetchOutcomeSkipped:
		s.recordLedger(ctx, downloadLedger, validation.ID, nil)

		return &taskResult{outcome: taskOutcomeSkipped}, nil
	case FetchOutcomeFetched:
	}

	if s.isCancelled(ctx, t) {
		return cancelled, nil
	}

	// Step 5: Transcode into the staging area.
	t.emitter.phase(TaskStatusProcessing, progressProcessing, messageProcessing)

	audioFormat := s.cfg.AudioFormat
	if audioFormat == "" {
		audioFormat = defaultAudioFormatLabel
	}

	t.emitter.phase(TaskStatusProcessing, progressConverting, fmt.Sprintf(messageConvertingFormat, audioFormat))

	metadata := fetchResult.Metadata
	if metadata == nil {
		metadata = new(Metadata)
	}

	baseName := utils.SanitizeFilename(firstNonEmpty(metadata.Title, title))

	transcodeResult, err := s.transcoder.Transcode(ctx, &TranscodeRequest{
		SourcePath:  fetchResult.FilePath,
		OutputDir:   outputDir,
		BaseName:    baseName,
		WorkDir:     workDir,
		Bitrate:     bitrate,
		AudioFormat: audioFormat,
	})
	if err != nil {
		return nil, err
	}

	if transcodeResult.IsExisting {
		s.recordLedger(ctx, downloadLedger, validation.ID, metadata)

		existing := &taskResult{outcome: taskOutcomeCompleted, filePath: transcodeResult.DestinationPath}
		if transcodeResult.IsDegraded {
			existing.outcome = taskOutcomeDegraded
		}

		return existing, nil
	}

	if s.isCancelled(ctx, t) {
		return cancelled, nil
	}

	// Step 6: Tag the staged file.
	s.tagStagedFile(ctx, t, transcodeResult.StagedPath, workDir, baseName, metadata)

	// Nothing is placed once the task is cancelled.
	if s.isCancelled(ctx, t) {
		return cancelled, nil
	}

	// Step 7: Place the file and record it.
	if err = placeFile(transcodeResult.StagedPath, transcodeResult.DestinationPath); err != nil {
		return nil, err
	}

	info, err := os.Stat(transcodeResult.DestinationPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDownloadOutputNotFound, transcodeResult.DestinationPath)
	}

	s.recordLedger(ctx, downloadLedger, validation.ID, metadata)

	result := &taskResult{
		outcome:  taskOutcomeCompleted,
		filePath: transcodeResult.DestinationPath,
		bytes:    info.Size(),
	}

	if transcodeResult.IsDegraded {
		result.outcome = taskOutcomeDegraded
	}

	return result, nil
}

// tagStagedFile embeds metadata and artwork. Tagging failures never fail the task.
func (s *ServiceImpl) tagStagedFile(
	ctx context.Context,
	t *task,
	stagedPath, workDir, baseName string,
	metadata *Metadata,
) {
	if !s.tagProcessor.IsTaggable(stagedPath) {
		logger.Debugf(ctx, "Container of %s does not carry tags", filepath.Base(stagedPath))

		return
	}

	var coverPath string
	if t.req.EmbedArt && metadata.Thumbnail != "" {
		coverPath = s.artworkFetcher.FetchArtwork(ctx, metadata.Thumbnail, workDir, baseName)
	}

	err := s.tagProcessor.WriteTags(ctx, &WriteTagsRequest{
		TrackPath: stagedPath,
		CoverPath: coverPath,
		Title:     metadata.Title,
		Artist:    firstNonEmpty(metadata.Artist, metadata.Uploader),
		Album:     metadata.Album,
	})
	if err != nil {
		logger.Warnf(ctx, "Failed to write tags: %v", err)
	}
}

// recordLedger stores the service id and the backend id of a downloaded item.
func (s *ServiceImpl) recordLedger(ctx context.Context, downloadLedger *ledger.Ledger, contentID string, metadata *Metadata) {
	if downloadLedger == nil {
		return
	}

	if _, err := downloadLedger.Record(ledgerServiceExtractor, contentID); err != nil {
		logger.Warnf(ctx, "Failed to update download ledger: %v", err)
	}

	if metadata == nil || metadata.ID == "" {
		return
	}

	if _, err := downloadLedger.Record(metadata.Extractor, metadata.ID); err != nil {
		logger.Warnf(ctx, "Failed to update download ledger: %v", err)
	}
}

// cleanupWorkDir removes a work directory unless temporary files are kept.
func (s *ServiceImpl) cleanupWorkDir(ctx context.Context, workDir string) {
	if s.cfg.KeepTempFiles {
		logger.Debugf(ctx, "Keeping work directory %s", workDir)

		return
	}

	if err := os.RemoveAll(workDir); err != nil {
		logger.Warnf(ctx, "Failed to remove work directory %s: %v", workDir, err)
	}
}

// placeFile moves stagedPath to a .part file next to destinationPath, then renames it into place.
// A destination that appeared in the meantime is kept.
func placeFile(stagedPath, destinationPath string) error {
	partPath := destinationPath + constants.ExtensionPart

	if err := utils.MoveFile(stagedPath, partPath); err != nil {
		return fmt.Errorf("failed to move staged file: %w", err)
	}

	if exists, _ := utils.IsFileExist(destinationPath); exists {
		_ = os.Remove(partPath)

		return nil
	}

	if err := os.Rename(partPath, destinationPath); err != nil {
		_ = os.Remove(partPath)

		return fmt.Errorf("failed to finalize file: %w", err)
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}

	return ""
}
