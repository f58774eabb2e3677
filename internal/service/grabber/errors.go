package grabber

import "errors"

// Common errors for the service layer.
var (
	// ErrEmptyTaskID indicates a submission without a task id.
	ErrEmptyTaskID = errors.New("task id cannot be empty")
	// ErrTaskAlreadyRunning indicates a submission for a task id that is still running.
	ErrTaskAlreadyRunning = errors.New("task is already running")
	// ErrInvalidURL indicates a link that is not a recognized service link.
	ErrInvalidURL = errors.New("invalid service URL")
	// ErrDownloadOutputNotFound indicates that the fetched file could not be located.
	ErrDownloadOutputNotFound = errors.New("download output not found")
	// ErrTranscodeFailed indicates a non-zero exit of the transcoder.
	ErrTranscodeFailed = errors.New("transcode failed")
	// ErrEmptyTrackPath indicates that the track file path is empty.
	ErrEmptyTrackPath = errors.New("track path cannot be empty")
	// ErrUnsupportedContainer indicates a file whose container cannot carry tags.
	ErrUnsupportedContainer = errors.New("container does not support tags")
	// ErrEmptyThumbnailURL indicates that no artwork URL was given.
	ErrEmptyThumbnailURL = errors.New("thumbnail URL cannot be empty")
)
