package grabber

import (
	"fmt"
	"sync"
)

// Progress checkpoints of a task.
const (
	progressQueued     = 0
	progressResolving  = 2
	progressSearching  = 5
	progressConnecting = 8
	progressProcessing = 90
	progressConverting = 93
	progressCompleted  = 100
)

// Event messages.
const (
	messageQueued            = "Queued"
	messageResolving         = "Resolving Spotify metadata..."
	messageSearching         = "Searching matching audio source..."
	messageConnecting        = "Connecting to source..."
	messageDownloadingFormat = "Downloading... %d%%"
	messageProcessing        = "Processing audio..."
	messageConvertingFormat  = "Converting to %s..."
	messageCompleted         = "Download completed"
	messageCompletedDegraded = "Download completed (no ffmpeg: original format)"
	messageAlreadyDownloaded = "Already downloaded"
	messageCancelled         = "Download cancelled"
	messageFailedFormat      = "Download failed: %v"
)

// eventEmitter emits the ordered events of one task.
// Non-terminal progress never decreases and at most one terminal event is emitted.
type eventEmitter struct {
	taskID string
	sink   EventSink

	mu           sync.Mutex
	lastProgress int
	finished     bool
	terminal     *Event
}

func newEventEmitter(taskID string, sink EventSink) *eventEmitter {
	return &eventEmitter{
		taskID:       taskID,
		sink:         sink,
		lastProgress: progressQueued,
	}
}

// phase emits a non-terminal event. Progress lower than the last emitted value is raised to it.
func (e *eventEmitter) phase(status TaskStatus, progress int, message string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return
	}

	if progress < e.lastProgress {
		progress = e.lastProgress
	}

	e.lastProgress = progress

	e.emitLocked(&Event{
		TaskID:   e.taskID,
		Status:   status,
		Progress: progress,
		Message:  message,
		Type:     EventTypeInfo,
	})
}

// download emits a download tick only when it raises progress.
func (e *eventEmitter) download(progress int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished || progress <= e.lastProgress {
		return
	}

	e.lastProgress = progress

	e.emitLocked(&Event{
		TaskID:   e.taskID,
		Status:   TaskStatusDownloading,
		Progress: progress,
		Message:  fmt.Sprintf(messageDownloadingFormat, progress),
		Type:     EventTypeInfo,
	})
}

func (e *eventEmitter) completed(message, filePath string) *Event {
	return e.finish(&Event{
		TaskID:   e.taskID,
		Status:   TaskStatusCompleted,
		Progress: progressCompleted,
		Message:  message,
		FilePath: filePath,
		Type:     EventTypeSuccess,
	})
}

func (e *eventEmitter) cancelled() *Event {
	return e.finish(&Event{
		TaskID:   e.taskID,
		Status:   TaskStatusCancelled,
		Progress: 0,
		Message:  messageCancelled,
		Type:     EventTypeWarning,
	})
}

func (e *eventEmitter) failed(message string) *Event {
	return e.finish(&Event{
		TaskID:   e.taskID,
		Status:   TaskStatusError,
		Progress: 0,
		Message:  message,
		Type:     EventTypeError,
	})
}

// finish emits the terminal event once. Later calls return the first terminal event.
func (e *eventEmitter) finish(event *Event) *Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return e.terminal
	}

	e.finished = true
	e.terminal = event

	e.emitLocked(event)

	return event
}

func (e *eventEmitter) emitLocked(event *Event) {
	if e.sink != nil {
		e.sink.Emit(event)
	}
}
