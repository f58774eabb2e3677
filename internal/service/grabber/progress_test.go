package grabber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestEventEmitter_MonotonicProgress tests that non-terminal progress never decreases.
func TestEventEmitter_MonotonicProgress(t *testing.T) {
	t.Parallel()

	sink := new(recordingSink)
	emitter := newEventEmitter("task", sink)

	emitter.phase(TaskStatusQueued, progressQueued, messageQueued)
	emitter.phase(TaskStatusDownloading, progressConnecting, messageConnecting)
	emitter.download(40)
	emitter.download(30)
	emitter.download(40)
	emitter.download(55)
	emitter.phase(TaskStatusProcessing, 20, messageProcessing)

	events := sink.forTask("task")
	require.Len(t, events, 5)

	assert.Equal(t, []int{0, 8, 40, 55, 55}, []int{
		events[0].Progress, events[1].Progress, events[2].Progress, events[3].Progress, events[4].Progress,
	})
	assert.Equal(t, "Downloading... 40%", events[2].Message)
	assert.Equal(t, EventTypeInfo, events[4].Type)
}

// TestEventEmitter_SingleTerminal tests that only the first terminal event is emitted.
func TestEventEmitter_SingleTerminal(t *testing.T) {
	t.Parallel()

	sink := new(recordingSink)
	emitter := newEventEmitter("task", sink)

	emitter.phase(TaskStatusDownloading, 50, messageConnecting)

	first := emitter.cancelled()
	second := emitter.failed("Download failed: boom")
	third := emitter.completed(messageCompleted, "/x.mp3")

	assert.Same(t, first, second)
	assert.Same(t, first, third)

	// Nothing is emitted after the terminal event.
	emitter.phase(TaskStatusProcessing, 90, messageProcessing)
	emitter.download(95)

	events := sink.forTask("task")
	require.Len(t, events, 2)
	assert.Equal(t, TaskStatusCancelled, events[1].Status)
	assert.Equal(t, 0, events[1].Progress)
	assert.Equal(t, EventTypeWarning, events[1].Type)
}

// TestEventEmitter_TerminalEvents tests the shape of each terminal event.
func TestEventEmitter_TerminalEvents(t *testing.T) {
	t.Parallel()

	completed := newEventEmitter("a", nil).completed(messageCompleted, "/music/a.mp3")
	assert.Equal(t, &Event{
		TaskID:   "a",
		Status:   TaskStatusCompleted,
		Progress: 100,
		Message:  "Download completed",
		FilePath: "/music/a.mp3",
		Type:     EventTypeSuccess,
	}, completed)

	failed := newEventEmitter("b", nil).failed("Download failed: boom")
	assert.Equal(t, TaskStatusError, failed.Status)
	assert.Equal(t, 0, failed.Progress)
	assert.Equal(t, EventTypeError, failed.Type)
	assert.Empty(t, failed.FilePath)
}
