package grabber

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/oshokin/spot-grabber/internal/logger"
)

// EventSink receives every event of every task.
// Emit is called from task goroutines and must be safe for concurrent use.
type EventSink interface {
	Emit(event *Event)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(event *Event)

// Emit calls f(event).
func (f EventSinkFunc) Emit(event *Event) {
	f(event)
}

// MultiSink fans each event out to several sinks in order.
type MultiSink []EventSink

// Emit forwards event to every sink.
func (ms MultiSink) Emit(event *Event) {
	for _, sink := range ms {
		if sink != nil {
			sink.Emit(event)
		}
	}
}

// JSONLinesSink writes one JSON document per line.
type JSONLinesSink struct {
	// writer receives the lines, guarded by mu.
	writer io.Writer
	// mu keeps lines from interleaving.
	mu sync.Mutex
}

// NewJSONLinesSink creates a JSONLinesSink. A nil writer means os.Stdout.
func NewJSONLinesSink(writer io.Writer) *JSONLinesSink {
	if writer == nil {
		writer = os.Stdout
	}

	return &JSONLinesSink{writer: writer}
}

// Emit writes event as a single line.
func (s *JSONLinesSink) Emit(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Errorf(context.Background(), "Failed to encode event: %v", err)

		return
	}

	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err = s.writer.Write(data); err != nil {
		logger.Errorf(context.Background(), "Failed to write event: %v", err)
	}
}
