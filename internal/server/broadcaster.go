package server

import (
	"context"
	"sync"
	"time"

	"github.com/oshokin/spot-grabber/internal/logger"
	"github.com/oshokin/spot-grabber/internal/service/grabber"
)

const (
	// DefaultSubscriberBuffer is the number of events buffered per subscriber.
	DefaultSubscriberBuffer = 1024
	// defaultTerminalTimeout is how long a terminal event waits for room in a full buffer.
	defaultTerminalTimeout = time.Second
)

// Broadcaster is an event sink that fans events out to every subscriber.
// A subscriber whose buffer is full misses progress events. A terminal event waits
// briefly for room and, when there is none, the subscriber is evicted so its stream
// ends instead of silently missing the outcome of a task.
type Broadcaster struct {
	// bufferSize is the channel capacity of each subscriber.
	bufferSize int
	// terminalTimeout bounds the wait for a full subscriber on terminal events.
	terminalTimeout time.Duration
	// mu protects subscribers and nextID.
	mu sync.RWMutex
	// subscribers maps subscription ids to their channels.
	subscribers map[uint64]chan *grabber.Event
	// nextID is the id of the next subscription.
	nextID uint64
}

// NewBroadcaster creates a Broadcaster. A non-positive bufferSize means DefaultSubscriberBuffer.
func NewBroadcaster(bufferSize int) *Broadcaster {
	if bufferSize <= 0 {
		bufferSize = DefaultSubscriberBuffer
	}

	return &Broadcaster{
		bufferSize:      bufferSize,
		terminalTimeout: defaultTerminalTimeout,
		subscribers:     make(map[uint64]chan *grabber.Event),
	}
}

// Emit delivers event to every subscriber.
// Progress events never block. Terminal events block up to terminalTimeout per full subscriber.
func (b *Broadcaster) Emit(event *grabber.Event) {
	isTerminal := event.Status.IsTerminal()

	var evicted []uint64

	b.mu.RLock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
			continue
		default:
		}

		if !isTerminal {
			logger.Warnf(context.Background(), "Subscriber %d is too slow, dropping event %s", id, event)

			continue
		}

		if !b.sendWithTimeout(ch, event) {
			evicted = append(evicted, id)
		}
	}

	b.mu.RUnlock()

	for _, id := range evicted {
		logger.Warnf(context.Background(), "Subscriber %d missed terminal event %s, closing its stream", id, event)

		b.remove(id)
	}
}

func (b *Broadcaster) sendWithTimeout(ch chan<- *grabber.Event, event *grabber.Event) bool {
	timer := time.NewTimer(b.terminalTimeout)
	defer timer.Stop()

	select {
	case ch <- event:
		return true
	case <-timer.C:
		return false
	}
}

// remove deletes and closes the subscription id if it is still registered.
func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return
	}

	delete(b.subscribers, id)
	close(ch)
}

// Subscribe registers a new subscriber. The returned function unsubscribes and closes the channel.
func (b *Broadcaster) Subscribe() (<-chan *grabber.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan *grabber.Event, b.bufferSize)
	b.subscribers[id] = ch

	return ch, func() { b.remove(id) }
}

// SubscriberCount returns the number of active subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.subscribers)
}
