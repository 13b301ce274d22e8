package manager

import (
	"sync"
	"time"
)

// Event represents a manager lifecycle event.
// Minimal and stable: name + model ID and optional fields via key/values.
type Event struct {
	Name    string         `json:"event"`
	ModelID string         `json:"model_id,omitempty"`
	Time    time.Time      `json:"time"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// Event names emitted by the manager.
const (
	EventLoadAccepted  = "load_accepted"
	EventSpawnStart    = "spawn_start"
	EventSpawnError    = "spawn_error"
	EventLoadReady     = "load_ready"
	EventLoadError     = "load_error"
	EventLoadAbandoned = "load_abandoned"
	EventUnloadStart   = "unload_start"
	EventUnloadDone    = "unload_done"
	EventShutdown      = "shutdown"
)

// EventPublisher receives events from the manager. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}

// Broadcaster fans events out to subscribers. Slow subscribers miss events
// rather than stall the publisher.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
	buf  int
}

func NewBroadcaster(buf int) *Broadcaster {
	if buf <= 0 {
		buf = 64
	}
	return &Broadcaster{subs: make(map[chan Event]struct{}), buf: buf}
}

func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a subscriber. The returned func unsubscribes and closes
// the channel; it is safe to call more than once.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, b.buf)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			close(ch)
			b.mu.Unlock()
		})
	}
}

func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
