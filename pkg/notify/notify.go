// Package notify broadcasts plan events to interested listeners, such as the
// API's server-sent event stream.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event reports that a plan was produced.
type Event struct {
	ID       string    `json:"id"`
	Key      string    `json:"key"` // Cache key of the plan
	Template string    `json:"template"`
	Nodes    int       `json:"nodes"`
	Cached   bool      `json:"cached"`
	Time     time.Time `json:"time"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(key, template string, nodes int, cached bool) Event {
	return Event{
		ID:       uuid.NewString(),
		Key:      key,
		Template: template,
		Nodes:    nodes,
		Cached:   cached,
		Time:     time.Now().UTC(),
	}
}

// Publisher accepts events. Implementations must not block.
type Publisher interface {
	Publish(Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) {}

// DefaultBuffer is the per-listener channel capacity.
const DefaultBuffer = 16

// Notifier fans events out to every subscribed channel.
// A listener whose buffer is full misses the event instead of stalling the
// publisher.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan Event]struct{}
	buffer    int
}

// New creates a Notifier whose listener channels hold buffer events
// (DefaultBuffer when buffer <= 0).
func New(buffer int) *Notifier {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Notifier{
		listeners: make(map[chan Event]struct{}),
		buffer:    buffer,
	}
}

// Subscribe returns a channel receiving future events.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan Event {
	ch := make(chan Event, n.buffer)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes ch. Calling it twice is harmless.
func (n *Notifier) Unsubscribe(ch chan Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.listeners[ch]; !ok {
		return
	}
	delete(n.listeners, ch)
	close(ch)
}

// Publish sends e to every listener without blocking.
func (n *Notifier) Publish(e Event) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- e:
		default:
		}
	}
}

// Len is the number of subscribed listeners.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners)
}

var (
	_ Publisher = (*Notifier)(nil)
	_ Publisher = Nop{}
)
