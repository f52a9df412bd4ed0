package realtime

import "sync"

// Broadcaster publishes events to live subscribers (SSE streams, websocket clients).
type Broadcaster[E any] struct {
	mu   sync.Mutex
	subs map[chan E]struct{}
	size int
}

// DefaultBuffer is the per-subscriber channel capacity.
const DefaultBuffer = 10

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster[E any]() *Broadcaster[E] {
	return &Broadcaster[E]{
		subs: make(map[chan E]struct{}),
		size: DefaultBuffer,
	}
}

// Subscribe registers a new subscriber and returns its event channel.
func (b *Broadcaster[E]) Subscribe() chan E {
	ch := make(chan E, b.size)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. Safe to call twice.
func (b *Broadcaster[E]) Unsubscribe(ch chan E) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Publish delivers an event to all subscribers without blocking.
func (b *Broadcaster[E]) Publish(event E) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Drop if the subscriber is lagging; the next event carries full state.
		}
	}
}

// Len returns the number of current subscribers.
func (b *Broadcaster[E]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
