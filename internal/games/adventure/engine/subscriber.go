package engine

import (
	"sync"

	"github.com/vovakirdan/tui-adventure/internal/games/adventure/world"
)

// Subscriber receives world events from a session.
// Delivery never blocks the session: when the buffer is full the oldest
// event is dropped.
type Subscriber struct {
	events   chan world.Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewSubscriber creates a subscriber holding up to bufferSize events.
func NewSubscriber(bufferSize int) *Subscriber {
	if bufferSize < 1 {
		bufferSize = 64
	}
	return &Subscriber{
		events: make(chan world.Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send delivers an event, dropping the oldest buffered one if needed.
func (s *Subscriber) Send(evt world.Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *Subscriber) Events() <-chan world.Event {
	return s.events
}

// Done returns a channel closed when the subscriber is closed.
func (s *Subscriber) Done() <-chan struct{} {
	return s.done
}

// Close stops delivery. Safe to call multiple times.
func (s *Subscriber) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}
