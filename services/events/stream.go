package events

import (
	"sync"

	"slate/models"
)

// Stream is an unbounded, ordered Sink. Producers call Emit without ever
// blocking; a single pump goroutine delivers events to C() in order.
// Close must be called once the producer is done so the channel drains and closes.
type Stream struct {
	mu      sync.Mutex
	queue   []models.Event
	closed  bool
	wake    chan struct{}
	out     chan models.Event
	stopped chan struct{}
	stopOne sync.Once
}

func NewStream() *Stream {
	s := &Stream{
		wake:    make(chan struct{}, 1),
		out:     make(chan models.Event),
		stopped: make(chan struct{}),
	}
	go s.pump()
	return s
}

// Emit queues e. Events emitted after Close are dropped.
func (s *Stream) Emit(e models.Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.queue = append(s.queue, e)
	s.mu.Unlock()
	s.signal()
}

// C delivers queued events in emission order and is closed after Close once
// the queue is empty.
func (s *Stream) C() <-chan models.Event {
	return s.out
}

// Close marks the end of the stream.
func (s *Stream) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.signal()
}

// Abandon stops delivery when the consumer has gone away. Pending events are dropped.
func (s *Stream) Abandon() {
	s.Close()
	s.stopOne.Do(func() { close(s.stopped) })
}

func (s *Stream) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Stream) pump() {
	defer close(s.out)
	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		closed := s.closed
		s.mu.Unlock()

		for _, e := range batch {
			select {
			case s.out <- e:
			case <-s.stopped:
				return
			}
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		select {
		case <-s.wake:
		case <-s.stopped:
			return
		}
	}
}
