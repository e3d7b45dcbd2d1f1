// Package events carries progress notifications from the planner and the
// group solver to whoever is listening, in emission order.
package events

import (
	"sync"
	"time"

	"slate/models"
)

// Sink receives events. Emit must not block the caller.
type Sink interface {
	Emit(e models.Event)
}

// Emitter stamps events and forwards them to a Sink. A nil Sink discards.
type Emitter struct {
	Sink Sink
	Now  func() time.Time
}

func NewEmitter(sink Sink) *Emitter {
	return &Emitter{Sink: sink, Now: time.Now}
}

func (e *Emitter) Emit(t models.EventType, message string, data any) {
	if e == nil || e.Sink == nil {
		return
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	e.Sink.Emit(models.Event{Type: t, Message: message, Data: data, Timestamp: now()})
}

// Discard drops every event.
var Discard Sink = discard{}

type discard struct{}

func (discard) Emit(models.Event) {}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []models.Event
}

func (r *Recorder) Emit(e models.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of what has been recorded so far.
func (r *Recorder) Events() []models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []models.EventType {
	evs := r.Events()
	out := make([]models.EventType, len(evs))
	for i, e := range evs {
		out[i] = e.Type
	}
	return out
}
