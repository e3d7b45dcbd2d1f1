package events

import (
	"fmt"
	"testing"
	"time"

	"slate/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_DeliversInOrderWithoutBlockingProducer(t *testing.T) {
	s := NewStream()

	// Nobody is reading yet; Emit must still return.
	for i := 0; i < 500; i++ {
		s.Emit(models.Event{Type: models.EventCellStatusChange, Message: fmt.Sprint(i)})
	}
	s.Close()

	var got []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case e, ok := <-s.C():
			if !ok {
				require.Len(t, got, 500)
				for i, m := range got {
					assert.Equal(t, fmt.Sprint(i), m)
				}
				return
			}
			got = append(got, e.Message)
		case <-timeout:
			t.Fatal("stream did not drain")
		}
	}
}

func TestStream_EmitAfterCloseIsDropped(t *testing.T) {
	s := NewStream()
	s.Emit(models.Event{Type: models.EventIntentParsed})
	s.Close()
	s.Emit(models.Event{Type: models.EventError})

	var types []models.EventType
	for e := range s.C() {
		types = append(types, e.Type)
	}
	assert.Equal(t, []models.EventType{models.EventIntentParsed}, types)
}

func TestStream_AbandonUnblocksPump(t *testing.T) {
	s := NewStream()
	s.Emit(models.Event{Type: models.EventIntentParsed})
	s.Emit(models.Event{Type: models.EventPlanComplete})
	s.Abandon()
	s.Abandon()

	done := make(chan struct{})
	go func() {
		for range s.C() {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("channel was not closed after Abandon")
	}
}

func TestEmitter_StampsAndForwards(t *testing.T) {
	rec := &Recorder{}
	fixed := time.Date(2026, 10, 16, 18, 0, 0, 0, time.UTC)
	em := &Emitter{Sink: rec, Now: func() time.Time { return fixed }}

	em.Emit(models.EventSolvingStarted, "go", map[string]int{"n": 3})

	evs := rec.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, models.EventSolvingStarted, evs[0].Type)
	assert.Equal(t, fixed, evs[0].Timestamp)

	var nilEmitter *Emitter
	assert.NotPanics(t, func() { nilEmitter.Emit(models.EventError, "x", nil) })
}
