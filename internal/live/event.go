// Package live fans scoring events out to websocket viewers and, when
// configured, to an AMQP exchange.
package live

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBallRecorded EventType = "ball_recorded"
	EventBallUndone   EventType = "ball_undone"
	EventInningsBreak EventType = "innings_break"
	EventMatchUpdated EventType = "match_updated"
)

// Event is one message on the live feed of a match.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MatchID   uint        `json:"match_id"`
	Status    string      `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, matchID uint, status string, data interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MatchID:   matchID,
		Status:    status,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Publisher delivers committed events. Publishing is best effort: a failed
// publish never rolls back the scoring change that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

// MultiPublisher sends each event to every publisher in order and returns
// the first error after trying them all.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, event Event) error {
	var firstErr error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Recorder keeps every published event in memory. Tests use it to assert on
// what a scoring operation emitted. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()
	return nil
}

// Events returns a copy of the recorded events in publish order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []EventType {
	events := r.Events()
	types := make([]EventType, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}
