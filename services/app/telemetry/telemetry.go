package telemetry

import (
	"encoding/json"
	"sync"
	"time"
)

type EventType string

const (
	EventReminderScheduleFailed EventType = "reminder_schedule_failed"
	EventReminderCancelFailed   EventType = "reminder_cancel_failed"
	EventPermissionDenied       EventType = "notification_permission_denied"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type Metadata map[string]any

// Recorder is the observability channel for failures that are deliberately
// swallowed instead of propagated.
type Recorder interface {
	RecordEvent(eventType EventType, metadata Metadata)
	Events(since time.Time, eventTypes []EventType) []Event
}

// MemoryRecorder keeps events in memory.
type MemoryRecorder struct {
	mu     sync.RWMutex
	events []Event
	nextID int
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{
		events: make([]Event, 0),
		nextID: 1,
	}
}

func (r *MemoryRecorder) RecordEvent(eventType EventType, metadata Metadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		metadataJSON = []byte("{}")
	}

	r.events = append(r.events, Event{
		ID:        r.nextID,
		Type:      eventType,
		Timestamp: time.Now(),
		Metadata:  string(metadataJSON),
	})
	r.nextID++
}

func (r *MemoryRecorder) Events(since time.Time, eventTypes []EventType) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Event
	for _, e := range r.events {
		if !since.IsZero() && e.Timestamp.Before(since) {
			continue
		}
		if len(eventTypes) > 0 && !containsType(eventTypes, e.Type) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsType(types []EventType, t EventType) bool {
	for _, x := range types {
		if x == t {
			return true
		}
	}
	return false
}
