package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ezgierrdogan/planning-forever-clean/services/app/telemetry"
)

// Scheduler keeps at most one pending reminder per task id on top of a
// facility that only knows about one-shot triggers and opaque handles.
//
// Facility failures are logged and recorded, never returned: a task mutation
// must not fail because its reminder could not be registered.
type Scheduler struct {
	log      *slog.Logger
	facility NotificationFacility
	clock    Clock
	events   telemetry.Recorder

	mu      sync.Mutex
	granted bool
	asked   bool
}

func NewScheduler(log *slog.Logger, facility NotificationFacility, clock Clock, events telemetry.Recorder) *Scheduler {
	return &Scheduler{
		log:      log,
		facility: facility,
		clock:    clock,
		events:   events,
	}
}

// EnsurePermission asks the facility once and caches the answer.
func (s *Scheduler) EnsurePermission(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.asked {
		return s.granted
	}

	granted, err := s.facility.RequestPermission(ctx)
	if err != nil {
		s.log.Error("notification permission request failed", "error", err)
		return false
	}

	s.asked = true
	s.granted = granted
	if !granted {
		s.events.RecordEvent(telemetry.EventPermissionDenied, nil)
	}
	return granted
}

func (s *Scheduler) HasPermission() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asked && s.granted
}

// ScheduleReminder cancels any reminder tagged with the task id, then
// registers a new trigger at the due date. Tasks without a strictly future
// due date are a no-op.
func (s *Scheduler) ScheduleReminder(ctx context.Context, t Task) {
	if t.DueDate == nil {
		return
	}
	if !t.DueDate.After(s.clock.Now()) {
		return
	}
	if !s.HasPermission() {
		return
	}

	s.CancelReminder(ctx, t.ID)

	payload := ReminderPayload{
		TaskID: t.ID,
		Title:  "Task reminder",
		Body:   fmt.Sprintf("%q is due now", t.Title),
	}

	if _, err := s.facility.ScheduleOneShot(ctx, *t.DueDate, payload); err != nil {
		s.log.Error("failed to schedule reminder", "task_id", t.ID, "error", err)
		s.events.RecordEvent(telemetry.EventReminderScheduleFailed, telemetry.Metadata{
			"task_id": t.ID,
			"error":   err.Error(),
		})
	}
}

// CancelReminder removes the pending trigger tagged with taskID, if any.
// Absence is not an error.
func (s *Scheduler) CancelReminder(ctx context.Context, taskID string) {
	pending, err := s.facility.ListPending(ctx)
	if err != nil {
		s.log.Error("failed to list pending reminders", "task_id", taskID, "error", err)
		s.events.RecordEvent(telemetry.EventReminderCancelFailed, telemetry.Metadata{
			"task_id": taskID,
			"error":   err.Error(),
		})
		return
	}

	for _, p := range pending {
		if p.Payload.TaskID != taskID {
			continue
		}
		if err := s.facility.Cancel(ctx, p.Handle); err != nil {
			s.log.Error("failed to cancel reminder", "task_id", taskID, "handle", p.Handle, "error", err)
			s.events.RecordEvent(telemetry.EventReminderCancelFailed, telemetry.Metadata{
				"task_id": taskID,
				"error":   err.Error(),
			})
		}
	}
}

// RestoreReminders re-arms reminders for open tasks, e.g. after startup.
func (s *Scheduler) RestoreReminders(ctx context.Context, tasks []Task) {
	for _, t := range tasks {
		if t.Completed || t.DueDate == nil {
			continue
		}
		s.ScheduleReminder(ctx, t)
	}
}
