package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ezgierrdogan/planning-forever-clean/services/app/core"
)

// Local is an in-process notification facility: one time.Timer per pending
// trigger, delivery through a callback. Permission is granted by default
// since the host process posts to its own output.
type Local struct {
	log     *slog.Logger
	clock   core.Clock
	deliver func(core.ReminderPayload)

	mu      sync.Mutex
	pending map[string]core.PendingReminder
	timers  map[string]*time.Timer
	closed  bool
}

func NewLocal(log *slog.Logger, clock core.Clock, deliver func(core.ReminderPayload)) *Local {
	if deliver == nil {
		deliver = func(core.ReminderPayload) {}
	}
	return &Local{
		log:     log,
		clock:   clock,
		deliver: deliver,
		pending: make(map[string]core.PendingReminder),
		timers:  make(map[string]*time.Timer),
	}
}

func (l *Local) RequestPermission(context.Context) (bool, error) {
	return true, nil
}

func (l *Local) ScheduleOneShot(_ context.Context, at time.Time, payload core.ReminderPayload) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return "", core.ErrUnavailable
	}

	handle := uuid.NewString()
	l.pending[handle] = core.PendingReminder{
		Handle:  handle,
		At:      at,
		Payload: payload,
	}
	l.timers[handle] = time.AfterFunc(at.Sub(l.clock.Now()), func() {
		l.fire(handle)
	})

	l.log.Debug("reminder registered", "handle", handle, "task_id", payload.TaskID, "at", at)
	return handle, nil
}

func (l *Local) ListPending(context.Context) ([]core.PendingReminder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]core.PendingReminder, 0, len(l.pending))
	for _, p := range l.pending {
		out = append(out, p)
	}
	return out, nil
}

func (l *Local) Cancel(_ context.Context, handle string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	timer, ok := l.timers[handle]
	if !ok {
		return nil
	}
	timer.Stop()
	delete(l.timers, handle)
	delete(l.pending, handle)
	return nil
}

// Close stops all timers without delivering anything.
func (l *Local) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	for handle, timer := range l.timers {
		timer.Stop()
		delete(l.timers, handle)
		delete(l.pending, handle)
	}
}

func (l *Local) fire(handle string) {
	l.mu.Lock()
	p, ok := l.pending[handle]
	delete(l.pending, handle)
	delete(l.timers, handle)
	l.mu.Unlock()

	if !ok {
		return
	}
	l.deliver(p.Payload)
}

var _ core.NotificationFacility = (*Local)(nil)
