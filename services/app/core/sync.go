package core

import (
	"context"
	"log/slog"
	"strings"
)

// Synchronizer turns user commands into remote store operations and keeps the
// local cache and the reminder state consistent with whatever the store
// confirmed. The store is the source of truth; the cache only ever holds
// results of successful remote calls, and reminders are always re-derived
// from the post-merge task the store returned, never from the caller's copy.
type Synchronizer struct {
	log   *slog.Logger
	store Store
	sched *Scheduler
	cache *Cache
	clock Clock
}

func NewSynchronizer(log *slog.Logger, store Store, sched *Scheduler, clock Clock) *Synchronizer {
	return &Synchronizer{
		log:   log,
		store: store,
		sched: sched,
		cache: NewCache(),
		clock: clock,
	}
}

// Cached returns the current local snapshot without touching the store.
func (s *Synchronizer) Cached() []Task {
	return s.cache.Tasks()
}

func (s *Synchronizer) ListTasks(ctx context.Context, ownerID string) ([]Task, error) {
	if ownerID == "" {
		return nil, ErrInvalidArgs
	}

	tasks, err := s.store.ListTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	s.cache.Replace(tasks)
	s.sched.RestoreReminders(ctx, tasks)
	return tasks, nil
}

func (s *Synchronizer) GetTask(ctx context.Context, id string) (Task, error) {
	if id == "" {
		return Task{}, ErrInvalidArgs
	}
	return s.store.GetTask(ctx, id)
}

func (s *Synchronizer) CreateTask(ctx context.Context, in NewTask) (Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.OwnerID == "" || in.Title == "" || in.Description == "" {
		return Task{}, ErrInvalidArgs
	}
	if !IsValidCategory(in.Category) {
		return Task{}, ErrInvalidArgs
	}

	created, err := s.store.CreateTask(ctx, in)
	if err != nil {
		return Task{}, err
	}

	s.cache.Apply(created)
	s.syncReminder(ctx, created)
	return created, nil
}

func (s *Synchronizer) UpdateTask(ctx context.Context, id string, p TaskPatch) (Task, error) {
	if id == "" || p.Empty() {
		return Task{}, ErrInvalidArgs
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return Task{}, ErrInvalidArgs
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return Task{}, ErrInvalidArgs
	}
	if p.Category != nil && !IsValidCategory(*p.Category) {
		return Task{}, ErrInvalidArgs
	}

	merged, err := s.store.UpdateTask(ctx, id, p)
	if err != nil {
		return Task{}, err
	}

	s.cache.Apply(merged)
	s.syncReminder(ctx, merged)
	return merged, nil
}

func (s *Synchronizer) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgs
	}

	if err := s.store.DeleteTask(ctx, id); err != nil {
		return err
	}

	s.cache.Remove(id)
	s.sched.CancelReminder(ctx, id)
	return nil
}

func (s *Synchronizer) ToggleComplete(ctx context.Context, id string) (Task, error) {
	if id == "" {
		return Task{}, ErrInvalidArgs
	}

	cur, err := s.store.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}

	completed := !cur.Completed
	return s.UpdateTask(ctx, id, TaskPatch{Completed: &completed})
}

// syncReminder re-derives the reminder binding from a confirmed task state:
// exactly one pending reminder when the task is open with a future due date
// and permission is granted, zero otherwise.
func (s *Synchronizer) syncReminder(ctx context.Context, t Task) {
	qualifies := !t.Completed &&
		t.DueDate != nil &&
		t.DueDate.After(s.clock.Now()) &&
		s.sched.HasPermission()

	if qualifies {
		s.sched.ScheduleReminder(ctx, t)
		return
	}
	s.sched.CancelReminder(ctx, t.ID)
}
