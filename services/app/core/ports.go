package core

import (
	"context"
	"time"
)

// Store is the remote document store. It assigns ids and timestamps; mutations
// return the persisted result so callers never have to guess at merged state.
type Store interface {
	ListTasks(ctx context.Context, ownerID string) ([]Task, error)
	GetTask(ctx context.Context, id string) (Task, error)
	CreateTask(ctx context.Context, in NewTask) (Task, error)
	UpdateTask(ctx context.Context, id string, p TaskPatch) (Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// NotificationFacility registers one-shot local triggers for future instants.
type NotificationFacility interface {
	RequestPermission(ctx context.Context) (bool, error)
	ScheduleOneShot(ctx context.Context, at time.Time, payload ReminderPayload) (handle string, err error)
	ListPending(ctx context.Context) ([]PendingReminder, error)
	Cancel(ctx context.Context, handle string) error
}
