package core

import "context"

type DB interface {
	Ping(ctx context.Context) error

	// users
	CreateUser(ctx context.Context, email, displayName, passwordHash string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUser(ctx context.Context, id string) (User, error)

	// tasks
	CreateTask(ctx context.Context, in NewTask) (Task, error)
	GetTask(ctx context.Context, ownerID, id string) (Task, error)
	ListTasks(ctx context.Context, ownerID string) ([]Task, error)
	UpdateTask(ctx context.Context, t Task) (Task, error)
	DeleteTask(ctx context.Context, ownerID, id string) error
}
