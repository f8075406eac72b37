package tests

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
)

type fakeDB struct {
	mu sync.RWMutex

	nextUserID int
	nextTaskID int

	users map[string]core.User
	tasks map[string]core.Task
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextUserID: 1,
		nextTaskID: 1,
		users:      make(map[string]core.User),
		tasks:      make(map[string]core.Task),
	}
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return out
}

func (db *fakeDB) Ping(context.Context) error {
	return nil
}

func (db *fakeDB) CreateUser(_ context.Context, email, displayName, passwordHash string) (core.User, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, u := range db.users {
		if u.Email == email {
			return core.User{}, core.ErrEmailTaken
		}
	}

	id := fmt.Sprintf("user-%d", db.nextUserID)
	db.nextUserID++

	user := core.User{
		ID:           id,
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	db.users[id] = user
	return user, nil
}

func (db *fakeDB) GetUserByEmail(_ context.Context, email string) (core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, u := range db.users {
		if u.Email == email {
			return u, nil
		}
	}
	return core.User{}, core.ErrUserNotFound
}

func (db *fakeDB) GetUser(_ context.Context, id string) (core.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	u, ok := db.users[id]
	if !ok {
		return core.User{}, core.ErrUserNotFound
	}
	return u, nil
}

func (db *fakeDB) CreateTask(_ context.Context, in core.NewTask) (core.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return core.Task{}, core.ErrInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.users[in.OwnerID]; !ok {
		return core.Task{}, core.ErrUserNotFound
	}

	id := fmt.Sprintf("task-%d", db.nextTaskID)
	db.nextTaskID++

	now := time.Now()
	task := core.Task{
		ID:          id,
		OwnerID:     in.OwnerID,
		Title:       in.Title,
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		due := *in.DueDate
		task.DueDate = &due
	}

	db.tasks[id] = cloneTask(task)
	return cloneTask(task), nil
}

func (db *fakeDB) GetTask(_ context.Context, ownerID, id string) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	task, ok := db.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return core.Task{}, core.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (db *fakeDB) ListTasks(_ context.Context, ownerID string) ([]core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]core.Task, 0, len(db.tasks))
	for _, task := range db.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		out = append(out, cloneTask(task))
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func (db *fakeDB) UpdateTask(_ context.Context, t core.Task) (core.Task, error) {
	if t.ID == "" || strings.TrimSpace(t.Title) == "" {
		return core.Task{}, core.ErrInvalidArgs
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	current, ok := db.tasks[t.ID]
	if !ok || current.OwnerID != t.OwnerID {
		return core.Task{}, core.ErrTaskNotFound
	}

	t.Title = strings.TrimSpace(t.Title)
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = time.Now()

	db.tasks[t.ID] = cloneTask(t)
	return cloneTask(t), nil
}

func (db *fakeDB) DeleteTask(_ context.Context, ownerID, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	task, ok := db.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return core.ErrTaskNotFound
	}

	delete(db.tasks, id)
	return nil
}
