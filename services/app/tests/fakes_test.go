package tests

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ezgierrdogan/planning-forever-clean/services/app/core"
)

// fakeStore implements core.Store in memory with injectable failures.
type fakeStore struct {
	mu sync.Mutex

	nextID int
	order  []string
	tasks  map[string]core.Task

	createCalls int
	updateCalls int

	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID: 1,
		tasks:  make(map[string]core.Task),
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

func (s *fakeStore) ListTasks(_ context.Context, ownerID string) ([]core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listErr != nil {
		return nil, s.listErr
	}

	out := make([]core.Task, 0, len(s.order))
	for _, id := range s.order {
		if t := s.tasks[id]; t.OwnerID == ownerID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (s *fakeStore) GetTask(_ context.Context, id string) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.getErr != nil {
		return core.Task{}, s.getErr
	}

	t, ok := s.tasks[id]
	if !ok {
		return core.Task{}, core.ErrNotFound
	}
	return cloneTask(t), nil
}

func (s *fakeStore) CreateTask(_ context.Context, in core.NewTask) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.createCalls++
	if s.createErr != nil {
		return core.Task{}, s.createErr
	}

	id := fmt.Sprintf("task-%d", s.nextID)
	s.nextID++

	now := time.Now()
	t := core.Task{
		ID:          id,
		OwnerID:     in.OwnerID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		due := *in.DueDate
		t.DueDate = &due
	}

	s.order = append(s.order, id)
	s.tasks[id] = cloneTask(t)
	return cloneTask(t), nil
}

func (s *fakeStore) UpdateTask(_ context.Context, id string, p core.TaskPatch) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.updateCalls++
	if s.updateErr != nil {
		return core.Task{}, s.updateErr
	}

	cur, ok := s.tasks[id]
	if !ok {
		return core.Task{}, core.ErrNotFound
	}

	if p.Title != nil {
		cur.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		cur.Description = strings.TrimSpace(*p.Description)
	}
	if p.Completed != nil {
		cur.Completed = *p.Completed
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			cur.DueDate = nil
		} else {
			due := *p.DueDate
			cur.DueDate = &due
		}
	}
	if p.Category != nil {
		cur.Category = *p.Category
	}
	cur.UpdatedAt = time.Now()

	s.tasks[id] = cloneTask(cur)
	return cloneTask(cur), nil
}

func (s *fakeStore) DeleteTask(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}

	if _, ok := s.tasks[id]; !ok {
		return core.ErrNotFound
	}
	delete(s.tasks, id)
	for i, x := range s.order {
		if x == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeFacility implements core.NotificationFacility with injectable failures.
type fakeFacility struct {
	mu sync.Mutex

	nextHandle int
	pending    map[string]core.PendingReminder

	granted bool

	permissionCalls int
	scheduleCalls   int
	cancelCalls     int

	permissionErr error
	scheduleErr   error
	listErr       error
	cancelErr     error
}

func newFakeFacility() *fakeFacility {
	return &fakeFacility{
		nextHandle: 1,
		pending:    make(map[string]core.PendingReminder),
		granted:    true,
	}
}

func (f *fakeFacility) RequestPermission(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.permissionCalls++
	if f.permissionErr != nil {
		return false, f.permissionErr
	}
	return f.granted, nil
}

func (f *fakeFacility) ScheduleOneShot(_ context.Context, at time.Time, payload core.ReminderPayload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.scheduleCalls++
	if f.scheduleErr != nil {
		return "", f.scheduleErr
	}

	handle := fmt.Sprintf("handle-%d", f.nextHandle)
	f.nextHandle++
	f.pending[handle] = core.PendingReminder{Handle: handle, At: at, Payload: payload}
	return handle, nil
}

func (f *fakeFacility) ListPending(context.Context) ([]core.PendingReminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]core.PendingReminder, 0, len(f.pending))
	for _, p := range f.pending {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeFacility) Cancel(_ context.Context, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cancelCalls++
	if f.cancelErr != nil {
		return f.cancelErr
	}
	delete(f.pending, handle)
	return nil
}

func (f *fakeFacility) pendingFor(taskID string) []core.PendingReminder {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []core.PendingReminder
	for _, p := range f.pending {
		if p.Payload.TaskID == taskID {
			out = append(out, p)
		}
	}
	return out
}
