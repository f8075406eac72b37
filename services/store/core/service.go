package core

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type Service struct {
	db DB
}

func NewService(db DB) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Users

func (s *Service) RegisterUser(ctx context.Context, email, password, displayName string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, ErrInvalidArgs
	}
	if len(password) < minPasswordLen {
		return User{}, ErrInvalidArgs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return s.db.CreateUser(ctx, email, strings.TrimSpace(displayName), string(hash))
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) GetUser(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, ErrInvalidArgs
	}
	return s.db.GetUser(ctx, id)
}

// Tasks

func (s *Service) CreateTask(ctx context.Context, in NewTask) (Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.OwnerID == "" || in.Title == "" || in.Description == "" {
		return Task{}, ErrInvalidArgs
	}
	if !IsValidCategory(in.Category) {
		return Task{}, ErrInvalidArgs
	}
	return s.db.CreateTask(ctx, in)
}

func (s *Service) GetTask(ctx context.Context, ownerID, id string) (Task, error) {
	if ownerID == "" || id == "" {
		return Task{}, ErrInvalidArgs
	}
	return s.db.GetTask(ctx, ownerID, id)
}

func (s *Service) ListTasks(ctx context.Context, ownerID string) ([]Task, error) {
	if ownerID == "" {
		return nil, ErrInvalidArgs
	}
	return s.db.ListTasks(ctx, ownerID)
}

func (s *Service) PatchTask(ctx context.Context, ownerID, id string, p TaskPatch) (Task, error) {
	if ownerID == "" || id == "" || p.Empty() {
		return Task{}, ErrInvalidArgs
	}

	cur, err := s.db.GetTask(ctx, ownerID, id)
	if err != nil {
		return Task{}, err
	}

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Task{}, ErrInvalidArgs
		}
		cur.Title = title
	}

	if p.Description != nil {
		desc := strings.TrimSpace(*p.Description)
		if desc == "" {
			return Task{}, ErrInvalidArgs
		}
		cur.Description = desc
	}

	if p.Completed != nil {
		cur.Completed = *p.Completed
	}

	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			// clear due date
			cur.DueDate = nil
		} else {
			due := *p.DueDate
			cur.DueDate = &due
		}
	}

	if p.Category != nil {
		if !IsValidCategory(*p.Category) {
			return Task{}, ErrInvalidArgs
		}
		cur.Category = *p.Category
	}

	return s.db.UpdateTask(ctx, cur)
}

func (s *Service) DeleteTask(ctx context.Context, ownerID, id string) error {
	if ownerID == "" || id == "" {
		return ErrInvalidArgs
	}
	return s.db.DeleteTask(ctx, ownerID, id)
}
