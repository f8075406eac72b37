package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

func New(log *slog.Logger, address string) (*DB, error) {
	db, err := sqlx.Connect("pgx", address)
	if err != nil {
		log.Error("connection problem", "address", address, "error", err)
		return nil, err
	}
	return &DB{log: log, conn: db}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Users

func (db *DB) CreateUser(ctx context.Context, email, displayName, passwordHash string) (core.User, error) {
	const q = `
		INSERT INTO users(id, email, display_name, password_hash)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		RETURNING id, email, COALESCE(display_name, '') AS display_name, password_hash, created_at;
	`

	var u core.User
	err := db.conn.QueryRowxContext(ctx, q, uuid.NewString(), email, displayName, passwordHash).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, core.ErrEmailTaken
		}
		return core.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (core.User, error) {
	const q = `
		SELECT id, email, COALESCE(display_name, '') AS display_name, password_hash, created_at
		FROM users
		WHERE email = $1;
	`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, q, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (db *DB) GetUser(ctx context.Context, id string) (core.User, error) {
	const q = `
		SELECT id, email, COALESCE(display_name, '') AS display_name, password_hash, created_at
		FROM users
		WHERE id = $1;
	`

	var u core.User
	if err := db.conn.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, core.ErrUserNotFound
		}
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Tasks

const taskColumns = `id, owner_id, title, COALESCE(description, '') AS description, completed, due_date, COALESCE(category, '') AS category, created_at, updated_at`

func (db *DB) CreateTask(ctx context.Context, in core.NewTask) (core.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.OwnerID == "" || in.Title == "" {
		return core.Task{}, core.ErrInvalidArgs
	}

	const q = `
		INSERT INTO tasks(id, owner_id, title, description, due_date, category)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		RETURNING ` + taskColumns + `;
	`

	var t core.Task
	err := db.conn.QueryRowxContext(ctx, q,
		uuid.NewString(), in.OwnerID, in.Title, strings.TrimSpace(in.Description), in.DueDate, string(in.Category)).
		Scan(&t.ID, &t.OwnerID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.Category, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return core.Task{}, core.ErrUserNotFound
		}
		if isCheckViolation(err) {
			return core.Task{}, core.ErrInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (db *DB) GetTask(ctx context.Context, ownerID, id string) (core.Task, error) {
	const q = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND owner_id = $2;
	`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (db *DB) ListTasks(ctx context.Context, ownerID string) ([]core.Task, error) {
	const q = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC;
	`

	var out []core.Task
	if err := db.conn.SelectContext(ctx, &out, q, ownerID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (db *DB) UpdateTask(ctx context.Context, t core.Task) (core.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.ID == "" || t.OwnerID == "" || t.Title == "" {
		return core.Task{}, core.ErrInvalidArgs
	}

	const q = `
		UPDATE tasks
		SET title = $3,
		    description = $4,
		    completed = $5,
		    due_date = $6,
		    category = NULLIF($7, ''),
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING ` + taskColumns + `;
	`

	var out core.Task
	err := db.conn.GetContext(ctx, &out, q,
		t.ID, t.OwnerID, t.Title, strings.TrimSpace(t.Description), t.Completed, t.DueDate, string(t.Category))
	if err != nil {
		if isCheckViolation(err) {
			return core.Task{}, core.ErrInvalidArgs
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("update task: %w", err)
	}
	return out, nil
}

func (db *DB) DeleteTask(ctx context.Context, ownerID, id string) error {
	const q = `DELETE FROM tasks WHERE id = $1 AND owner_id = $2`

	res, err := db.conn.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

// pg helpers

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
