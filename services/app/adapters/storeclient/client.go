package storeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ezgierrdogan/planning-forever-clean/services/app/core"
)

// Client talks to the store's HTTP API and translates its responses into the
// app core's types and sentinel errors.
type Client struct {
	log     *slog.Logger
	http    *http.Client
	baseURL string
	token   string
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		log:     log,
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// SetToken installs the bearer token used for task calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// ---- auth

type AuthResult struct {
	Token string `json:"token"`
	User  struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		DisplayName string `json:"display_name"`
	} `json:"user"`
}

func (c *Client) Register(ctx context.Context, email, password, displayName string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":        email,
		"password":     password,
		"display_name": displayName,
	}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// ---- core.Store

func (c *Client) ListTasks(ctx context.Context, ownerID string) ([]core.Task, error) {
	// the token already scopes the listing to its owner
	var out struct {
		Tasks []core.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &out); err != nil {
		return nil, err
	}
	return out.Tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (core.Task, error) {
	var out core.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, in core.NewTask) (core.Task, error) {
	body := map[string]any{
		"title":       in.Title,
		"description": in.Description,
	}
	if in.DueDate != nil {
		body["due_date"] = in.DueDate
	}
	if in.Category != core.CategoryNone {
		body["category"] = string(in.Category)
	}

	var out core.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", body, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, p core.TaskPatch) (core.Task, error) {
	body := map[string]any{}
	if p.Title != nil {
		body["title"] = *p.Title
	}
	if p.Description != nil {
		body["description"] = *p.Description
	}
	if p.Completed != nil {
		body["completed"] = *p.Completed
	}
	if p.DueDate != nil {
		body["due_date"] = *p.DueDate
	}
	if p.Category != nil {
		body["category"] = string(*p.Category)
	}

	var out core.Task
	err := c.do(ctx, http.MethodPatch, "/api/tasks/"+id, body, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

var _ core.Store = (*Client)(nil)

// ---- plumbing

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("store request failed", "method", method, "path", path, "error", err)
		return core.ErrUnavailable
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return mapStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func mapStatus(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusConflict:
		return fmt.Errorf("%w: %s", core.ErrInvalidArgs, readErrMessage(resp))
	case http.StatusUnauthorized:
		return core.ErrUnauthorized
	case http.StatusNotFound:
		return core.ErrNotFound
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return core.ErrUnavailable
	default:
		return fmt.Errorf("store returned %d: %s", resp.StatusCode, readErrMessage(resp))
	}
}

func readErrMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return resp.Status
	}
	return payload.Error
}
