package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/adapters/rest"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
)

func Register(mux *http.ServeMux, log *slog.Logger, svc *core.Service, tokens *rest.TokenIssuer, timeout time.Duration) {
	// ping
	mux.Handle("GET /api/ping", NewPingHandler(log, svc, timeout))

	// auth
	mux.Handle("POST /api/auth/register", NewRegisterHandler(log, svc, tokens, timeout))
	mux.Handle("POST /api/auth/login", NewLoginHandler(log, svc, tokens, timeout))

	// tasks, owner-scoped behind the bearer token
	mux.Handle("POST /api/tasks", rest.RequireAuth(tokens, NewCreateTaskHandler(log, svc, timeout)))
	mux.Handle("GET /api/tasks", rest.RequireAuth(tokens, NewListTasksHandler(log, svc, timeout)))
	mux.Handle("GET /api/tasks/{id}", rest.RequireAuth(tokens, NewGetTaskHandler(log, svc, timeout)))
	mux.Handle("PATCH /api/tasks/{id}", rest.RequireAuth(tokens, NewPatchTaskHandler(log, svc, timeout)))
	mux.Handle("DELETE /api/tasks/{id}", rest.RequireAuth(tokens, NewDeleteTaskHandler(log, svc, timeout)))
}
