package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/adapters/rest"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/pkg/res"
)

func NewRegisterHandler(log *slog.Logger, svc *core.Service, tokens *rest.TokenIssuer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.RegisterIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.RegisterUser(ctx, in.Email, in.Password, in.DisplayName)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}

		token, err := tokens.Mint(u.ID)
		if err != nil {
			log.Error("mint token", "error", err)
			res.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		res.Json(w, map[string]any{"token": token, "user": u}, http.StatusCreated)
	}
}

func NewLoginHandler(log *slog.Logger, svc *core.Service, tokens *rest.TokenIssuer, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.LoginIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		u, err := svc.Authenticate(ctx, in.Email, in.Password)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}

		token, err := tokens.Mint(u.ID)
		if err != nil {
			log.Error("mint token", "error", err)
			res.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		res.Json(w, map[string]any{"token": token, "user": u}, http.StatusOK)
	}
}
