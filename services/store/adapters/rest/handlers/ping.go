package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/pkg/res"
)

func NewPingHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.Ping(ctx); err != nil {
			log.Error("ping failed", "error", err)
			res.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
		res.Json(w, map[string]any{"ok": true}, http.StatusOK)
	}
}
