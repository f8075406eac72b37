package rest

import (
	"errors"
	"net/http"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/pkg/res"
)

func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidArgs):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidCredentials):
		res.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrTaskNotFound), errors.Is(err, core.ErrUserNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrEmailTaken):
		res.Error(w, err.Error(), http.StatusConflict)
	default:
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
