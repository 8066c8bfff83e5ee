package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/leadpipe/internal/auth"
	"github.com/JonMunkholm/leadpipe/internal/core"
)

// errorResponse is the JSON body for every error the API returns.
type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps core taxonomy errors to HTTP statuses and logs the
// technical error server-side with the request id for correlation.
//
//	unsupported format / invalid id  -> 400 / 422
//	too large                        -> 413
//	not found (or not owned)         -> 404
//	state conflict                   -> 409
//	anything else                    -> 500 with a generic body
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, core.ErrUnsupportedFormat):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, core.ErrInvalidJobID):
		status, message = http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, core.ErrFileTooLarge):
		status, message = http.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, core.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, core.ErrStateConflict):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrEmailTaken):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, errBadCredentials):
		status, message = http.StatusUnauthorized, "invalid email or password"
	}

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeJSON(w, status, errorResponse{Error: message})
}

var errBadCredentials = errors.New("invalid email or password")

// writeJSON encodes v and writes it with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
