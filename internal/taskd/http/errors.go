package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/taskdhq/taskd/internal/taskd/service"
	"github.com/taskdhq/taskd/pkg/httpx"
	"github.com/taskdhq/taskd/pkg/slogx"
)

// writeServiceError maps service error kinds to HTTP responses. Internal
// failure detail is logged, never sent to the caller.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *service.NotFoundError
	var validation *service.ValidationError

	switch {
	case errors.As(err, &validation):
		httpx.WriteError(w, http.StatusBadRequest, "validation_error", validation.Message)
	case errors.As(err, &notFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", notFound.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", service.ErrInvalidCredentials.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteError(w, http.StatusConflict, "conflict", service.ErrUsernameTaken.Error())
	default:
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}
