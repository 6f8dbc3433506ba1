package http

import (
	"net/http"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/utils"
	"github.com/keepsake-dev/keepsake/models"
)

// respondError writes err as a JSON error body with the status resolved by
// statusFromError. Unexpected errors are logged and the detail is withheld
// from the response body.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	body := models.ErrorResponse{Error: http.StatusText(status)}
	if status == http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("unexpected error")
	} else {
		body.Message = err.Error()
	}

	if _, writeErr := utils.WriteJSON(w, body, status); writeErr != nil {
		logger.FromRequest(r).Err(writeErr).Msg("error writing error response")
	}
}

// respondJSON writes data as JSON, logging write failures.
func (h *Handler) respondJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}
