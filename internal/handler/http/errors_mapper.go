package http

import (
	"errors"
	"net/http"

	"github.com/keepsake-dev/keepsake/internal/service"
	"github.com/keepsake-dev/keepsake/internal/store"
)

// errorStatusMap maps known sentinel errors to HTTP status codes.
// Errors absent from the map fall back to 500 Internal Server Error.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:             http.StatusBadRequest,
	service.ErrValidationWrongEmailFormat:      http.StatusBadRequest,
	service.ErrValidationInvalidAge:            http.StatusBadRequest,
	service.ErrValidationContactNumberRequired: http.StatusBadRequest,
	service.ErrValidationNoteIsEmpty:           http.StatusBadRequest,
	service.ErrValidationNoteTooLong:           http.StatusBadRequest,
	store.ErrInvalidRecipients:                 http.StatusBadRequest,
	store.ErrNoFieldsToUpdate:                  http.StatusBadRequest,

	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	ErrEmptyAuthorizationHeader:        http.StatusUnauthorized,
	ErrInvalidAuthorizationHeader:      http.StatusUnauthorized,
	ErrEmptyToken:                      http.StatusUnauthorized,

	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrProfileNotFound:   http.StatusNotFound,
	store.ErrApproverNotFound:  http.StatusNotFound,
	store.ErrRecipientNotFound: http.StatusNotFound,
	store.ErrNoteNotFound:      http.StatusNotFound,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrMinimumApprovers:   http.StatusConflict,
}

// statusFromError resolves err to an HTTP status code by walking the
// wrap chain with errors.Is against every known sentinel.
func statusFromError(err error) int {
	for sentinel, status := range errorStatusMap {
		if errors.Is(err, sentinel) {
			return status
		}
	}

	return http.StatusInternalServerError
}
