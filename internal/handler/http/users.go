package http

import (
	"encoding/json"
	"net/http"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/service"
	"github.com/keepsake-dev/keepsake/internal/utils"
	"github.com/keepsake-dev/keepsake/models"
)

// userIDFromRequest pulls the authenticated user id planted by the auth
// middleware. A missing id means the route was wired without the middleware.
func (h *Handler) userIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok || userID == "" {
		logger.FromRequest(r).Error().Msg("no user id in request context")
		h.respondError(w, r, ErrEmptyToken)
		return "", false
	}

	return userID, true
}

// listUsers returns every account, newest first.
func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.AccountService.ListUsers(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.UsersResponse{
		Message: "users retrieved successfully",
		Users:   users,
	}, http.StatusOK)
}

// getMe returns the authenticated user's own account record.
func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	user, err := h.services.AccountService.GetUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.UserResponse{
		Message: "user retrieved successfully",
		User:    user,
	}, http.StatusOK)
}

// updateMe applies a partial update to the authenticated user's name and
// picture. Omitted fields are left untouched.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	user, err := h.services.AccountService.UpdateUser(r.Context(), userID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.UserResponse{
		Message: "user updated successfully",
		User:    user,
	}, http.StatusOK)
}

// deleteMe removes the authenticated user's account. Profiles, approvers,
// recipients and notes go with it via the schema's cascading deletes.
func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.services.AccountService.DeleteUser(r.Context(), userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.MessageResponse{
		Message: "user account deleted successfully",
	}, http.StatusOK)
}

// completeProfile returns the user record together with the optional
// extended profile and the approver list in a single response.
func (h *Handler) completeProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.services.AccountService.GetCompleteProfile(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.CompleteProfileResponse{
		Message: "complete profile retrieved successfully",
		Profile: profile,
	}, http.StatusOK)
}
