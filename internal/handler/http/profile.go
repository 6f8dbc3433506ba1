// SPDX-License-Identifier: Apache-2.0

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/service"
	"github.com/keepsake-dev/keepsake/models"
)

// idFromURL parses the named chi URL parameter as a positive int64 id.
func idFromURL(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrInvalidDataProvided
	}

	return id, nil
}

// getExtendedProfile returns the user's extended profile. A user that never
// saved one gets 404; that absence is a valid state, not an error condition.
func (h *Handler) getExtendedProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	profile, err := h.services.AccountService.GetExtendedProfile(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.ProfileResponse{
		Message: "profile retrieved successfully",
		Profile: profile,
	}, http.StatusOK)
}

// putExtendedProfile replaces the user's extended profile wholesale.
// Fields absent from the body are stored as NULL, not merged.
func (h *Handler) putExtendedProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	var upsert models.ProfileUpsert
	if err := json.NewDecoder(r.Body).Decode(&upsert); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	profile, err := h.services.AccountService.UpsertExtendedProfile(r.Context(), userID, upsert)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.ProfileResponse{
		Message: "profile saved successfully",
		Profile: profile,
	}, http.StatusOK)
}

func (h *Handler) addApprover(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	var approver models.Approver
	if err := json.NewDecoder(r.Body).Decode(&approver); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}
	approver.UserID = userID

	saved, err := h.services.AccountService.AddApprover(r.Context(), approver)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.ApproverResponse{
		Message:  "approver added successfully",
		Approver: saved,
	}, http.StatusCreated)
}

func (h *Handler) listApprovers(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	approvers, err := h.services.AccountService.ListApprovers(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.ApproversResponse{
		Message:   "approvers retrieved successfully",
		Approvers: approvers,
	}, http.StatusOK)
}

func (h *Handler) updateApprover(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	approverID, err := idFromURL(r, "approverID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var update models.ApproverUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	approver, err := h.services.AccountService.UpdateApprover(r.Context(), approverID, userID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.ApproverResponse{
		Message:  "approver updated successfully",
		Approver: approver,
	}, http.StatusOK)
}

// deleteApprover removes one approver. The service refuses the delete when
// fewer than two approvers would remain, which surfaces as 409 Conflict.
func (h *Handler) deleteApprover(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	approverID, err := idFromURL(r, "approverID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.AccountService.DeleteApprover(r.Context(), approverID, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.MessageResponse{
		Message: "approver deleted successfully",
	}, http.StatusOK)
}

// validateApprovers reports whether the user currently satisfies the
// two-approver minimum.
func (h *Handler) validateApprovers(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	valid, err := h.services.AccountService.ValidateMinimumApprovers(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.ApproverValidationResponse{
		HasMinimumApprovers: valid,
	}, http.StatusOK)
}

func (h *Handler) addRecipient(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	var recipient models.Recipient
	if err := json.NewDecoder(r.Body).Decode(&recipient); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}
	recipient.UserID = userID

	saved, err := h.services.AccountService.AddRecipient(r.Context(), recipient)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.RecipientResponse{
		Message:   "recipient added successfully",
		Recipient: saved,
	}, http.StatusCreated)
}

func (h *Handler) listRecipients(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	recipients, err := h.services.AccountService.ListRecipients(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.RecipientsResponse{
		Message:    "recipients retrieved successfully",
		Recipients: recipients,
	}, http.StatusOK)
}

func (h *Handler) updateRecipient(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	recipientID, err := idFromURL(r, "recipientID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var update models.RecipientUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	recipient, err := h.services.AccountService.UpdateRecipient(r.Context(), recipientID, userID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.RecipientResponse{
		Message:   "recipient updated successfully",
		Recipient: recipient,
	}, http.StatusOK)
}

func (h *Handler) deleteRecipient(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	recipientID, err := idFromURL(r, "recipientID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.AccountService.DeleteRecipient(r.Context(), recipientID, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.MessageResponse{
		Message: "recipient deleted successfully",
	}, http.StatusOK)
}
