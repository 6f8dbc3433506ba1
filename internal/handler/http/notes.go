package http

import (
	"encoding/json"
	"net/http"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/service"
	"github.com/keepsake-dev/keepsake/models"
)

// addNote creates a note. Referenced recipient ids are validated against the
// owner inside the insert transaction; a single foreign id fails the whole
// request.
func (h *Handler) addNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	var create models.CreateNote
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}
	create.UserID = userID

	note, err := h.services.NoteService.AddNote(r.Context(), create)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.NoteResponse{
		Message: "note added successfully",
		Note:    note,
	}, http.StatusCreated)
}

// listNotes returns the user's notes newest-first with recipient references
// resolved to full records.
func (h *Handler) listNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	notes, err := h.services.NoteService.ListNotes(r.Context(), userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if notes == nil {
		notes = []models.NoteWithRecipients{}
	}

	h.respondJSON(w, r, models.NotesResponse{
		Message: "notes retrieved successfully",
		Notes:   notes,
	}, http.StatusOK)
}

func (h *Handler) getNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	noteID, err := idFromURL(r, "noteID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	note, err := h.services.NoteService.GetNote(r.Context(), noteID, userID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.NoteDetailResponse{
		Message: "note retrieved successfully",
		Note:    note,
	}, http.StatusOK)
}

// updateNote applies a partial update. Supplying recipientIds replaces the
// whole reference list; an empty list clears it.
func (h *Handler) updateNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	noteID, err := idFromURL(r, "noteID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	var update models.NoteUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Error().Err(err).Msg("invalid JSON was passed")
		h.respondError(w, r, service.ErrInvalidDataProvided)
		return
	}

	note, err := h.services.NoteService.UpdateNote(r.Context(), noteID, userID, update)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.NoteResponse{
		Message: "note updated successfully",
		Note:    note,
	}, http.StatusOK)
}

func (h *Handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userIDFromRequest(w, r)
	if !ok {
		return
	}

	noteID, err := idFromURL(r, "noteID")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if err := h.services.NoteService.DeleteNote(r.Context(), noteID, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	h.respondJSON(w, r, models.MessageResponse{
		Message: "note deleted successfully",
	}, http.StatusOK)
}
