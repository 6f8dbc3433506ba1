// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/store"
	"github.com/keepsake-dev/keepsake/models"
)

// noteService is the concrete implementation of NoteService. Text validation
// happens here; recipient-reference validation happens in the repository
// transaction so it cannot race a concurrent recipient delete.
type noteService struct {
	noteRepository store.NoteRepository
	logger         *logger.Logger
}

// NewNoteService constructs a NoteService wired to the given NoteRepository.
func NewNoteService(noteRepository store.NoteRepository, logger *logger.Logger) NoteService {
	return &noteService{
		noteRepository: noteRepository,
		logger:         logger,
	}
}

// AddNote validates and persists a new note. The text is trimmed before the
// length checks, so whitespace-only input counts as empty.
func (s *noteService) AddNote(ctx context.Context, note models.CreateNote) (models.Note, error) {
	log := logger.FromContext(ctx)

	if note.UserID == "" {
		log.Error().Msg("no user id provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	text, err := validateNoteText(note.Text)
	if err != nil {
		log.Error().Err(err).Str("user_id", note.UserID).Msg("note validation failed")
		return models.Note{}, err
	}
	note.Text = text

	saved, err := s.noteRepository.AddNote(ctx, note)
	if err != nil {
		log.Err(err).Str("user_id", note.UserID).Msg("note creation failed")
		return models.Note{}, fmt.Errorf("note creation failed: %w", err)
	}

	return saved, nil
}

func (s *noteService) ListNotes(ctx context.Context, userID string) ([]models.NoteWithRecipients, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return nil, ErrInvalidDataProvided
	}

	notes, err := s.noteRepository.GetNotesByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("note listing failed")
		return nil, fmt.Errorf("note listing failed: %w", err)
	}

	return notes, nil
}

func (s *noteService) GetNote(ctx context.Context, noteID int64, userID string) (models.NoteWithRecipients, error) {
	log := logger.FromContext(ctx)

	if userID == "" || noteID == 0 {
		log.Error().Msg("no user id or note id provided")
		return models.NoteWithRecipients{}, ErrInvalidDataProvided
	}

	note, err := s.noteRepository.GetNoteByID(ctx, noteID, userID)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Str("user_id", userID).Msg("note lookup failed")
		return models.NoteWithRecipients{}, fmt.Errorf("note lookup failed: %w", err)
	}

	return note, nil
}

// UpdateNote applies a partial update. Provided text is trimmed and
// re-validated; omitted fields pass through untouched.
func (s *noteService) UpdateNote(ctx context.Context, noteID int64, userID string, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	if userID == "" || noteID == 0 {
		log.Error().Msg("no user id or note id provided")
		return models.Note{}, ErrInvalidDataProvided
	}

	if update.Text != nil {
		text, err := validateNoteText(*update.Text)
		if err != nil {
			log.Error().Err(err).Int64("note_id", noteID).Msg("note validation failed")
			return models.Note{}, err
		}
		update.Text = &text
	}

	note, err := s.noteRepository.UpdateNote(ctx, noteID, userID, update)
	if err != nil {
		log.Err(err).Int64("note_id", noteID).Str("user_id", userID).Msg("note update failed")
		return models.Note{}, fmt.Errorf("note update failed: %w", err)
	}

	return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, noteID int64, userID string) error {
	log := logger.FromContext(ctx)

	if userID == "" || noteID == 0 {
		log.Error().Msg("no user id or note id provided")
		return ErrInvalidDataProvided
	}

	if err := s.noteRepository.DeleteNote(ctx, noteID, userID); err != nil {
		log.Err(err).Int64("note_id", noteID).Str("user_id", userID).Msg("note deletion failed")
		return fmt.Errorf("note deletion failed: %w", err)
	}

	return nil
}

// validateNoteText trims and bounds-checks note text, returning the trimmed
// form to be stored.
func validateNoteText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)

	if trimmed == "" {
		return "", ErrValidationNoteIsEmpty
	}

	if len(trimmed) > models.MaxNoteLength {
		return "", ErrValidationNoteTooLong
	}

	return trimmed, nil
}
