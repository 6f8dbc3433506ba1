// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/models"
	"github.com/lib/pq"
)

// noteRepository is the PostgreSQL-backed implementation of [NoteRepository].
// It executes all note CRUD operations against the "user_notes" table.
//
// Notes reference recipients by id through the recipient_ids array column.
// The reference is validated inside the same transaction as the write:
// the referenced recipient rows are locked FOR SHARE so that a concurrent
// recipient delete cannot slip in between validation and insert.
type noteRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewNoteRepository constructs a [NoteRepository] backed by the provided
// database connection and logger.
func NewNoteRepository(db *DB, logger *logger.Logger) NoteRepository {
	logger.Debug().Msg("creating note repository")
	return &noteRepository{
		db:     db,
		logger: logger,
	}
}

// AddNote persists a new note after validating that every referenced
// recipient id belongs to the note's owner.
//
// Error handling:
//   - Any referenced recipient missing or foreign → [ErrInvalidRecipients].
//   - Transaction or query failure → wrapped low-level sentinel.
func (r *noteRepository) AddNote(ctx context.Context, note models.CreateNote) (models.Note, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.AddNote").
			Str("user_id", note.UserID).
			Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if validateErr := validateRecipientOwnership(ctx, tx, note.UserID, note.RecipientIDs); validateErr != nil {
		log.Warn().
			Str("func", "*noteRepository.AddNote").
			Str("user_id", note.UserID).
			Int("recipients_count", len(note.RecipientIDs)).
			Msg("recipient validation failed")
		return models.Note{}, validateErr
	}

	recipientIDs := note.RecipientIDs
	if recipientIDs == nil {
		recipientIDs = []int64{}
	}

	var saved models.Note
	row := tx.QueryRowContext(ctx, addNote, note.UserID, note.Text, note.Attachment, pq.Array(recipientIDs))

	if scanErr := scanNote(row, &saved); scanErr != nil {
		log.Err(scanErr).
			Str("func", "*noteRepository.AddNote").
			Str("user_id", note.UserID).
			Msg("failed to save note")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*noteRepository.AddNote").
			Str("user_id", note.UserID).
			Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return saved, nil
}

// GetNotesByUserID returns every note owned by the user, newest first, each
// with its referenced recipients expanded. Recipient ids pointing at rows
// deleted since the note was written are silently dropped from the result.
func (r *noteRepository) GetNotesByUserID(ctx context.Context, userID string) ([]models.NoteWithRecipients, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getNotesByUserID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.GetNotesByUserID").
			Str("user_id", userID).
			Msg("failed to execute query for listing notes")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0, 50)

	for rows.Next() {
		var note models.Note

		if scanErr := scanNote(rows, &note); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*noteRepository.GetNotesByUserID").
				Str("user_id", userID).
				Msg("failed to scan note row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		notes = append(notes, note)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*noteRepository.GetNotesByUserID").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	// collect every referenced recipient id across all notes
	allIDs := make([]int64, 0, len(notes))
	seen := make(map[int64]struct{})
	for _, note := range notes {
		for _, id := range note.RecipientIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				allIDs = append(allIDs, id)
			}
		}
	}

	recipientsByID, err := r.getRecipientsByIDs(ctx, userID, allIDs)
	if err != nil {
		return nil, err
	}

	result := make([]models.NoteWithRecipients, 0, len(notes))
	for _, note := range notes {
		result = append(result, stitchNote(note, recipientsByID))
	}

	return result, nil
}

// GetNoteByID retrieves a single note with its recipients expanded.
// Owner-scoped: [ErrNoteNotFound] covers both a missing id and an id owned
// by a different user.
func (r *noteRepository) GetNoteByID(ctx context.Context, noteID int64, userID string) (models.NoteWithRecipients, error) {
	log := logger.FromContext(ctx)

	var note models.Note
	row := r.db.QueryRowContext(ctx, getNoteByID, noteID, userID)

	if err := scanNote(row, &note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "*noteRepository.GetNoteByID").
				Int64("note_id", noteID).
				Str("user_id", userID).
				Msg("note not found")
			return models.NoteWithRecipients{}, ErrNoteNotFound
		}

		log.Err(err).
			Str("func", "*noteRepository.GetNoteByID").
			Int64("note_id", noteID).
			Msg("error: scanning error")
		return models.NoteWithRecipients{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	recipientsByID, err := r.getRecipientsByIDs(ctx, userID, note.RecipientIDs)
	if err != nil {
		return models.NoteWithRecipients{}, err
	}

	return stitchNote(note, recipientsByID), nil
}

// UpdateNote applies a partial update built from the non-nil fields of
// update. When RecipientIDs is provided, the new list is re-validated for
// ownership inside the same transaction as the write.
func (r *noteRepository) UpdateNote(ctx context.Context, noteID int64, userID string, update models.NoteUpdate) (models.Note, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildNoteUpdateQuery(noteID, userID, update)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.UpdateNote").
			Int64("note_id", noteID).
			Str("user_id", userID).
			Msg("failed to build update query")
		return models.Note{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.UpdateNote").
			Int64("note_id", noteID).
			Msg("failed to begin transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if update.RecipientIDs != nil {
		if validateErr := validateRecipientOwnership(ctx, tx, userID, *update.RecipientIDs); validateErr != nil {
			log.Warn().
				Str("func", "*noteRepository.UpdateNote").
				Int64("note_id", noteID).
				Str("user_id", userID).
				Msg("recipient validation failed")
			return models.Note{}, validateErr
		}
	}

	var note models.Note
	row := tx.QueryRowContext(ctx, query, args...)

	if scanErr := scanNote(row, &note); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "*noteRepository.UpdateNote").
				Int64("note_id", noteID).
				Str("user_id", userID).
				Msg("note not found")
			return models.Note{}, ErrNoteNotFound
		}

		log.Err(scanErr).
			Str("func", "*noteRepository.UpdateNote").
			Int64("note_id", noteID).
			Msg("failed to execute update query")
		return models.Note{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*noteRepository.UpdateNote").
			Int64("note_id", noteID).
			Msg("failed to commit transaction")
		return models.Note{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return note, nil
}

// DeleteNote removes a single note owned by the given user.
// Returns [ErrNoteNotFound] when no row was deleted.
func (r *noteRepository) DeleteNote(ctx context.Context, noteID int64, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteNote, noteID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		log.Warn().
			Str("func", "*noteRepository.DeleteNote").
			Int64("note_id", noteID).
			Str("user_id", userID).
			Msg("note not found")
		return ErrNoteNotFound
	}

	return nil
}

// validateRecipientOwnership checks inside tx that every id in recipientIDs
// refers to a recipient owned by userID, locking the matched rows FOR SHARE
// for the remainder of the transaction. An empty or nil list is valid.
func validateRecipientOwnership(ctx context.Context, tx *sql.Tx, userID string, recipientIDs []int64) error {
	if len(recipientIDs) == 0 {
		return nil
	}

	unique := make([]int64, 0, len(recipientIDs))
	seen := make(map[int64]struct{}, len(recipientIDs))
	for _, id := range recipientIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	rows, err := tx.QueryContext(ctx, lockRecipientIDs, userID, pq.Array(unique))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	found := 0
	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		found++
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if found != len(unique) {
		return ErrInvalidRecipients
	}

	return nil
}

// getRecipientsByIDs fetches the given recipient ids owned by userID and
// returns them keyed by id. Missing ids are simply absent from the map.
func (r *noteRepository) getRecipientsByIDs(ctx context.Context, userID string, recipientIDs []int64) (map[int64]models.Recipient, error) {
	log := logger.FromContext(ctx)

	recipientsByID := make(map[int64]models.Recipient, len(recipientIDs))
	if len(recipientIDs) == 0 {
		return recipientsByID, nil
	}

	rows, err := r.db.QueryContext(ctx, getRecipientsByIDs, userID, pq.Array(recipientIDs))
	if err != nil {
		log.Err(err).
			Str("func", "*noteRepository.getRecipientsByIDs").
			Str("user_id", userID).
			Int("ids_count", len(recipientIDs)).
			Msg("failed to fetch note recipients")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipient models.Recipient

		if scanErr := scanRecipient(rows, &recipient); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*noteRepository.getRecipientsByIDs").
				Str("user_id", userID).
				Msg("failed to scan recipient row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		recipientsByID[recipient.ID] = recipient
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*noteRepository.getRecipientsByIDs").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return recipientsByID, nil
}

// stitchNote expands a note's recipient ids into full recipient records,
// preserving the order stored on the note. The Recipients slice is never nil.
func stitchNote(note models.Note, recipientsByID map[int64]models.Recipient) models.NoteWithRecipients {
	recipients := make([]models.Recipient, 0, len(note.RecipientIDs))
	for _, id := range note.RecipientIDs {
		if recipient, ok := recipientsByID[id]; ok {
			recipients = append(recipients, recipient)
		}
	}

	return models.NoteWithRecipients{
		Note:       note,
		Recipients: recipients,
	}
}

func scanNote(row rowScanner, note *models.Note) error {
	if err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Text,
		&note.Attachment,
		(*pq.Int64Array)(&note.RecipientIDs),
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		return err
	}

	if note.RecipientIDs == nil {
		note.RecipientIDs = []int64{}
	}

	return nil
}
