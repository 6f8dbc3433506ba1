package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/models"
)

// recipientRepository is the PostgreSQL-backed implementation of
// [RecipientRepository]. Recipients share the approver shape but carry no
// minimum-count rule, so deletes are plain owner-scoped statements.
type recipientRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRecipientRepository constructs a [RecipientRepository] backed by the
// provided database connection and logger.
func NewRecipientRepository(db *DB, logger *logger.Logger) RecipientRepository {
	logger.Debug().Msg("creating recipient repository")
	return &recipientRepository{
		db:     db,
		logger: logger,
	}
}

// AddRecipient persists a new recipient and returns the fully populated
// [models.Recipient] with server-assigned fields.
func (r *recipientRepository) AddRecipient(ctx context.Context, recipient models.Recipient) (models.Recipient, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, addRecipient,
		recipient.UserID,
		recipient.Name,
		recipient.Email,
		recipient.ContactNumber1,
		recipient.ContactNumber2,
		recipient.Relationship,
		recipient.Instagram,
		recipient.Linkedin,
		recipient.Twitter,
		recipient.Facebook,
	)

	if err := scanRecipient(row, &recipient); err != nil {
		log.Err(err).Str("func", "*recipientRepository.AddRecipient").Str("user_id", recipient.UserID).Msg("failed to save recipient")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Recipient{}, ErrUserNotFound
		default:
			return models.Recipient{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return recipient, nil
}

// GetRecipientsByUserID returns every recipient owned by the given user in
// creation order. Returns an empty slice when the user has none.
func (r *recipientRepository) GetRecipientsByUserID(ctx context.Context, userID string) ([]models.Recipient, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getRecipientsByUserID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*recipientRepository.GetRecipientsByUserID").
			Str("user_id", userID).
			Msg("failed to execute query for listing recipients")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	recipients := make([]models.Recipient, 0, 10)

	for rows.Next() {
		var recipient models.Recipient

		if scanErr := scanRecipient(rows, &recipient); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*recipientRepository.GetRecipientsByUserID").
				Str("user_id", userID).
				Msg("failed to scan recipient row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		recipients = append(recipients, recipient)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*recipientRepository.GetRecipientsByUserID").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return recipients, nil
}

// UpdateRecipient applies a partial update built from the non-nil fields of
// update. Owner-scoped: a recipient id belonging to a different user yields
// [ErrRecipientNotFound].
func (r *recipientRepository) UpdateRecipient(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecipientUpdateQuery(recipientID, userID, update)
	if err != nil {
		log.Err(err).
			Str("func", "*recipientRepository.UpdateRecipient").
			Int64("recipient_id", recipientID).
			Str("user_id", userID).
			Msg("failed to build update query")
		return models.Recipient{}, err
	}

	var recipient models.Recipient
	row := r.db.QueryRowContext(ctx, query, args...)

	if scanErr := scanRecipient(row, &recipient); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "*recipientRepository.UpdateRecipient").
				Int64("recipient_id", recipientID).
				Str("user_id", userID).
				Msg("recipient not found")
			return models.Recipient{}, ErrRecipientNotFound
		}

		log.Err(scanErr).
			Str("func", "*recipientRepository.UpdateRecipient").
			Int64("recipient_id", recipientID).
			Msg("failed to execute update query")
		return models.Recipient{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return recipient, nil
}

// DeleteRecipient removes a single recipient owned by the given user.
//
// Notes keep non-owning references to recipient ids; stale ids left behind
// by a delete are filtered out when notes are read back.
func (r *recipientRepository) DeleteRecipient(ctx context.Context, recipientID int64, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteRecipient, recipientID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*recipientRepository.DeleteRecipient").
			Int64("recipient_id", recipientID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "*recipientRepository.DeleteRecipient").
			Int64("recipient_id", recipientID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		log.Warn().
			Str("func", "*recipientRepository.DeleteRecipient").
			Int64("recipient_id", recipientID).
			Str("user_id", userID).
			Msg("recipient not found")
		return ErrRecipientNotFound
	}

	return nil
}

func scanRecipient(row rowScanner, recipient *models.Recipient) error {
	return row.Scan(
		&recipient.ID,
		&recipient.UserID,
		&recipient.Name,
		&recipient.Email,
		&recipient.ContactNumber1,
		&recipient.ContactNumber2,
		&recipient.Relationship,
		&recipient.Instagram,
		&recipient.Linkedin,
		&recipient.Twitter,
		&recipient.Facebook,
		&recipient.CreatedAt,
		&recipient.UpdatedAt,
	)
}
