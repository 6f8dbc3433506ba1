// SPDX-License-Identifier: Apache-2.0

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

// approverRepository is the PostgreSQL-backed implementation of
// [ApproverRepository]. It executes all approver CRUD operations against
// the "user_approvers" table.
//
// Deletion enforces the minimum-count rule: a user must retain at least two
// approvers, so the delete runs inside a transaction that locks the user's
// approver rows before counting.
type approverRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewApproverRepository constructs an [ApproverRepository] backed by the
// provided database connection and logger.
func NewApproverRepository(db *DB, logger *logger.Logger) ApproverRepository {
	logger.Debug().Msg("creating approver repository")
	return &approverRepository{
		db:     db,
		logger: logger,
	}
}

// AddApprover persists a new approver and returns the fully populated
// [models.Approver] with server-assigned fields (ID, CreatedAt, UpdatedAt).
//
// There is no minimum-count check on creation: zero or one approvers is a
// legal transient state while the user is still filling in their profile.
func (r *approverRepository) AddApprover(ctx context.Context, approver models.Approver) (models.Approver, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, addApprover,
		approver.UserID,
		approver.Name,
		approver.Email,
		approver.ContactNumber1,
		approver.ContactNumber2,
		approver.Relationship,
		approver.Instagram,
		approver.Linkedin,
		approver.Twitter,
		approver.Facebook,
	)

	if err := scanApprover(row, &approver); err != nil {
		log.Err(err).Str("func", "*approverRepository.AddApprover").Str("user_id", approver.UserID).Msg("failed to save approver")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Approver{}, ErrUserNotFound
		default:
			return models.Approver{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return approver, nil
}

// GetApproversByUserID returns every approver owned by the given user in
// creation order. Returns an empty slice when the user has none.
func (r *approverRepository) GetApproversByUserID(ctx context.Context, userID string) ([]models.Approver, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getApproversByUserID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*approverRepository.GetApproversByUserID").
			Str("user_id", userID).
			Msg("failed to execute query for listing approvers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	approvers := make([]models.Approver, 0, 10)

	for rows.Next() {
		var approver models.Approver

		if scanErr := scanApprover(rows, &approver); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*approverRepository.GetApproversByUserID").
				Str("user_id", userID).
				Msg("failed to scan approver row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		approvers = append(approvers, approver)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*approverRepository.GetApproversByUserID").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return approvers, nil
}

// UpdateApprover applies a partial update built from the non-nil fields of
// update. The WHERE clause is owner-scoped, so an approver id belonging to a
// different user yields [ErrApproverNotFound] rather than leaking existence.
func (r *approverRepository) UpdateApprover(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildApproverUpdateQuery(approverID, userID, update)
	if err != nil {
		log.Err(err).
			Str("func", "*approverRepository.UpdateApprover").
			Int64("approver_id", approverID).
			Str("user_id", userID).
			Msg("failed to build update query")
		return models.Approver{}, err
	}

	var approver models.Approver
	row := r.db.QueryRowContext(ctx, query, args...)

	if scanErr := scanApprover(row, &approver); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().
				Str("func", "*approverRepository.UpdateApprover").
				Int64("approver_id", approverID).
				Str("user_id", userID).
				Msg("approver not found")
			return models.Approver{}, ErrApproverNotFound
		}

		log.Err(scanErr).
			Str("func", "*approverRepository.UpdateApprover").
			Int64("approver_id", approverID).
			Msg("failed to execute update query")
		return models.Approver{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return approver, nil
}

// DeleteApprover removes a single approver while enforcing the minimum-count
// invariant: the deletion is rejected with [ErrMinimumApprovers] unless at
// least two approvers remain afterwards.
//
// The check and the delete run in one transaction. The SELECT ... FOR UPDATE
// locks every approver row owned by the user, so two concurrent deletes
// cannot both observe three approvers and leave the user with one.
func (r *approverRepository) DeleteApprover(ctx context.Context, approverID int64, userID string) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "*approverRepository.DeleteApprover").
			Str("user_id", userID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, lockApproverIDs, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*approverRepository.DeleteApprover").
			Str("user_id", userID).
			Msg("failed to lock approver rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	targetFound := false
	remaining := int64(0)

	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			log.Err(scanErr).
				Str("func", "*approverRepository.DeleteApprover").
				Str("user_id", userID).
				Msg("failed to scan approver id")
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		if id == approverID {
			targetFound = true
		} else {
			remaining++
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*approverRepository.DeleteApprover").
			Str("user_id", userID).
			Msg("error occurred during rows iteration")
		return fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	if !targetFound {
		log.Warn().
			Str("func", "*approverRepository.DeleteApprover").
			Int64("approver_id", approverID).
			Str("user_id", userID).
			Msg("approver not found")
		return ErrApproverNotFound
	}

	if remaining < 2 {
		log.Warn().
			Str("func", "*approverRepository.DeleteApprover").
			Int64("approver_id", approverID).
			Str("user_id", userID).
			Int64("remaining", remaining).
			Msg("deletion would leave fewer than two approvers")
		return ErrMinimumApprovers
	}

	if _, execErr := tx.ExecContext(ctx, deleteApprover, approverID, userID); execErr != nil {
		log.Err(execErr).
			Str("func", "*approverRepository.DeleteApprover").
			Int64("approver_id", approverID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "*approverRepository.DeleteApprover").
			Int64("approver_id", approverID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "*approverRepository.DeleteApprover").
		Int64("approver_id", approverID).
		Str("user_id", userID).
		Int64("remaining", remaining).
		Msg("approver deleted")

	return nil
}

// CountApprovers returns the number of approvers currently registered for
// the given user. Used as a pure precondition read for the minimum-count
// rule.
func (r *approverRepository) CountApprovers(ctx context.Context, userID string) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := r.db.QueryRowContext(ctx, countApprovers, userID).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "*approverRepository.CountApprovers").
			Str("user_id", userID).
			Msg("failed to count approvers")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanApprover(row rowScanner, approver *models.Approver) error {
	return row.Scan(
		&approver.ID,
		&approver.UserID,
		&approver.Name,
		&approver.Email,
		&approver.ContactNumber1,
		&approver.ContactNumber2,
		&approver.Relationship,
		&approver.Instagram,
		&approver.Linkedin,
		&approver.Twitter,
		&approver.Facebook,
		&approver.CreatedAt,
		&approver.UpdatedAt,
	)
}
