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

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account resolution and lookup against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertOnLogin resolves an external OAuth identity to a local user record.
//
// A single INSERT ... ON CONFLICT statement either creates the account on
// first login or refreshes the mutable identity fields (email, name, picture,
// provider) and stamps last_login on every subsequent login. The RETURNING
// clause yields the canonical database representation either way.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on the email column → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped with [ErrScanningRow].
func (r *userRepository) UpsertOnLogin(ctx context.Context, identity models.ExternalIdentity) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, upsertUserOnLogin, identity.ID, identity.Email, identity.Name, identity.Picture, identity.Provider)

	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Picture, &user.Provider, &user.CreatedAt, &user.UpdatedAt, &user.LastLogin); err != nil {
		log.Err(err).Str("func", "*userRepository.UpsertOnLogin").Str("user_id", identity.ID).Msg("error resolving user on login")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return user, nil
}

// GetUserByID retrieves the user record with the given external id.
//
// Error handling:
//   - [sql.ErrNoRows] → [ErrUserNotFound].
//   - Any other error → wrapped with [ErrExecutingQuery].
func (r *userRepository) GetUserByID(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	row := r.db.QueryRowContext(ctx, getUserByID, userID)

	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Picture, &user.Provider, &user.CreatedAt, &user.UpdatedAt, &user.LastLogin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "*userRepository.GetUserByID").Str("user_id", userID).Msg("user not found")
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.GetUserByID").Str("user_id", userID).Msg("error: scanning error")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// GetAllUsers returns every registered user ordered by registration time,
// newest first.
func (r *userRepository) GetAllUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getAllUsers)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.GetAllUsers").
			Msg("failed to execute query for listing users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 50)

	for rows.Next() {
		var user models.User

		scanErr := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Picture, &user.Provider, &user.CreatedAt, &user.UpdatedAt, &user.LastLogin)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*userRepository.GetAllUsers").
				Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		users = append(users, user)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*userRepository.GetAllUsers").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return users, nil
}

// UpdateUser applies a partial update built from the non-nil fields of update.
//
// Error handling:
//   - No updatable fields → [ErrNoFieldsToUpdate].
//   - [sql.ErrNoRows] from the RETURNING clause → [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserUpdateQuery(userID, update)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateUser").
			Str("user_id", userID).
			Msg("failed to build update query")
		return models.User{}, err
	}

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	if scanErr := row.Scan(&user.ID, &user.Email, &user.Name, &user.Picture, &user.Provider, &user.CreatedAt, &user.UpdatedAt, &user.LastLogin); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			log.Warn().Str("func", "*userRepository.UpdateUser").Str("user_id", userID).Msg("user not found")
			return models.User{}, ErrUserNotFound
		}

		log.Err(scanErr).
			Str("func", "*userRepository.UpdateUser").
			Str("user_id", userID).
			Msg("failed to execute update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, scanErr)
	}

	return user, nil
}

// DeleteUser removes the user record and, through ON DELETE CASCADE, every
// profile, approver, recipient, and note owned by it.
//
// Returns [ErrUserNotFound] when no row was deleted.
func (r *userRepository) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.DeleteUser").
			Str("user_id", userID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.DeleteUser").
			Str("user_id", userID).
			Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		log.Warn().Str("func", "*userRepository.DeleteUser").Str("user_id", userID).Msg("user not found")
		return ErrUserNotFound
	}

	log.Info().
		Str("func", "*userRepository.DeleteUser").
		Str("user_id", userID).
		Msg("user account deleted with all owned records")

	return nil
}
