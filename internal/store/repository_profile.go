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

// profileRepository is the PostgreSQL-backed implementation of
// [ProfileRepository]. A user has at most one extended profile row,
// enforced by the UNIQUE constraint on user_id.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewProfileRepository constructs a [ProfileRepository] backed by the
// provided database connection and logger.
func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertProfile creates or fully replaces the extended profile of a user.
//
// Fields absent from the request body arrive as nil pointers and are written
// as NULL: a PUT of the extended profile is a whole-document replacement,
// not a merge.
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrUserNotFound] (the
//     referenced user no longer exists).
//   - Any other error → wrapped with [ErrExecutingQuery].
func (r *profileRepository) UpsertProfile(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error) {
	log := logger.FromContext(ctx)

	var profile models.Profile
	row := r.db.QueryRowContext(ctx, upsertProfile,
		userID,
		upsert.Age,
		upsert.ContactNumber1,
		upsert.ContactNumber2,
		upsert.InstagramHandle,
		upsert.LinkedinProfile,
		upsert.TwitterHandle,
		upsert.FacebookProfile,
	)

	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Age,
		&profile.ContactNumber1,
		&profile.ContactNumber2,
		&profile.InstagramHandle,
		&profile.LinkedinProfile,
		&profile.TwitterHandle,
		&profile.FacebookProfile,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		log.Err(err).Str("func", "*profileRepository.UpsertProfile").Str("user_id", userID).Msg("failed to upsert profile")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Profile{}, ErrUserNotFound
		default:
			return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return profile, nil
}

// GetProfileByUserID retrieves the extended profile for the given user.
//
// Returns [ErrProfileNotFound] when the user has never saved one.
func (r *profileRepository) GetProfileByUserID(ctx context.Context, userID string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	var profile models.Profile
	row := r.db.QueryRowContext(ctx, getProfileByUserID, userID)

	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Age,
		&profile.ContactNumber1,
		&profile.ContactNumber2,
		&profile.InstagramHandle,
		&profile.LinkedinProfile,
		&profile.TwitterHandle,
		&profile.FacebookProfile,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().Str("func", "*profileRepository.GetProfileByUserID").Str("user_id", userID).Msg("profile not found")
			return models.Profile{}, ErrProfileNotFound
		}

		log.Err(err).Str("func", "*profileRepository.GetProfileByUserID").Str("user_id", userID).Msg("error: scanning error")
		return models.Profile{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return profile, nil
}
