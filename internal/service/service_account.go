package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/store"
	"github.com/keepsake-dev/keepsake/models"
)

// accountService is the concrete implementation of AccountService. It spans
// the user record itself, the extended profile, and the approver and
// recipient registries, delegating persistence to the respective
// repositories.
type accountService struct {
	userRepository      store.UserRepository
	profileRepository   store.ProfileRepository
	approverRepository  store.ApproverRepository
	recipientRepository store.RecipientRepository
	logger              *logger.Logger
}

// NewAccountService constructs an AccountService wired to the given
// repositories.
func NewAccountService(repositories *store.Repositories, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository:      repositories.UserRepository,
		profileRepository:   repositories.ProfileRepository,
		approverRepository:  repositories.ApproverRepository,
		recipientRepository: repositories.RecipientRepository,
		logger:              logger,
	}
}

func (s *accountService) GetUser(ctx context.Context, userID string) (models.User, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

func (s *accountService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := s.userRepository.GetAllUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user listing failed")
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	return users, nil
}

// UpdateUser applies a partial update to the basic user record.
// An update that provides no fields is rejected with
// store.ErrNoFieldsToUpdate, surfaced unchanged to the caller.
func (s *accountService) UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return models.User{}, ErrInvalidDataProvided
	}

	if update.Name != nil && *update.Name == "" {
		log.Error().Str("user_id", userID).Msg("empty name provided")
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return user, nil
}

func (s *accountService) DeleteUser(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return ErrInvalidDataProvided
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("user_id", userID).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}

// GetCompleteProfile aggregates the user record, the extended profile and
// the approver list into a single view. A missing extended profile is not an
// error: the Profile field is simply nil until the user has saved one.
func (s *accountService) GetCompleteProfile(ctx context.Context, userID string) (models.CompleteProfile, error) {
	log := logger.FromContext(ctx)

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.CompleteProfile{}, err
	}

	complete := models.CompleteProfile{User: user}

	profile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	switch {
	case err == nil:
		complete.Profile = &profile
	case errors.Is(err, store.ErrProfileNotFound):
		// profile stays nil
	default:
		log.Err(err).Str("user_id", userID).Msg("profile lookup failed")
		return models.CompleteProfile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	approvers, err := s.approverRepository.GetApproversByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("approver listing failed")
		return models.CompleteProfile{}, fmt.Errorf("approver listing failed: %w", err)
	}
	complete.Approvers = approvers

	return complete, nil
}

func (s *accountService) GetExtendedProfile(ctx context.Context, userID string) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return models.Profile{}, ErrInvalidDataProvided
	}

	profile, err := s.profileRepository.GetProfileByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("profile lookup failed")
		return models.Profile{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return profile, nil
}

// UpsertExtendedProfile validates and saves the extended profile as a whole
// document: omitted fields are cleared, not preserved.
func (s *accountService) UpsertExtendedProfile(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return models.Profile{}, ErrInvalidDataProvided
	}

	if err := validateProfileUpsert(upsert); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("profile validation failed")
		return models.Profile{}, err
	}

	profile, err := s.profileRepository.UpsertProfile(ctx, userID, upsert)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("profile upsert failed")
		return models.Profile{}, fmt.Errorf("profile upsert failed: %w", err)
	}

	return profile, nil
}

func (s *accountService) AddApprover(ctx context.Context, approver models.Approver) (models.Approver, error) {
	log := logger.FromContext(ctx)

	if approver.UserID == "" {
		log.Error().Msg("no user id provided")
		return models.Approver{}, ErrInvalidDataProvided
	}

	if err := validateContactInput(approver.Name, approver.Email); err != nil {
		log.Error().Err(err).Str("user_id", approver.UserID).Msg("approver validation failed")
		return models.Approver{}, err
	}

	saved, err := s.approverRepository.AddApprover(ctx, approver)
	if err != nil {
		log.Err(err).Str("user_id", approver.UserID).Msg("approver creation failed")
		return models.Approver{}, fmt.Errorf("approver creation failed: %w", err)
	}

	return saved, nil
}

func (s *accountService) ListApprovers(ctx context.Context, userID string) ([]models.Approver, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return nil, ErrInvalidDataProvided
	}

	approvers, err := s.approverRepository.GetApproversByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("approver listing failed")
		return nil, fmt.Errorf("approver listing failed: %w", err)
	}

	return approvers, nil
}

func (s *accountService) UpdateApprover(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error) {
	log := logger.FromContext(ctx)

	if userID == "" || approverID == 0 {
		log.Error().Msg("no user id or approver id provided")
		return models.Approver{}, ErrInvalidDataProvided
	}

	if err := validateApproverUpdate(update); err != nil {
		log.Error().Err(err).Int64("approver_id", approverID).Msg("approver validation failed")
		return models.Approver{}, err
	}

	approver, err := s.approverRepository.UpdateApprover(ctx, approverID, userID, update)
	if err != nil {
		log.Err(err).Int64("approver_id", approverID).Str("user_id", userID).Msg("approver update failed")
		return models.Approver{}, fmt.Errorf("approver update failed: %w", err)
	}

	return approver, nil
}

// DeleteApprover removes an approver. The minimum-count rule lives in the
// repository transaction; store.ErrMinimumApprovers passes through unchanged.
func (s *accountService) DeleteApprover(ctx context.Context, approverID int64, userID string) error {
	log := logger.FromContext(ctx)

	if userID == "" || approverID == 0 {
		log.Error().Msg("no user id or approver id provided")
		return ErrInvalidDataProvided
	}

	if err := s.approverRepository.DeleteApprover(ctx, approverID, userID); err != nil {
		log.Err(err).Int64("approver_id", approverID).Str("user_id", userID).Msg("approver deletion failed")
		return fmt.Errorf("approver deletion failed: %w", err)
	}

	return nil
}

// ValidateMinimumApprovers reports whether the user currently satisfies the
// two-approver minimum. Pure read; used as a precondition check.
func (s *accountService) ValidateMinimumApprovers(ctx context.Context, userID string) (bool, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return false, ErrInvalidDataProvided
	}

	count, err := s.approverRepository.CountApprovers(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("approver count failed")
		return false, fmt.Errorf("approver count failed: %w", err)
	}

	return count >= 2, nil
}

func (s *accountService) AddRecipient(ctx context.Context, recipient models.Recipient) (models.Recipient, error) {
	log := logger.FromContext(ctx)

	if recipient.UserID == "" {
		log.Error().Msg("no user id provided")
		return models.Recipient{}, ErrInvalidDataProvided
	}

	if err := validateContactInput(recipient.Name, recipient.Email); err != nil {
		log.Error().Err(err).Str("user_id", recipient.UserID).Msg("recipient validation failed")
		return models.Recipient{}, err
	}

	saved, err := s.recipientRepository.AddRecipient(ctx, recipient)
	if err != nil {
		log.Err(err).Str("user_id", recipient.UserID).Msg("recipient creation failed")
		return models.Recipient{}, fmt.Errorf("recipient creation failed: %w", err)
	}

	return saved, nil
}

func (s *accountService) ListRecipients(ctx context.Context, userID string) ([]models.Recipient, error) {
	log := logger.FromContext(ctx)

	if userID == "" {
		log.Error().Msg("no user id provided")
		return nil, ErrInvalidDataProvided
	}

	recipients, err := s.recipientRepository.GetRecipientsByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("recipient listing failed")
		return nil, fmt.Errorf("recipient listing failed: %w", err)
	}

	return recipients, nil
}

func (s *accountService) UpdateRecipient(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error) {
	log := logger.FromContext(ctx)

	if userID == "" || recipientID == 0 {
		log.Error().Msg("no user id or recipient id provided")
		return models.Recipient{}, ErrInvalidDataProvided
	}

	if err := validateRecipientUpdate(update); err != nil {
		log.Error().Err(err).Int64("recipient_id", recipientID).Msg("recipient validation failed")
		return models.Recipient{}, err
	}

	recipient, err := s.recipientRepository.UpdateRecipient(ctx, recipientID, userID, update)
	if err != nil {
		log.Err(err).Int64("recipient_id", recipientID).Str("user_id", userID).Msg("recipient update failed")
		return models.Recipient{}, fmt.Errorf("recipient update failed: %w", err)
	}

	return recipient, nil
}

func (s *accountService) DeleteRecipient(ctx context.Context, recipientID int64, userID string) error {
	log := logger.FromContext(ctx)

	if userID == "" || recipientID == 0 {
		log.Error().Msg("no user id or recipient id provided")
		return ErrInvalidDataProvided
	}

	if err := s.recipientRepository.DeleteRecipient(ctx, recipientID, userID); err != nil {
		log.Err(err).Int64("recipient_id", recipientID).Str("user_id", userID).Msg("recipient deletion failed")
		return fmt.Errorf("recipient deletion failed: %w", err)
	}

	return nil
}
