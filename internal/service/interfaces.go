package service

import (
	"context"

	"github.com/keepsake-dev/keepsake/models"
)

// AuthService resolves external OAuth identities to local accounts and
// manages the JWT token lifecycle.
type AuthService interface {
	ResolveIdentity(ctx context.Context, identity models.ExternalIdentity) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AccountService covers users, extended profiles, approvers and recipients.
type AccountService interface {
	GetUser(ctx context.Context, userID string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error

	GetCompleteProfile(ctx context.Context, userID string) (models.CompleteProfile, error)
	GetExtendedProfile(ctx context.Context, userID string) (models.Profile, error)
	UpsertExtendedProfile(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error)

	AddApprover(ctx context.Context, approver models.Approver) (models.Approver, error)
	ListApprovers(ctx context.Context, userID string) ([]models.Approver, error)
	UpdateApprover(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error)
	DeleteApprover(ctx context.Context, approverID int64, userID string) error
	ValidateMinimumApprovers(ctx context.Context, userID string) (bool, error)

	AddRecipient(ctx context.Context, recipient models.Recipient) (models.Recipient, error)
	ListRecipients(ctx context.Context, userID string) ([]models.Recipient, error)
	UpdateRecipient(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error)
	DeleteRecipient(ctx context.Context, recipientID int64, userID string) error
}

// NoteService manages personal notes and their recipient references.
type NoteService interface {
	AddNote(ctx context.Context, note models.CreateNote) (models.Note, error)
	ListNotes(ctx context.Context, userID string) ([]models.NoteWithRecipients, error)
	GetNote(ctx context.Context, noteID int64, userID string) (models.NoteWithRecipients, error)
	UpdateNote(ctx context.Context, noteID int64, userID string, update models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, noteID int64, userID string) error
}
