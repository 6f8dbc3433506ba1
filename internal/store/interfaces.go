package store

import (
	"context"

	"github.com/keepsake-dev/keepsake/models"
)

type UserRepository interface {
	UpsertOnLogin(ctx context.Context, identity models.ExternalIdentity) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

type ProfileRepository interface {
	UpsertProfile(ctx context.Context, userID string, upsert models.ProfileUpsert) (models.Profile, error)
	GetProfileByUserID(ctx context.Context, userID string) (models.Profile, error)
}

type ApproverRepository interface {
	AddApprover(ctx context.Context, approver models.Approver) (models.Approver, error)
	GetApproversByUserID(ctx context.Context, userID string) ([]models.Approver, error)
	UpdateApprover(ctx context.Context, approverID int64, userID string, update models.ApproverUpdate) (models.Approver, error)
	DeleteApprover(ctx context.Context, approverID int64, userID string) error
	CountApprovers(ctx context.Context, userID string) (int64, error)
}

type RecipientRepository interface {
	AddRecipient(ctx context.Context, recipient models.Recipient) (models.Recipient, error)
	GetRecipientsByUserID(ctx context.Context, userID string) ([]models.Recipient, error)
	UpdateRecipient(ctx context.Context, recipientID int64, userID string, update models.RecipientUpdate) (models.Recipient, error)
	DeleteRecipient(ctx context.Context, recipientID int64, userID string) error
}

type NoteRepository interface {
	AddNote(ctx context.Context, note models.CreateNote) (models.Note, error)
	GetNotesByUserID(ctx context.Context, userID string) ([]models.NoteWithRecipients, error)
	GetNoteByID(ctx context.Context, noteID int64, userID string) (models.NoteWithRecipients, error)
	UpdateNote(ctx context.Context, noteID int64, userID string, update models.NoteUpdate) (models.Note, error)
	DeleteNote(ctx context.Context, noteID int64, userID string) error
}
