package store

import "github.com/keepsake-dev/keepsake/internal/logger"

type Repositories struct {
	UserRepository      UserRepository
	ProfileRepository   ProfileRepository
	ApproverRepository  ApproverRepository
	RecipientRepository RecipientRepository
	NoteRepository      NoteRepository
}

func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db, log),
		ProfileRepository:   NewProfileRepository(db, log),
		ApproverRepository:  NewApproverRepository(db, log),
		RecipientRepository: NewRecipientRepository(db, log),
		NoteRepository:      NewNoteRepository(db, log),
	}
}
