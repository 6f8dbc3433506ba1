package service

import (
	"github.com/keepsake-dev/keepsake/internal/config"
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/store"
)

type Services struct {
	AuthService    AuthService
	AccountService AccountService
	NoteService    NoteService
}

func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(repositories.UserRepository, cfg.App, logger),
		AccountService: NewAccountService(repositories, logger),
		NoteService:    NewNoteService(repositories.NoteRepository, logger),
	}
}
