package http

import (
	"github.com/keepsake-dev/keepsake/internal/logger"
	"github.com/keepsake-dev/keepsake/internal/service"
)

// Handler holds the HTTP endpoints of the server. It translates JSON
// requests into service calls and service errors into HTTP statuses.
type Handler struct {
	services *service.Services
	logger   *logger.Logger
}

// NewHandler returns a Handler wired to the given services.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Str("func", "NewHandler").Msg("http handler created")

	return &Handler{
		services: services,
		logger:   logger,
	}
}
