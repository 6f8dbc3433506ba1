package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the route tree.
//
// Public routes cover liveness and the OAuth login flow; everything under
// /api requires a bearer token validated by the auth middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Group(func(public chi.Router) {
		public.Get("/health", h.health)

		public.Get("/auth/google", h.beginGoogleLogin)
		public.Get("/auth/google/callback", h.googleCallback)
		public.Get("/auth/status", h.authStatus)
		public.Post("/auth/logout", h.logout)
	})

	router.Group(func(api chi.Router) {
		api.Use(h.auth)

		api.Get("/api/users", h.listUsers)
		api.Get("/api/users/me", h.getMe)
		api.Put("/api/users/me", h.updateMe)
		api.Delete("/api/users/me", h.deleteMe)

		api.Get("/api/users/profile/complete", h.completeProfile)
		api.Get("/api/users/profile/extended", h.getExtendedProfile)
		api.Put("/api/users/profile/extended", h.putExtendedProfile)

		api.Get("/api/users/profile/approvers", h.listApprovers)
		api.Post("/api/users/profile/approvers", h.addApprover)
		api.Get("/api/users/profile/approvers/validate", h.validateApprovers)
		api.Put("/api/users/profile/approvers/{approverID}", h.updateApprover)
		api.Delete("/api/users/profile/approvers/{approverID}", h.deleteApprover)

		api.Get("/api/users/profile/recipients", h.listRecipients)
		api.Post("/api/users/profile/recipients", h.addRecipient)
		api.Put("/api/users/profile/recipients/{recipientID}", h.updateRecipient)
		api.Delete("/api/users/profile/recipients/{recipientID}", h.deleteRecipient)

		api.Get("/api/users/notes", h.listNotes)
		api.Post("/api/users/notes", h.addNote)
		api.Get("/api/users/notes/{noteID}", h.getNote)
		api.Put("/api/users/notes/{noteID}", h.updateNote)
		api.Delete("/api/users/notes/{noteID}", h.deleteNote)
	})

	return router
}
