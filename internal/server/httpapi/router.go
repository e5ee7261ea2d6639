package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the verifier's HTTP surface.
func NewRouter(handler *Handler, verifier TokenVerifier) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/metamask/message", handler.challenge)
	r.Post("/metamask/verify", handler.verify)

	r.Post("/auth/signup", handler.signUp)
	r.Post("/auth/signin", handler.signIn)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth(verifier))
		r.Get("/users/me", handler.me)
	})

	return r
}
