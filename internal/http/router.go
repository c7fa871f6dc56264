package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	partnershipv1 "github.com/hamzaalie/spotlight-circle-sub000/internal/http/partnership"
	referralv1 "github.com/hamzaalie/spotlight-circle-sub000/internal/http/referral"
	requestv1 "github.com/hamzaalie/spotlight-circle-sub000/internal/http/request"
)

func New(
	auth *Authenticator,
	allowedOrigins []string,
	partnershipsV1 *partnershipv1.Handler,
	referralsV1 *referralv1.Handler,
	requestsV1 *requestv1.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		// Visitor-facing paths sit outside the session middleware: a public
		// profile page reads partnerships and submits introduction requests
		// on behalf of people with no account.
		r.Route("/partnerships", func(r chi.Router) {
			partnershipsV1.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)
				partnershipsV1.Routes(r)
			})
		})

		r.Route("/referrals", func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Use(middleware.AllowContentType("application/json"))
			referralsV1.Routes(r)
		})

		r.Route("/referral-requests", func(r chi.Router) {
			requestsV1.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(auth.Middleware)
				requestsV1.Routes(r)
			})
		})
	})

	return router
}
