// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// forgesite API. Form endpoints get their own rate limiters; read endpoints
// are unlimited.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"forgesite/internal/handlers"
	"forgesite/internal/middleware"
)

// Limiters holds the per-endpoint rate limiters so main can stop their
// cleanup goroutines on shutdown.
type Limiters struct {
	Contact *middleware.RateLimiter
	Quote   *middleware.RateLimiter
	Beta    *middleware.RateLimiter
}

// NewLimiters builds the three endpoint limiters with their production
// limits: 3/min contact, 2/min quote, 6/min beta login.
func NewLimiters() *Limiters {
	return &Limiters{
		Contact: middleware.NewRateLimiter(3, time.Minute,
			"Too many submissions. Please try again in a few minutes."),
		Quote: middleware.NewRateLimiter(2, time.Minute,
			"Too many quote requests. Please try again in a few minutes."),
		Beta: middleware.NewRateLimiter(6, time.Minute,
			"Too many login attempts. Please try again in a few minutes."),
	}
}

// Stop terminates the limiters' cleanup goroutines.
func (l *Limiters) Stop() {
	l.Contact.Stop()
	l.Quote.Stop()
	l.Beta.Stop()
}

// New creates the configured Chi router with all middleware and routes.
func New(limiters *Limiters, contact *handlers.ContactHandler, quote *handlers.QuoteHandler, articles *handlers.ArticlesHandler, beta *handlers.BetaHandler) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(limiters.Contact.Middleware)
			r.Post("/contact", contact.Submit)
			r.Post("/contact/home", contact.SubmitHome)
		})

		r.Group(func(r chi.Router) {
			r.Use(limiters.Quote.Middleware)
			r.Post("/quote", quote.Submit)
		})

		r.Get("/articles", articles.List)
		r.Get("/articles/{slug}", articles.Show)

		r.Route("/beta", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(limiters.Beta.Middleware)
				r.Post("/login", beta.Login)
			})
			r.Post("/logout", beta.Logout)
			r.Get("/check-access", beta.CheckAccess)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
