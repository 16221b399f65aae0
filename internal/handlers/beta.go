// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"forgesite/internal/models"
	"forgesite/internal/session"
)

// BetaUserFinder looks up beta accounts. Satisfied by *store.UserStore.
type BetaUserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.BetaUser, error)
}

// BetaSessionStore manages beta access sessions. Satisfied by *session.Store.
type BetaSessionStore interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// BetaHandler serves the beta access gate: login, logout, access check.
// There is no registration; accounts are seeded.
type BetaHandler struct {
	users    BetaUserFinder
	sessions BetaSessionStore
}

// NewBetaHandler wires the beta endpoints.
func NewBetaHandler(users BetaUserFinder, sessions BetaSessionStore) *BetaHandler {
	return &BetaHandler{users: users, sessions: sessions}
}

type betaLoginRequest struct {
	// Username carries the account email; the public form labels it that way.
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/beta/login.
func (h *BetaHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req betaLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body.")
		return
	}

	errs := map[string][]string{}
	if req.Username == "" {
		errs["username"] = append(errs["username"], "The username field is required.")
	}
	if req.Password == "" {
		errs["password"] = append(errs["password"], "The password field is required.")
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": invalidDataMessage,
			"errors":  errs,
		})
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Username)
	if err != nil {
		slog.Error("beta login lookup failed", "error", err)
		writeServerError(w, "An error occurred. Please try again later.")
		return
	}

	// Identical rejection whether the account or the password is wrong.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": invalidDataMessage,
			"errors":  map[string][]string{"username": {"The provided credentials are incorrect."}},
		})
		return
	}

	if _, err := h.sessions.Create(r.Context(), w, &session.Data{
		UserID: user.ID,
		Email:  user.Email,
	}); err != nil {
		slog.Error("beta session create failed", "error", err)
		writeServerError(w, "An error occurred. Please try again later.")
		return
	}

	slog.Info("beta login", "email", user.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]string{
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// Logout handles POST /api/beta/logout.
func (h *BetaHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("beta session destroy failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Logout successful",
	})
}

// CheckAccess handles GET /api/beta/check-access.
func (h *BetaHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	data, err := h.sessions.Get(r.Context(), r)
	if err != nil {
		slog.Error("beta session lookup failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"has_access": data != nil,
	})
}
