// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"forgesite/internal/models"
	"forgesite/internal/session"
)

type fakeUsers struct {
	user *models.BetaUser
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.BetaUser, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func betaUser(t *testing.T, password string) *models.BetaUser {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return &models.BetaUser{
		ID:           uuid.New(),
		Name:         "Beta Tester",
		Email:        "beta@codeforge.local",
		PasswordHash: string(hash),
	}
}

func TestBetaLoginSuccess(t *testing.T) {
	sessions := &fakeSessions{}
	h := NewBetaHandler(&fakeUsers{user: betaUser(t, "secret")}, sessions)

	rec := postJSON(h.Login, "/api/beta/login", `{"username":"beta@codeforge.local","password":"secret"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["message"] != "Login successful" {
		t.Errorf("message: %v", body["message"])
	}
	user := body["user"].(map[string]any)
	if user["name"] != "Beta Tester" || user["email"] != "beta@codeforge.local" {
		t.Errorf("user: %v", user)
	}
	if sessions.data == nil || sessions.data.Email != "beta@codeforge.local" {
		t.Errorf("session not created: %+v", sessions.data)
	}

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("beta_access cookie not set")
	}
}

func TestBetaLoginWrongPassword(t *testing.T) {
	h := NewBetaHandler(&fakeUsers{user: betaUser(t, "secret")}, &fakeSessions{})

	rec := postJSON(h.Login, "/api/beta/login", `{"username":"beta@codeforge.local","password":"wrong"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	errs := body["errors"].(map[string]any)
	msgs := errs["username"].([]any)
	if msgs[0] != "The provided credentials are incorrect." {
		t.Errorf("got %v", msgs)
	}
}

func TestBetaLoginUnknownUserMatchesWrongPassword(t *testing.T) {
	h := NewBetaHandler(&fakeUsers{}, &fakeSessions{})

	rec := postJSON(h.Login, "/api/beta/login", `{"username":"nobody@example.com","password":"x"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	errs := body["errors"].(map[string]any)
	if _, ok := errs["username"]; !ok {
		t.Errorf("expected username error: %v", errs)
	}
}

func TestBetaLoginMissingFields(t *testing.T) {
	h := NewBetaHandler(&fakeUsers{}, &fakeSessions{})

	rec := postJSON(h.Login, "/api/beta/login", `{}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	errs := body["errors"].(map[string]any)
	if _, ok := errs["username"]; !ok {
		t.Error("expected username required error")
	}
	if _, ok := errs["password"]; !ok {
		t.Error("expected password required error")
	}
}

func TestBetaCheckAccess(t *testing.T) {
	sessions := &fakeSessions{data: &session.Data{Email: "beta@codeforge.local"}}
	h := NewBetaHandler(&fakeUsers{}, sessions)

	// No cookie: no access.
	rec := httptest.NewRecorder()
	h.CheckAccess(rec, httptest.NewRequest(http.MethodGet, "/api/beta/check-access", nil))
	if body := decodeBody(t, rec); body["has_access"] != false {
		t.Errorf("without cookie: %v", body)
	}

	// With cookie: access granted.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/beta/check-access", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "test-session"})
	h.CheckAccess(rec, req)
	if body := decodeBody(t, rec); body["has_access"] != true {
		t.Errorf("with cookie: %v", body)
	}
}

func TestBetaLogout(t *testing.T) {
	sessions := &fakeSessions{data: &session.Data{Email: "beta@codeforge.local"}}
	h := NewBetaHandler(&fakeUsers{}, sessions)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/beta/logout", strings.NewReader(""))
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "test-session"})
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["message"] != "Logout successful" {
		t.Errorf("message: %v", body["message"])
	}
	if !sessions.destroyed {
		t.Error("session not destroyed")
	}
}
