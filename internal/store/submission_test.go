// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"forgesite/internal/models"
)

func strPtr(s string) *string { return &s }

func newTestContact(t *testing.T, s *SubmissionStore, email string) *models.Submission {
	t.Helper()
	reason := models.ContactReasonGeneral
	sub := &models.Submission{
		Kind:          models.SubmissionKindContact,
		Name:          "Jane Doe",
		Email:         email,
		Message:       strPtr("Hello, I would like to talk about a project."),
		ContactReason: &reason,
		IPAddress:     strPtr("203.0.113.10"),
	}
	if err := s.Create(context.Background(), s.db, sub); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return sub
}

func TestSubmissionStoreCreateContact(t *testing.T) {
	db := testDB(t)
	s := NewSubmissionStore(db)

	email := "create-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanSubmissions(t, db, email) })

	sub := newTestContact(t, s, email)

	if sub.ID == uuid.Nil {
		t.Error("expected generated UUID")
	}
	if sub.Status != models.SubmissionStatusNew {
		t.Errorf("status: got %q, want new", sub.Status)
	}

	found, err := s.FindByID(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected submission, got nil")
	}
	if found.Kind != models.SubmissionKindContact {
		t.Errorf("kind: got %q, want contact", found.Kind)
	}
	if found.Name != "Jane Doe" || found.Email != email {
		t.Errorf("round trip mismatch: %q %q", found.Name, found.Email)
	}
	if found.Message == nil || *found.Message != "Hello, I would like to talk about a project." {
		t.Errorf("message mismatch: %v", found.Message)
	}
}

func TestSubmissionStoreCreateQuoteConfiguration(t *testing.T) {
	db := testDB(t)
	s := NewSubmissionStore(db)

	email := "quote-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanSubmissions(t, db, email) })

	total := 625.0
	sub := &models.Submission{
		Kind:  models.SubmissionKindQuote,
		Name:  "John Smith",
		Email: email,
		Configuration: &models.QuoteConfiguration{
			PageType: "multi",
			Colors:   models.QuoteColors{Primary: "#3B82F6", Secondary: "#1E40AF"},
			Sections: []string{"hero", "about", "contact"},
			AdditionalPages: []models.AdditionalPage{
				{ID: "services", Name: "Services", Sections: []string{"hero", "cta"}},
			},
			Features: []string{"booking-form", "blog"},
			LogoPath: "logos/logo_abc.png",
		},
		TotalPrice: &total,
	}
	if err := s.Create(context.Background(), s.db, sub); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := s.FindByID(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil || found.Configuration == nil {
		t.Fatal("expected configuration to round-trip")
	}
	cfg := found.Configuration
	if cfg.PageType != "multi" {
		t.Errorf("pageType: got %q", cfg.PageType)
	}
	if len(cfg.AdditionalPages) != 1 || cfg.AdditionalPages[0].ID != "services" {
		t.Errorf("additionalPages mismatch: %+v", cfg.AdditionalPages)
	}
	if cfg.LogoPath != "logos/logo_abc.png" {
		t.Errorf("logoPath: got %q", cfg.LogoPath)
	}
	if found.TotalPrice == nil || *found.TotalPrice != 625.0 {
		t.Errorf("totalPrice: got %v", found.TotalPrice)
	}
}

func TestSubmissionStoreStatusTransitions(t *testing.T) {
	db := testDB(t)
	s := NewSubmissionStore(db)
	ctx := context.Background()

	email := "status-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() { cleanSubmissions(t, db, email) })
	sub := newTestContact(t, s, email)

	// Skipping read is not allowed.
	if err := s.MarkAsResponded(ctx, sub.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("responded from new: got %v, want ErrInvalidTransition", err)
	}

	if err := s.MarkAsRead(ctx, sub.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	found, _ := s.FindByID(ctx, sub.ID)
	if found.Status != models.SubmissionStatusRead || found.ReadAt == nil {
		t.Errorf("after read: status=%q read_at=%v", found.Status, found.ReadAt)
	}

	// Re-reading is not allowed.
	if err := s.MarkAsRead(ctx, sub.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("double read: got %v, want ErrInvalidTransition", err)
	}

	if err := s.MarkAsResponded(ctx, sub.ID); err != nil {
		t.Fatalf("MarkAsResponded: %v", err)
	}

	if err := s.Archive(ctx, sub.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}

	// Archived is terminal.
	if err := s.Archive(ctx, sub.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("archive twice: got %v, want ErrInvalidTransition", err)
	}

	if err := s.MarkAsRead(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: got %v, want ErrNotFound", err)
	}
}

func TestSubmissionStoreSoftDelete(t *testing.T) {
	db := testDB(t)
	s := NewSubmissionStore(db)
	ctx := context.Background()

	email := "softdel-" + uuid.NewString()[:8] + "@example.com"
	t.Cleanup(func() {
		db.Exec("DELETE FROM submissions WHERE email = $1", email)
	})
	sub := newTestContact(t, s, email)

	if err := s.SoftDelete(ctx, sub.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	// Excluded from default queries.
	found, err := s.FindByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("soft-deleted submission should not be found")
	}

	items, err := s.List(ctx, ListOptions{Kind: models.SubmissionKindContact, Limit: 1000})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, it := range items {
		if it.ID == sub.ID {
			t.Error("soft-deleted submission should not be listed")
		}
	}

	// But recoverable.
	if err := s.Restore(ctx, sub.ID); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	found, err = s.FindByID(ctx, sub.ID)
	if err != nil {
		t.Fatalf("FindByID after restore: %v", err)
	}
	if found == nil {
		t.Error("restored submission should be found again")
	}
}
