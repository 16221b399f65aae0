// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Service tests run against a real PostgreSQL and are skipped when it is
// unavailable. Email and storage are faked.
package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"forgesite/internal/database"
	"forgesite/internal/models"
	"forgesite/internal/pricing"
	"forgesite/internal/store"
	"forgesite/internal/validation"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "forgesite")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "forgesite")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

type fakeNotifier struct {
	contacts []*models.Submission
	quotes   []*models.Submission
	confirms int
	fail     bool
}

func (f *fakeNotifier) NotifyContact(_ context.Context, sub *models.Submission) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.contacts = append(f.contacts, sub)
	return nil
}

func (f *fakeNotifier) ConfirmContact(_ context.Context, _ *models.Submission) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.confirms++
	return nil
}

func (f *fakeNotifier) NotifyQuote(_ context.Context, sub *models.Submission, _ pricing.Breakdown) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.quotes = append(f.quotes, sub)
	return nil
}

func (f *fakeNotifier) ConfirmQuote(_ context.Context, _ *models.Submission, _ pricing.Breakdown) error {
	if f.fail {
		return errors.New("smtp down")
	}
	f.confirms++
	return nil
}

type fakeStorage struct {
	saved   map[string]string
	deleted []string
	failSet bool
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{saved: map[string]string{}}
}

func (f *fakeStorage) Save(_ context.Context, key, _ string, data io.Reader, _ int64) error {
	if f.failSet {
		return errors.New("bucket unavailable")
	}
	b, _ := io.ReadAll(data)
	f.saved[key] = string(b)
	return nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.saved, key)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newService(t *testing.T, db *sql.DB) (*SubmissionService, *fakeNotifier, *fakeStorage) {
	t.Helper()
	notifier := &fakeNotifier{}
	files := newFakeStorage()
	svc := NewSubmissionService(db, store.NewSubmissionStore(db), notifier, files, pricing.Default(), discardLogger())
	return svc, notifier, files
}

func cleanup(t *testing.T, db *sql.DB, email string) {
	t.Cleanup(func() {
		db.Exec("DELETE FROM submissions WHERE email = $1", email)
	})
}

func validQuoteRequest(email string) validation.QuoteRequest {
	return validation.QuoteRequest{
		ContactDetails: validation.QuoteContactDetails{
			Name:  "Quote Tester",
			Email: email,
		},
		Configuration: validation.QuoteConfiguration{
			PageType: "single",
			Colors:   validation.QuoteColors{Primary: "#112233", Secondary: "#FFF"},
			Sections: []string{"hero", "about"},
			Features: []string{"blog"},
		},
		Total:          425,
		RecaptchaToken: "tok",
	}
}

func TestProcessContactFormPersistsAndNotifies(t *testing.T) {
	db := testDB(t)
	svc, notifier, _ := newService(t, db)
	email := "svc-contact@example.com"
	cleanup(t, db, email)

	score := 0.9
	sub, err := svc.ProcessContactForm(context.Background(), validation.ContactForm{
		ContactReason: "general",
		Name:          "Contact Tester",
		Email:         email,
		Message:       "A message long enough to pass.",
	}, RequestMeta{IPAddress: "203.0.113.5", UserAgent: "test-agent", RecaptchaScore: &score})
	if err != nil {
		t.Fatalf("ProcessContactForm: %v", err)
	}

	if sub.Status != models.SubmissionStatusNew {
		t.Errorf("status: got %s", sub.Status)
	}
	if sub.RecaptchaScore == nil || *sub.RecaptchaScore != 0.9 {
		t.Errorf("recaptcha score not stored: %+v", sub.RecaptchaScore)
	}
	if len(notifier.contacts) != 1 || notifier.confirms != 1 {
		t.Errorf("emails: notify=%d confirm=%d", len(notifier.contacts), notifier.confirms)
	}
}

func TestProcessContactFormSurvivesEmailFailure(t *testing.T) {
	db := testDB(t)
	svc, notifier, _ := newService(t, db)
	notifier.fail = true
	email := "svc-smtp-down@example.com"
	cleanup(t, db, email)

	sub, err := svc.ProcessContactForm(context.Background(), validation.ContactForm{
		ContactReason: "quote",
		Name:          "Contact Tester",
		Email:         email,
		Message:       "A message long enough to pass.",
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("email failure must not fail the submission: %v", err)
	}

	stored, err := store.NewSubmissionStore(db).FindByID(context.Background(), sub.ID)
	if err != nil || stored == nil {
		t.Fatalf("submission not persisted: %v", err)
	}
}

func TestProcessQuoteRequestWithLogo(t *testing.T) {
	db := testDB(t)
	svc, notifier, files := newService(t, db)
	email := "svc-quote@example.com"
	cleanup(t, db, email)

	sub, err := svc.ProcessQuoteRequest(context.Background(), validQuoteRequest(email), &LogoUpload{
		ContentType: "image/png",
		Size:        8,
		Data:        strings.NewReader("fake-png"),
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("ProcessQuoteRequest: %v", err)
	}

	if sub.Configuration == nil || sub.Configuration.LogoPath == "" {
		t.Fatal("logo path not recorded on configuration")
	}
	if !strings.HasPrefix(sub.Configuration.LogoPath, "logos/") || !strings.HasSuffix(sub.Configuration.LogoPath, ".png") {
		t.Errorf("logo key: %q", sub.Configuration.LogoPath)
	}
	if _, ok := files.saved[sub.Configuration.LogoPath]; !ok {
		t.Error("logo not written to storage")
	}
	if len(notifier.quotes) != 1 || notifier.confirms != 1 {
		t.Errorf("emails: notify=%d confirm=%d", len(notifier.quotes), notifier.confirms)
	}
}

func TestProcessQuoteRequestLogoStorageFailureAborts(t *testing.T) {
	db := testDB(t)
	svc, notifier, files := newService(t, db)
	files.failSet = true
	email := "svc-quote-nologo@example.com"
	cleanup(t, db, email)

	_, err := svc.ProcessQuoteRequest(context.Background(), validQuoteRequest(email), &LogoUpload{
		ContentType: "image/png",
		Size:        8,
		Data:        strings.NewReader("fake-png"),
	}, RequestMeta{})
	if err == nil {
		t.Fatal("storage failure must abort the request")
	}
	if len(notifier.quotes) != 0 {
		t.Error("no emails on aborted request")
	}

	var n int
	db.QueryRow("SELECT COUNT(*) FROM submissions WHERE email = $1", email).Scan(&n)
	if n != 0 {
		t.Errorf("submission persisted despite aborted logo: %d rows", n)
	}
}

func TestDeleteRemovesLogo(t *testing.T) {
	db := testDB(t)
	svc, _, files := newService(t, db)
	email := "svc-delete@example.com"
	cleanup(t, db, email)

	sub, err := svc.ProcessQuoteRequest(context.Background(), validQuoteRequest(email), &LogoUpload{
		ContentType: "image/webp",
		Size:        4,
		Data:        strings.NewReader("webp"),
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("ProcessQuoteRequest: %v", err)
	}

	if err := svc.Delete(context.Background(), sub.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(files.deleted) != 1 || files.deleted[0] != sub.Configuration.LogoPath {
		t.Errorf("logo not removed: %v", files.deleted)
	}

	found, err := store.NewSubmissionStore(db).FindByID(context.Background(), sub.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found != nil {
		t.Error("soft-deleted submission still visible")
	}
}

func TestStatusOperationsDelegate(t *testing.T) {
	db := testDB(t)
	svc, _, _ := newService(t, db)
	email := "svc-status@example.com"
	cleanup(t, db, email)

	sub, err := svc.ProcessContactForm(context.Background(), validation.ContactForm{
		ContactReason: "general",
		Name:          "Status Tester",
		Email:         email,
		Message:       "A message long enough to pass.",
	}, RequestMeta{})
	if err != nil {
		t.Fatalf("ProcessContactForm: %v", err)
	}
	ctx := context.Background()

	if err := svc.MarkAsResponded(ctx, sub.ID); !errors.Is(err, store.ErrInvalidTransition) {
		t.Errorf("responded from new: got %v", err)
	}
	if err := svc.MarkAsRead(ctx, sub.ID); err != nil {
		t.Fatalf("MarkAsRead: %v", err)
	}
	if err := svc.MarkAsResponded(ctx, sub.ID); err != nil {
		t.Fatalf("MarkAsResponded: %v", err)
	}
	if err := svc.Archive(ctx, sub.ID); err != nil {
		t.Fatalf("Archive: %v", err)
	}
	if err := svc.MarkAsRead(ctx, sub.ID); !errors.Is(err, store.ErrInvalidTransition) {
		t.Errorf("archived must be terminal: got %v", err)
	}
}
