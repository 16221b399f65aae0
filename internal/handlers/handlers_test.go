// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// handlers_test.go provides the shared fakes for handler tests. Handlers
// are tested hermetically against narrow interfaces; the real wiring is
// covered by the service and store integration tests.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"forgesite/internal/models"
	"forgesite/internal/recaptcha"
	"forgesite/internal/service"
	"forgesite/internal/session"
	"forgesite/internal/validation"
)

type fakeProcessor struct {
	lastContact *validation.ContactForm
	lastHome    *validation.HomeContactForm
	lastQuote   *validation.QuoteRequest
	lastLogo    *service.LogoUpload
	lastMeta    service.RequestMeta
	fail        bool
}

func (f *fakeProcessor) ProcessContactForm(_ context.Context, form validation.ContactForm, meta service.RequestMeta) (*models.Submission, error) {
	if f.fail {
		return nil, errors.New("db down")
	}
	f.lastContact = &form
	f.lastMeta = meta
	return &models.Submission{ID: uuid.New(), Kind: models.SubmissionKindContact, Email: form.Email}, nil
}

func (f *fakeProcessor) ProcessHomeContactForm(_ context.Context, form validation.HomeContactForm, meta service.RequestMeta) (*models.Submission, error) {
	if f.fail {
		return nil, errors.New("db down")
	}
	f.lastHome = &form
	f.lastMeta = meta
	return &models.Submission{ID: uuid.New(), Kind: models.SubmissionKindContact, Email: form.Email}, nil
}

func (f *fakeProcessor) ProcessQuoteRequest(_ context.Context, req validation.QuoteRequest, logo *service.LogoUpload, meta service.RequestMeta) (*models.Submission, error) {
	if f.fail {
		return nil, errors.New("db down")
	}
	f.lastQuote = &req
	f.lastLogo = logo
	f.lastMeta = meta
	total := req.Total
	return &models.Submission{
		ID:         uuid.New(),
		Kind:       models.SubmissionKindQuote,
		Email:      req.ContactDetails.Email,
		TotalPrice: &total,
	}, nil
}

type fakeCaptcha struct {
	result recaptcha.Result
	calls  int
}

func (f *fakeCaptcha) Verify(_ context.Context, _, _ string) recaptcha.Result {
	f.calls++
	return f.result
}

func passingCaptcha() *fakeCaptcha {
	return &fakeCaptcha{result: recaptcha.Result{Success: true, Score: 0.9}}
}

type fakeSessions struct {
	data      *session.Data
	destroyed bool
}

func (f *fakeSessions) Create(_ context.Context, w http.ResponseWriter, data *session.Data) (string, error) {
	f.data = data
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "test-session"})
	return "test-session", nil
}

func (f *fakeSessions) Get(_ context.Context, r *http.Request) (*session.Data, error) {
	if _, err := r.Cookie(session.CookieName); err != nil {
		return nil, nil
	}
	return f.data, nil
}

func (f *fakeSessions) Destroy(_ context.Context, w http.ResponseWriter, _ *http.Request) error {
	f.destroyed = true
	f.data = nil
	http.SetCookie(w, &http.Cookie{Name: session.CookieName, Value: "", MaxAge: -1})
	return nil
}

func testValidator() *validation.Validator {
	return validation.New(validation.Options{MinTotal: 300, MaxTotal: 10000})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return body
}
