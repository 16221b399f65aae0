// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"forgesite/internal/middleware"
	"forgesite/internal/models"
	"forgesite/internal/recaptcha"
	"forgesite/internal/service"
	"forgesite/internal/validation"
)

// SubmissionProcessor is the slice of the submission service the form
// handlers need.
type SubmissionProcessor interface {
	ProcessContactForm(ctx context.Context, form validation.ContactForm, meta service.RequestMeta) (*models.Submission, error)
	ProcessHomeContactForm(ctx context.Context, form validation.HomeContactForm, meta service.RequestMeta) (*models.Submission, error)
	ProcessQuoteRequest(ctx context.Context, req validation.QuoteRequest, logo *service.LogoUpload, meta service.RequestMeta) (*models.Submission, error)
}

// CaptchaVerifier checks reCAPTCHA tokens. Satisfied by *recaptcha.Verifier.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, remoteIP string) recaptcha.Result
}

// ContactHandler serves the two contact form endpoints.
type ContactHandler struct {
	svc       SubmissionProcessor
	captcha   CaptchaVerifier
	validator *validation.Validator
}

// NewContactHandler wires the contact endpoints.
func NewContactHandler(svc SubmissionProcessor, captcha CaptchaVerifier, v *validation.Validator) *ContactHandler {
	return &ContactHandler{svc: svc, captcha: captcha, validator: v}
}

const contactErrorMessage = "An error occurred while submitting your message. Please try again later."

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var form validation.ContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeBadRequest(w, "Invalid request body.")
		return
	}
	form.Sanitize()

	if errs := h.validator.Validate(form); errs != nil {
		writeValidationErrors(w, invalidDataMessage, errs)
		return
	}

	meta, ok := h.verifyCaptcha(w, r, form.RecaptchaToken, form.Email)
	if !ok {
		return
	}

	sub, err := h.svc.ProcessContactForm(r.Context(), form, meta)
	if err != nil {
		slog.Error("contact form submission failed", "error", err)
		writeServerError(w, contactErrorMessage)
		return
	}

	slog.Info("contact form submitted", "submission_id", sub.ID, "email", sub.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"message":       "Thank you for contacting us! We will get back to you within 24-48 hours.",
		"submission_id": sub.ID,
	})
}

// SubmitHome handles POST /api/contact/home.
func (h *ContactHandler) SubmitHome(w http.ResponseWriter, r *http.Request) {
	var form validation.HomeContactForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeBadRequest(w, "Invalid request body.")
		return
	}
	form.Sanitize()

	if errs := h.validator.Validate(form); errs != nil {
		writeValidationErrors(w, invalidDataMessage, errs)
		return
	}

	meta, ok := h.verifyCaptcha(w, r, form.RecaptchaToken, form.Email)
	if !ok {
		return
	}

	sub, err := h.svc.ProcessHomeContactForm(r.Context(), form, meta)
	if err != nil {
		slog.Error("home contact form submission failed", "error", err)
		writeServerError(w, contactErrorMessage)
		return
	}

	slog.Info("home contact form submitted", "submission_id", sub.ID, "email", sub.Email)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"message":       "Thank you for contacting us! We will get back to you within 24-48 hours.",
		"submission_id": sub.ID,
	})
}

// verifyCaptcha runs reCAPTCHA verification and writes the 422 rejection
// itself. Returns the request meta (with score) and whether to proceed.
func (h *ContactHandler) verifyCaptcha(w http.ResponseWriter, r *http.Request, token, email string) (service.RequestMeta, bool) {
	result := h.captcha.Verify(r.Context(), token, middleware.ClientIP(r))
	if !result.Success {
		slog.Warn("contact form failed recaptcha verification", "email", email, "message", result.Message)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"success": false,
			"message": "Security verification failed. Please try again.",
			"errors":  map[string][]string{"recaptcha_token": {result.Message}},
		})
		return service.RequestMeta{}, false
	}

	score := result.Score
	return service.RequestMeta{
		IPAddress:      middleware.ClientIP(r),
		UserAgent:      r.UserAgent(),
		RecaptchaScore: &score,
	}, true
}
