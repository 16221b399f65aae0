// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package service coordinates submission processing: persistence inside a
// transaction, logo storage, and the follow-up notification emails. Emails
// are strictly best-effort; once the transaction commits the submission
// exists no matter what SMTP does.
package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"forgesite/internal/models"
	"forgesite/internal/pricing"
	"forgesite/internal/storage"
	"forgesite/internal/store"
	"forgesite/internal/validation"
)

// Notifier sends the emails triggered by a submission. Satisfied by
// *mailer.Mailer; tests substitute a recording fake.
type Notifier interface {
	NotifyContact(ctx context.Context, sub *models.Submission) error
	ConfirmContact(ctx context.Context, sub *models.Submission) error
	NotifyQuote(ctx context.Context, sub *models.Submission, breakdown pricing.Breakdown) error
	ConfirmQuote(ctx context.Context, sub *models.Submission, breakdown pricing.Breakdown) error
}

// RequestMeta carries per-request tracking data onto the submission row.
type RequestMeta struct {
	IPAddress      string
	UserAgent      string
	RecaptchaScore *float64
}

// LogoUpload is an incoming configurator logo file, already validated.
type LogoUpload struct {
	ContentType string
	Size        int64
	Data        io.Reader
}

// SubmissionService owns the write path for contact forms and quote
// requests, plus the staff status operations.
type SubmissionService struct {
	db     *sql.DB
	subs   *store.SubmissionStore
	notify Notifier
	files  storage.Storage
	prices pricing.PriceTable
	log    *slog.Logger
}

// NewSubmissionService wires the service.
func NewSubmissionService(db *sql.DB, subs *store.SubmissionStore, notify Notifier, files storage.Storage, prices pricing.PriceTable, log *slog.Logger) *SubmissionService {
	return &SubmissionService{
		db:     db,
		subs:   subs,
		notify: notify,
		files:  files,
		prices: prices,
		log:    log,
	}
}

// ProcessContactForm persists a validated main contact form and sends the
// team notification and visitor confirmation.
func (s *SubmissionService) ProcessContactForm(ctx context.Context, form validation.ContactForm, meta RequestMeta) (*models.Submission, error) {
	reason := models.ContactReason(form.ContactReason)
	sub := &models.Submission{
		Kind:          models.SubmissionKindContact,
		Name:          form.Name,
		Email:         form.Email,
		Message:       &form.Message,
		ContactReason: &reason,
	}
	applyMeta(sub, meta)

	if err := s.persist(ctx, sub); err != nil {
		return nil, err
	}

	s.sendContactEmails(ctx, sub)
	return sub, nil
}

// ProcessHomeContactForm persists a validated home-page contact form. The
// home form carries a service choice instead of a contact reason.
func (s *SubmissionService) ProcessHomeContactForm(ctx context.Context, form validation.HomeContactForm, meta RequestMeta) (*models.Submission, error) {
	reason := models.ContactReasonGeneral
	sub := &models.Submission{
		Kind:          models.SubmissionKindContact,
		Name:          form.Name,
		Email:         form.Email,
		Message:       &form.Message,
		ContactReason: &reason,
		Service:       &form.Service,
	}
	applyMeta(sub, meta)

	if err := s.persist(ctx, sub); err != nil {
		return nil, err
	}

	s.sendContactEmails(ctx, sub)
	return sub, nil
}

// ProcessQuoteRequest stores the logo (when present), persists the quote
// submission, and sends the quote emails. A logo storage failure aborts the
// whole request; a failed transaction cleans the stored logo back up.
func (s *SubmissionService) ProcessQuoteRequest(ctx context.Context, req validation.QuoteRequest, logo *LogoUpload, meta RequestMeta) (*models.Submission, error) {
	cfg := models.QuoteConfiguration{
		PageType: req.Configuration.PageType,
		Colors: models.QuoteColors{
			Primary:   req.Configuration.Colors.Primary,
			Secondary: req.Configuration.Colors.Secondary,
		},
		Sections: req.Configuration.Sections,
		Features: req.Configuration.Features,
	}
	for _, p := range req.Configuration.AdditionalPages {
		cfg.AdditionalPages = append(cfg.AdditionalPages, models.AdditionalPage{
			ID:       p.ID,
			Name:     p.Name,
			Sections: p.Sections,
		})
	}

	if logo != nil {
		key := "logos/" + uuid.NewString() + validation.LogoExtension(logo.ContentType)
		if err := s.files.Save(ctx, key, logo.ContentType, logo.Data, logo.Size); err != nil {
			return nil, fmt.Errorf("storing logo: %w", err)
		}
		cfg.LogoPath = key
	}

	sub := &models.Submission{
		Kind:          models.SubmissionKindQuote,
		Name:          req.ContactDetails.Name,
		Email:         req.ContactDetails.Email,
		Phone:         req.ContactDetails.Phone,
		Message:       req.ContactDetails.Message,
		Configuration: &cfg,
		TotalPrice:    &req.Total,
	}
	applyMeta(sub, meta)

	if err := s.persist(ctx, sub); err != nil {
		if cfg.LogoPath != "" {
			if derr := s.files.Delete(ctx, cfg.LogoPath); derr != nil {
				s.log.Error("orphaned logo cleanup failed", "key", cfg.LogoPath, "error", derr)
			}
		}
		return nil, err
	}

	breakdown := s.prices.Estimate(cfg)
	if err := s.notify.NotifyQuote(ctx, sub, breakdown); err != nil {
		s.log.Error("quote notification email failed", "submission_id", sub.ID, "error", err)
	}
	if err := s.notify.ConfirmQuote(ctx, sub, breakdown); err != nil {
		s.log.Error("quote confirmation email failed", "submission_id", sub.ID, "error", err)
	}

	return sub, nil
}

// MarkAsRead moves a submission from new to read.
func (s *SubmissionService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.subs.MarkAsRead(ctx, id)
}

// MarkAsResponded moves a submission from read to responded.
func (s *SubmissionService) MarkAsResponded(ctx context.Context, id uuid.UUID) error {
	return s.subs.MarkAsResponded(ctx, id)
}

// Archive moves a submission to the terminal archived state.
func (s *SubmissionService) Archive(ctx context.Context, id uuid.UUID) error {
	return s.subs.Archive(ctx, id)
}

// Delete soft-deletes a submission and removes its stored logo. The logo
// removal is best-effort; the row disappears from default queries even when
// the object store is unreachable.
func (s *SubmissionService) Delete(ctx context.Context, id uuid.UUID) error {
	sub, err := s.subs.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if sub == nil {
		return store.ErrNotFound
	}

	if err := s.subs.SoftDelete(ctx, id); err != nil {
		return err
	}

	if sub.Configuration != nil && sub.Configuration.LogoPath != "" {
		if err := s.files.Delete(ctx, sub.Configuration.LogoPath); err != nil {
			s.log.Error("logo removal failed", "submission_id", id, "key", sub.Configuration.LogoPath, "error", err)
		}
	}
	return nil
}

// Restore brings a soft-deleted submission back.
func (s *SubmissionService) Restore(ctx context.Context, id uuid.UUID) error {
	return s.subs.Restore(ctx, id)
}

// persist inserts the submission inside its own transaction.
func (s *SubmissionService) persist(ctx context.Context, sub *models.Submission) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.subs.Create(ctx, tx, sub); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submission: %w", err)
	}
	return nil
}

func (s *SubmissionService) sendContactEmails(ctx context.Context, sub *models.Submission) {
	if err := s.notify.NotifyContact(ctx, sub); err != nil {
		s.log.Error("contact notification email failed", "submission_id", sub.ID, "error", err)
	}
	if err := s.notify.ConfirmContact(ctx, sub); err != nil {
		s.log.Error("contact confirmation email failed", "submission_id", sub.ID, "error", err)
	}
}

func applyMeta(sub *models.Submission, meta RequestMeta) {
	if meta.IPAddress != "" {
		sub.IPAddress = &meta.IPAddress
	}
	if meta.UserAgent != "" {
		sub.UserAgent = &meta.UserAgent
	}
	sub.RecaptchaScore = meta.RecaptchaScore
}
