// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionKind distinguishes contact-form submissions from configurator
// quote requests in the unified submissions table.
type SubmissionKind string

const (
	SubmissionKindContact SubmissionKind = "contact"
	SubmissionKindQuote   SubmissionKind = "quote"
)

// SubmissionStatus tracks how far along the team is in handling a submission.
type SubmissionStatus string

const (
	SubmissionStatusNew       SubmissionStatus = "new"
	SubmissionStatusRead      SubmissionStatus = "read"
	SubmissionStatusResponded SubmissionStatus = "responded"
	SubmissionStatusArchived  SubmissionStatus = "archived"
)

// ContactReason is why a visitor used the main contact form.
type ContactReason string

const (
	ContactReasonGeneral ContactReason = "general"
	ContactReasonQuote   ContactReason = "quote"
)

// Submission represents a single contact-form or quote-request record.
// Kind is fixed at creation and never changes.
type Submission struct {
	ID      uuid.UUID      `json:"id"`
	Kind    SubmissionKind `json:"kind"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   *string        `json:"phone,omitempty"`
	Message *string        `json:"message,omitempty"`

	// Contact-form fields.
	ContactReason *ContactReason `json:"contact_reason,omitempty"`
	Service       *string        `json:"service,omitempty"`

	// Quote-request fields.
	Configuration *QuoteConfiguration `json:"configuration,omitempty"`
	TotalPrice    *float64            `json:"total_price,omitempty"`

	// Security and tracking.
	IPAddress      *string  `json:"ip_address,omitempty"`
	UserAgent      *string  `json:"user_agent,omitempty"`
	RecaptchaScore *float64 `json:"recaptcha_score,omitempty"`

	Status      SubmissionStatus `json:"status"`
	ReadAt      *time.Time       `json:"read_at,omitempty"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   *time.Time       `json:"deleted_at,omitempty"`
}

// QuoteConfiguration is the website configuration a visitor built in the
// quote configurator. Stored as JSONB on the submission row.
type QuoteConfiguration struct {
	PageType        string           `json:"pageType"`
	Colors          QuoteColors      `json:"colors"`
	Sections        []string         `json:"sections"`
	AdditionalPages []AdditionalPage `json:"additionalPages,omitempty"`
	Features        []string         `json:"features,omitempty"`
	LogoPath        string           `json:"logo_path,omitempty"`
}

// QuoteColors holds the two theme colors chosen in the configurator.
type QuoteColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// AdditionalPage describes one extra page requested beyond the base site.
type AdditionalPage struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Sections []string `json:"sections"`
}

// IsContactForm reports whether the submission came from a contact form.
func (s *Submission) IsContactForm() bool {
	return s.Kind == SubmissionKindContact
}

// IsQuoteRequest reports whether the submission came from the configurator.
func (s *Submission) IsQuoteRequest() bool {
	return s.Kind == SubmissionKindQuote
}

// CanTransitionTo reports whether a status change is allowed. Submissions
// move new → read → responded; archived is reachable from any state and is
// terminal. No state re-enters new.
func (s *Submission) CanTransitionTo(next SubmissionStatus) bool {
	if s.Status == SubmissionStatusArchived {
		return false
	}
	switch next {
	case SubmissionStatusArchived:
		return true
	case SubmissionStatusRead:
		return s.Status == SubmissionStatusNew
	case SubmissionStatusResponded:
		return s.Status == SubmissionStatusRead
	default:
		return false
	}
}
