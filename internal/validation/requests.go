// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package validation

import "forgesite/internal/sanitize"

// ContactForm is the payload of POST /api/contact.
type ContactForm struct {
	ContactReason  string `json:"contact_reason" validate:"required,oneof=general quote"`
	Name           string `json:"name" validate:"required,min=2,max=100,person_name"`
	Email          string `json:"email" validate:"required,email,max=255,resolvable_domain"`
	Message        string `json:"message" validate:"required,min=10,max=5000"`
	RecaptchaToken string `json:"recaptcha_token" validate:"required"`
}

// Sanitize cleans free-text fields in place before validation.
func (f *ContactForm) Sanitize() {
	f.Name = sanitize.Text(f.Name)
	f.Email = sanitize.Email(f.Email)
	f.Message = sanitize.Text(f.Message)
}

// HomeContactForm is the payload of POST /api/contact/home. The home page
// form asks for a service instead of a contact reason.
type HomeContactForm struct {
	Name           string `json:"name" validate:"required,min=2,max=100,person_name"`
	Email          string `json:"email" validate:"required,email,max=255,resolvable_domain"`
	Service        string `json:"service" validate:"required,oneof=contract website custom"`
	Message        string `json:"message" validate:"required,min=10,max=5000"`
	RecaptchaToken string `json:"recaptcha_token" validate:"required"`
}

// Sanitize cleans free-text fields in place before validation.
func (f *HomeContactForm) Sanitize() {
	f.Name = sanitize.Text(f.Name)
	f.Email = sanitize.Email(f.Email)
	f.Message = sanitize.Text(f.Message)
}

// QuoteRequest is the payload of POST /api/quote (multipart field "payload",
// with the optional logo file alongside).
type QuoteRequest struct {
	ContactDetails QuoteContactDetails `json:"contactDetails" validate:"required"`
	Configuration  QuoteConfiguration  `json:"configuration" validate:"required"`
	Total          float64             `json:"total" validate:"required,quote_total"`
	RecaptchaToken string              `json:"recaptcha_token" validate:"required"`
}

// Sanitize cleans free-text contact fields in place before validation.
func (f *QuoteRequest) Sanitize() {
	f.ContactDetails.Name = sanitize.Text(f.ContactDetails.Name)
	f.ContactDetails.Email = sanitize.Email(f.ContactDetails.Email)
	f.ContactDetails.Phone = sanitize.TextPtr(f.ContactDetails.Phone)
	f.ContactDetails.Message = sanitize.TextPtr(f.ContactDetails.Message)
}

// QuoteContactDetails carries the submitter's details on a quote request.
type QuoteContactDetails struct {
	Name    string  `json:"name" validate:"required,min=2,max=100,person_name"`
	Email   string  `json:"email" validate:"required,email,max=255,resolvable_domain"`
	Phone   *string `json:"phone" validate:"omitempty,max=20,phone"`
	Message *string `json:"message" validate:"omitempty,max=2000"`
}

// QuoteConfiguration is the website configuration built in the configurator.
type QuoteConfiguration struct {
	PageType        string           `json:"pageType" validate:"required,oneof=single multi"`
	Colors          QuoteColors      `json:"colors" validate:"required"`
	Sections        []string         `json:"sections" validate:"required,min=1,dive,required,max=50"`
	AdditionalPages []AdditionalPage `json:"additionalPages" validate:"omitempty,dive"`
	Features        []string         `json:"features" validate:"omitempty,dive,oneof=booking-form payment-gateway blog gallery ecommerce-basic contact-form-advanced"`
}

// QuoteColors holds the two theme colors.
type QuoteColors struct {
	Primary   string `json:"primary" validate:"required,hex_color"`
	Secondary string `json:"secondary" validate:"required,hex_color"`
}

// AdditionalPage is one extra page requested beyond the base site. Every
// entry needs an id, a name, and at least one section.
type AdditionalPage struct {
	ID       string   `json:"id" validate:"required,max=50"`
	Name     string   `json:"name" validate:"required,max=100"`
	Sections []string `json:"sections" validate:"required,min=1,dive,required,max=50"`
}
