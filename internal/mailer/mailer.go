// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package mailer renders and sends the notification and confirmation emails
// triggered by contact-form and quote submissions. Sending is best-effort:
// callers log failures and keep going, a submission is never lost because
// SMTP was down.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"forgesite/internal/models"
	"forgesite/internal/pricing"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

// Message is one outbound email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers messages. The SMTP implementation is used in production;
// tests substitute a recording fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Addresses configures where notifications are routed.
type Addresses struct {
	// Info receives general contact notifications.
	Info string
	// Quotes receives quote-reason contacts and configurator quotes.
	Quotes string
}

// Mailer builds the emails for each submission kind.
type Mailer struct {
	sender Sender
	addrs  Addresses
	html   *htmltemplate.Template
	text   *texttemplate.Template
}

// New parses the embedded templates and wires the sender.
func New(sender Sender, addrs Addresses) (*Mailer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parsing text templates: %w", err)
	}
	return &Mailer{sender: sender, addrs: addrs, html: html, text: text}, nil
}

type contactData struct {
	Name    string
	Email   string
	Reason  string
	Service string
	Message string
}

type quoteData struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	PageType string
	Sections []string
	Pages    []models.AdditionalPage
	HasLogo  bool
	Lines    []pricing.Line
	Total    string
}

// NotifyContact emails the team about a new contact-form submission.
// Quote-reason contacts go to the quotes mailbox under a quote-inquiry
// subject, everything else to info.
func (m *Mailer) NotifyContact(ctx context.Context, sub *models.Submission) error {
	to := m.addrs.Info
	subject := "New Contact Form Submission"
	if sub.ContactReason != nil && *sub.ContactReason == models.ContactReasonQuote {
		to = m.addrs.Quotes
		subject = "New Quote Inquiry from Website"
	}

	data := contactData{
		Name:  sub.Name,
		Email: sub.Email,
	}
	if sub.ContactReason != nil {
		data.Reason = string(*sub.ContactReason)
	}
	if sub.Service != nil {
		data.Service = *sub.Service
	}
	if sub.Message != nil {
		data.Message = *sub.Message
	}

	return m.send(ctx, "contact_notification", Message{
		To:      to,
		ReplyTo: sub.Email,
		Subject: subject,
	}, data)
}

// ConfirmContact emails the visitor that their message arrived.
func (m *Mailer) ConfirmContact(ctx context.Context, sub *models.Submission) error {
	return m.send(ctx, "contact_confirmation", Message{
		To:      sub.Email,
		Subject: "We received your message",
	}, contactData{Name: sub.Name})
}

// NotifyQuote emails the quotes mailbox about a new configurator quote,
// including the server-side price breakdown.
func (m *Mailer) NotifyQuote(ctx context.Context, sub *models.Submission, breakdown pricing.Breakdown) error {
	data := quoteData{
		Name:  sub.Name,
		Email: sub.Email,
		Lines: breakdown.Lines,
		Total: pricing.FormatGBP(breakdown.Total),
	}
	if sub.Phone != nil {
		data.Phone = *sub.Phone
	}
	if sub.Message != nil {
		data.Message = *sub.Message
	}
	if cfg := sub.Configuration; cfg != nil {
		data.PageType = cfg.PageType
		data.Sections = cfg.Sections
		data.Pages = cfg.AdditionalPages
		data.HasLogo = cfg.LogoPath != ""
	}

	total := breakdown.Total
	if sub.TotalPrice != nil {
		total = *sub.TotalPrice
	}

	return m.send(ctx, "quote_notification", Message{
		To:      m.addrs.Quotes,
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("New Website Quote Request - %s", pricing.FormatGBP(total)),
	}, data)
}

// ConfirmQuote emails the visitor a copy of their estimate.
func (m *Mailer) ConfirmQuote(ctx context.Context, sub *models.Submission, breakdown pricing.Breakdown) error {
	data := quoteData{
		Name:  sub.Name,
		Lines: breakdown.Lines,
		Total: pricing.FormatGBP(breakdown.Total),
	}
	return m.send(ctx, "quote_confirmation", Message{
		To:      sub.Email,
		Subject: "Your website quote request",
	}, data)
}

func (m *Mailer) send(ctx context.Context, name string, msg Message, data any) error {
	var htmlBuf, textBuf bytes.Buffer
	if err := m.html.ExecuteTemplate(&htmlBuf, name+".html", data); err != nil {
		return fmt.Errorf("rendering %s.html: %w", name, err)
	}
	if err := m.text.ExecuteTemplate(&textBuf, name+".txt", data); err != nil {
		return fmt.Errorf("rendering %s.txt: %w", name, err)
	}
	msg.HTML = htmlBuf.String()
	msg.Text = textBuf.String()
	return m.sender.Send(ctx, msg)
}
