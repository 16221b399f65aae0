// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"forgesite/internal/middleware"
	"forgesite/internal/service"
	"forgesite/internal/validation"
)

// maxQuoteBody caps the request body: the logo cap plus room for the JSON
// payload.
const maxQuoteBody = validation.MaxLogoSize + 1<<20

// QuoteHandler serves the configurator quote endpoint.
type QuoteHandler struct {
	svc       SubmissionProcessor
	validator *validation.Validator
}

// NewQuoteHandler wires the quote endpoint.
func NewQuoteHandler(svc SubmissionProcessor, v *validation.Validator) *QuoteHandler {
	return &QuoteHandler{svc: svc, validator: v}
}

const quoteErrorMessage = "An error occurred while submitting your quote request. Please try again later."

// Submit handles POST /api/quote. The request is multipart when a logo is
// attached ("payload" JSON field plus "logo" file), plain JSON otherwise.
// The reCAPTCHA token is required by validation but not verified here.
func (h *QuoteHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req, logo, ok := h.parse(w, r)
	if !ok {
		return
	}
	if logo != nil {
		defer logo.close()
	}
	req.Sanitize()

	errs := h.validator.Validate(*req)
	if logo != nil {
		if logoErrs := validation.ValidateLogo(logo.contentType, logo.size); logoErrs != nil {
			if errs == nil {
				errs = validation.Errors{}
			}
			for path, msgs := range logoErrs {
				for _, m := range msgs {
					errs.Add(path, m)
				}
			}
		}
	}
	if errs != nil {
		writeValidationErrors(w, invalidDataMessage, errs)
		return
	}

	var upload *service.LogoUpload
	if logo != nil {
		upload = &service.LogoUpload{
			ContentType: logo.contentType,
			Size:        logo.size,
			Data:        logo.file,
		}
	}

	meta := service.RequestMeta{
		IPAddress: middleware.ClientIP(r),
		UserAgent: r.UserAgent(),
	}

	sub, err := h.svc.ProcessQuoteRequest(r.Context(), *req, upload, meta)
	if err != nil {
		slog.Error("quote request submission failed", "error", err)
		writeServerError(w, quoteErrorMessage)
		return
	}

	slog.Info("quote request submitted",
		"submission_id", sub.ID, "email", sub.Email, "total_price", sub.TotalPrice)
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":         true,
		"message":         "Thank you for your quote request! We will review your requirements and send you a detailed quote within 48 hours.",
		"submission_id":   sub.ID,
		"estimated_total": sub.TotalPrice,
	})
}

type logoPart struct {
	file        multipart.File
	contentType string
	size        int64
}

func (l *logoPart) close() { l.file.Close() }

// parse decodes the quote request from either a multipart or JSON body.
func (h *QuoteHandler) parse(w http.ResponseWriter, r *http.Request) (*validation.QuoteRequest, *logoPart, bool) {
	var req validation.QuoteRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxQuoteBody)

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxQuoteBody); err != nil {
			writeBadRequest(w, "Invalid request body.")
			return nil, nil, false
		}

		payload := r.FormValue("payload")
		if payload == "" {
			writeBadRequest(w, "Missing payload field.")
			return nil, nil, false
		}
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			writeBadRequest(w, "Invalid request body.")
			return nil, nil, false
		}

		file, header, err := r.FormFile("logo")
		if err == http.ErrMissingFile {
			return &req, nil, true
		}
		if err != nil {
			writeBadRequest(w, "Invalid logo upload.")
			return nil, nil, false
		}
		return &req, &logoPart{
			file:        file,
			contentType: header.Header.Get("Content-Type"),
			size:        header.Size,
		}, true
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body.")
		return nil, nil, false
	}
	return &req, nil, true
}
