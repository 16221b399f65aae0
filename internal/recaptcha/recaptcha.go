// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package recaptcha verifies Google reCAPTCHA v3 tokens. Verification is
// score-based: the provider returns a 0.0-1.0 score and anything below
// MinScore is treated as a likely bot.
package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// MinScore is the lowest provider score accepted as human.
const MinScore = 0.5

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// Result is the outcome of a token verification.
type Result struct {
	Success bool
	Score   float64
	Action  string
	// Message is a visitor-safe explanation when Success is false.
	Message string
}

// errorMessages maps provider error codes to visitor-safe messages.
var errorMessages = map[string]string{
	"missing-input-secret":   "The reCAPTCHA secret key is missing.",
	"invalid-input-secret":   "The reCAPTCHA secret key is invalid.",
	"missing-input-response": "Please complete the reCAPTCHA verification.",
	"invalid-input-response": "The reCAPTCHA response is invalid or expired.",
	"timeout-or-duplicate":   "The reCAPTCHA response has expired. Please try again.",
	"bad-request":            "The verification request was malformed.",
}

type verifyResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier checks tokens against the reCAPTCHA siteverify endpoint.
type Verifier struct {
	secret  string
	skip    bool
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

// Option customizes a Verifier.
type Option func(*Verifier)

// WithBaseURL overrides the siteverify endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(v *Verifier) { v.baseURL = u }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(v *Verifier) { v.client = c }
}

// New builds a Verifier. When skip is set every token passes with a perfect
// score, which keeps local development and test environments free of real
// provider traffic.
func New(secret string, skip bool, log *slog.Logger, opts ...Option) *Verifier {
	v := &Verifier{
		secret:  secret,
		skip:    skip,
		baseURL: defaultVerifyURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks a token with the provider and maps the outcome to a Result.
// Transport and provider errors never leak to the visitor; they come back as
// a generic failure message and are logged with detail.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) Result {
	if v.skip {
		return Result{Success: true, Score: 1.0}
	}

	if v.secret == "" {
		v.log.Error("recaptcha secret is not configured")
		return Result{Message: "reCAPTCHA is not configured correctly."}
	}

	form := url.Values{
		"secret":   {v.secret},
		"response": {token},
	}
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		v.log.Error("recaptcha request build failed", "error", err)
		return Result{Message: "An error occurred during verification."}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.log.Error("recaptcha request failed", "error", err)
		return Result{Message: "An error occurred during verification."}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.log.Error("recaptcha unexpected status", "status", resp.StatusCode)
		return Result{Message: "An error occurred during verification."}
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		v.log.Error("recaptcha response decode failed", "error", err)
		return Result{Message: "An error occurred during verification."}
	}

	if !body.Success {
		msg := "reCAPTCHA verification failed."
		if len(body.ErrorCodes) > 0 {
			if m, ok := errorMessages[body.ErrorCodes[0]]; ok {
				msg = m
			}
			v.log.Warn("recaptcha provider rejection", "codes", fmt.Sprint(body.ErrorCodes))
		}
		return Result{Score: body.Score, Action: body.Action, Message: msg}
	}

	if body.Score < MinScore {
		v.log.Info("recaptcha score below threshold", "score", body.Score, "action", body.Action)
		return Result{
			Score:   body.Score,
			Action:  body.Action,
			Message: "Verification score too low. Please try again.",
		}
	}

	return Result{Success: true, Score: body.Score, Action: body.Action}
}
