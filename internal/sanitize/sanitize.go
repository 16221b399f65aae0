// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package sanitize cleans free-text form input before validation. It strips
// HTML markup and angle brackets so user-provided text is safe to store and
// embed in notification emails.
package sanitize

import (
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Text removes HTML tags, drops any remaining angle brackets, and trims
// surrounding whitespace. Applied to names, phone numbers, and messages.
func Text(s string) string {
	s = tagPattern.ReplaceAllString(s, "")
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	return strings.TrimSpace(s)
}

// Email lowercases and trims an email address. Tag stripping is not applied
// because angle brackets never survive validation anyway.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TextPtr applies Text to an optional field, preserving nil.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	clean := Text(*s)
	return &clean
}
