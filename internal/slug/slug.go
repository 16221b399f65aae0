// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package slug turns article titles into URL path segments.
package slug

import (
	"regexp"
	"strings"
)

// separators matches every run of characters that cannot appear in a slug.
// Each run collapses to a single hyphen, so punctuation and repeated spaces
// never produce doubled separators.
var separators = regexp.MustCompile(`[^a-z0-9]+`)

// Generate derives the slug for a title.
// "Why We Chose Go in 2026!" becomes "why-we-chose-go-in-2026".
func Generate(title string) string {
	s := separators.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}
