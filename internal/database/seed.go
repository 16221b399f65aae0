// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"forgesite/internal/slug"
)

// Seed populates the database with initial development data: one beta user
// and a couple of published articles. It is a no-op when data already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM beta_users").Scan(&count); err != nil {
		return fmt.Errorf("seed check beta_users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("beta"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO beta_users (name, email, password_hash)
		VALUES ($1, $2, $3)
	`, "Beta Tester", "beta@codeforge.local", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert beta user: %w", err)
	}

	articles := []struct {
		title, excerpt, content string
	}{
		{
			title:   "Welcome to CodeForge Systems",
			excerpt: "Who we are and what we build.",
			content: "# Welcome\n\nWe build fast, reliable websites for small businesses.",
		},
		{
			title:   "What Goes Into a Website Quote",
			excerpt: "A look at how we price website projects.",
			content: "## Pricing\n\nEvery quote starts from a base package plus the pages and features you pick.",
		},
	}

	for _, a := range articles {
		_, err = db.Exec(`
			INSERT INTO articles (title, slug, excerpt, content, is_published, published_at)
			VALUES ($1, $2, $3, $4, TRUE, NOW())
			ON CONFLICT (slug) DO NOTHING
		`, a.title, slug.Generate(a.title), a.excerpt, a.content)
		if err != nil {
			return fmt.Errorf("seed insert article: %w", err)
		}
	}

	slog.Info("database seeded with default beta user",
		"email", "beta@codeforge.local",
		"password", "beta",
	)

	return nil
}
