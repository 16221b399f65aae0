// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"forgesite/internal/models"
	"forgesite/internal/slug"
)

// ArticleStore handles all article-related database operations. "Published"
// means the flag is set and published_at is not in the future.
type ArticleStore struct {
	db *sql.DB
}

// NewArticleStore creates a new ArticleStore with the given database connection.
func NewArticleStore(db *sql.DB) *ArticleStore {
	return &ArticleStore{db: db}
}

const articleColumns = `id, title, slug, excerpt, content, hero_image, images,
       is_published, published_at, created_at, updated_at`

// ListPublished returns one page of published articles ordered by publish
// date descending, plus the total count for pagination metadata.
func (s *ArticleStore) ListPublished(ctx context.Context, page, perPage int) ([]models.Article, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM articles
		WHERE is_published AND published_at IS NOT NULL AND published_at <= NOW()
	`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count published articles: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE is_published AND published_at IS NOT NULL AND published_at <= NOW()
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("list published articles: %w", err)
	}
	defer rows.Close()

	var items []models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan article: %w", err)
		}
		items = append(items, *a)
	}
	return items, total, rows.Err()
}

// FindPublishedBySlug retrieves a published article by its slug. Returns nil
// when the article is absent, unpublished, or scheduled for the future.
func (s *ArticleStore) FindPublishedBySlug(ctx context.Context, articleSlug string) (*models.Article, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE slug = $1 AND is_published AND published_at IS NOT NULL AND published_at <= NOW()
	`, articleSlug)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by slug: %w", err)
	}
	return a, nil
}

// Create inserts a new article. The slug is derived from the title when not
// provided. When publishing without an explicit date, published_at is set now.
func (s *ArticleStore) Create(ctx context.Context, a *models.Article) error {
	if a.Slug == "" {
		a.Slug = slug.Generate(a.Title)
	}

	var imagesJSON any
	if a.Images != nil {
		data, err := json.Marshal(a.Images)
		if err != nil {
			return fmt.Errorf("marshal images: %w", err)
		}
		imagesJSON = data
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO articles (title, slug, excerpt, content, hero_image, images,
		                      is_published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        CASE WHEN $7 AND $8::timestamptz IS NULL THEN NOW() ELSE $8 END)
		RETURNING id, published_at, created_at, updated_at
	`, a.Title, a.Slug, a.Excerpt, a.Content, a.HeroImage, imagesJSON,
		a.IsPublished, a.PublishedAt,
	).Scan(&a.ID, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	return nil
}

func scanArticle(sc scanner) (*models.Article, error) {
	var a models.Article
	var imagesJSON []byte

	err := sc.Scan(
		&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.Content, &a.HeroImage, &imagesJSON,
		&a.IsPublished, &a.PublishedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(imagesJSON) > 0 {
		if err := json.Unmarshal(imagesJSON, &a.Images); err != nil {
			return nil, fmt.Errorf("unmarshal images: %w", err)
		}
	}
	return &a, nil
}
