// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"forgesite/internal/cache"
	"forgesite/internal/markdown"
	"forgesite/internal/models"
)

const (
	defaultPerPage = 9
	maxPerPage     = 50
)

// ArticleLister is the slice of the article store the public endpoints need.
type ArticleLister interface {
	ListPublished(ctx context.Context, page, perPage int) ([]models.Article, int, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Article, error)
}

// ArticlesHandler serves the public article endpoints. Responses are cached
// briefly in Valkey since articles only change when staff publish.
type ArticlesHandler struct {
	articles ArticleLister
	cache    *cache.ResponseCache
}

// NewArticlesHandler wires the article endpoints.
func NewArticlesHandler(articles ArticleLister, rc *cache.ResponseCache) *ArticlesHandler {
	return &ArticlesHandler{articles: articles, cache: rc}
}

// articleJSON is an article as served over the API, with the Markdown body
// rendered to HTML alongside the raw source.
type articleJSON struct {
	models.Article
	ContentHTML string `json:"content_html"`
}

func renderArticle(a models.Article) articleJSON {
	html, err := markdown.ToHTML(a.Content)
	if err != nil {
		slog.Error("article markdown render failed", "slug", a.Slug, "error", err)
		html = ""
	}
	return articleJSON{Article: a, ContentHTML: html}
}

// List handles GET /api/articles with page and per_page query parameters.
func (h *ArticlesHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", defaultPerPage)
	if perPage < 1 {
		perPage = 1
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	key := cache.ListKey(page, perPage)
	if body, ok := h.cache.Get(r.Context(), key); ok {
		writeCached(w, http.StatusOK, body)
		return
	}

	items, total, err := h.articles.ListPublished(r.Context(), page, perPage)
	if err != nil {
		slog.Error("article listing failed", "error", err)
		writeServerError(w, "An error occurred while loading articles. Please try again later.")
		return
	}

	data := make([]articleJSON, 0, len(items))
	for _, a := range items {
		data = append(data, renderArticle(a))
	}

	lastPage := (total + perPage - 1) / perPage
	if lastPage < 1 {
		lastPage = 1
	}

	body, err := json.Marshal(map[string]any{
		"success": true,
		"data":    data,
		"meta": map[string]any{
			"current_page": page,
			"last_page":    lastPage,
			"per_page":     perPage,
			"total":        total,
		},
	})
	if err != nil {
		slog.Error("article listing encode failed", "error", err)
		writeServerError(w, "An error occurred while loading articles. Please try again later.")
		return
	}

	h.cache.Set(r.Context(), key, body)
	writeCached(w, http.StatusOK, body)
}

// Show handles GET /api/articles/{slug}.
func (h *ArticlesHandler) Show(w http.ResponseWriter, r *http.Request) {
	articleSlug := chi.URLParam(r, "slug")

	key := cache.SlugKey(articleSlug)
	if body, ok := h.cache.Get(r.Context(), key); ok {
		writeCached(w, http.StatusOK, body)
		return
	}

	article, err := h.articles.FindPublishedBySlug(r.Context(), articleSlug)
	if err != nil {
		slog.Error("article lookup failed", "slug", articleSlug, "error", err)
		writeServerError(w, "An error occurred while loading the article. Please try again later.")
		return
	}
	if article == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "Article not found or not published.",
		})
		return
	}

	body, err := json.Marshal(map[string]any{
		"success": true,
		"data":    renderArticle(*article),
	})
	if err != nil {
		slog.Error("article encode failed", "slug", articleSlug, "error", err)
		writeServerError(w, "An error occurred while loading the article. Please try again later.")
		return
	}

	h.cache.Set(r.Context(), key, body)
	writeCached(w, http.StatusOK, body)
}

func writeCached(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
