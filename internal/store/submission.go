// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"forgesite/internal/models"
)

// Querier is the subset of database operations shared by *sql.DB and
// *sql.Tx. Store methods that must participate in a caller-managed
// transaction accept it explicitly.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SubmissionStore handles all submission-related database operations.
// Soft-deleted rows are excluded from every method except Restore.
type SubmissionStore struct {
	db *sql.DB
}

// NewSubmissionStore creates a new SubmissionStore with the given database connection.
func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

const submissionColumns = `id, kind, name, email, phone, message,
       contact_reason, service, configuration, total_price,
       ip_address, user_agent, recaptcha_score,
       status, read_at, responded_at, created_at, updated_at, deleted_at`

// Create inserts a new submission row using the given Querier (normally the
// service's transaction) and populates the generated ID and timestamps.
func (s *SubmissionStore) Create(ctx context.Context, q Querier, sub *models.Submission) error {
	var configJSON any
	if sub.Configuration != nil {
		data, err := json.Marshal(sub.Configuration)
		if err != nil {
			return fmt.Errorf("marshal configuration: %w", err)
		}
		configJSON = data
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO submissions (kind, name, email, phone, message,
		                         contact_reason, service, configuration, total_price,
		                         ip_address, user_agent, recaptcha_score, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, 'new')
		RETURNING id, status, created_at, updated_at
	`, sub.Kind, sub.Name, sub.Email, sub.Phone, sub.Message,
		sub.ContactReason, sub.Service, configJSON, sub.TotalPrice,
		sub.IPAddress, sub.UserAgent, sub.RecaptchaScore,
	).Scan(&sub.ID, &sub.Status, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// FindByID retrieves a submission by its UUID. Returns nil if it does not
// exist or has been soft-deleted.
func (s *SubmissionStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+submissionColumns+`
		FROM submissions WHERE id = $1 AND deleted_at IS NULL
	`, id)

	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find submission by id: %w", err)
	}
	return sub, nil
}

// ListOptions filters and paginates submission listings.
type ListOptions struct {
	Kind   models.SubmissionKind   // empty = all kinds
	Status models.SubmissionStatus // empty = all statuses
	Limit  int
	Offset int
}

// List returns submissions matching the options, newest first. Soft-deleted
// rows are excluded.
func (s *SubmissionStore) List(ctx context.Context, opts ListOptions) ([]models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE deleted_at IS NULL`
	var args []any

	if opts.Kind != "" {
		args = append(args, opts.Kind)
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if opts.Status != "" {
		args = append(args, opts.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, opts.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, opts.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var items []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		items = append(items, *sub)
	}
	return items, rows.Err()
}

// MarkAsRead transitions a submission from new to read and stamps read_at.
// Returns ErrInvalidTransition when the submission is not in the new state,
// ErrNotFound when it does not exist.
func (s *SubmissionStore) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, `
		UPDATE submissions
		SET status = 'read', read_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'new' AND deleted_at IS NULL
	`)
}

// MarkAsResponded transitions a submission from read to responded and
// stamps responded_at.
func (s *SubmissionStore) MarkAsResponded(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, `
		UPDATE submissions
		SET status = 'responded', responded_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND status = 'read' AND deleted_at IS NULL
	`)
}

// Archive moves a submission to the terminal archived state. Allowed from
// any non-archived state.
func (s *SubmissionStore) Archive(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, `
		UPDATE submissions
		SET status = 'archived', updated_at = NOW()
		WHERE id = $1 AND status <> 'archived' AND deleted_at IS NULL
	`)
}

// transition runs a guarded status update. The WHERE clause encodes the
// allowed source states, so an affected-row count of zero means either a
// missing row or a disallowed transition.
func (s *SubmissionStore) transition(ctx context.Context, id uuid.UUID, query string) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update submission status: %w", err)
	}
	if n == 0 {
		exists, err := s.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrInvalidTransition
	}
	return nil
}

func (s *SubmissionStore) exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM submissions WHERE id = $1 AND deleted_at IS NULL`, id,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check submission exists: %w", err)
	}
	return n > 0, nil
}

// SoftDelete hides a submission from default queries while keeping the row
// for audit. Returns ErrNotFound if already deleted or missing.
func (s *SubmissionStore) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE submissions SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("soft delete submission: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Restore brings a soft-deleted submission back into default queries.
func (s *SubmissionStore) Restore(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE submissions SET deleted_at = NULL, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NOT NULL
	`, id)
	if err != nil {
		return fmt.Errorf("restore submission: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for scanSubmission.
type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(sc scanner) (*models.Submission, error) {
	var sub models.Submission
	var configJSON []byte

	err := sc.Scan(
		&sub.ID, &sub.Kind, &sub.Name, &sub.Email, &sub.Phone, &sub.Message,
		&sub.ContactReason, &sub.Service, &configJSON, &sub.TotalPrice,
		&sub.IPAddress, &sub.UserAgent, &sub.RecaptchaScore,
		&sub.Status, &sub.ReadAt, &sub.RespondedAt, &sub.CreatedAt, &sub.UpdatedAt, &sub.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(configJSON) > 0 {
		var cfg models.QuoteConfiguration
		if err := json.Unmarshal(configJSON, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal configuration: %w", err)
		}
		sub.Configuration = &cfg
	}
	return &sub, nil
}
