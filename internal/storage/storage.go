// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package storage abstracts where uploaded logo files live. The local
// filesystem implementation serves development; production uses an
// S3-compatible object store.
package storage

import (
	"context"
	"io"
)

// Storage stores and removes uploaded files by key. Keys are
// forward-slash paths unique within the store (e.g. "logos/<uuid>.png").
type Storage interface {
	Save(ctx context.Context, key, contentType string, data io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
}
