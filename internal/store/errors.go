// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package store

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is soft-deleted.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidTransition is returned when a status update would violate
	// the submission state machine (new → read → responded, archived from
	// any state, archived terminal).
	ErrInvalidTransition = errors.New("store: invalid status transition")
)
