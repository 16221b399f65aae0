// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package handlers implements the public JSON API endpoints.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"forgesite/internal/validation"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeServerError returns a generic 500 body. The detailed cause is logged
// by the caller, never sent to the visitor.
func writeServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"message": message,
	})
}

// writeValidationErrors returns the full per-field error map as a 422.
func writeValidationErrors(w http.ResponseWriter, message string, errs validation.Errors) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

// invalidDataMessage matches the framework-default wording the frontend
// already handles.
const invalidDataMessage = "The given data was invalid."

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"success": false,
		"message": message,
	})
}
