// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldMessages maps a normalized field path (numeric indexes replaced by
// "*") and rule tag to the message shown to the visitor. Paths not listed
// here fall back to genericMessage.
var fieldMessages = map[string]map[string]string{
	// Contact forms.
	"contact_reason": {
		"required": "Please select a contact reason.",
		"oneof":    "Invalid contact reason selected.",
	},
	"service": {
		"required": "Please select a service.",
		"oneof":    "Invalid service selected.",
	},
	"name": {
		"required":    "Please provide your name.",
		"min":         "Name must be at least 2 characters long.",
		"max":         "Name cannot exceed 100 characters.",
		"person_name": "Name can only contain letters, spaces, hyphens, dots, and apostrophes.",
	},
	"email": {
		"required":          "Please provide your email address.",
		"email":             "Please provide a valid email address.",
		"max":               "Email cannot exceed 255 characters.",
		"resolvable_domain": "Email domain does not appear to exist.",
	},
	"message": {
		"required": "Please provide a message.",
		"min":      "Message must be at least 10 characters long.",
		"max":      "Message cannot exceed 5000 characters.",
	},
	"recaptcha_token": {
		"required": "Please complete the reCAPTCHA verification.",
	},

	// Quote contact details.
	"contactDetails.name": {
		"required":    "Please provide your name.",
		"min":         "Name must be at least 2 characters long.",
		"max":         "Name cannot exceed 100 characters.",
		"person_name": "Name can only contain letters, spaces, hyphens, dots, and apostrophes.",
	},
	"contactDetails.email": {
		"required":          "Please provide your email address.",
		"email":             "Please provide a valid email address.",
		"max":               "Email cannot exceed 255 characters.",
		"resolvable_domain": "Email domain does not appear to exist.",
	},
	"contactDetails.phone": {
		"phone": "Phone number format is invalid.",
		"max":   "Phone number cannot exceed 20 characters.",
	},
	"contactDetails.message": {
		"max": "Message cannot exceed 2000 characters.",
	},

	// Quote configuration.
	"configuration": {
		"required": "Configuration data is required.",
	},
	"configuration.pageType": {
		"required": "Please select a page type.",
		"oneof":    "Invalid page type selected.",
	},
	"configuration.colors.primary": {
		"required":  "Primary color is required.",
		"hex_color": "Primary color must be a valid hex color code.",
	},
	"configuration.colors.secondary": {
		"required":  "Secondary color is required.",
		"hex_color": "Secondary color must be a valid hex color code.",
	},
	"configuration.sections": {
		"required": "At least one section must be selected.",
		"min":      "At least one section must be selected.",
	},
	"configuration.sections.*": {
		"required": "Section name is required.",
		"max":      "Section name cannot exceed 50 characters.",
	},
	"configuration.additionalPages.*.id": {
		"required": "Additional page id is required.",
		"max":      "Additional page id cannot exceed 50 characters.",
	},
	"configuration.additionalPages.*.name": {
		"required": "Additional page name is required.",
		"max":      "Additional page name cannot exceed 100 characters.",
	},
	"configuration.additionalPages.*.sections": {
		"required": "Each additional page needs at least one section.",
		"min":      "Each additional page needs at least one section.",
	},
	"configuration.additionalPages.*.sections.*": {
		"required": "Section name is required.",
		"max":      "Section name cannot exceed 50 characters.",
	},
	"configuration.features.*": {
		"oneof": "Invalid feature selected.",
	},

	"total": {
		"required": "Total price is required.",
	},
}

// genericMessage builds a fallback message for rules without a table entry.
func genericMessage(fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = "field"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		return fmt.Sprintf("The %s field cannot exceed %s characters.", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("Invalid %s selected.", field)
	case "email":
		return "Please provide a valid email address."
	default:
		return fmt.Sprintf("The %s field is invalid.", strings.TrimSpace(field))
	}
}
