// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package validation applies per-endpoint field rules to form submissions
// and reports failures as a map of field paths to human-readable messages.
// Nested array entries (quote additionalPages and their sections) are
// validated per element, with errors reported against the element's own
// path (e.g. "configuration.additionalPages.1.sections"), never rolled up.
package validation

import (
	"errors"
	"fmt"
	"net"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors maps a field path to one or more human-readable messages.
// Paths use dot notation with numeric indexes for array elements, matching
// the request body shape: "name", "contactDetails.email",
// "configuration.additionalPages.0.sections".
type Errors map[string][]string

// Any reports whether at least one field failed.
func (e Errors) Any() bool { return len(e) > 0 }

// Add appends a message for a field path.
func (e Errors) Add(path, msg string) { e[path] = append(e[path], msg) }

var (
	personNamePattern = regexp.MustCompile(`^[a-zA-Z\s\-\.']+$`)
	hexColorPattern   = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
	phonePattern      = regexp.MustCompile(`^[\d\s\+\-\(\)]+$`)
	indexPattern      = regexp.MustCompile(`\[(\d+)\]`)
	digitSegment      = regexp.MustCompile(`(^|\.)\d+(\.|$)`)
)

// Options configures a Validator.
type Options struct {
	// MinTotal and MaxTotal bound the quote total price (currency units).
	MinTotal float64
	MaxTotal float64

	// CheckEmailDNS enables MX/host resolution of email domains. Off in
	// tests to keep them hermetic.
	CheckEmailDNS bool
}

// Validator validates request payloads. One instance is shared by all
// handlers; it is safe for concurrent use.
type Validator struct {
	validate *validator.Validate
	opts     Options
}

// New builds a Validator with all custom rules registered.
func New(opts Options) *Validator {
	v := &Validator{
		validate: validator.New(),
		opts:     opts,
	}

	// Report field paths using JSON names so error keys match the
	// request body, not Go struct fields.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.validate.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	v.validate.RegisterValidation("hex_color", func(fl validator.FieldLevel) bool {
		return hexColorPattern.MatchString(fl.Field().String())
	})
	v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.validate.RegisterValidation("quote_total", func(fl validator.FieldLevel) bool {
		t := fl.Field().Float()
		return t >= opts.MinTotal && t <= opts.MaxTotal
	})
	v.validate.RegisterValidation("resolvable_domain", func(fl validator.FieldLevel) bool {
		if !opts.CheckEmailDNS {
			return true
		}
		return domainResolves(fl.Field().String())
	})

	return v
}

// Validate checks a request payload and returns nil when everything passed,
// or the complete per-field error map. All-or-nothing: a single invalid
// field fails the whole request.
func (v *Validator) Validate(payload any) Errors {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Struct-level misuse (nil payload etc.), not a field failure.
		return Errors{"payload": {"Invalid request payload."}}
	}

	out := Errors{}
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		out.Add(path, v.message(path, fe))
	}
	return out
}

// fieldPath converts a validator namespace into a request-body dot path:
// "QuoteRequest.configuration.additionalPages[1].sections" becomes
// "configuration.additionalPages.1.sections".
func fieldPath(ns string) string {
	if idx := strings.IndexByte(ns, '.'); idx != -1 {
		ns = ns[idx+1:]
	}
	return indexPattern.ReplaceAllString(ns, ".$1")
}

// normalizePath replaces numeric path segments with "*" for message lookup,
// so one table entry covers every element of an array.
func normalizePath(path string) string {
	for digitSegment.MatchString(path) {
		path = digitSegment.ReplaceAllString(path, "$1*$2")
	}
	return path
}

// message resolves the human-readable message for a failed field, checking
// the static table first and falling back to a generic per-rule message.
func (v *Validator) message(path string, fe validator.FieldError) string {
	norm := normalizePath(path)

	if byTag, ok := fieldMessages[norm]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}

	// Bounds are configured, so this message cannot live in the static table.
	if fe.Tag() == "quote_total" {
		return fmt.Sprintf("Total price must be between £%.0f and £%.0f.", v.opts.MinTotal, v.opts.MaxTotal)
	}

	return genericMessage(fe)
}

// domainResolves checks that the email's domain has an MX record or, failing
// that, resolves at all.
func domainResolves(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at == -1 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}
	addrs, err := net.LookupHost(domain)
	return err == nil && len(addrs) > 0
}
