// Copyright (c) 2026 CodeForge Systems Ltd <hello@codeforge.systems>
// All rights reserved. See LICENSE for details.

// Package pricing computes the estimated price of a configured website.
// The server-side price table is authoritative; the total a visitor submits
// is only ever validated against bounds, never trusted for billing.
package pricing

import (
	"fmt"

	"forgesite/internal/models"
)

// PriceTable holds the flat rates used to price a configuration.
type PriceTable struct {
	Base              float64
	PerAdditionalPage float64
	Features          map[string]float64
}

// featureLabels are the display names used in quote notification emails.
var featureLabels = map[string]string{
	"booking-form":          "Booking Form",
	"payment-gateway":       "Payment Gateway",
	"blog":                  "Blog",
	"gallery":               "Gallery",
	"ecommerce-basic":       "Basic E-Commerce",
	"contact-form-advanced": "Advanced Contact Form",
}

// Default returns the current price table.
func Default() PriceTable {
	return PriceTable{
		Base:              350,
		PerAdditionalPage: 50,
		Features: map[string]float64{
			"booking-form":          100,
			"payment-gateway":       150,
			"blog":                  75,
			"gallery":               50,
			"ecommerce-basic":       200,
			"contact-form-advanced": 50,
		},
	}
}

// Line is one row of a price breakdown.
type Line struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// Breakdown is an itemized server-side estimate for a configuration.
type Breakdown struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`
}

// Estimate prices a configuration against the table. Unknown feature keys
// are skipped; validation rejects them before pricing runs.
func (t PriceTable) Estimate(cfg models.QuoteConfiguration) Breakdown {
	b := Breakdown{}

	b.add("Base website", t.Base)

	if n := len(cfg.AdditionalPages); n > 0 {
		b.add(fmt.Sprintf("Additional pages (%d)", n), float64(n)*t.PerAdditionalPage)
	}

	for _, f := range cfg.Features {
		price, ok := t.Features[f]
		if !ok {
			continue
		}
		b.add(FeatureLabel(f), price)
	}

	return b
}

func (b *Breakdown) add(label string, amount float64) {
	b.Lines = append(b.Lines, Line{Label: label, Amount: amount})
	b.Total += amount
}

// FeatureLabel returns the display name of a feature key, falling back to
// the raw key.
func FeatureLabel(key string) string {
	if label, ok := featureLabels[key]; ok {
		return label
	}
	return key
}

// FormatGBP renders an amount the way it appears in emails and responses.
func FormatGBP(amount float64) string {
	return fmt.Sprintf("£%.2f", amount)
}
