// Package discovery holds the pluggable product-discovery adapters. Every
// adapter converts its own payload shape into the canonical
// domain.Candidate before returning.
package discovery

import (
	"context"

	"stylist/internal/domain"
)

// Options narrow a single adapter call.
type Options struct {
	Limit    int
	Region   string
	Currency string
	MaxPrice float64
	Slot     string
	// Keywords are the plan's slot keywords, used for tag filtering by the
	// seed catalog adapter.
	Keywords []string
	// Retailers is the plan's retailer priority order. Scraping adapters
	// use it to pick which vendor hosts to query first.
	Retailers []string
}

// Adapter is one pluggable source of raw candidates. A provider failure
// (timeout, non-200, unparseable payload) is an error return, never a
// panic; adapters never return partially-parsed garbage alongside an error.
type Adapter interface {
	Name() string
	Search(ctx context.Context, query string, opts Options) ([]domain.Candidate, error)
}
