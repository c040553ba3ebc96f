// Package catalog holds the curated seed products used when live discovery
// comes up empty. Read-only after construction.
package catalog

import (
	"sort"
	"strings"

	"stylist/internal/domain"
)

// Entry is one seed product plus the regions it ships to. An empty region
// list means worldwide.
type Entry struct {
	Product domain.Product
	Regions []string
}

type Catalog struct {
	entries []Entry
}

func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

// Filter returns seed products for a slot, restricted to the requested
// region and price ceiling. When keywords are given, only entries sharing at
// least one tag are returned, ordered by tag overlap, then price, then
// catalog order.
func (c *Catalog) Filter(slot, region string, maxPrice float64, keywords []string) []domain.Product {
	slot = strings.ToLower(strings.TrimSpace(slot))
	region = strings.ToUpper(strings.TrimSpace(region))
	wanted := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			wanted[kw] = struct{}{}
		}
	}

	type scored struct {
		product domain.Product
		overlap int
		order   int
	}
	var matches []scored
	for i, entry := range c.entries {
		if entry.Product.Slot != slot {
			continue
		}
		if region != "" && !entry.shipsTo(region) {
			continue
		}
		if maxPrice > 0 && entry.Product.Price > maxPrice {
			continue
		}
		overlap := 0
		for _, tag := range entry.Product.Tags {
			if _, ok := wanted[strings.ToLower(tag)]; ok {
				overlap++
			}
		}
		if len(wanted) > 0 && overlap == 0 {
			continue
		}
		matches = append(matches, scored{product: entry.Product, overlap: overlap, order: i})
	}
	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].overlap != matches[b].overlap {
			return matches[a].overlap > matches[b].overlap
		}
		if matches[a].product.Price != matches[b].product.Price {
			return matches[a].product.Price < matches[b].product.Price
		}
		return matches[a].order < matches[b].order
	})
	out := make([]domain.Product, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.product)
	}
	return out
}

func (e Entry) shipsTo(region string) bool {
	if len(e.Regions) == 0 {
		return true
	}
	for _, r := range e.Regions {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}
