package discovery

import (
	"context"

	"stylist/internal/catalog"
	"stylist/internal/domain"
)

const seedCatalogName = "catalog"

// SeedCatalog serves the curated static catalog as an adapter. It is the
// last-resort source: the assembler reaches for it directly when live pools
// are empty, but exposing it here keeps the provider set uniform.
type SeedCatalog struct {
	catalog *catalog.Catalog
}

func NewSeedCatalog(c *catalog.Catalog) *SeedCatalog {
	if c == nil {
		c = catalog.Default()
	}
	return &SeedCatalog{catalog: c}
}

func (s *SeedCatalog) Name() string { return seedCatalogName }

// Search never fails; an empty result simply means the catalog has nothing
// for this slot/region/price/tag combination.
func (s *SeedCatalog) Search(ctx context.Context, query string, opts Options) ([]domain.Candidate, error) {
	products := s.catalog.Filter(opts.Slot, opts.Region, opts.MaxPrice, opts.Keywords)
	if opts.Limit > 0 && len(products) > opts.Limit {
		products = products[:opts.Limit]
	}
	candidates := make([]domain.Candidate, 0, len(products))
	for _, p := range products {
		price := p.Price
		candidates = append(candidates, domain.Candidate{
			ID:           p.ID,
			Title:        p.Title,
			Brand:        p.Brand,
			Price:        &price,
			Currency:     p.Currency,
			ImageURL:     p.ImageURL,
			URL:          p.URL,
			AffiliateURL: p.AffiliateURL,
			Retailer:     p.Retailer,
			Availability: p.Availability,
			Slot:         p.Slot,
			Source:       seedCatalogName,
			Tags:         p.Tags,
		})
	}
	return candidates, nil
}

var _ Adapter = (*SeedCatalog)(nil)
