package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"stylist/internal/domain"
	"stylist/internal/providers/fetch"
)

const (
	shopScrapeName     = "shopscrape"
	shopScrapeMaxShops = 2
)

// Shop is one scrapeable vendor: a retailer name and a search URL template
// with a single %s verb for the escaped query.
type Shop struct {
	Retailer  string
	SearchURL string
}

// DefaultShops lists the vendors the scraper knows how to query.
func DefaultShops() []Shop {
	return []Shop{
		{Retailer: "zalando.nl", SearchURL: "https://www.zalando.nl/catalogus/?q=%s"},
		{Retailer: "asos.com", SearchURL: "https://www.asos.com/search/?q=%s"},
		{Retailer: "hm.com", SearchURL: "https://www2.hm.com/en_eur/search-results.html?q=%s"},
		{Retailer: "mango.com", SearchURL: "https://shop.mango.com/nl/search?q=%s"},
	}
}

// ShopScrape pulls vendor search pages and lifts structured offer data
// (price, currency, availability) out of embedded JSON-LD metadata.
type ShopScrape struct {
	fetcher  fetch.Fetcher
	shops    []Shop
	viaProxy bool
}

func NewShopScrape(fetcher fetch.Fetcher, shops []Shop, viaProxy bool) *ShopScrape {
	if len(shops) == 0 {
		shops = DefaultShops()
	}
	return &ShopScrape{fetcher: fetcher, shops: shops, viaProxy: viaProxy}
}

func (s *ShopScrape) Name() string { return shopScrapeName }

func (s *ShopScrape) Search(ctx context.Context, query string, opts Options) ([]domain.Candidate, error) {
	shops := s.pickShops(opts.Retailers)
	var (
		candidates []domain.Candidate
		lastErr    error
	)
	for _, shop := range shops {
		page, err := s.fetcher.Fetch(ctx, fmt.Sprintf(shop.SearchURL, url.QueryEscape(query)), fetch.Options{ViaProxy: s.viaProxy})
		if err != nil {
			lastErr = err
			continue
		}
		for _, p := range ExtractLDProducts(page) {
			c := candidateFromLD(p, shop.Retailer, opts.Slot)
			candidates = append(candidates, c)
			if opts.Limit > 0 && len(candidates) >= opts.Limit {
				return candidates, nil
			}
		}
	}
	if len(candidates) == 0 && lastErr != nil {
		return nil, fmt.Errorf("shopscrape: %w", lastErr)
	}
	return candidates, nil
}

// pickShops honors the plan's retailer priority order, falling back to the
// configured list, and bounds how many hosts one call may hit.
func (s *ShopScrape) pickShops(priority []string) []Shop {
	byName := make(map[string]Shop, len(s.shops))
	for _, shop := range s.shops {
		byName[strings.ToLower(shop.Retailer)] = shop
	}
	var picked []Shop
	for _, want := range priority {
		if shop, ok := byName[strings.ToLower(strings.TrimSpace(want))]; ok {
			picked = append(picked, shop)
			if len(picked) >= shopScrapeMaxShops {
				return picked
			}
		}
	}
	for _, shop := range s.shops {
		if len(picked) >= shopScrapeMaxShops {
			break
		}
		if !containsShop(picked, shop.Retailer) {
			picked = append(picked, shop)
		}
	}
	return picked
}

func containsShop(shops []Shop, retailer string) bool {
	for _, s := range shops {
		if strings.EqualFold(s.Retailer, retailer) {
			return true
		}
	}
	return false
}

func candidateFromLD(p LDProduct, retailer, slot string) domain.Candidate {
	return domain.Candidate{
		ID:           p.SKU,
		Title:        p.Name,
		Brand:        p.Brand,
		Price:        p.Price,
		Currency:     p.Currency,
		ImageURL:     p.Image,
		URL:          p.URL,
		AffiliateURL: p.URL,
		Retailer:     retailer,
		Availability: p.Availability,
		Slot:         slot,
		Source:       shopScrapeName,
	}
}

var _ Adapter = (*ShopScrape)(nil)
