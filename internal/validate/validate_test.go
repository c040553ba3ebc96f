package validate

import (
	"math"
	"testing"

	"stylist/internal/domain"
)

func price(v float64) *float64 { return &v }

func goodCandidate() domain.Candidate {
	return domain.Candidate{
		ID:           "sku-1",
		Title:        "  Silk Slip Dress ",
		Brand:        "Ganni",
		Price:        price(189.95),
		Currency:     "eur",
		ImageURL:     "https://img.zalando.nl/media/dress.jpg",
		URL:          "https://www.zalando.nl/ganni-silk-slip-dress.html",
		AffiliateURL: "https://www.zalando.nl/ganni-silk-slip-dress.html?wmc=aff",
		Retailer:     "Zalando.nl",
		Availability: "in_stock",
		Slot:         "dress",
	}
}

func TestValidateAccepts(t *testing.T) {
	p, reason := Validate(goodCandidate())
	if reason != ReasonAccepted {
		t.Fatalf("reason = %q, want accepted", reason)
	}
	if p.Title != "Silk Slip Dress" {
		t.Fatalf("title = %q, want trimmed", p.Title)
	}
	if p.Currency != "EUR" {
		t.Fatalf("currency = %q, want EUR", p.Currency)
	}
	if p.Retailer != "zalando.nl" {
		t.Fatalf("retailer = %q, want lowercased", p.Retailer)
	}
	if p.Price != 189.95 {
		t.Fatalf("price = %v", p.Price)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Candidate)
		want   Reason
	}{
		{"blank title", func(c *domain.Candidate) { c.Title = "   " }, ReasonMissingTitle},
		{"missing brand", func(c *domain.Candidate) { c.Brand = "" }, ReasonMissingBrand},
		{"nil price", func(c *domain.Candidate) { c.Price = nil }, ReasonBadPrice},
		{"zero price", func(c *domain.Candidate) { c.Price = price(0) }, ReasonBadPrice},
		{"negative price", func(c *domain.Candidate) { c.Price = price(-5) }, ReasonBadPrice},
		{"nan price", func(c *domain.Candidate) { c.Price = price(math.NaN()) }, ReasonBadPrice},
		{"inf price", func(c *domain.Candidate) { c.Price = price(math.Inf(1)) }, ReasonBadPrice},
		{"missing currency", func(c *domain.Candidate) { c.Currency = "" }, ReasonBadCurrency},
		{"long currency", func(c *domain.Candidate) { c.Currency = "EURO" }, ReasonBadCurrency},
		{"missing url", func(c *domain.Candidate) { c.URL = "" }, ReasonBadURL},
		{"relative url", func(c *domain.Candidate) { c.URL = "/dress.html" }, ReasonBadURL},
		{"ftp url", func(c *domain.Candidate) { c.URL = "ftp://zalando.nl/dress" }, ReasonBadURL},
		{"bare origin url", func(c *domain.Candidate) { c.URL = "https://www.zalando.nl/" }, ReasonBadURL},
		{"bad affiliate", func(c *domain.Candidate) { c.AffiliateURL = "not a url at all ://" }, ReasonBadAffiliateURL},
		{"bad image", func(c *domain.Candidate) { c.ImageURL = "https://img.zalando.nl" }, ReasonBadImageURL},
		{"missing retailer", func(c *domain.Candidate) { c.Retailer = " " }, ReasonMissingRetailer},
		{"missing availability", func(c *domain.Candidate) { c.Availability = "" }, ReasonMissingAvailability},
		{"missing category", func(c *domain.Candidate) { c.Slot = "" }, ReasonMissingCategory},
		{"retailer mismatch", func(c *domain.Candidate) {
			c.Retailer = "zalando.nl"
			c.AffiliateURL = "https://www.amazon.com/dp/B0TEST?tag=aff"
		}, ReasonRetailerMismatch},
	}
	for _, tc := range cases {
		c := goodCandidate()
		tc.mutate(&c)
		if _, reason := Validate(c); reason != tc.want {
			t.Errorf("%s: reason = %q, want %q", tc.name, reason, tc.want)
		}
	}
}

func TestRetailerMatchesURL(t *testing.T) {
	cases := []struct {
		retailer string
		url      string
		want     bool
	}{
		{"zalando.nl", "https://www.zalando.nl/dress.html", true},
		{"Zalando", "https://www.zalando.nl/dress.html", true},
		{"zalando.nl", "https://shop.zalando.nl/dress.html", true},
		{"zalando.nl", "https://www.amazon.com/dp/B0TEST", false},
		{"awin:1234", "https://www.amazon.com/dp/B0TEST", true},
		{"tradedoubler:88", "https://anything.example/path", true},
		{"", "https://www.zalando.nl/dress.html", false},
	}
	for _, tc := range cases {
		if got := RetailerMatchesURL(tc.retailer, tc.url); got != tc.want {
			t.Errorf("RetailerMatchesURL(%q, %q) = %v, want %v", tc.retailer, tc.url, got, tc.want)
		}
	}
}
