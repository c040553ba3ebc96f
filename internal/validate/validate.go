// Package validate turns raw provider candidates into strict products.
// It is a pure filter: no partial acceptance, no coercion beyond whitespace
// trimming and case normalization of currency and retailer.
package validate

import (
	"math"
	"net/url"
	"regexp"
	"strings"

	"stylist/internal/domain"
)

// Reason identifies why a candidate was rejected. The zero value means the
// candidate was accepted.
type Reason string

const (
	ReasonAccepted            Reason = ""
	ReasonMissingTitle        Reason = "missing_title"
	ReasonMissingBrand        Reason = "missing_brand"
	ReasonBadPrice            Reason = "bad_price"
	ReasonBadCurrency         Reason = "bad_currency"
	ReasonBadURL              Reason = "bad_url"
	ReasonBadAffiliateURL     Reason = "bad_affiliate_url"
	ReasonBadImageURL         Reason = "bad_image_url"
	ReasonMissingRetailer     Reason = "missing_retailer"
	ReasonMissingAvailability Reason = "missing_availability"
	ReasonMissingCategory     Reason = "missing_category"
	ReasonRetailerMismatch    Reason = "retailer_mismatch"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate normalizes and checks a single candidate. A non-empty Reason
// means rejection; the returned product is only meaningful when the reason
// is ReasonAccepted.
func Validate(c domain.Candidate) (domain.Product, Reason) {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return domain.Product{}, ReasonMissingTitle
	}
	brand := strings.TrimSpace(c.Brand)
	if brand == "" {
		return domain.Product{}, ReasonMissingBrand
	}
	if c.Price == nil || *c.Price <= 0 || math.IsNaN(*c.Price) || math.IsInf(*c.Price, 0) {
		return domain.Product{}, ReasonBadPrice
	}
	currency := strings.ToUpper(strings.TrimSpace(c.Currency))
	if !currencyPattern.MatchString(currency) {
		return domain.Product{}, ReasonBadCurrency
	}
	productURL := strings.TrimSpace(c.URL)
	if !absoluteHTTPURL(productURL) {
		return domain.Product{}, ReasonBadURL
	}
	affiliateURL := strings.TrimSpace(c.AffiliateURL)
	if !absoluteHTTPURL(affiliateURL) {
		return domain.Product{}, ReasonBadAffiliateURL
	}
	imageURL := strings.TrimSpace(c.ImageURL)
	if !absoluteHTTPURL(imageURL) {
		return domain.Product{}, ReasonBadImageURL
	}
	retailer := strings.ToLower(strings.TrimSpace(c.Retailer))
	if retailer == "" {
		return domain.Product{}, ReasonMissingRetailer
	}
	availability := strings.TrimSpace(c.Availability)
	if availability == "" {
		return domain.Product{}, ReasonMissingAvailability
	}
	slot := strings.TrimSpace(c.Slot)
	if slot == "" {
		return domain.Product{}, ReasonMissingCategory
	}
	if !RetailerMatchesURL(retailer, affiliateURL) {
		return domain.Product{}, ReasonRetailerMismatch
	}
	return domain.Product{
		ID:           strings.TrimSpace(c.ID),
		Title:        title,
		Brand:        brand,
		Price:        *c.Price,
		Currency:     currency,
		ImageURL:     imageURL,
		URL:          productURL,
		AffiliateURL: affiliateURL,
		Retailer:     retailer,
		Availability: availability,
		Slot:         slot,
		Tags:         c.Tags,
	}, ReasonAccepted
}

// RetailerMatchesURL reports whether a retailer string is textually
// consistent with the affiliate URL's host. Provider-tagged retailers such
// as "awin:1234" (a ':' and no '.') are exempt from host matching.
func RetailerMatchesURL(retailer, affiliateURL string) bool {
	r := strings.ToLower(strings.TrimSpace(retailer))
	if r == "" {
		return false
	}
	if strings.Contains(r, ":") && !strings.Contains(r, ".") {
		return true
	}
	u, err := url.Parse(strings.TrimSpace(affiliateURL))
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	r = strings.TrimPrefix(r, "www.")
	if host == "" {
		return false
	}
	if host == r || strings.HasSuffix(host, "."+r) || strings.HasSuffix(r, "."+host) {
		return true
	}
	// A brand-style retailer ("Zalando") matches any zalando.* host.
	label := r
	if idx := strings.IndexByte(label, '.'); idx > 0 {
		label = label[:idx]
	}
	return len(label) >= 3 && strings.Contains(host, label)
}

// absoluteHTTPURL accepts only absolute http(s) URLs that point past a bare
// origin.
func absoluteHTTPURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if u.Host == "" {
		return false
	}
	return u.Path != "" && u.Path != "/"
}
