package domain

// Candidate is a raw product record returned by a provider adapter. Every
// adapter converts its own payload shape into this one canonical form before
// anything else sees it. Fields may be missing; nothing here is safe to
// display until it has passed validation.
type Candidate struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title"`
	Brand        string   `json:"brand,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
	URL          string   `json:"url"`
	AffiliateURL string   `json:"affiliate_url,omitempty"`
	Retailer     string   `json:"retailer,omitempty"`
	Availability string   `json:"availability,omitempty"`
	Slot         string   `json:"slot,omitempty"`
	Source       string   `json:"source,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Product is a strict, fully populated product record. Producing one is the
// validator's job; nothing else constructs Products from the outside world.
type Product struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Brand        string   `json:"brand"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	ImageURL     string   `json:"image_url"`
	URL          string   `json:"url"`
	AffiliateURL string   `json:"affiliate_url"`
	Retailer     string   `json:"retailer"`
	Availability string   `json:"availability"`
	Slot         string   `json:"slot"`
	Tags         []string `json:"tags,omitempty"`
}
