package discovery

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// JSON-LD extraction is kept as isolated pure functions: no shared state,
// each testable against literal fixtures.

var jsonLDScriptPattern = regexp.MustCompile(`(?is)<script[^>]*type\s*=\s*["']application/ld\+json["'][^>]*>(.*?)</script>`)

// LDProduct is one schema.org Product recovered from an embedded JSON-LD
// block, flattened to the fields the pipeline cares about.
type LDProduct struct {
	Name         string
	Brand        string
	SKU          string
	URL          string
	Image        string
	Price        *float64
	Currency     string
	Availability string
}

// ExtractLDProducts scans raw HTML for application/ld+json scripts and
// returns every Product node found, in document order. Malformed blocks are
// skipped, never fatal.
func ExtractLDProducts(html string) []LDProduct {
	var products []LDProduct
	for _, m := range jsonLDScriptPattern.FindAllStringSubmatch(html, -1) {
		raw := strings.TrimSpace(m[1])
		if raw == "" {
			continue
		}
		var node any
		if err := json.Unmarshal([]byte(raw), &node); err != nil {
			continue
		}
		collectLDProducts(node, &products)
	}
	return products
}

func collectLDProducts(node any, out *[]LDProduct) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			collectLDProducts(item, out)
		}
	case map[string]any:
		if graph, ok := v["@graph"]; ok {
			collectLDProducts(graph, out)
		}
		if isLDType(v["@type"], "Product") {
			if p, ok := ldProductFromNode(v); ok {
				*out = append(*out, p)
			}
		}
		if list, ok := v["itemListElement"].([]any); ok {
			for _, el := range list {
				if m, ok := el.(map[string]any); ok {
					collectLDProducts(m["item"], out)
				}
			}
		}
	}
}

func isLDType(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

func ldProductFromNode(node map[string]any) (LDProduct, bool) {
	p := LDProduct{
		Name:  ldString(node["name"]),
		Brand: ldName(node["brand"]),
		SKU:   ldString(node["sku"]),
		URL:   ldString(node["url"]),
		Image: ldFirstString(node["image"]),
	}
	if p.Name == "" {
		return LDProduct{}, false
	}
	offer, ok := firstOffer(node["offers"])
	if ok {
		p.Price = ldPrice(offer["price"])
		if p.Price == nil {
			if spec, ok := offer["priceSpecification"].(map[string]any); ok {
				p.Price = ldPrice(spec["price"])
				p.Currency = ldString(spec["priceCurrency"])
			}
		}
		if p.Currency == "" {
			p.Currency = ldString(offer["priceCurrency"])
		}
		p.Availability = normalizeAvailability(ldString(offer["availability"]))
	}
	return p, true
}

func firstOffer(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		if isLDType(o["@type"], "AggregateOffer") {
			if nested, ok := firstOffer(o["offers"]); ok {
				return nested, true
			}
		}
		return o, true
	case []any:
		for _, item := range o {
			if m, ok := item.(map[string]any); ok {
				return m, true
			}
		}
	}
	return nil, false
}

func ldString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// ldName handles "brand": "Ganni" as well as "brand": {"name": "Ganni"}.
func ldName(v any) string {
	if s := ldString(v); s != "" {
		return s
	}
	if m, ok := v.(map[string]any); ok {
		return ldString(m["name"])
	}
	return ""
}

func ldFirstString(v any) string {
	if s := ldString(v); s != "" {
		return s
	}
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if s := ldString(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// ldPrice tolerates prices serialized as numbers or strings, including
// comma decimal separators.
func ldPrice(v any) *float64 {
	switch p := v.(type) {
	case float64:
		if p > 0 {
			return &p
		}
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(p), ",", ".")
		if parsed, err := strconv.ParseFloat(cleaned, 64); err == nil && parsed > 0 {
			return &parsed
		}
	}
	return nil
}

func normalizeAvailability(raw string) string {
	lowered := strings.ToLower(raw)
	switch {
	case strings.Contains(lowered, "instock"):
		return "in_stock"
	case strings.Contains(lowered, "outofstock"):
		return "out_of_stock"
	case strings.Contains(lowered, "preorder"):
		return "preorder"
	case strings.Contains(lowered, "limitedavailability"):
		return "limited"
	}
	return strings.TrimSpace(raw)
}
