package outfit

import (
	"regexp"
	"strconv"
	"strings"
)

// ParsedItem is one outfit line recovered from text. Price, retailer, link,
// and image are optional in any combination.
type ParsedItem struct {
	Category string
	Item     string
	Price    *float64
	Currency string
	Retailer string
	Link     string
	Image    string
}

var (
	bulletPattern = regexp.MustCompile(`^-\s+(.+?)\s+—\s+(.+)$`)
	parenPattern  = regexp.MustCompile(`\(([^)]*)\)\s*$`)
	pricePattern  = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:\s*([A-Za-z]{3}))?$`)
)

// ParseOutfitText recovers structured items from a textual outfit
// description in the bullet form RenderText emits, tolerating missing
// price, retailer, image, or link. Non-bullet lines are ignored. Parsing is
// pure: no state, no I/O.
func ParseOutfitText(text string) []ParsedItem {
	var items []ParsedItem
	for _, line := range strings.Split(text, "\n") {
		m := bulletPattern.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		item := ParsedItem{Category: strings.ToLower(strings.TrimSpace(m[1]))}
		parts := strings.Split(m[2], " · ")

		head := strings.TrimSpace(parts[0])
		if paren := parenPattern.FindStringSubmatch(head); paren != nil {
			head = strings.TrimSpace(strings.TrimSuffix(head, paren[0]))
			parsePriceRetailer(paren[1], &item)
		}
		item.Item = head

		for _, part := range parts[1:] {
			part = strings.TrimSpace(part)
			switch {
			case part == "":
			case strings.HasPrefix(part, "Image:"):
				item.Image = strings.TrimSpace(strings.TrimPrefix(part, "Image:"))
			case item.Link == "":
				item.Link = part
			}
		}
		if item.Item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parsePriceRetailer splits "(189.95 EUR, zalando.nl)" contents, accepting
// either half on its own.
func parsePriceRetailer(raw string, item *ParsedItem) {
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		if m := pricePattern.FindStringSubmatch(field); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				item.Price = &v
				item.Currency = strings.ToUpper(m[2])
				continue
			}
		}
		if item.Retailer == "" {
			item.Retailer = strings.ToLower(field)
		}
	}
}
