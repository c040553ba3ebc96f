package outfit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// RenderText produces the shoppable outfit description, one bullet per
// filled slot:
//
//	- Category — Brand Item (price, retailer) · url · Image: url
//
// The form is what the chat surface renders directly; ParseOutfitText is
// its companion.
func RenderText(a Assembly) string {
	var b strings.Builder
	for _, pick := range a.Slots {
		p := pick.Primary
		b.WriteString("- ")
		b.WriteString(titleCaser.String(pick.Slot))
		b.WriteString(" — ")
		b.WriteString(strings.TrimSpace(p.Brand + " " + p.Title))
		b.WriteString(fmt.Sprintf(" (%.2f %s, %s)", p.Price, p.Currency, p.Retailer))
		if p.AffiliateURL != "" {
			b.WriteString(" · ")
			b.WriteString(p.AffiliateURL)
		}
		if p.ImageURL != "" {
			b.WriteString(" · Image: ")
			b.WriteString(p.ImageURL)
		}
		b.WriteString("\n")
	}
	if len(a.MissingSlots) > 0 {
		b.WriteString("Missing: ")
		b.WriteString(strings.Join(a.MissingSlots, ", "))
		b.WriteString("\n")
	}
	if a.Note != "" {
		b.WriteString("Note: ")
		b.WriteString(a.Note)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
