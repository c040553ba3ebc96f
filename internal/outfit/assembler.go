// Package outfit selects a wearable, budget-respecting set of products from
// validated candidate pools, with the seed catalog as last resort.
package outfit

import (
	"sort"
	"strings"

	"stylist/internal/catalog"
	"stylist/internal/domain"
)

// FallbackNote flags any result that drew on the seed catalog.
const FallbackNote = "fallback catalog used"

// stretchFactor widens a slot's price band when the plan allows stretching
// the budget.
const stretchFactor = 1.25

// Assembly is the assembler's outcome: filled slots in plan order, the
// slots nothing could fill, and the summed primary price.
type Assembly struct {
	Slots        []domain.SlotPick
	MissingSlots []string
	TotalPrice   *float64
	Note         string
}

type Assembler struct {
	seed *catalog.Catalog
}

func NewAssembler(seed *catalog.Catalog) *Assembler {
	if seed == nil {
		seed = catalog.Default()
	}
	return &Assembler{seed: seed}
}

// Assemble picks one primary item per required slot plus an alternate where
// the pool offers one. Selection is stable: identical input yields an
// identical outfit.
func (a *Assembler) Assemble(plan *domain.StylePlan, pool map[string][]domain.Product) Assembly {
	var out Assembly
	usedFallback := false
	for _, slot := range plan.Slots {
		constraint := plan.Constraints[slot]
		ranked := rankSlot(pool[slot], plan, slot, constraint)
		if len(ranked) == 0 {
			ranked = a.seedFallback(plan, slot, constraint)
			if len(ranked) > 0 {
				usedFallback = true
			}
		}
		if len(ranked) == 0 {
			out.MissingSlots = append(out.MissingSlots, slot)
			continue
		}
		pick := domain.SlotPick{Slot: slot, Primary: ranked[0]}
		for i := 1; i < len(ranked); i++ {
			if !sameProduct(ranked[i], pick.Primary) {
				alt := ranked[i]
				pick.Alternate = &alt
				break
			}
		}
		out.Slots = append(out.Slots, pick)
	}
	if len(out.Slots) > 0 {
		total := 0.0
		for _, pick := range out.Slots {
			total += pick.Primary.Price
		}
		out.TotalPrice = &total
	}
	if usedFallback {
		out.Note = FallbackNote
	}
	return out
}

// rankSlot filters a slot's pool against its constraints and orders the
// survivors: more keyword matches first, then lower price, then first-seen.
func rankSlot(products []domain.Product, plan *domain.StylePlan, slot string, constraint domain.SlotConstraint) []domain.Product {
	minPrice, maxPrice := slotBand(plan, slot, constraint)

	type scored struct {
		product domain.Product
		matches int
		order   int
	}
	eligible := func(band bool) []scored {
		var kept []scored
		for i, p := range products {
			if hasBannedMaterial(p, constraint.BannedMaterials) {
				continue
			}
			if band {
				if p.Price < minPrice || (maxPrice > 0 && p.Price > maxPrice) {
					continue
				}
			} else if plan.Budget > 0 && p.Price > plan.Budget {
				continue
			}
			kept = append(kept, scored{product: p, matches: keywordMatches(p, constraint), order: i})
		}
		return kept
	}

	kept := eligible(true)
	if len(kept) == 0 {
		// Nothing inside the slot band; fall back to the overall budget.
		kept = eligible(false)
	}
	sort.SliceStable(kept, func(a, b int) bool {
		if kept[a].matches != kept[b].matches {
			return kept[a].matches > kept[b].matches
		}
		if kept[a].product.Price != kept[b].product.Price {
			return kept[a].product.Price < kept[b].product.Price
		}
		return kept[a].order < kept[b].order
	})
	out := make([]domain.Product, 0, len(kept))
	for _, s := range kept {
		out = append(out, s.product)
	}
	return out
}

func (a *Assembler) seedFallback(plan *domain.StylePlan, slot string, constraint domain.SlotConstraint) []domain.Product {
	_, maxPrice := slotBand(plan, slot, constraint)
	if maxPrice <= 0 {
		maxPrice = plan.Budget
	}
	return a.seed.Filter(slot, plan.Region, maxPrice, constraint.Keywords)
}

// slotBand resolves the price band for one slot: explicit constraint bounds
// first, then the plan's budget split, widened when the stretch flag is set.
func slotBand(plan *domain.StylePlan, slot string, constraint domain.SlotConstraint) (minPrice, maxPrice float64) {
	minPrice = constraint.MinPrice
	maxPrice = constraint.MaxPrice
	if maxPrice <= 0 {
		if share, ok := plan.BudgetSplit[slot]; ok && share > 0 {
			maxPrice = plan.Budget * share
		}
	}
	if plan.StretchBudget && maxPrice > 0 {
		maxPrice *= stretchFactor
	}
	return minPrice, maxPrice
}

// keywordMatches counts how many plan keywords and colors the product's
// title or tags mention.
func keywordMatches(p domain.Product, constraint domain.SlotConstraint) int {
	haystack := strings.ToLower(p.Title)
	for _, tag := range p.Tags {
		haystack += " " + strings.ToLower(tag)
	}
	count := 0
	for _, kw := range append(append([]string(nil), constraint.Keywords...), constraint.Colors...) {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(haystack, kw) {
			count++
		}
	}
	return count
}

func hasBannedMaterial(p domain.Product, banned []string) bool {
	haystack := strings.ToLower(p.Title)
	for _, tag := range p.Tags {
		haystack += " " + strings.ToLower(tag)
	}
	for _, material := range banned {
		material = strings.ToLower(strings.TrimSpace(material))
		if material != "" && strings.Contains(haystack, material) {
			return true
		}
	}
	return false
}

func sameProduct(a, b domain.Product) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.URL == b.URL
}
