package outfit

import (
	"reflect"
	"testing"

	"stylist/internal/domain"
)

func product(id, slot, title, brand string, price float64, tags ...string) domain.Product {
	return domain.Product{
		ID:           id,
		Title:        title,
		Brand:        brand,
		Price:        price,
		Currency:     "EUR",
		ImageURL:     "https://img.example/" + id + ".jpg",
		URL:          "https://shop.example/" + id + ".html",
		AffiliateURL: "https://shop.example/" + id + ".html?aff=1",
		Retailer:     "shop.example",
		Availability: "in_stock",
		Slot:         slot,
		Tags:         tags,
	}
}

func galaPlan() *domain.StylePlan {
	return &domain.StylePlan{
		LookID:   "look-1",
		Slots:    []string{domain.SlotTop, domain.SlotShoe},
		Budget:   1500,
		Currency: "EUR",
		Region:   "NL",
		Constraints: map[string]domain.SlotConstraint{
			domain.SlotTop: {Keywords: []string{"silk", "evening"}},
		},
		Queries: map[string]string{
			domain.SlotTop:  "silk evening top",
			domain.SlotShoe: "black heels",
		},
	}
}

func TestAssemblePrefersKeywordMatchesThenPrice(t *testing.T) {
	plan := galaPlan()
	pool := map[string][]domain.Product{
		domain.SlotTop: {
			product("t1", domain.SlotTop, "Cotton Shirt", "Arket", 40),
			product("t2", domain.SlotTop, "Silk Evening Blouse", "Ganni", 120),
			product("t3", domain.SlotTop, "Silk Camisole", "Mango", 60, "evening"),
		},
		domain.SlotShoe: {
			product("s1", domain.SlotShoe, "Black Heels", "SM", 110),
		},
	}
	a := NewAssembler(nil)
	got := a.Assemble(plan, pool)
	if len(got.Slots) != 2 {
		t.Fatalf("filled %d slots, want 2", len(got.Slots))
	}
	top := got.Slots[0]
	// t2 and t3 both match both keywords; t3 is cheaper.
	if top.Primary.ID != "t3" {
		t.Fatalf("primary = %q, want t3", top.Primary.ID)
	}
	if top.Alternate == nil || top.Alternate.ID != "t2" {
		t.Fatalf("alternate = %+v, want t2", top.Alternate)
	}
	if got.TotalPrice == nil || *got.TotalPrice != 60+110 {
		t.Fatalf("total = %v, want 170", got.TotalPrice)
	}
	if got.Note != "" {
		t.Fatalf("no fallback should be flagged, got note %q", got.Note)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	plan := galaPlan()
	pool := map[string][]domain.Product{
		domain.SlotTop: {
			product("t1", domain.SlotTop, "Silk Top A", "B1", 80, "evening"),
			product("t2", domain.SlotTop, "Silk Top B", "B2", 80, "evening"),
		},
		domain.SlotShoe: {
			product("s1", domain.SlotShoe, "Heels", "SM", 110),
			product("s2", domain.SlotShoe, "Heels", "SM", 110),
		},
	}
	a := NewAssembler(nil)
	first := a.Assemble(plan, pool)
	second := a.Assemble(plan, pool)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assembly is not deterministic:\n%+v\nvs\n%+v", first, second)
	}
	// Equal score and price: first-seen wins.
	if first.Slots[0].Primary.ID != "t1" {
		t.Fatalf("tie must go to first-seen, got %q", first.Slots[0].Primary.ID)
	}
}

func TestAssembleBannedMaterials(t *testing.T) {
	plan := galaPlan()
	plan.Constraints[domain.SlotTop] = domain.SlotConstraint{BannedMaterials: []string{"polyester"}}
	pool := map[string][]domain.Product{
		domain.SlotTop: {
			product("t1", domain.SlotTop, "Polyester Blouse", "X", 20),
			product("t2", domain.SlotTop, "Linen Blouse", "Y", 50),
		},
	}
	got := NewAssembler(nil).Assemble(plan, pool)
	for _, pick := range got.Slots {
		if pick.Slot == domain.SlotTop && pick.Primary.ID != "t2" {
			t.Fatalf("banned material selected: %+v", pick.Primary)
		}
	}
}

func TestAssembleSlotBandThenOverallBudget(t *testing.T) {
	plan := galaPlan()
	plan.BudgetSplit = map[string]float64{domain.SlotTop: 0.1} // band max 150
	pool := map[string][]domain.Product{
		domain.SlotTop: {
			product("t1", domain.SlotTop, "Pricey Silk Top", "X", 400, "silk"),
			product("t2", domain.SlotTop, "Banded Silk Top", "Y", 140, "silk"),
		},
	}
	got := NewAssembler(nil).Assemble(plan, pool)
	if got.Slots[0].Primary.ID != "t2" {
		t.Fatalf("band should prefer t2, got %q", got.Slots[0].Primary.ID)
	}

	// With only the out-of-band item, the overall budget still admits it.
	pool[domain.SlotTop] = pool[domain.SlotTop][:1]
	got = NewAssembler(nil).Assemble(plan, pool)
	if got.Slots[0].Primary.ID != "t1" {
		t.Fatalf("overall budget fallback failed, got %+v", got.Slots[0])
	}
}

func TestAssembleStretchWidensBand(t *testing.T) {
	plan := galaPlan()
	plan.BudgetSplit = map[string]float64{domain.SlotTop: 0.1} // 150, stretched 187.5
	pool := map[string][]domain.Product{
		domain.SlotTop: {
			product("t1", domain.SlotTop, "Silk Evening Top", "X", 180),
			product("t2", domain.SlotTop, "Plain Top", "Y", 140),
		},
	}
	got := NewAssembler(nil).Assemble(plan, pool)
	if got.Slots[0].Primary.ID != "t2" {
		t.Fatalf("without stretch the band should keep only t2, got %q", got.Slots[0].Primary.ID)
	}

	plan.StretchBudget = true
	got = NewAssembler(nil).Assemble(plan, pool)
	if got.Slots[0].Primary.ID != "t1" {
		t.Fatalf("stretched band should admit and prefer t1, got %q", got.Slots[0].Primary.ID)
	}
}

func TestAssembleSeedFallback(t *testing.T) {
	plan := &domain.StylePlan{
		LookID:   "look-2",
		Slots:    []string{domain.SlotDress, domain.SlotShoe, domain.SlotAccessory},
		Budget:   1500,
		Currency: "EUR",
		Region:   "NL",
		Constraints: map[string]domain.SlotConstraint{
			domain.SlotDress: {Keywords: []string{"gala", "evening"}},
		},
		Queries: map[string]string{},
	}
	got := NewAssembler(nil).Assemble(plan, map[string][]domain.Product{})
	if len(got.Slots) == 0 {
		t.Fatalf("seed catalog should fill at least one slot")
	}
	if got.Note != FallbackNote {
		t.Fatalf("note = %q, want %q", got.Note, FallbackNote)
	}
	for _, pick := range got.Slots {
		if pick.Primary.Price > plan.Budget {
			t.Fatalf("fallback pick exceeds budget: %+v", pick.Primary)
		}
	}
}

func TestAssembleMissingSlots(t *testing.T) {
	plan := galaPlan()
	plan.Slots = append(plan.Slots, "headwear") // nothing live or seeded
	pool := map[string][]domain.Product{
		domain.SlotTop:  {product("t1", domain.SlotTop, "Silk Top", "X", 80)},
		domain.SlotShoe: {product("s1", domain.SlotShoe, "Heels", "Y", 90)},
	}
	got := NewAssembler(nil).Assemble(plan, pool)
	if len(got.MissingSlots) != 1 || got.MissingSlots[0] != "headwear" {
		t.Fatalf("missing slots = %v, want [headwear]", got.MissingSlots)
	}
}
