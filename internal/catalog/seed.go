package catalog

import "stylist/internal/domain"

// Default returns the built-in seed catalog. Entries are full strict
// products so fallback selections render exactly like live ones.
func Default() *Catalog {
	return New(defaultEntries)
}

func seed(slot, id, title, brand string, price float64, retailer, u, img string, regions []string, tags ...string) Entry {
	return Entry{
		Product: domain.Product{
			ID:           id,
			Title:        title,
			Brand:        brand,
			Price:        price,
			Currency:     "EUR",
			ImageURL:     img,
			URL:          u,
			AffiliateURL: u,
			Retailer:     retailer,
			Availability: "in_stock",
			Slot:         slot,
			Tags:         tags,
		},
		Regions: regions,
	}
}

var eu = []string{"NL", "DE", "BE", "FR"}

var defaultEntries = []Entry{
	seed(domain.SlotAnchor, "seed-anchor-1", "Tailored Wool Blazer", "Hugo Boss", 349.95,
		"zalando.nl", "https://www.zalando.nl/hugo-boss-tailored-wool-blazer.html",
		"https://img.zalando.nl/media/seed/anchor-blazer.jpg", eu,
		"tailored", "evening", "black", "formal"),
	seed(domain.SlotAnchor, "seed-anchor-2", "Oversized Trench Coat", "COS", 225.00,
		"cos.com", "https://www.cos.com/en_eur/women/coats/oversized-trench.html",
		"https://img.cos.com/media/seed/anchor-trench.jpg", nil,
		"minimal", "street", "beige", "casual"),
	seed(domain.SlotTop, "seed-top-1", "Silk Wrap Blouse", "Massimo Dutti", 89.95,
		"massimodutti.com", "https://www.massimodutti.com/nl/silk-wrap-blouse.html",
		"https://img.massimodutti.com/media/seed/top-blouse.jpg", eu,
		"silk", "evening", "red", "gala"),
	seed(domain.SlotTop, "seed-top-2", "Ribbed Knit Top", "Arket", 49.00,
		"arket.com", "https://www.arket.com/en_eur/women/tops/ribbed-knit.html",
		"https://img.arket.com/media/seed/top-knit.jpg", nil,
		"knit", "minimal", "casual", "white"),
	seed(domain.SlotBottom, "seed-bottom-1", "High-Waist Satin Trousers", "Mango", 79.99,
		"mango.com", "https://shop.mango.com/nl/high-waist-satin-trousers.html",
		"https://img.mango.com/media/seed/bottom-satin.jpg", eu,
		"satin", "evening", "black", "gala"),
	seed(domain.SlotBottom, "seed-bottom-2", "Wide-Leg Denim", "Weekday", 59.00,
		"weekday.com", "https://www.weekday.com/en_eur/women/jeans/wide-leg.html",
		"https://img.weekday.com/media/seed/bottom-denim.jpg", nil,
		"denim", "street", "casual", "blue"),
	seed(domain.SlotDress, "seed-dress-1", "Draped Column Gown", "Zalando Studio", 199.95,
		"zalando.nl", "https://www.zalando.nl/zalando-studio-draped-column-gown.html",
		"https://img.zalando.nl/media/seed/dress-gown.jpg", eu,
		"evening", "red", "gala", "draped"),
	seed(domain.SlotDress, "seed-dress-2", "Linen Midi Dress", "ASOS Design", 64.99,
		"asos.com", "https://www.asos.com/asos-design/linen-midi-dress/prd/20531.html",
		"https://img.asos.com/media/seed/dress-linen.jpg", nil,
		"linen", "summer", "casual", "white"),
	seed(domain.SlotShoe, "seed-shoe-1", "Strappy Heeled Sandals", "Steve Madden", 119.95,
		"zalando.nl", "https://www.zalando.nl/steve-madden-strappy-heeled-sandals.html",
		"https://img.zalando.nl/media/seed/shoe-sandal.jpg", eu,
		"heels", "evening", "gala", "black"),
	seed(domain.SlotShoe, "seed-shoe-2", "Leather Chelsea Boots", "Vagabond", 139.95,
		"vagabond.com", "https://www.vagabond.com/eu/chelsea-boots-leather.html",
		"https://img.vagabond.com/media/seed/shoe-boot.jpg", nil,
		"leather", "street", "casual", "black"),
	seed(domain.SlotAccessory, "seed-acc-1", "Box Clutch", "Ted Baker", 89.95,
		"zalando.nl", "https://www.zalando.nl/ted-baker-box-clutch.html",
		"https://img.zalando.nl/media/seed/acc-clutch.jpg", eu,
		"clutch", "evening", "gala", "gold"),
	seed(domain.SlotAccessory, "seed-acc-2", "Chunky Chain Necklace", "& Other Stories", 29.00,
		"stories.com", "https://www.stories.com/en_eur/jewellery/chain-necklace.html",
		"https://img.stories.com/media/seed/acc-necklace.jpg", nil,
		"jewellery", "street", "minimal", "gold"),
}
