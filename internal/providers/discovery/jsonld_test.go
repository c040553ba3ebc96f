package discovery

import "testing"

const productPageFixture = `<!DOCTYPE html>
<html><head>
<title>Silk Slip Dress</title>
<script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Product",
  "name": "Silk Slip Dress",
  "sku": "GA-1042",
  "brand": {"@type": "Brand", "name": "Ganni"},
  "image": ["https://img.zalando.nl/media/dress-front.jpg", "https://img.zalando.nl/media/dress-back.jpg"],
  "url": "https://www.zalando.nl/ganni-silk-slip-dress.html",
  "offers": {
    "@type": "Offer",
    "price": "189.95",
    "priceCurrency": "EUR",
    "availability": "https://schema.org/InStock"
  }
}
</script>
</head><body>irrelevant</body></html>`

const graphFixture = `<html><head>
<script type='application/ld+json'>
{
  "@context": "https://schema.org",
  "@graph": [
    {"@type": "WebSite", "name": "Shop"},
    {"@type": "Product", "name": "Chelsea Boot", "brand": "Vagabond",
     "offers": [{"@type": "Offer", "price": 139.95, "priceCurrency": "EUR", "availability": "http://schema.org/OutOfStock"}]}
  ]
}
</script>
<script type="application/ld+json">not even json</script>
</head></html>`

const listFixture = `<html>
<script type="application/ld+json">
{
  "@type": "ItemList",
  "itemListElement": [
    {"@type": "ListItem", "position": 1, "item": {"@type": "Product", "name": "Satin Trousers",
      "offers": {"price": "79,99", "priceCurrency": "EUR"}}},
    {"@type": "ListItem", "position": 2, "item": {"@type": "Product", "name": "Wide-Leg Denim"}}
  ]
}
</script>
</html>`

func TestExtractLDProductsSingle(t *testing.T) {
	products := ExtractLDProducts(productPageFixture)
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	p := products[0]
	if p.Name != "Silk Slip Dress" || p.Brand != "Ganni" || p.SKU != "GA-1042" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Price == nil || *p.Price != 189.95 {
		t.Fatalf("price = %v, want 189.95", p.Price)
	}
	if p.Currency != "EUR" {
		t.Fatalf("currency = %q", p.Currency)
	}
	if p.Availability != "in_stock" {
		t.Fatalf("availability = %q, want in_stock", p.Availability)
	}
	if p.Image != "https://img.zalando.nl/media/dress-front.jpg" {
		t.Fatalf("image = %q, want first image", p.Image)
	}
}

func TestExtractLDProductsGraphAndBadBlocks(t *testing.T) {
	products := ExtractLDProducts(graphFixture)
	if len(products) != 1 {
		t.Fatalf("got %d products, want 1", len(products))
	}
	p := products[0]
	if p.Name != "Chelsea Boot" || p.Brand != "Vagabond" {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.Price == nil || *p.Price != 139.95 {
		t.Fatalf("price = %v", p.Price)
	}
	if p.Availability != "out_of_stock" {
		t.Fatalf("availability = %q", p.Availability)
	}
}

func TestExtractLDProductsItemList(t *testing.T) {
	products := ExtractLDProducts(listFixture)
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Price == nil || *products[0].Price != 79.99 {
		t.Fatalf("comma decimal price = %v, want 79.99", products[0].Price)
	}
	if products[1].Price != nil {
		t.Fatalf("missing offer should leave price nil")
	}
}

func TestExtractLDProductsEmpty(t *testing.T) {
	if got := ExtractLDProducts("<html><body>no structured data</body></html>"); len(got) != 0 {
		t.Fatalf("expected none, got %d", len(got))
	}
}
