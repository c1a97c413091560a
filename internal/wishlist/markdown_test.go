package wishlist

import (
	"strings"
	"testing"

	"gearshelf/internal/catalog"
)

const markdownDataset = `{
  "IEMs": [
    {"name": "Budget Set", "price": 25, "url": "https://example.com/a", "pick": true},
    {"name": "Mystery Set", "price": null, "url": "https://example.com/b"}
  ],
  "Cables": [
    {"name": "Braided Cable", "price": 30, "url": "https://example.com/c"}
  ]
}`

func markdownCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(strings.NewReader(markdownDataset))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cat
}

func TestMarkdownGroupsByCatalogOrder(t *testing.T) {
	cat := markdownCatalog(t)
	// Wishlist order differs from catalog order on purpose.
	out := Markdown([]string{"Braided Cable", "Budget Set"}, cat, "https://example.com/gear/")

	if !strings.HasPrefix(out, "# My Audio Gear Wishlist\n") {
		t.Fatalf("missing title:\n%s", out)
	}
	iems := strings.Index(out, "## IEMs")
	cables := strings.Index(out, "## Cables")
	if iems == -1 || cables == -1 || iems > cables {
		t.Fatalf("sections missing or out of catalog order:\n%s", out)
	}
	if !strings.Contains(out, "- Budget Set ⭐ ($25) — https://example.com/a") {
		t.Fatalf("pick line malformed:\n%s", out)
	}
	if !strings.Contains(out, "- Braided Cable ($30) — https://example.com/c") {
		t.Fatalf("plain line malformed:\n%s", out)
	}
	if !strings.Contains(out, "Shared via gearshelf: https://example.com/gear/?wishlist=") {
		t.Fatalf("share link missing:\n%s", out)
	}
}

func TestMarkdownOmitsUnknownPrice(t *testing.T) {
	cat := markdownCatalog(t)
	out := Markdown([]string{"Mystery Set"}, cat, "https://example.com/gear/")
	if !strings.Contains(out, "- Mystery Set — https://example.com/b") {
		t.Fatalf("unpriced line malformed:\n%s", out)
	}
	if strings.Contains(out, "($") && strings.Contains(out, "Mystery") {
		t.Fatalf("unpriced product rendered a price:\n%s", out)
	}
}

func TestMarkdownSkipsUnknownNamesAndEmptyCategories(t *testing.T) {
	cat := markdownCatalog(t)
	out := Markdown([]string{"Budget Set", "Discontinued Thing"}, cat, "https://example.com/gear/")
	if strings.Contains(out, "Discontinued Thing") {
		t.Fatalf("unknown name leaked into output:\n%s", out)
	}
	if strings.Contains(out, "## Cables") {
		t.Fatalf("empty category section rendered:\n%s", out)
	}
}
