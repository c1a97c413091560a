package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gearshelf/internal/catalog"
)

func price(n int) *int { return &n }

// testProducts mirrors a small two-category dataset: three IEMs (a $50
// pick, a $120 mid-tier, and one with no listed price) plus a $30 cable.
func testProducts() []catalog.Product {
	return []catalog.Product{
		{Name: "Budget Pick IEM", Price: price(50), Pick: true, CategoryKey: "iems", CategoryLabel: "IEMs"},
		{Name: "Midrange IEM", Price: price(120), CategoryKey: "iems", CategoryLabel: "IEMs"},
		{Name: "Mystery IEM", Price: nil, CategoryKey: "iems", CategoryLabel: "IEMs"},
		{Name: "Braided Cable", Price: price(30), CategoryKey: "cables", CategoryLabel: "Cables"},
	}
}

func names(groups []Group) []string {
	var out []string
	for _, g := range groups {
		for _, p := range g.Products {
			out = append(out, p.Name)
		}
	}
	return out
}

func TestApplyDefaultStateMatchesEverything(t *testing.T) {
	groups := Apply(testProducts(), DefaultState())
	if got := Total(groups); got != 4 {
		t.Fatalf("expected all 4 products, got %d", got)
	}
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Label != "IEMs" || groups[1].Label != "Cables" {
		t.Fatalf("groups out of first-seen order: %q, %q", groups[0].Label, groups[1].Label)
	}
}

func TestApplySearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := DefaultState()
	s.Search = "MYSTERY"
	got := names(Apply(testProducts(), s))
	want := []string{"Mystery IEM"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyPicksOnly(t *testing.T) {
	s := DefaultState()
	s.PicksOnly = true
	got := names(Apply(testProducts(), s))
	want := []string{"Budget Pick IEM"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("picks-only mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyPriceRangeCrossesCategories(t *testing.T) {
	s := DefaultState()
	s.Price = &PriceRange{Min: 0, Max: 100}
	got := names(Apply(testProducts(), s))
	// The $50 IEM and the $30 cable survive; the unpriced IEM does not.
	want := []string{"Budget Pick IEM", "Braided Cable"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("price range mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyCategoryFilter(t *testing.T) {
	s := DefaultState()
	s.Category = "cables"
	groups := Apply(testProducts(), s)
	if len(groups) != 1 || groups[0].Key != "cables" {
		t.Fatalf("expected only the cables group, got %+v", groups)
	}
}

func TestApplyPredicatesAreANDed(t *testing.T) {
	s := DefaultState()
	s.Category = "iems"
	s.Price = &PriceRange{Min: 0, Max: 100}
	s.PicksOnly = true
	got := names(Apply(testProducts(), s))
	want := []string{"Budget Pick IEM"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ANDed predicates mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyNoMatchesReturnsEmpty(t *testing.T) {
	s := DefaultState()
	s.Search = "planar"
	if groups := Apply(testProducts(), s); len(groups) != 0 {
		t.Fatalf("expected no groups, got %+v", groups)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	s := DefaultState()
	s.Price = &PriceRange{Min: 20, Max: 60}
	first := Apply(testProducts(), s)
	second := Apply(testProducts(), s)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated application diverged (-first +second):\n%s", diff)
	}
}

func TestPriceRangeBoundsAreInclusive(t *testing.T) {
	r := PriceRange{Min: 50, Max: 100}
	cases := []struct {
		price *int
		want  bool
	}{
		{price(50), true},
		{price(100), true},
		{price(49), false},
		{price(101), false},
		{nil, false},
	}
	for _, c := range cases {
		if got := r.Matches(c.price); got != c.want {
			t.Errorf("Matches(%v) = %v, want %v", c.price, got, c.want)
		}
	}
}

func TestPriceRangeOpenEnded(t *testing.T) {
	r := PriceRange{Min: 200, Open: true}
	if !r.Matches(price(200)) || !r.Matches(price(5000)) {
		t.Fatal("open range should match everything at or above its floor")
	}
	if r.Matches(price(199)) {
		t.Fatal("open range matched below its floor")
	}
	if r.Matches(nil) {
		t.Fatal("open range matched a product with no price")
	}
}

func TestParsePriceRange(t *testing.T) {
	cases := []struct {
		in      string
		want    *PriceRange
		wantErr bool
	}{
		{"all", nil, false},
		{"", nil, false},
		{"0-50", &PriceRange{Min: 0, Max: 50}, false},
		{"50-100", &PriceRange{Min: 50, Max: 100}, false},
		{"200+", &PriceRange{Min: 200, Open: true}, false},
		{"abc", nil, true},
		{"100-50", nil, true},
		{"-5-10", nil, true},
	}
	for _, c := range cases {
		got, err := ParsePriceRange(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParsePriceRange(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePriceRange(%q): %v", c.in, err)
			continue
		}
		if diff := cmp.Diff(c.want, got); diff != "" {
			t.Errorf("ParsePriceRange(%q) mismatch (-want +got):\n%s", c.in, diff)
		}
	}
}

func TestPriceRangeNotation(t *testing.T) {
	closed := PriceRange{Min: 50, Max: 100}
	if closed.String() != "50-100" || closed.Label() != "$50 - $100" {
		t.Fatalf("closed range rendered as %q / %q", closed.String(), closed.Label())
	}
	open := PriceRange{Min: 200, Open: true}
	if open.String() != "200+" || open.Label() != "$200+" {
		t.Fatalf("open range rendered as %q / %q", open.String(), open.Label())
	}
}

func TestStateIsDefault(t *testing.T) {
	if !DefaultState().IsDefault() {
		t.Fatal("DefaultState should be default")
	}
	s := DefaultState()
	s.PicksOnly = true
	if s.IsDefault() {
		t.Fatal("picks-only state reported as default")
	}
	s = DefaultState()
	s.Price = &PriceRange{Min: 0, Max: 50}
	if s.IsDefault() {
		t.Fatal("priced state reported as default")
	}
}
