package ui

import (
	"strings"
	"testing"

	"gearshelf/internal/catalog"
	"gearshelf/internal/filter"
)

type fakeWishlist map[string]bool

func (f fakeWishlist) Contains(name string) bool { return f[name] }

func price(n int) *int { return &n }

func testGroups() []filter.Group {
	return []filter.Group{
		{
			Key:   "iems",
			Label: "IEMs",
			Products: []catalog.Product{
				{Name: "Budget Set", Price: price(25), URL: "https://example.com/a", Pick: true},
				{Name: "Mystery Set", URL: "https://example.com/b"},
			},
		},
		{
			Key:   "cables",
			Label: "Cables",
			Products: []catalog.Product{
				{Name: "Braided Cable", Price: price(30), URL: "https://example.com/c"},
			},
		},
	}
}

func testStyles() Styles { return NewStyles(DarkTheme()) }

func TestRenderCatalogHeadersAndCounts(t *testing.T) {
	st := testStyles()
	groups := testGroups()

	out := RenderCatalog(st, groups, nil, RenderContext{Width: 80})
	if !strings.Contains(out, "IEMs") || !strings.Contains(out, "Cables") {
		t.Fatalf("category headers missing:\n%s", out)
	}
	if strings.Contains(out, "IEMs (2)") {
		t.Fatalf("counts shown without ShowCounts:\n%s", out)
	}

	out = RenderCatalog(st, groups, nil, RenderContext{Width: 80, ShowCounts: true})
	if !strings.Contains(out, "IEMs (2)") || !strings.Contains(out, "Cables (1)") {
		t.Fatalf("counts missing with ShowCounts:\n%s", out)
	}
}

func TestRenderCatalogKeepsGroupOrder(t *testing.T) {
	out := RenderCatalog(testStyles(), testGroups(), nil, RenderContext{Width: 80})
	if strings.Index(out, "IEMs") > strings.Index(out, "Cables") {
		t.Fatalf("groups rendered out of order:\n%s", out)
	}
}

func TestRenderItemPriceAndPlaceholder(t *testing.T) {
	st := testStyles()
	ctx := RenderContext{Mode: ModeBrowsable, Width: 80}

	priced := RenderItem(st, catalog.Product{Name: "Budget Set", Price: price(25)}, nil, ctx)
	if !strings.Contains(priced, "$25") {
		t.Fatalf("price missing:\n%s", priced)
	}

	unpriced := RenderItem(st, catalog.Product{Name: "Mystery Set"}, nil, ctx)
	if !strings.Contains(unpriced, "Check Price") {
		t.Fatalf("price placeholder missing:\n%s", unpriced)
	}
}

func TestRenderItemPickBadge(t *testing.T) {
	st := testStyles()
	ctx := RenderContext{Mode: ModeBrowsable, Width: 80}

	pick := RenderItem(st, catalog.Product{Name: "Budget Set", Pick: true}, nil, ctx)
	if !strings.Contains(pick, "B_Media Pick") {
		t.Fatalf("pick badge missing:\n%s", pick)
	}

	plain := RenderItem(st, catalog.Product{Name: "Braided Cable"}, nil, ctx)
	if strings.Contains(plain, "B_Media Pick") {
		t.Fatalf("badge on a non-pick:\n%s", plain)
	}
}

func TestRenderItemWishlistMark(t *testing.T) {
	st := testStyles()
	wl := fakeWishlist{"Budget Set": true}
	ctx := RenderContext{Mode: ModeBrowsable, Width: 80}

	saved := RenderItem(st, catalog.Product{Name: "Budget Set"}, wl, ctx)
	if !strings.Contains(saved, "♥ saved") {
		t.Fatalf("wishlist mark missing:\n%s", saved)
	}

	other := RenderItem(st, catalog.Product{Name: "Mystery Set"}, wl, ctx)
	if strings.Contains(other, "♥ saved") {
		t.Fatalf("wishlist mark on an unsaved product:\n%s", other)
	}
}

func TestRenderItemDetailAffordance(t *testing.T) {
	st := testStyles()
	extra := catalog.Supplementary{"Budget Set": {}}
	ctx := RenderContext{Mode: ModeBrowsable, Width: 80, Supplementary: extra}

	with := RenderItem(st, catalog.Product{Name: "Budget Set"}, nil, ctx)
	if !strings.Contains(with, "ⓘ details") {
		t.Fatalf("detail affordance missing:\n%s", with)
	}

	without := RenderItem(st, catalog.Product{Name: "Mystery Set"}, nil, ctx)
	if strings.Contains(without, "ⓘ details") {
		t.Fatalf("detail affordance without a record:\n%s", without)
	}
}

func TestReadOnlyModeHidesInteractiveMarks(t *testing.T) {
	st := testStyles()
	wl := fakeWishlist{"Budget Set": true}
	extra := catalog.Supplementary{"Budget Set": {}}
	ctx := RenderContext{Mode: ModeReadOnly, Width: 80, Supplementary: extra}

	out := RenderItem(st, catalog.Product{Name: "Budget Set", Price: price(25)}, wl, ctx)
	if strings.Contains(out, "♥ saved") || strings.Contains(out, "ⓘ details") {
		t.Fatalf("read-only card carries interactive marks:\n%s", out)
	}
	if !strings.Contains(out, "$25") {
		t.Fatalf("read-only card lost its price:\n%s", out)
	}
}

func TestRenderEmptyState(t *testing.T) {
	out := RenderEmptyState(testStyles())
	if !strings.Contains(out, "No products match your filters") {
		t.Fatalf("empty headline missing:\n%s", out)
	}
	if !strings.Contains(out, "Try adjusting your search criteria") {
		t.Fatalf("empty hint missing:\n%s", out)
	}
}

func TestRenderSupplementaryShowsOnlyFirstVideo(t *testing.T) {
	rec := catalog.Record{
		VideoLinks: []string{"https://tiktok.example/v/1", "https://tiktok.example/v/2"},
	}
	out := RenderSupplementary(testStyles(), "Budget Set", rec, nil)
	if !strings.Contains(out, "https://tiktok.example/v/1") {
		t.Fatalf("first video missing:\n%s", out)
	}
	if strings.Contains(out, "https://tiktok.example/v/2") {
		t.Fatalf("extra videos should stay hidden:\n%s", out)
	}
}

func TestRenderSupplementarySections(t *testing.T) {
	rec := catalog.Record{
		Images: []string{"imgs/a.jpg"},
		Notes:  []catalog.Note{{Key: "sound notes", Text: "Warm and safe."}},
	}
	out := RenderSupplementary(testStyles(), "Budget Set", rec, nil)
	if !strings.Contains(out, "More about Budget Set") {
		t.Fatalf("title missing:\n%s", out)
	}
	if !strings.Contains(out, "imgs/a.jpg") {
		t.Fatalf("image entry missing:\n%s", out)
	}
	if !strings.Contains(out, "Sound notes") {
		t.Fatalf("note key not title-cased:\n%s", out)
	}
	if !strings.Contains(out, "Warm and safe.") {
		t.Fatalf("note text missing:\n%s", out)
	}
	if strings.Contains(out, "Video") {
		t.Fatalf("video section without links:\n%s", out)
	}
}

func TestRenderSupplementaryCustomMarkdown(t *testing.T) {
	rec := catalog.Record{Notes: []catalog.Note{{Key: "fit", Text: "comfy"}}}
	out := RenderSupplementary(testStyles(), "X", rec, func(s string) string {
		return "[md]" + s
	})
	if !strings.Contains(out, "[md]comfy") {
		t.Fatalf("markdown renderer not applied:\n%s", out)
	}
}

func TestTitleCaseKey(t *testing.T) {
	cases := map[string]string{
		"sound notes": "Sound notes",
		"fit":         "Fit",
		"":            "",
		"über":        "Über",
	}
	for in, want := range cases {
		if got := TitleCaseKey(in); got != want {
			t.Errorf("TitleCaseKey(%q) = %q, want %q", in, got, want)
		}
	}
}
