package ui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"gearshelf/internal/catalog"
	"gearshelf/internal/filter"
)

// ViewMode distinguishes an interactive rendering from the read-only one
// used for someone else's shared wishlist, which must carry no affordances
// that would mutate local state.
type ViewMode int

const (
	ModeBrowsable ViewMode = iota
	ModeReadOnly
)

// Membership is the read side of a wishlist, injected into the renderer.
type Membership interface {
	Contains(name string) bool
}

// RenderContext carries everything item rendering depends on besides the
// product itself.
type RenderContext struct {
	Mode          ViewMode
	Width         int
	Supplementary catalog.Supplementary
	ShowCounts    bool
	Selected      string // name of the product under the cursor, "" for none
}

const (
	cardWidth = 34
	// The terminal cannot load product images, so every card renders the
	// same placeholder art the web page falls back to on broken images.
	cardArt = "♪ ♫ ♪"
)

// RenderCatalog projects grouped products into ordered category blocks,
// each a header plus a card grid. Identical inputs produce identical
// output.
func RenderCatalog(st Styles, groups []filter.Group, wl Membership, ctx RenderContext) string {
	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		header := g.Label
		if ctx.ShowCounts {
			header = fmt.Sprintf("%s (%d)", g.Label, g.Count())
		}
		sb.WriteString(st.Title.Render(header))
		sb.WriteString("\n")
		sb.WriteString(renderGrid(st, g.Products, wl, ctx))
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderEmptyState is shown only when active filters exclude everything,
// never for an unfiltered catalog.
func RenderEmptyState(st Styles) string {
	return lipgloss.JoinVertical(lipgloss.Center,
		st.Title.Render("No products match your filters"),
		st.Muted.Render("Try adjusting your search criteria"),
	)
}

func renderGrid(st Styles, products []catalog.Product, wl Membership, ctx RenderContext) string {
	cols := 1
	if ctx.Width > 0 {
		cols = ctx.Width / (cardWidth + 2)
		if cols < 1 {
			cols = 1
		}
	}

	var rows []string
	for start := 0; start < len(products); start += cols {
		end := start + cols
		if end > len(products) {
			end = len(products)
		}
		cards := make([]string, 0, end-start)
		for _, p := range products[start:end] {
			cards = append(cards, RenderItem(st, p, wl, ctx))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

// RenderItem projects one product into a card. The browsable mode carries
// the favorite marker and detail affordance; the read-only shared mode
// drops both so a shared link cannot invite state changes.
func RenderItem(st Styles, p catalog.Product, wl Membership, ctx RenderContext) string {
	inner := cardWidth - 4

	var lines []string
	if p.Pick {
		lines = append(lines, st.PickBadge.Render("B_Media Pick"))
	}
	lines = append(lines, st.CardArt.Width(inner).Render(cardArt))
	lines = append(lines, st.Bold.Render(truncate(p.Name, inner)))

	price := "Check Price"
	if p.HasPrice() {
		price = fmt.Sprintf("$%d", *p.Price)
	}
	lines = append(lines, st.Price.Render(price))

	if ctx.Mode == ModeBrowsable {
		var marks []string
		if wl != nil && wl.Contains(p.Name) {
			marks = append(marks, st.Heart.Render("♥ saved"))
		}
		if ctx.Supplementary.Has(p.Name) {
			marks = append(marks, st.Muted.Render("ⓘ details"))
		}
		if len(marks) > 0 {
			lines = append(lines, strings.Join(marks, "  "))
		}
	}
	if p.URL != "" {
		lines = append(lines, st.Link.Render(truncate(p.URL, inner)))
	}

	card := st.Card
	if ctx.Selected != "" && ctx.Selected == p.Name {
		card = st.CardSelected
	}
	return card.Width(cardWidth - 2).Render(strings.Join(lines, "\n"))
}

// RenderSupplementary projects a detail record into the overlay body:
// the images section when any exist, only the first video link even when
// more are known, and one section per named note. renderMarkdown styles
// note text; pass nil for plain text.
func RenderSupplementary(st Styles, name string, rec catalog.Record, renderMarkdown func(string) string) string {
	var sb strings.Builder
	sb.WriteString(st.ModalTitle.Render("More about " + name))
	sb.WriteString("\n")

	if len(rec.Images) > 0 {
		sb.WriteString(st.Subtitle.Render("Measurements & Images"))
		sb.WriteString("\n")
		for _, img := range rec.Images {
			sb.WriteString(st.Body.Render("  • "+img) + "\n")
		}
		sb.WriteString("\n")
	}

	if len(rec.VideoLinks) > 0 {
		sb.WriteString(st.Subtitle.Render("Video"))
		sb.WriteString("\n")
		sb.WriteString("  " + st.Link.Render(rec.VideoLinks[0]) + "\n\n")
	}

	for _, note := range rec.Notes {
		sb.WriteString(st.Subtitle.Render(TitleCaseKey(note.Key)))
		sb.WriteString("\n")
		text := note.Text
		if renderMarkdown != nil {
			text = renderMarkdown(text)
		} else {
			text = st.Body.Render(text)
		}
		sb.WriteString(strings.TrimRight(text, "\n") + "\n\n")
	}

	return strings.TrimRight(sb.String(), "\n")
}

// TitleCaseKey uppercases the first rune of a note key for display,
// matching how the page titles its note sections.
func TitleCaseKey(key string) string {
	r := []rune(key)
	if len(r) == 0 {
		return key
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
