package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"gearshelf/cmd/gearshelf/ui"
)

func newViewport(w, h int) viewport.Model {
	return viewport.New(w, h)
}

// View composes the full screen: header, quote banner, filter bar, the
// content viewport, and the footer. The content region is replaced
// wholesale; nothing is patched in place.
func (m Model) View() string {
	if !m.ready {
		return "Loading catalog..."
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(m.styles.Quote.Render(m.quote()))
	sb.WriteString("\n")
	sb.WriteString(m.renderFilterBar())
	sb.WriteString("\n")
	sb.WriteString(m.viewport.View())
	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("gearshelf")
	mode := m.styles.Subtitle.Render(m.modeLabel())
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", mode)
}

func (m Model) modeLabel() string {
	switch m.displayMode {
	case ModeFiltered:
		return fmt.Sprintf("filtered — %d match(es)", len(m.visible))
	case ModeWishlist:
		return fmt.Sprintf("your wishlist — %d item(s)", m.store.Len())
	case ModeSharedWishlist:
		return fmt.Sprintf("shared wishlist — %d item(s), read-only", m.shared.Len())
	default:
		return fmt.Sprintf("%d products", m.catalog.Len())
	}
}

func (m Model) renderFilterBar() string {
	if !m.filterable() {
		return m.styles.FilterBar.Render("esc to go back")
	}

	seg := func(label, value string, active bool) string {
		s := m.styles.FilterBar
		if active {
			s = m.styles.FilterOn
		}
		return s.Render(label + ": " + value)
	}

	search := m.filters.Search
	if m.inputMode == InputSearch {
		return m.styles.FilterBar.Render(m.searchInput.View())
	}
	if search == "" {
		search = "—"
	}

	category := "all"
	if m.categoryIdx > 0 {
		cats := m.categoryOptions()
		if m.categoryIdx-1 < len(cats) {
			category = cats[m.categoryIdx-1].Label
		}
	}

	price := "all"
	if m.priceIdx > 0 {
		price = priceLabel(m.priceIdx)
	}

	picks := "off"
	if m.filters.PicksOnly {
		picks = "on"
	}

	return strings.Join([]string{
		seg("search", search, m.filters.Search != ""),
		seg("category", category, m.categoryIdx != 0),
		seg("price", price, m.priceIdx != 0),
		seg("picks", picks, m.filters.PicksOnly),
	}, m.styles.Muted.Render(" │ "))
}

func (m Model) renderFooter() string {
	switch m.inputMode {
	case InputConfirmClear:
		return m.styles.Warning.Render("Clear your entire wishlist? (y/n)")
	case InputConfirmImport:
		return m.styles.Warning.Render(
			fmt.Sprintf("Import %d shared item(s) into your wishlist? (y/n)", m.shared.Len()))
	}

	help := m.keyHelp()
	if m.notice == "" {
		return m.styles.Footer.Render(help)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Notice.Render(m.notice),
		m.styles.Footer.Render(help),
	)
}

func (m Model) keyHelp() string {
	if m.detail != nil {
		return "esc close · ↑/↓ scroll"
	}
	switch m.displayMode {
	case ModeSharedWishlist:
		return "i import · s copy link · m copy markdown · esc back · q quit"
	case ModeWishlist:
		return "←/→ select · f remove · s copy link · m copy markdown · x clear · esc back"
	default:
		return "/ search · c category · v price · p picks · r reset · ←/→ select · f save · enter details · w wishlist · q quit"
	}
}

// syncViewport re-renders the content region for the current state.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}

	if m.detail != nil {
		body := ui.RenderSupplementary(m.styles, m.detail.name, m.detail.record, m.renderMarkdown)
		m.viewport.SetContent(m.styles.Modal.Render(body))
		m.viewport.GotoTop()
		return
	}

	ctx := ui.RenderContext{
		Mode:          ui.ModeBrowsable,
		Width:         m.viewport.Width,
		Supplementary: m.extra,
		ShowCounts:    m.displayMode != ModeBrowsing,
	}
	if m.displayMode == ModeSharedWishlist {
		ctx.Mode = ui.ModeReadOnly
	}
	if p, ok := m.selectedProduct(); ok {
		ctx.Selected = p.Name
	}

	if len(m.groups) == 0 {
		if m.displayMode == ModeFiltered {
			m.viewport.SetContent(ui.RenderEmptyState(m.styles))
		} else {
			m.viewport.SetContent(m.styles.Muted.Render("Nothing to show."))
		}
		return
	}

	m.viewport.SetContent(ui.RenderCatalog(m.styles, m.groups, m.activeMembership(), ctx))
}
