package browser

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"gearshelf/internal/filter"
	"gearshelf/internal/wishlist"
)

const noticeDuration = 3 * time.Second

// Update is the single event loop. Every state mutation happens here and
// is followed by a wholesale re-render of the content region.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // title, quote, filter bar
		footerHeight := 2
		vh := msg.Height - headerHeight - footerHeight
		if vh < 1 {
			vh = 1
		}
		if !m.ready {
			m.viewport = newViewport(msg.Width, vh)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vh
		}

		wrap := msg.Width - 12
		if wrap > 80 {
			wrap = 80
		}
		if wrap > 0 {
			if r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap)); err == nil {
				m.mdRenderer = r
			}
		}
		m.syncViewport()
		return m, nil

	case searchDebouncedMsg:
		// Stale ticks from earlier keystrokes are dropped.
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.filters.Search = m.pendingSearch
		m.applyFilterChange()
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil

	case datasetChangedMsg:
		return m, tea.Batch(m.reloadDataset(), m.waitForDatasetChange())

	case datasetReloadedMsg:
		if msg.err != nil && msg.cat == nil {
			m.logger.Warn("dataset reload failed, keeping previous catalog", zap.Error(msg.err))
			return m.withNotice("Dataset reload failed, keeping previous catalog")
		}
		m.catalog = msg.cat
		m.extra = msg.extra
		if msg.err != nil {
			m.logger.Warn("supplementary reload failed", zap.Error(msg.err))
		}
		m.logger.Info("dataset reloaded", zap.Int("products", m.catalog.Len()))
		m.refresh()
		return m.withNotice("Catalog updated from dataset")
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits.
	if msg.Type == tea.KeyCtrlC {
		m.Shutdown()
		return m, tea.Quit
	}

	switch m.inputMode {
	case InputConfirmClear:
		return m.handleConfirmClear(msg)
	case InputConfirmImport:
		return m.handleConfirmImport(msg)
	case InputSearch:
		return m.handleSearchKey(msg)
	}

	// Detail overlay swallows input until closed.
	if m.detail != nil {
		switch msg.String() {
		case "esc", "enter", "q":
			m.detail = nil
			m.syncViewport()
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		m.Shutdown()
		return m, tea.Quit

	case "esc":
		switch m.displayMode {
		case ModeWishlist, ModeSharedWishlist:
			m.displayMode = m.prevMode
			m.refresh()
			return m, nil
		default:
			m.Shutdown()
			return m, tea.Quit
		}

	case "/":
		if !m.filterable() {
			return m, nil
		}
		m.inputMode = InputSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case "c":
		if !m.filterable() {
			return m, nil
		}
		cats := m.categoryOptions()
		m.categoryIdx = (m.categoryIdx + 1) % (len(cats) + 1)
		if m.categoryIdx == 0 {
			m.filters.Category = filter.CategoryAll
		} else {
			m.filters.Category = cats[m.categoryIdx-1].Key
		}
		m.applyFilterChange()
		return m, nil

	case "v":
		if !m.filterable() {
			return m, nil
		}
		m.priceIdx = (m.priceIdx + 1) % len(priceOptions)
		r, err := filter.ParsePriceRange(priceOptions[m.priceIdx])
		if err != nil {
			m.logger.Warn("bad price option", zap.String("option", priceOptions[m.priceIdx]), zap.Error(err))
			r = nil
		}
		m.filters.Price = r
		m.applyFilterChange()
		return m, nil

	case "p":
		if !m.filterable() {
			return m, nil
		}
		m.filters.PicksOnly = !m.filters.PicksOnly
		m.applyFilterChange()
		return m, nil

	case "r":
		if !m.filterable() {
			return m, nil
		}
		m.resetFilters()
		return m, nil

	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
			m.syncViewport()
		}
		return m, nil

	case "right", "l":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
			m.syncViewport()
		}
		return m, nil

	case "f", " ":
		return m.toggleSelected()

	case "enter":
		p, ok := m.selectedProduct()
		if !ok {
			return m, nil
		}
		rec, ok := m.extra[p.Name]
		if !ok {
			return m.withNotice("No extra details for " + p.Name)
		}
		m.detail = &detailState{name: p.Name, record: rec}
		m.syncViewport()
		return m, nil

	case "w":
		if m.displayMode == ModeWishlist || m.displayMode == ModeSharedWishlist {
			return m, nil
		}
		if m.store.Len() == 0 {
			return m.withNotice("Your wishlist is empty")
		}
		m.prevMode = m.displayMode
		m.displayMode = ModeWishlist
		m.cursor = 0
		m.refresh()
		return m, nil

	case "s":
		return m.copyShareLink()

	case "m":
		return m.copyMarkdown()

	case "x":
		if m.displayMode == ModeSharedWishlist {
			return m.withNotice("Shared view is read-only")
		}
		if m.store.Len() == 0 {
			return m.withNotice("Your wishlist is already empty")
		}
		m.inputMode = InputConfirmClear
		return m, nil

	case "i":
		if m.displayMode != ModeSharedWishlist {
			return m, nil
		}
		m.inputMode = InputConfirmImport
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.inputMode = InputNormal
		m.searchInput.Blur()
		return m, nil
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	after := m.searchInput.Value()
	if after == before {
		return m, cmd
	}

	// Filtering waits until typing pauses; every keystroke pushes the
	// deadline out by re-sequencing the pending tick.
	m.pendingSearch = after
	m.searchSeq++
	seq := m.searchSeq
	debounce := tea.Tick(m.cfg.SearchDebounce, func(time.Time) tea.Msg {
		return searchDebouncedMsg{seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m Model) handleConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.inputMode = InputNormal
		if err := m.store.Clear(); err != nil {
			m.logger.Error("clearing wishlist", zap.Error(err))
			return m.withNotice("Could not save cleared wishlist")
		}
		if m.displayMode == ModeWishlist {
			m.displayMode = m.prevMode
		}
		m.refresh()
		return m.withNotice("Wishlist cleared")
	case "n", "N", "esc":
		m.inputMode = InputNormal
		return m, nil
	}
	return m, nil
}

func (m Model) handleConfirmImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.inputMode = InputNormal
		added, err := m.store.Import(m.shared.Names())
		if err != nil {
			m.logger.Error("importing shared wishlist", zap.Error(err))
			return m.withNotice("Could not save imported wishlist")
		}
		return m.withNotice(fmt.Sprintf("Imported %d item(s) into your wishlist", added))
	case "n", "N", "esc":
		m.inputMode = InputNormal
		return m, nil
	}
	return m, nil
}

// filterable reports whether filter controls apply in the current mode.
func (m Model) filterable() bool {
	return m.displayMode == ModeBrowsing || m.displayMode == ModeFiltered
}

// applyFilterChange moves between Browsing and FilteredView based on
// whether any filter is active, then re-renders.
func (m *Model) applyFilterChange() {
	if m.filters.IsDefault() {
		m.displayMode = ModeBrowsing
	} else {
		m.displayMode = ModeFiltered
	}
	m.cursor = 0
	m.refresh()
}

func (m *Model) resetFilters() {
	m.filters = filter.DefaultState()
	m.pendingSearch = ""
	m.searchSeq++ // invalidate in-flight debounce ticks
	m.searchInput.SetValue("")
	m.categoryIdx = 0
	m.priceIdx = 0
	m.displayMode = ModeBrowsing
	m.cursor = 0
	m.refresh()
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	if m.displayMode == ModeSharedWishlist {
		return m.withNotice("Shared view is read-only")
	}
	p, ok := m.selectedProduct()
	if !ok {
		return m, nil
	}
	saved, err := m.store.Toggle(p.Name)
	if err != nil {
		// Membership changed in memory; only the write-through failed.
		m.logger.Error("persisting wishlist", zap.Error(err))
		m.refresh()
		return m.withNotice("Wishlist change not saved to disk")
	}
	if m.displayMode == ModeWishlist && m.store.Len() == 0 {
		m.displayMode = m.prevMode
		m.refresh()
		return m.withNotice("Wishlist is now empty")
	}
	m.refresh()
	if saved {
		return m.withNotice("Added " + p.Name + " to wishlist")
	}
	return m.withNotice("Removed " + p.Name + " from wishlist")
}

func (m Model) copyShareLink() (tea.Model, tea.Cmd) {
	names := m.shareNames()
	if len(names) == 0 {
		return m.withNotice("Nothing to share yet")
	}
	link, err := m.shareURL(names)
	if err != nil {
		m.logger.Error("building share link", zap.Error(err))
		return m.withNotice("Could not build share link")
	}
	if err := m.copyFn(link); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.withNotice("Clipboard unavailable: " + link)
	}
	return m.withNotice("Share link copied to clipboard")
}

func (m Model) copyMarkdown() (tea.Model, tea.Cmd) {
	names := m.shareNames()
	if len(names) == 0 {
		return m.withNotice("Nothing to share yet")
	}
	md := wishlist.Markdown(names, m.catalog, m.cfg.ShareBaseURL)
	if err := m.copyFn(md); err != nil {
		m.logger.Warn("clipboard write failed", zap.Error(err))
		return m.withNotice("Clipboard unavailable")
	}
	return m.withNotice("Wishlist markdown copied to clipboard")
}

// shareNames is the set the share actions operate on: the shared list in
// the shared view, the user's own list everywhere else.
func (m Model) shareNames() []string {
	if m.displayMode == ModeSharedWishlist {
		return m.shared.Names()
	}
	return m.store.Names()
}

func (m Model) withNotice(text string) (Model, tea.Cmd) {
	m.notice = text
	m.noticeSeq++
	seq := m.noticeSeq
	m.syncViewport()
	return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}
