// Package browser is the interactive catalog browser: a bubbletea program
// that owns the filter state and wishlist visibility mode, wires key input
// to the filter engine and wishlist store, and re-renders the affected
// region wholesale on every transition.
//
// The package is split across files:
//   - model.go: types, construction, Init
//   - update.go: the Update loop and key handling
//   - view.go: View composition
package browser

import (
	"fmt"
	"math/rand"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"gearshelf/cmd/gearshelf/ui"
	"gearshelf/internal/catalog"
	"gearshelf/internal/config"
	"gearshelf/internal/filter"
	"gearshelf/internal/wishlist"
)

// DisplayMode is the single state variable governing what the content
// region shows. Transitions are driven only by Update; the view never
// infers mode from rendered output.
type DisplayMode int

const (
	ModeBrowsing DisplayMode = iota
	ModeFiltered
	ModeWishlist
	ModeSharedWishlist
)

// InputMode routes key input. Confirmation modes gate the destructive and
// merging actions behind an explicit y/n.
type InputMode int

const (
	InputNormal InputMode = iota
	InputSearch
	InputConfirmClear
	InputConfirmImport
)

// quotes rotate through the header banner, one picked per session.
var quotes = []struct {
	Text   string
	Author string
}{
	{"In Pursuit of Audio Perfection", "sam!, Discord Server Admin"},
	{"Buy once, cry once", "every cable vendor ever"},
	{"The best IEM is the one you actually wear", "B_Media"},
}

// priceOptions are the selectable price bands, cycled in order; index 0 is
// the pass-through "all" selection.
var priceOptions = []string{"all", "0-50", "50-100", "100-200", "200+"}

// Model is the browser's complete state.
type Model struct {
	cfg    config.Config
	logger *zap.Logger

	catalog *catalog.Catalog
	extra   catalog.Supplementary
	store   *wishlist.Store
	shared  *wishlist.Set // non-nil only when launched from a share link

	filters     filter.State
	displayMode DisplayMode
	prevMode    DisplayMode
	inputMode   InputMode

	// Search debouncing: keystrokes bump searchSeq; only the tick carrying
	// the latest sequence commits the pending text into the filter state.
	pendingSearch string
	searchSeq     int

	categoryIdx int // 0 = all, 1.. = catalog.Categories()
	priceIdx    int

	groups  []filter.Group
	visible []catalog.Product // flattened groups, cursor target
	cursor  int

	detail     *detailState
	notice     string
	noticeSeq  int
	quoteIdx   int
	watcher    *catalog.Watcher
	copyFn     func(string) error
	mdRenderer *glamour.TermRenderer

	searchInput textinput.Model
	viewport    viewport.Model
	styles      ui.Styles
	width       int
	height      int
	ready       bool
}

// detailState is the open supplementary overlay.
type detailState struct {
	name   string
	record catalog.Record
}

// Messages for tea updates.
type (
	searchDebouncedMsg struct{ seq int }
	noticeExpiredMsg   struct{ seq int }
	datasetChangedMsg  struct{}
	datasetReloadedMsg struct {
		cat   *catalog.Catalog
		extra catalog.Supplementary
		err   error
	}
)

// Options tweak startup behavior.
type Options struct {
	// SharedNames opens the browser in the read-only shared wishlist view.
	SharedNames []string
}

// New builds the browser model. A missing or malformed dataset is the one
// fatal condition; everything else degrades with a logged notice.
func New(cfg config.Config, logger *zap.Logger, opts Options) (Model, error) {
	cat, err := catalog.LoadFile(cfg.Dataset)
	if err != nil {
		return Model{}, err
	}

	extra, err := catalog.LoadSupplementaryFile(cfg.Supplementary)
	if err != nil {
		logger.Warn("supplementary data unavailable", zap.Error(err))
	}

	store := wishlist.NewStore(cfg.WishlistPath())
	if err := store.Load(); err != nil {
		logger.Warn("wishlist unreadable, starting empty", zap.Error(err))
	}

	ti := textinput.New()
	ti.Placeholder = "Search products..."
	ti.Prompt = "/ "
	ti.CharLimit = 80

	m := Model{
		cfg:         cfg,
		logger:      logger,
		catalog:     cat,
		extra:       extra,
		store:       store,
		filters:     filter.DefaultState(),
		searchInput: ti,
		styles:      ui.NewStyles(ui.ThemeNamed(cfg.Theme)),
		quoteIdx:    rand.Intn(len(quotes)),
		copyFn:      clipboard.WriteAll,
	}

	if len(opts.SharedNames) > 0 {
		m.shared = wishlist.NewSet(opts.SharedNames)
		m.displayMode = ModeSharedWishlist
		m.prevMode = ModeBrowsing
	}

	if cfg.WatchDataset {
		w, err := catalog.NewWatcher(logger, cfg.Dataset, cfg.Supplementary)
		if err != nil {
			logger.Warn("dataset watcher unavailable", zap.Error(err))
		} else {
			m.watcher = w
			w.Start()
		}
	}

	m.refresh()
	return m, nil
}

// Init starts background listeners.
func (m Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.waitForDatasetChange()
}

// Shutdown releases the dataset watcher. Called before Quit.
func (m Model) Shutdown() {
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// Run starts the interactive browser and blocks until it exits.
func Run(cfg config.Config, logger *zap.Logger, opts Options) error {
	m, err := New(cfg, logger, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	m.Shutdown()
	return err
}

func (m Model) waitForDatasetChange() tea.Cmd {
	ch := m.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return datasetChangedMsg{}
	}
}

func (m Model) reloadDataset() tea.Cmd {
	dataset, supplementary := m.cfg.Dataset, m.cfg.Supplementary
	return func() tea.Msg {
		cat, err := catalog.LoadFile(dataset)
		if err != nil {
			return datasetReloadedMsg{err: err}
		}
		extra, err := catalog.LoadSupplementaryFile(supplementary)
		if err != nil {
			return datasetReloadedMsg{cat: cat, extra: catalog.Supplementary{}, err: err}
		}
		return datasetReloadedMsg{cat: cat, extra: extra}
	}
}

// activeMembership returns the wishlist view the renderer should consult
// for the current display mode.
func (m Model) activeMembership() ui.Membership {
	if m.displayMode == ModeSharedWishlist {
		return m.shared
	}
	return m.store
}

// refresh recomputes the grouped product list and the flattened cursor
// targets for the current mode. It is the only place groups are derived.
func (m *Model) refresh() {
	switch m.displayMode {
	case ModeBrowsing:
		m.groups = filter.Apply(m.catalog.AllProducts(), filter.DefaultState())
	case ModeFiltered:
		m.groups = filter.Apply(m.catalog.AllProducts(), m.filters)
	case ModeWishlist:
		m.groups = m.groupsForMembers(m.store.Names())
	case ModeSharedWishlist:
		m.groups = m.groupsForMembers(m.shared.Names())
	}

	m.visible = nil
	for _, g := range m.groups {
		m.visible = append(m.visible, g.Products...)
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.syncViewport()
}

// groupsForMembers projects a name list onto catalog grouping, keeping
// catalog category order. Names the catalog no longer knows are dropped.
func (m Model) groupsForMembers(names []string) []filter.Group {
	member := make(map[string]bool, len(names))
	for _, n := range names {
		member[n] = true
	}
	var groups []filter.Group
	for _, c := range m.catalog.Categories() {
		var kept []catalog.Product
		for _, p := range c.Products {
			if member[p.Name] {
				kept = append(kept, p)
			}
		}
		if len(kept) > 0 {
			groups = append(groups, filter.Group{Key: c.Key, Label: c.Label, Products: kept})
		}
	}
	return groups
}

func (m Model) selectedProduct() (catalog.Product, bool) {
	if len(m.visible) == 0 || m.cursor < 0 || m.cursor >= len(m.visible) {
		return catalog.Product{}, false
	}
	return m.visible[m.cursor], true
}

// categoryOptions returns the cycle order for the category filter.
func (m Model) categoryOptions() []catalog.Category {
	return m.catalog.Categories()
}

func (m Model) shareURL(names []string) (string, error) {
	return wishlist.ShareURL(m.cfg.ShareBaseURL, names)
}

func (m Model) renderMarkdown(text string) string {
	if m.mdRenderer == nil {
		return text
	}
	out, err := m.mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return out
}

func priceLabel(idx int) string {
	if idx <= 0 || idx >= len(priceOptions) {
		return "all"
	}
	r, err := filter.ParsePriceRange(priceOptions[idx])
	if err != nil || r == nil {
		return "all"
	}
	return r.Label()
}

func (m Model) quote() string {
	q := quotes[m.quoteIdx]
	return fmt.Sprintf("“%s” — %s", q.Text, q.Author)
}
