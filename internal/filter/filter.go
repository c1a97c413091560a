// Package filter implements the pure predicate pipeline that maps the
// catalog plus the current filter state to a grouped, ordered result. It
// never touches UI or wishlist state; both sides inject everything it needs.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"gearshelf/internal/catalog"
)

// CategoryAll is the pass-through category selection.
const CategoryAll = "all"

// PriceRange is an inclusive price band. Open means the upper bound is
// unbounded ("200+").
type PriceRange struct {
	Min  int
	Max  int
	Open bool
}

// Matches reports whether a price satisfies the range. Products with no
// known price never match a concrete range.
func (r PriceRange) Matches(price *int) bool {
	if price == nil {
		return false
	}
	if *price < r.Min {
		return false
	}
	return r.Open || *price <= r.Max
}

// String renders the range in the dataset's option notation.
func (r PriceRange) String() string {
	if r.Open {
		return fmt.Sprintf("%d+", r.Min)
	}
	return fmt.Sprintf("%d-%d", r.Min, r.Max)
}

// Label renders the range for display, e.g. "$50 - $100" or "$200+".
func (r PriceRange) Label() string {
	if r.Open {
		return fmt.Sprintf("$%d+", r.Min)
	}
	return fmt.Sprintf("$%d - $%d", r.Min, r.Max)
}

// ParsePriceRange parses "all", "min-max", or "min+" selections. "all"
// parses to nil, meaning price is not considered.
func ParsePriceRange(s string) (*PriceRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "all" {
		return nil, nil
	}
	if rest, ok := strings.CutSuffix(s, "+"); ok {
		min, err := strconv.Atoi(rest)
		if err != nil || min < 0 {
			return nil, fmt.Errorf("invalid price range %q", s)
		}
		return &PriceRange{Min: min, Open: true}, nil
	}
	lo, hi, ok := strings.Cut(s, "-")
	if !ok {
		return nil, fmt.Errorf("invalid price range %q", s)
	}
	min, err1 := strconv.Atoi(lo)
	max, err2 := strconv.Atoi(hi)
	if err1 != nil || err2 != nil || min < 0 || max < min {
		return nil, fmt.Errorf("invalid price range %q", s)
	}
	return &PriceRange{Min: min, Max: max}, nil
}

// State is the complete filter selection. The zero value matches nothing
// useful; use DefaultState.
type State struct {
	Search    string      // case-insensitive substring match on product name
	Category  string      // CategoryAll or a category key
	Price     *PriceRange // nil means price is not considered
	PicksOnly bool
}

// DefaultState returns the all-permissive selection.
func DefaultState() State {
	return State{Category: CategoryAll}
}

// IsDefault reports whether the state matches everything. The renderer uses
// this to tell "no matches" apart from "nothing filtered yet".
func (s State) IsDefault() bool {
	return s.Search == "" && (s.Category == "" || s.Category == CategoryAll) &&
		s.Price == nil && !s.PicksOnly
}

// Group is one category block of the filtered result.
type Group struct {
	Key      string
	Label    string
	Products []catalog.Product
}

// Count returns the number of products in the group.
func (g Group) Count() int { return len(g.Products) }

// Apply filters products by the ANDed predicates and regroups the survivors
// by category in first-seen order. It is a pure function: same inputs, same
// result, no side effects.
func Apply(products []catalog.Product, s State) []Group {
	search := strings.ToLower(s.Search)

	var groups []Group
	index := make(map[string]int)

	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if s.Category != "" && s.Category != CategoryAll && p.CategoryKey != s.Category {
			continue
		}
		if s.Price != nil && !s.Price.Matches(p.Price) {
			continue
		}
		if s.PicksOnly && !p.Pick {
			continue
		}

		i, ok := index[p.CategoryKey]
		if !ok {
			i = len(groups)
			index[p.CategoryKey] = i
			groups = append(groups, Group{Key: p.CategoryKey, Label: p.CategoryLabel})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// Total returns the product count across all groups.
func Total(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Products)
	}
	return n
}
