package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	slugStrip   = regexp.MustCompile(`[^a-z0-9-]`)
	slugSqueeze = regexp.MustCompile(`-+`)
)

// Slugify derives a stable category key from a display label:
// "IEMs under $50" -> "iems-under-50". Keys are computed once at load and
// carried on every product, never re-derived at render time.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.Join(strings.Fields(s), "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSqueeze.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	return s
}

// LoadFile reads and validates the dataset at path. A missing, empty, or
// malformed file yields ErrDatasetMissing.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDatasetMissing, path)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a dataset from r. The input is a JSON object mapping category
// display names to product arrays; object key order defines category display
// order, so decoding goes through the token stream rather than a map.
func Load(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetMissing, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrDatasetMissing)
	}

	cat := &Catalog{byName: make(map[string]int)}
	seenKeys := make(map[string]string)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatasetMissing, err)
		}
		label, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrDatasetMissing, tok)
		}

		var items []Product
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", ErrDatasetMissing, label, err)
		}

		key := Slugify(label)
		if key == "" {
			return nil, fmt.Errorf("%w: category %q has an empty key", ErrDatasetMissing, label)
		}
		if prev, dup := seenKeys[key]; dup {
			return nil, fmt.Errorf("%w: categories %q and %q collide on key %q", ErrDatasetMissing, prev, label, key)
		}
		seenKeys[key] = label

		group := Category{Key: key, Label: label}
		for _, p := range items {
			if strings.TrimSpace(p.Name) == "" {
				return nil, fmt.Errorf("%w: category %q contains an unnamed product", ErrDatasetMissing, label)
			}
			if p.Price != nil && *p.Price < 0 {
				return nil, fmt.Errorf("%w: product %q has a negative price", ErrDatasetMissing, p.Name)
			}
			if _, dup := cat.byName[p.Name]; dup {
				return nil, fmt.Errorf("%w: duplicate product name %q", ErrDatasetMissing, p.Name)
			}
			p.CategoryKey = key
			p.CategoryLabel = label
			cat.byName[p.Name] = len(cat.products)
			cat.products = append(cat.products, p)
			group.Products = append(group.Products, p)
		}
		cat.categories = append(cat.categories, group)
	}

	if len(cat.products) == 0 {
		return nil, fmt.Errorf("%w: dataset contains no products", ErrDatasetMissing)
	}
	return cat, nil
}
