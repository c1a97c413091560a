// Package catalog holds the immutable product dataset: the categorized
// product list and the per-product supplementary records. The dataset is
// loaded once at startup and never mutated afterwards; every consumer gets
// copies or read-only views.
package catalog

import "errors"

// ErrDatasetMissing is returned when the product dataset is absent or
// malformed. It is the only fatal error in the catalog layer: the caller
// must surface it instead of proceeding with an empty catalog.
var ErrDatasetMissing = errors.New("product dataset missing or malformed")

// Product is a single catalog entry. Name is the identity key for wishlist
// membership and supplementary lookups; uniqueness across the whole dataset
// is a contract enforced at load time.
type Product struct {
	Name  string `json:"name"`
	Price *int   `json:"price"`
	URL   string `json:"url"`
	Pick  bool   `json:"pick"`
	Image string `json:"image"`

	// Assigned at load from the dataset grouping, never from the file itself.
	CategoryKey   string `json:"-"`
	CategoryLabel string `json:"-"`
}

// HasPrice reports whether the price is known.
func (p Product) HasPrice() bool { return p.Price != nil }

// Category is one dataset group in declaration order. Key is a stable slug
// used for filtering; Label is the display name from the dataset.
type Category struct {
	Key      string
	Label    string
	Products []Product
}

// Catalog is the loaded, immutable product dataset.
type Catalog struct {
	categories []Category
	products   []Product
	byName     map[string]int
}

// AllProducts returns the flattened product list in dataset order.
func (c *Catalog) AllProducts() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns the dataset categories in declaration order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Lookup finds a product by name.
func (c *Catalog) Lookup(name string) (Product, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Len returns the total product count.
func (c *Catalog) Len() int { return len(c.products) }
