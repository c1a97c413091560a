package wishlist

import (
	"fmt"
	"strings"

	"gearshelf/internal/catalog"
)

// Markdown renders a shareable text summary of names, grouped by catalog
// category, ending with the share link for the same set. It is a pure
// function of its inputs. Names the catalog does not know are skipped.
func Markdown(names []string, cat *catalog.Catalog, shareBase string) string {
	var sb strings.Builder
	sb.WriteString("# My Audio Gear Wishlist\n")

	member := make(map[string]bool, len(names))
	for _, n := range names {
		member[n] = true
	}

	for _, group := range cat.Categories() {
		var lines []string
		for _, p := range group.Products {
			if !member[p.Name] {
				continue
			}
			lines = append(lines, itemLine(p))
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString("\n## " + group.Label + "\n")
		for _, l := range lines {
			sb.WriteString(l + "\n")
		}
	}

	if link, err := ShareURL(shareBase, names); err == nil {
		sb.WriteString("\nShared via gearshelf: " + link + "\n")
	}
	return sb.String()
}

func itemLine(p catalog.Product) string {
	var sb strings.Builder
	sb.WriteString("- " + p.Name)
	if p.Pick {
		sb.WriteString(" ⭐")
	}
	if p.HasPrice() {
		fmt.Fprintf(&sb, " ($%d)", *p.Price)
	}
	if p.URL != "" {
		sb.WriteString(" — " + p.URL)
	}
	return sb.String()
}
