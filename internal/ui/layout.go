// Package ui holds the theme, the derived styles and small layout helpers
// shared by the components.
package ui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// PlaceCentre centres content in a width x height box.
func PlaceCentre(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Truncate shortens s to at most width terminal cells, ending in "…" when
// cut. Wide runes (CJK, emoji) count as two cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// KeyHint renders one "key description" pair of the help bar.
func KeyHint(styles Styles, key, desc string) string {
	return styles.KeyBind.Render(key) + " " + styles.KeyDesc.Render(desc)
}

// JoinNonEmpty joins the non-empty parts with sep.
func JoinNonEmpty(sep string, parts ...string) string {
	kept := slices.DeleteFunc(slices.Clone(parts), func(p string) bool { return p == "" })
	return strings.Join(kept, sep)
}
