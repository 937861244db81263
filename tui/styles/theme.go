package styles

import (
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is used when the configured theme is unknown.
const DefaultThemeName = "solarized-dark"

// Theme is a base16 palette. The dashboard uses Base00-Base06 for
// surfaces and text, Base08 for errors and down interfaces, Base0B for
// healthy state, Base0D for accents and borders.
type Theme struct {
	Name   string
	Base00 lipgloss.Color
	Base01 lipgloss.Color
	Base02 lipgloss.Color
	Base03 lipgloss.Color
	Base04 lipgloss.Color
	Base05 lipgloss.Color
	Base06 lipgloss.Color
	Base07 lipgloss.Color
	Base08 lipgloss.Color
	Base09 lipgloss.Color
	Base0A lipgloss.Color
	Base0B lipgloss.Color
	Base0C lipgloss.Color
	Base0D lipgloss.Color
	Base0E lipgloss.Color
	Base0F lipgloss.Color
}

// Lookup returns the theme registered under slug.
func Lookup(slug string) (Theme, bool) {
	t, ok := Themes[slug]
	return t, ok
}

// Resolve returns the named theme, falling back to the default one.
func Resolve(slug string) Theme {
	if t, ok := Lookup(slug); ok {
		return t
	}
	return Themes[DefaultThemeName]
}

// ListThemes returns the theme slugs in sorted order.
func ListThemes() []string {
	return slices.Sorted(maps.Keys(Themes))
}
