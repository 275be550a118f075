// Package ui provides the BarCut desktop application.
//
// This file defines a compact Fyne theme for a dense, workshop-friendly layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// BarCutTheme wraps the default Fyne theme with compact sizing overrides.
type BarCutTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	system  bool
}

// NewBarCutTheme creates a BarCutTheme following the system variant.
func NewBarCutTheme() *BarCutTheme {
	return &BarCutTheme{
		base:   theme.DefaultTheme(),
		system: true,
	}
}

// NewBarCutThemeFor maps the config theme name ("light", "dark", "system")
// to a theme.
func NewBarCutThemeFor(name string) *BarCutTheme {
	t := NewBarCutTheme()
	t.SetName(name)
	return t
}

// SetName updates the variant from a config theme name.
func (t *BarCutTheme) SetName(name string) {
	switch name {
	case "light":
		t.variant, t.system = theme.VariantLight, false
	case "dark":
		t.variant, t.system = theme.VariantDark, false
	default:
		t.system = true
	}
}

// Color delegates to the base theme with the stored variant, or the
// requested one when following the system.
func (t *BarCutTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.system {
		return t.base.Color(name, variant)
	}
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *BarCutTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *BarCutTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *BarCutTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
