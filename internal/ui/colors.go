package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/taskdeck/internal/shared"
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

// DefaultPalette returns the stock color scheme.
func DefaultPalette() *Palette {
	return NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")
}

// PaletteFromConfig builds a Palette from the [ui] config section, falling
// back to the stock colors for unset fields.
func PaletteFromConfig(cfg shared.UIConfig) *Palette {
	pick := func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	}
	return NewPalette(
		pick(cfg.Accent, "#7D56F4"),
		pick(cfg.Success, "#04B575"),
		pick(cfg.Error, "#FF0000"),
		pick(cfg.Warning, "#FFA500"),
		pick(cfg.Muted, "#626262"),
	)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
