// Package themes holds the color schemes of the terminal browser.
package themes

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is derived from.
type Palette struct {
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Subtle  lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// Theme defines the visual style for the TUI.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Normal      lipgloss.Style
	Bold        lipgloss.Style
	Italic      lipgloss.Style
	BorderedBox lipgloss.Style
	ProgressBar lipgloss.Style

	// Garment cards in the grid.
	Card         lipgloss.Style
	CardFocused  lipgloss.Style
	CardSelected lipgloss.Style
	Tag          lipgloss.Style

	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	Primary lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
}

// New derives a theme from p.
func New(p Palette) Theme {
	text := lipgloss.NewStyle().Foreground(p.Text)
	status := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	card := lipgloss.NewStyle().Padding(0, 1)

	return Theme{
		Title:       text.Bold(true).MarginBottom(1),
		Subtitle:    lipgloss.NewStyle().Foreground(p.Subtle).MarginBottom(1),
		Normal:      text,
		Bold:        text.Bold(true),
		Italic:      text.Italic(true),
		BorderedBox: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Border).Padding(1, 2),
		ProgressBar: lipgloss.NewStyle().Foreground(p.Primary),

		Card:         card.Border(lipgloss.RoundedBorder()).BorderForeground(p.Border),
		CardFocused:  card.Border(lipgloss.ThickBorder()).BorderForeground(p.Primary),
		CardSelected: card.Border(lipgloss.DoubleBorder()).BorderForeground(p.Success),
		Tag:          lipgloss.NewStyle().Background(p.Accent).Foreground(p.Surface).Padding(0, 1),

		StatusSuccess: status(p.Success),
		StatusWarning: status(p.Warning),
		StatusError:   status(p.Error),
		StatusInfo:    status(p.Info),

		Primary: p.Primary,
		Muted:   p.Muted,
		Border:  p.Border,
	}
}

// Default is the default theme.
var Default = New(Palette{
	Primary: "#7c3aed",
	Accent:  "#a78bfa",
	Text:    "#fafafa",
	Subtle:  "#a3a3a3",
	Muted:   "#737373",
	Border:  "#404040",
	Surface: "#1a1a1a",
	Success: "#10b981",
	Warning: "#f59e0b",
	Error:   "#ef4444",
	Info:    "#3b82f6",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = New(Palette{
	Primary: "#cba6f7",
	Accent:  "#f5c2e7",
	Text:    "#cdd6f4",
	Subtle:  "#a6adc8",
	Muted:   "#6c7086",
	Border:  "#45475a",
	Surface: "#1e1e2e",
	Success: "#a6e3a1",
	Warning: "#f9e2af",
	Error:   "#f38ba8",
	Info:    "#89dceb",
})

// Linen is a light theme for bright terminals.
var Linen = New(Palette{
	Primary: "#9a3412",
	Accent:  "#fed7aa",
	Text:    "#292524",
	Subtle:  "#57534e",
	Muted:   "#a8a29e",
	Border:  "#d6d3d1",
	Surface: "#292524",
	Success: "#15803d",
	Warning: "#b45309",
	Error:   "#b91c1c",
	Info:    "#1d4ed8",
})

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha
	case "linen", "light":
		return Linen
	default:
		return Default
	}
}

// CategoryIcons maps garment categories to icons.
var CategoryIcons = map[string]string{
	"上衣": "👕",
	"裤子": "👖",
	"裙子": "👗",
	"外套": "🧥",
	"鞋子": "👟",
	"帽子": "🧢",
	"包包": "👜",
	"配饰": "💍",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category string) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "🏷️"
}
