package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/wardrobe/internal/cli"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// StatsPanelModel shows closet totals next to the grid.
type StatsPanelModel struct {
	theme     themes.Theme
	stats     *model.Statistics
	listed    int
	favorites int
	width     int
	compact   bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	return StatsPanelModel{theme: theme, width: 30}
}

// SetStatistics stores the closet-wide statistics.
func (m *StatsPanelModel) SetStatistics(stats *model.Statistics) {
	m.stats = stats
}

// SetListing counts the garments currently listed.
func (m *StatsPanelModel) SetListing(items []model.Garment) {
	m.listed = len(items)
	m.favorites = 0
	for _, g := range items {
		if g.IsFavorite {
			m.favorites++
		}
	}
}

// SetCompact switches to the single line layout.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize sets the panel width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
}

// View renders the panel.
func (m StatsPanelModel) View() string {
	if m.compact {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).
			Render(fmt.Sprintf("%d garment(s) · ★ %d", m.listed, m.favorites))
	}

	sections := []string{
		m.theme.Subtitle.Render("Closet"),
		fmt.Sprintf("Listed     %d", m.listed),
		fmt.Sprintf("Favorites  %d", m.favorites),
	}

	if m.stats != nil {
		sections = append(sections,
			fmt.Sprintf("Total      %d", m.stats.TotalItems),
			fmt.Sprintf("Never worn %d", m.stats.NeverWornCount),
			"",
			m.theme.Subtitle.Render("By category"),
		)
		sections = append(sections, m.renderChart())
	}

	return lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m StatsPanelModel) renderChart() string {
	counts := m.stats.SortedDistribution()
	if len(counts) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No data yet")
	}

	barSpace := max(m.width-12, 5)
	var lines []string
	for _, c := range counts {
		label := c.Category
		if label == "" {
			label = "其他"
		}
		cells := max(1, cli.BarCells(c.Percent)*barSpace/cli.BarCells(100))
		lines = append(lines, fmt.Sprintf("%s %s %d",
			lipgloss.NewStyle().Width(5).Render(label),
			m.theme.ProgressBar.Render(strings.Repeat("█", cells)),
			c.Count))
	}
	return strings.Join(lines, "\n")
}
