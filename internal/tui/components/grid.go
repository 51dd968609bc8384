// Package components provides reusable UI components for the TUI.
package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Card geometry including borders and the gap between cards.
const (
	cardWidth  = 24
	cardHeight = 5
	cardGap    = 1
)

// GarmentGridModel lays garments out as cards and tracks the focused one.
type GarmentGridModel struct {
	theme  themes.Theme
	items  []model.Garment
	cursor int
	offset int
	width  int
	height int
}

// NewGarmentGrid creates a grid over items.
func NewGarmentGrid(items []model.Garment, theme themes.Theme) GarmentGridModel {
	return GarmentGridModel{
		items:  items,
		theme:  theme,
		width:  80,
		height: 20,
	}
}

// Update handles navigation keys. Enter emits GarmentOpenedMsg.
func (m GarmentGridModel) Update(msg tea.Msg) (GarmentGridModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.items) == 0 {
		return m, nil
	}

	cols := m.Columns()
	switch keyMsg.String() {
	case "left", "h":
		m.cursor = max(m.cursor-1, 0)
	case "right", "l":
		m.cursor = min(m.cursor+1, len(m.items)-1)
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		m.cursor = min(m.cursor+cols, len(m.items)-1)
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.items) - 1
	case "enter":
		g := m.items[m.cursor]
		return m, func() tea.Msg { return GarmentOpenedMsg{Garment: g} }
	}
	m.ensureVisible()
	return m, nil
}

// SetItems replaces the garments, keeping the cursor in range.
func (m *GarmentGridModel) SetItems(items []model.Garment) {
	m.items = items
	if m.cursor >= len(items) {
		m.cursor = max(len(items)-1, 0)
	}
	m.ensureVisible()
}

// Resize sets the area available to the grid.
func (m *GarmentGridModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// Columns returns how many cards fit on a row.
func (m GarmentGridModel) Columns() int {
	return max(1, (m.width+cardGap)/(cardWidth+cardGap))
}

// Focused returns the garment under the cursor.
func (m GarmentGridModel) Focused() (model.Garment, bool) {
	if len(m.items) == 0 {
		return model.Garment{}, false
	}
	return m.items[m.cursor], true
}

// Cursor returns the focused index.
func (m GarmentGridModel) Cursor() int {
	return m.cursor
}

// Items returns the garments shown.
func (m GarmentGridModel) Items() []model.Garment {
	return m.items
}

// IDs returns the ids of all garments shown.
func (m GarmentGridModel) IDs() []int64 {
	ids := make([]int64, len(m.items))
	for i, g := range m.items {
		ids[i] = g.ID
	}
	return ids
}

func (m GarmentGridModel) visibleRows() int {
	return max(1, m.height/cardHeight)
}

func (m *GarmentGridModel) ensureVisible() {
	row := m.cursor / m.Columns()
	rows := m.visibleRows()
	if row < m.offset {
		m.offset = row
	}
	if row >= m.offset+rows {
		m.offset = row - rows + 1
	}
}

// View renders the visible rows. selected marks cards picked in batch mode.
func (m GarmentGridModel) View(selected func(id int64) bool) string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Your closet is empty. Upload some garments to get started.")
	}

	cols := m.Columns()
	start := m.offset * cols
	end := min(len(m.items), start+m.visibleRows()*cols)

	var rows []string
	for rowStart := start; rowStart < end; rowStart += cols {
		var cards []string
		for i := rowStart; i < min(rowStart+cols, end); i++ {
			isSelected := selected != nil && selected(m.items[i].ID)
			cards = append(cards, m.renderCard(m.items[i], i == m.cursor, isSelected))
			if i < min(rowStart+cols, end)-1 {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m GarmentGridModel) renderCard(g model.Garment, focused, selected bool) string {
	style := m.theme.Card
	switch {
	case selected:
		style = m.theme.CardSelected
	case focused:
		style = m.theme.CardFocused
	}
	if selected && focused {
		style = style.BorderForeground(m.theme.Primary)
	}

	inner := cardWidth - 4
	line := lipgloss.NewStyle().MaxWidth(inner)

	marks := ""
	if selected {
		marks += "✓ "
	}
	if g.IsFavorite {
		marks += "★ "
	}
	if g.IsArchived {
		marks += "archived "
	}
	meta := fmt.Sprintf("%sworn %d", marks, g.WearCount)

	color := g.Color
	if color == "" {
		color = "-"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		line.Render(themes.GetCategoryIcon(g.Category)+" "+m.theme.Bold.Render(g.DisplayType())),
		line.Render(fmt.Sprintf("#%d %s · %s", g.ID, categoryOrOther(g.Category), color)),
		line.Foreground(m.theme.Muted).Render(meta),
	)
	return style.Width(inner + 2).Render(content)
}

func categoryOrOther(category string) string {
	if category == "" {
		return "其他"
	}
	return category
}
