package components

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/wardrobe/internal/cli"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/tui/themes"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// GarmentDetailModel shows every attribute of one garment in a scrollable pane.
type GarmentDetailModel struct {
	theme    themes.Theme
	now      func() time.Time
	viewport viewport.Model
	garment  model.Garment
}

// NewGarmentDetail creates a detail pane for g.
func NewGarmentDetail(g model.Garment, theme themes.Theme, width, height int) GarmentDetailModel {
	m := GarmentDetailModel{
		theme:    theme,
		now:      time.Now,
		garment:  g,
		viewport: viewport.New(width, height),
	}
	m.refresh()
	return m
}

// Update scrolls the pane. Esc emits BackToGridMsg.
func (m GarmentDetailModel) Update(msg tea.Msg) (GarmentDetailModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		return m, func() tea.Msg { return BackToGridMsg{} }
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// Garment returns the garment shown.
func (m GarmentDetailModel) Garment() model.Garment {
	return m.garment
}

// SetGarment replaces the garment shown, keeping the scroll position.
func (m *GarmentDetailModel) SetGarment(g model.Garment) {
	m.garment = g
	m.refresh()
}

// Resize sets the pane size.
func (m *GarmentDetailModel) Resize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.refresh()
}

// View renders the pane.
func (m GarmentDetailModel) View() string {
	return m.viewport.View()
}

func (m *GarmentDetailModel) refresh() {
	m.viewport.SetContent(m.render())
}

func (m GarmentDetailModel) render() string {
	g := m.garment
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	title := fmt.Sprintf("%s #%d %s", themes.GetCategoryIcon(g.Category), g.ID, g.DisplayType())
	if g.IsFavorite {
		title += " ★"
	}
	if g.IsArchived {
		title += " (archived)"
	}
	sections := []string{m.theme.Title.Render(title)}

	if tags := g.Tags(); len(tags) > 0 {
		rendered := make([]string, len(tags))
		for i, tag := range tags {
			rendered[i] = m.theme.Tag.Render(tag)
		}
		sections = append(sections, strings.Join(rendered, " "), "")
	}

	field := func(label, value string) string {
		if value == "" {
			return ""
		}
		return muted.Render(fmt.Sprintf("%-12s", label)) + value
	}
	block := func(heading string, lines ...string) {
		var kept []string
		for _, l := range lines {
			if l != "" {
				kept = append(kept, l)
			}
		}
		if len(kept) == 0 {
			return
		}
		sections = append(sections, m.theme.Subtitle.Render(heading))
		sections = append(sections, kept...)
		sections = append(sections, "")
	}

	price := ""
	if g.Price != nil {
		price = strconv.FormatFloat(*g.Price, 'f', 2, 64)
	}
	block("Basics",
		field("Category", g.Category),
		field("Color", g.Color),
		field("Material", g.Material),
		field("Season", strings.Join(g.Season, ", ")),
		field("Brand", g.Brand),
		field("Price", price),
	)
	block("Occasions",
		field("Occasions", strings.Join(g.SuitableOccasions, ", ")),
		field("Weather", strings.Join(g.SuitableWeather, ", ")),
		field("Age group", g.SuitableAgeGroup),
		field("Body type", g.BodyTypeTips),
	)
	block("Pairs with",
		field("Tops", strings.Join(g.MatchingTops, ", ")),
		field("Bottoms", strings.Join(g.MatchingBottoms, ", ")),
		field("Shoes", strings.Join(g.MatchingShoes, ", ")),
		field("Accessories", strings.Join(g.MatchingAccessories, ", ")),
		field("Colors", strings.Join(g.MatchingColors, ", ")),
	)
	if g.Description != "" {
		sections = append(sections, m.theme.Italic.Width(max(m.viewport.Width-2, 20)).Render(g.Description), "")
	}
	if g.UserNotes != "" {
		sections = append(sections, field("Notes", g.UserNotes), "")
	}

	worn := "never"
	if g.LastWornDate != nil && !g.LastWornDate.IsZero() {
		worn = cli.RelativeDate(g.LastWornDate.Time, m.now())
	}
	sections = append(sections, muted.Render(fmt.Sprintf("Worn %d time(s), last %s", g.WearCount, worn)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
