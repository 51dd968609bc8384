package components

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type fieldKind int

const (
	kindSingle fieldKind = iota
	kindMulti
	kindText
)

type formField struct {
	key     string
	label   string
	options []string
	kind    fieldKind
}

var confirmFields = []formField{
	{key: engine.FieldCategory, label: "Category", kind: kindSingle, options: model.Categories},
	{key: "type", label: "Type", kind: kindText},
	{key: engine.FieldColors, label: "Colors", kind: kindMulti, options: model.Colors},
	{key: engine.FieldStyles, label: "Styles", kind: kindMulti, options: model.Styles},
	{key: engine.FieldSeasons, label: "Seasons", kind: kindMulti, options: model.Seasons},
	{key: "occasions", label: "Occasions", kind: kindMulti, options: model.Occasions},
	{key: "material", label: "Material", kind: kindText},
	{key: "thickness", label: "Thickness", kind: kindSingle, options: model.Thicknesses},
	{key: "description", label: "Description", kind: kindText},
}

// ConfirmFormModel edits the attributes proposed for one uploaded image.
// Choice fields are driven with ←/→ and space; text fields take typed input.
type ConfirmFormModel struct {
	theme     themes.Theme
	problem   *engine.ValidationError
	title     string
	form      engine.ConfirmForm
	inputs    []textinput.Model
	field     int
	option    int
	width     int
	complete  bool
	cancelled bool
}

// NewConfirmFormModel creates a form for req. A reported problem focuses its field.
func NewConfirmFormModel(req engine.ConfirmRequest, theme themes.Theme) ConfirmFormModel {
	m := ConfirmFormModel{
		theme:   theme,
		form:    req.Form,
		problem: req.Problem,
		title:   fmt.Sprintf("Image %d of %d: %s", req.Position, req.Total, req.File.Name),
		inputs:  make([]textinput.Model, len(confirmFields)),
		width:   80,
	}

	for i, f := range confirmFields {
		if f.kind != kindText {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 200
		ti.SetValue(m.textValue(f.key))
		m.inputs[i] = ti
	}

	if req.Problem != nil {
		for i, f := range confirmFields {
			if f.key == req.Problem.Field {
				m.field = i
			}
		}
	}
	m.focus()
	return m
}

// Update handles key presses.
func (m ConfirmFormModel) Update(msg tea.Msg) (ConfirmFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.complete {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+s":
		m.syncInputs()
		m.complete = true
		return m, nil
	case "esc":
		m.cancelled = true
		m.complete = true
		return m, nil
	case "tab", "down":
		return m, m.moveField(1)
	case "shift+tab", "up":
		return m, m.moveField(-1)
	}

	f := confirmFields[m.field]
	if f.kind == kindText {
		if keyMsg.String() == "enter" {
			return m, m.moveField(1)
		}
		var cmd tea.Cmd
		m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
		return m, cmd
	}

	options := m.options(f)
	switch keyMsg.String() {
	case "left", "h":
		m.option = max(m.option-1, 0)
	case "right", "l":
		m.option = min(m.option+1, len(options)-1)
	case " ", "enter", "x":
		m.choose(f, options[m.option])
		m.option = min(m.option, len(m.options(f))-1)
	}
	return m, nil
}

// IsComplete reports whether the user saved or cancelled.
func (m ConfirmFormModel) IsComplete() bool {
	return m.complete
}

// Cancelled reports whether the user skipped the image.
func (m ConfirmFormModel) Cancelled() bool {
	return m.cancelled
}

// Form returns the edited form.
func (m ConfirmFormModel) Form() engine.ConfirmForm {
	m.syncInputs()
	return m.form
}

// FocusedField returns the key of the focused field.
func (m ConfirmFormModel) FocusedField() string {
	return confirmFields[m.field].key
}

// Resize sets the form width.
func (m *ConfirmFormModel) Resize(width int) {
	m.width = width
	for i := range m.inputs {
		m.inputs[i].Width = max(width-20, 10)
	}
}

func (m *ConfirmFormModel) moveField(delta int) tea.Cmd {
	m.syncInputs()
	m.field = (m.field + delta + len(confirmFields)) % len(confirmFields)
	return m.focus()
}

func (m *ConfirmFormModel) focus() tea.Cmd {
	var cmd tea.Cmd
	for i, f := range confirmFields {
		if f.kind != kindText {
			continue
		}
		if i == m.field {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}

	m.option = 0
	f := confirmFields[m.field]
	for i, opt := range m.options(f) {
		if slices.Contains(m.selected(f.key), opt) {
			m.option = i
			break
		}
	}
	return cmd
}

func (m *ConfirmFormModel) choose(f formField, value string) {
	switch f.key {
	case engine.FieldCategory:
		m.form.Category = value
	case "thickness":
		if m.form.Thickness == value {
			m.form.Thickness = ""
		} else {
			m.form.Thickness = value
		}
	case engine.FieldColors:
		m.form.Colors = engine.Toggle(m.form.Colors, value)
	case engine.FieldStyles:
		m.form.Styles = engine.Toggle(m.form.Styles, value)
	case engine.FieldSeasons:
		m.form.Seasons = engine.Toggle(m.form.Seasons, value)
	case "occasions":
		m.form.Occasions = engine.Toggle(m.form.Occasions, value)
	}
	if m.problem != nil && m.problem.Field == f.key {
		m.problem = nil
	}
}

// options lists the vocabulary of f followed by chosen values outside it,
// so a proposal the vocabulary does not know can still be seen and removed.
func (m ConfirmFormModel) options(f formField) []string {
	options := f.options
	for _, v := range m.selected(f.key) {
		if v != "" && !slices.Contains(options, v) {
			options = append(slices.Clip(options), v)
		}
	}
	return options
}

func (m ConfirmFormModel) selected(key string) []string {
	switch key {
	case engine.FieldCategory:
		return []string{m.form.Category}
	case "thickness":
		return []string{m.form.Thickness}
	case engine.FieldColors:
		return m.form.Colors
	case engine.FieldStyles:
		return m.form.Styles
	case engine.FieldSeasons:
		return m.form.Seasons
	case "occasions":
		return m.form.Occasions
	}
	return nil
}

func (m ConfirmFormModel) textValue(key string) string {
	switch key {
	case "type":
		return m.form.Type
	case "material":
		return m.form.Material
	case "description":
		return m.form.Description
	}
	return ""
}

func (m *ConfirmFormModel) syncInputs() {
	for i, f := range confirmFields {
		if f.kind != kindText {
			continue
		}
		value := m.inputs[i].Value()
		switch f.key {
		case "type":
			m.form.Type = value
		case "material":
			m.form.Material = value
		case "description":
			m.form.Description = value
		}
	}
}

// View renders the form.
func (m ConfirmFormModel) View() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	rows := []string{m.theme.Title.Render(m.title)}

	if m.problem != nil {
		rows = append(rows, m.theme.StatusError.Render("✗ "+m.problem.Message), "")
	}

	for i, f := range confirmFields {
		focused := i == m.field
		label := fmt.Sprintf("%-12s", f.label)
		if focused {
			label = m.theme.Bold.Foreground(m.theme.Primary).Render("› " + label)
		} else {
			label = muted.Render("  " + label)
		}

		var value string
		if f.kind == kindText {
			value = m.inputs[i].View()
		} else {
			value = m.renderOptions(f, focused)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}

	rows = append(rows, "", muted.Render("tab/↑↓ field · ←/→ option · space toggle · ctrl+s save · esc skip"))
	return lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m ConfirmFormModel) renderOptions(f formField, focused bool) string {
	chosen := m.selected(f.key)
	options := m.options(f)
	parts := make([]string, len(options))
	for i, opt := range options {
		style := lipgloss.NewStyle().Foreground(m.theme.Muted)
		if slices.Contains(chosen, opt) {
			style = m.theme.StatusSuccess
			opt = "✓" + opt
		}
		if focused && i == m.option {
			style = style.Underline(true).Background(m.theme.Border)
		}
		parts[i] = style.Render(opt)
	}
	return lipgloss.NewStyle().Width(max(m.width-16, 20)).Render(strings.Join(parts, " "))
}
