package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready && !m.uploading {
		return m.renderLoading()
	}

	var content string
	switch m.state {
	case StateDetail:
		content = m.detail.View()
	case StateConfirm:
		content = m.confirm.View()
	case StateUploading:
		content = m.renderUpload()
	case StateHelp:
		return m.renderHelp()
	default:
		content = m.renderGrid()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(0, 1).Render(content),
		m.renderStatusBar(),
		m.help.View(stateKeys{KeyMap: m.keymap, state: m.state}),
	)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Wardrobe"),
		m.spinner.View()+" Loading your closet...",
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// renderGrid renders the garment grid with the stats panel beside it.
func (m Model) renderGrid() string {
	var selected func(int64) bool
	if m.state == StateBatch {
		selected = m.selection.Has
	}
	grid := m.grid.View(selected)

	if m.statsWidth() == 0 {
		if m.config.ShowStats {
			return lipgloss.JoinVertical(lipgloss.Left, grid, m.stats.View())
		}
		return grid
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		grid,
		m.theme.Normal.Render(" │ "),
		m.stats.View(),
	)
}

// renderUpload shows workflow progress between confirmations.
func (m Model) renderUpload() string {
	percent := 0.0
	if m.uploadSize > 0 {
		percent = float64(m.uploaded) / float64(m.uploadSize)
	}

	status := "Classifying..."
	if m.uploaded >= m.uploadSize && m.uploadSize > 0 {
		status = "Finishing..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("Uploading garments"),
		m.progress.ViewAs(percent),
		fmt.Sprintf("%s %d of %d done · %s", m.spinner.View(), m.uploaded, m.uploadSize, status),
	)
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	sections := []struct {
		title string
		items [][2]string
	}{
		{"Navigation", [][2]string{
			{"↑↓←→/hjkl", "Move between garments"},
			{"g/G", "Go to start/end"},
			{"Enter", "Open details"},
			{"Esc", "Back"},
		}},
		{"Garment", [][2]string{
			{"f", "Toggle favorite"},
			{"A", "Toggle archive"},
			{"w", "Record a wear"},
			{"x", "Delete (asks first)"},
		}},
		{"Batch mode", [][2]string{
			{"b", "Enter batch mode"},
			{"Space", "Toggle selection"},
			{"a", "Select all"},
			{"f / A / x", "Favorite, archive or delete selected"},
			{"Esc", "Leave batch mode"},
		}},
		{"Application", [][2]string{
			{"r", "Refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
			{"Ctrl+C", "Force quit"},
		}},
	}

	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Primary).Width(12)
	var content []string
	for _, section := range sections {
		content = append(content, m.theme.Subtitle.Render(section.title))
		for _, item := range section.items {
			content = append(content, "  "+keyStyle.Render(item[0])+m.theme.Normal.Render(item[1]))
		}
		content = append(content, "")
	}
	content = append(content, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help"))

	box := m.theme.BorderedBox.Width(60).Render(
		lipgloss.JoinVertical(lipgloss.Left, append([]string{m.theme.Title.Render("Wardrobe - Help")}, content...)...),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderStatusBar renders the state label, the current notice and counts.
func (m Model) renderStatusBar() string {
	left := m.state.String()
	if m.state == StateBatch {
		left = fmt.Sprintf("Batch · %d selected", m.selection.Len())
	}

	var center string
	switch {
	case m.deleting != nil:
		center = m.theme.StatusWarning.Render(fmt.Sprintf("Delete %d garment(s)? y to confirm", len(m.deleting.ids)))
	case m.notice != nil:
		center = m.noticeStyle().Render(m.notice.text)
	case m.loading:
		center = m.spinner.View() + " loading"
	}

	right := ""
	if m.uploading && m.state != StateUploading {
		right = fmt.Sprintf("upload %d/%d", m.uploaded, m.uploadSize)
	}

	totalWidth := max(m.width-2, 0)
	spacing := max(totalWidth-lipgloss.Width(left)-lipgloss.Width(center)-lipgloss.Width(right), 2)
	leftPad := spacing / 2

	status := m.theme.StatusInfo.Render(left) +
		strings.Repeat(" ", leftPad) +
		center +
		strings.Repeat(" ", spacing-leftPad) +
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(right)

	return lipgloss.NewStyle().Padding(0, 1).MaxWidth(m.width).Render(status)
}

func (m Model) noticeStyle() lipgloss.Style {
	switch m.notice.level {
	case noticeSuccess:
		return m.theme.StatusSuccess
	case noticeError:
		return m.theme.StatusError
	default:
		return m.theme.StatusInfo
	}
}
