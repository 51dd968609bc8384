package tui

import (
	"errors"
	"fmt"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/service"
	"github.com/Veraticus/wardrobe/internal/tui/components"
	"github.com/Veraticus/wardrobe/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateGrid State = iota
	StateDetail
	StateBatch
	StateConfirm
	StateUploading
	StateHelp
)

func (s State) String() string {
	switch s {
	case StateGrid:
		return "Closet"
	case StateDetail:
		return "Detail"
	case StateBatch:
		return "Batch"
	case StateConfirm:
		return "Confirm"
	case StateUploading:
		return "Uploading"
	case StateHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// pendingDelete is a delete waiting for the user to press y.
type pendingDelete struct {
	ids []int64
}

// Model holds the main TUI state.
type Model struct {
	theme      themes.Theme
	service    service.ClothesService
	lastError  error
	resultChan chan<- promptResult
	selection  *engine.Selection
	deleting   *pendingDelete
	notice     *noticeMsg
	grid       components.GarmentGridModel
	detail     components.GarmentDetailModel
	confirm    components.ConfirmFormModel
	stats      components.StatsPanelModel
	spinner    spinner.Model
	progress   progress.Model
	help       help.Model
	config     Config
	keymap     KeyMap
	uploaded   int
	uploadSize int
	noticeSeq  int
	width      int
	height     int
	state      State
	prevState  State
	uploading  bool
	loading    bool
	quitting   bool
	ready      bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = s.Style.Foreground(cfg.Theme.Primary)

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return Model{
		state:     StateGrid,
		config:    cfg,
		keymap:    DefaultKeyMap(),
		theme:     cfg.Theme,
		service:   cfg.Service,
		selection: engine.NewSelection(),
		grid:      components.NewGarmentGrid(nil, cfg.Theme),
		stats:     components.NewStatsPanelModel(cfg.Theme),
		spinner:   s,
		progress:  prog,
		help:      help.New(),
		width:     cfg.Width,
		height:    cfg.Height,
		loading:   true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadGarments(), m.loadStats())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case garmentsLoadedMsg:
		m.loading = false
		m.ready = true
		if msg.err != nil {
			m.lastError = msg.err
			return m, m.showNotice(noticeMsg{text: errorText(msg.err), level: noticeError})
		}
		m.grid.SetItems(msg.items)
		m.stats.SetListing(msg.items)
		return m, nil

	case statsLoadedMsg:
		if msg.err == nil {
			m.stats.SetStatistics(msg.stats)
		}
		return m, nil

	case garmentUpdatedMsg:
		return m.handleGarmentUpdated(msg)

	case batchDoneMsg:
		return m.handleBatchDone(msg)

	case components.GarmentOpenedMsg:
		m.state = StateDetail
		m.detail = components.NewGarmentDetail(msg.Garment, m.theme, m.contentWidth(), m.contentHeight())
		return m, nil

	case components.BackToGridMsg:
		m.state = StateGrid
		return m, nil

	case confirmRequestMsg:
		if m.state != StateConfirm && m.state != StateUploading {
			m.prevState = m.state
		}
		m.uploading = true
		m.state = StateConfirm
		m.confirm = components.NewConfirmFormModel(msg.req, m.theme)
		m.confirm.Resize(m.contentWidth())
		return m, nil

	case uploadProgressMsg:
		wasUploading := m.uploading
		m.uploaded = msg.cursor
		m.uploadSize = msg.total
		m.uploading = true
		if m.state != StateConfirm && m.state != StateUploading {
			m.prevState = m.state
			m.state = StateUploading
		}
		if !wasUploading {
			return m, m.spinner.Tick
		}
		return m, nil

	case workflowDoneMsg:
		return m.handleWorkflowDone(msg)

	case noticeMsg:
		return m, m.showNotice(msg)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes a key press to the active state.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		// The pending confirmation stays unanswered; Browse cancels the
		// workflow context once the program exits.
		m.quitting = true
		return m, tea.Quit
	}

	if m.deleting != nil {
		return m.handleDeleteConfirmation(msg)
	}

	switch m.state {
	case StateConfirm:
		return m.handleConfirmKey(msg)
	case StateHelp:
		if key.Matches(msg, m.keymap.Help, m.keymap.Back, m.keymap.Quit) {
			m.state = m.prevState
		}
		return m, nil
	case StateUploading:
		return m, nil
	case StateDetail:
		return m.handleDetailKey(msg)
	case StateBatch:
		return m.handleBatchKey(msg)
	default:
		return m.handleGridKey(msg)
	}
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.prevState = m.state
		m.state = StateHelp
		return m, nil
	case key.Matches(msg, m.keymap.BatchMode):
		m.state = StateBatch
		return m, nil
	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadGarments(), m.loadStats())
	case key.Matches(msg, m.keymap.Favorite):
		if g, ok := m.grid.Focused(); ok {
			return m, m.toggleFavorite(g.ID)
		}
		return m, nil
	case key.Matches(msg, m.keymap.Archive):
		if g, ok := m.grid.Focused(); ok {
			return m, m.toggleArchive(g.ID)
		}
		return m, nil
	case key.Matches(msg, m.keymap.Wear):
		if g, ok := m.grid.Focused(); ok {
			return m, m.recordWear(g.ID)
		}
		return m, nil
	case key.Matches(msg, m.keymap.Delete):
		if g, ok := m.grid.Focused(); ok {
			m.deleting = &pendingDelete{ids: []int64{g.ID}}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.detail.Garment()
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.state = StateGrid
		return m, nil
	case key.Matches(msg, m.keymap.Favorite):
		return m, m.toggleFavorite(g.ID)
	case key.Matches(msg, m.keymap.Archive):
		return m, m.toggleArchive(g.ID)
	case key.Matches(msg, m.keymap.Wear):
		return m, m.recordWear(g.ID)
	case key.Matches(msg, m.keymap.Delete):
		m.deleting = &pendingDelete{ids: []int64{g.ID}}
		return m, nil
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleBatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.selection.Clear()
		m.state = StateGrid
		return m, nil
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.ToggleSelect):
		if g, ok := m.grid.Focused(); ok {
			m.selection.Toggle(g.ID)
		}
		return m, nil
	case key.Matches(msg, m.keymap.SelectAll):
		m.selection.SelectAll(m.grid.IDs())
		return m, nil
	case key.Matches(msg, m.keymap.Favorite):
		return m, m.runBatch(engine.BatchFavorite, m.selection.IDs())
	case key.Matches(msg, m.keymap.Archive):
		return m, m.runBatch(engine.BatchArchive, m.selection.IDs())
	case key.Matches(msg, m.keymap.Delete):
		if m.selection.Len() == 0 {
			return m, m.runBatch(engine.BatchDelete, nil)
		}
		m.deleting = &pendingDelete{ids: m.selection.IDs()}
		return m, nil
	case key.Matches(msg, m.keymap.Open):
		return m, nil
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

func (m Model) handleDeleteConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pending := m.deleting
	m.deleting = nil
	if !key.Matches(msg, m.keymap.Confirm) {
		return m, m.showNotice(noticeMsg{text: "delete cancelled", level: noticeInfo})
	}
	if m.state == StateDetail {
		m.state = StateGrid
	}
	return m, m.runBatch(engine.BatchDelete, pending.ids)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.confirm, cmd = m.confirm.Update(msg)
	if !m.confirm.IsComplete() {
		return m, cmd
	}

	if m.confirm.Cancelled() {
		m.sendResult(promptResult{err: common.ErrConfirmCancelled})
	} else {
		m.sendResult(promptResult{form: m.confirm.Form()})
	}
	m.state = StateUploading
	return m, tea.Batch(cmd, m.spinner.Tick)
}

func (m Model) handleGarmentUpdated(msg garmentUpdatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.lastError = msg.err
		return m, m.showNotice(noticeMsg{text: errorText(msg.err), level: noticeError})
	}
	if msg.garment != nil && m.state == StateDetail && m.detail.Garment().ID == msg.garment.ID {
		m.detail.SetGarment(*msg.garment)
	}
	return m, tea.Batch(
		m.showNotice(noticeMsg{text: msg.notice, level: noticeSuccess}),
		m.loadGarments(),
		m.loadStats(),
	)
}

func (m Model) handleBatchDone(msg batchDoneMsg) (tea.Model, tea.Cmd) {
	notices := msg.notices
	if msg.err != nil && !errors.Is(msg.err, common.ErrEmptySelection) {
		notices = append(notices, noticeMsg{text: errorText(msg.err), level: noticeError})
	}
	cmds := []tea.Cmd{m.showNotice(combineNotices(notices))}
	if msg.err != nil {
		m.lastError = msg.err
		return m, tea.Batch(cmds...)
	}

	if msg.result.ShouldExitBatchMode() {
		m.selection.Clear()
		if m.state == StateBatch {
			m.state = StateGrid
		}
	}
	cmds = append(cmds, m.loadGarments(), m.loadStats())
	return m, tea.Batch(cmds...)
}

func (m Model) handleWorkflowDone(msg workflowDoneMsg) (tea.Model, tea.Cmd) {
	m.uploading = false
	m.uploaded = 0
	m.uploadSize = 0
	if m.state == StateConfirm || m.state == StateUploading {
		m.state = m.prevState
		if m.state == StateHelp || m.state == StateConfirm || m.state == StateUploading {
			m.state = StateGrid
		}
	}

	notice := noticeMsg{
		text: fmt.Sprintf("upload finished: %d saved, %d failed, %d skipped",
			msg.report.Saved, msg.report.Failed, msg.report.Cancelled),
		level: noticeSuccess,
	}
	if msg.err != nil {
		m.lastError = msg.err
		notice = noticeMsg{text: "upload stopped: " + errorText(msg.err), level: noticeError}
	}
	return m, tea.Batch(m.showNotice(notice), m.loadGarments(), m.loadStats())
}

// showNotice displays n in the status bar until the TTL passes or another notice replaces it.
func (m *Model) showNotice(n noticeMsg) tea.Cmd {
	if n.text == "" {
		return nil
	}
	m.noticeSeq++
	m.notice = &n
	return expireNotice(m.noticeSeq, m.config.NoticeTTL)
}

// sendResult hands the confirm form result to the waiting prompter.
func (m Model) sendResult(result promptResult) {
	if m.resultChan == nil {
		return
	}
	select {
	case m.resultChan <- result:
	default:
	}
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.grid.Resize(m.gridWidth(), m.contentHeight())
	m.detail.Resize(m.contentWidth(), m.contentHeight())
	m.confirm.Resize(m.contentWidth())
	m.stats.Resize(m.statsWidth())
	m.stats.SetCompact(m.statsWidth() == 0)
	m.progress.Width = min(max(m.contentWidth()-10, 10), 60)
	m.help.Width = m.width
}

// Layout: two lines of chrome at the bottom plus a one cell margin.
func (m Model) contentWidth() int {
	return max(m.width-2, 20)
}

func (m Model) contentHeight() int {
	return max(m.height-4, 5)
}

func (m Model) statsWidth() int {
	if !m.config.ShowStats || m.width < 100 {
		return 0
	}
	return 30
}

func (m Model) gridWidth() int {
	if w := m.statsWidth(); w > 0 {
		return m.contentWidth() - w - 3
	}
	return m.contentWidth()
}

// combineNotices joins notices into one status line; any error makes it an error.
func combineNotices(notices []noticeMsg) noticeMsg {
	var combined noticeMsg
	for i, n := range notices {
		if i > 0 {
			combined.text += " · "
		}
		combined.text += n.text
		combined.level = max(combined.level, n.level)
	}
	return combined
}

func errorText(err error) string {
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
