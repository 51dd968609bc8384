package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	loadTimeout   = 30 * time.Second
	actionTimeout = 2 * time.Minute
)

// loadGarments loads the grid listing.
func (m Model) loadGarments() tea.Cmd {
	svc := m.service
	filter := m.config.Filter
	return func() tea.Msg {
		if svc == nil {
			return garmentsLoadedMsg{err: fmt.Errorf("%w: service not configured", common.ErrMissingConfig)}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		items, err := svc.List(ctx, filter)
		return garmentsLoadedMsg{items: items, err: err}
	}
}

// loadStats loads the side panel statistics.
func (m Model) loadStats() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		if svc == nil {
			return statsLoadedMsg{err: fmt.Errorf("%w: service not configured", common.ErrMissingConfig)}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		stats, err := svc.Statistics(ctx)
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// toggleFavorite flips the favorite flag of one garment.
func (m Model) toggleFavorite(id int64) tea.Cmd {
	return m.garmentAction(id, func(ctx context.Context) (string, error) {
		favorite, err := m.service.ToggleFavorite(ctx, id)
		if err != nil {
			return "", err
		}
		if favorite {
			return "added to favorites", nil
		}
		return "removed from favorites", nil
	})
}

// toggleArchive flips the archived flag of one garment.
func (m Model) toggleArchive(id int64) tea.Cmd {
	return m.garmentAction(id, func(ctx context.Context) (string, error) {
		archived, err := m.service.ToggleArchive(ctx, id)
		if err != nil {
			return "", err
		}
		if archived {
			return "archived", nil
		}
		return "restored from archive", nil
	})
}

// recordWear logs that a garment was worn today.
func (m Model) recordWear(id int64) tea.Cmd {
	return m.garmentAction(id, func(ctx context.Context) (string, error) {
		wear, err := m.service.RecordWear(ctx, id)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("worn %d time(s)", wear.WearCount), nil
	})
}

// garmentAction runs action and then reloads the garment it touched.
func (m Model) garmentAction(id int64, action func(ctx context.Context) (string, error)) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		notice, err := action(ctx)
		if err != nil {
			return garmentUpdatedMsg{err: err}
		}

		g, err := svc.Get(ctx, id)
		if err != nil {
			common.LogDebug("Reload after action failed", common.Fields{"garment_id": id, "error": err})
			return garmentUpdatedMsg{notice: notice}
		}
		return garmentUpdatedMsg{garment: g, notice: notice}
	}
}

// runBatch applies action to ids through the batch runner.
func (m Model) runBatch(action engine.BatchAction, ids []int64) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		notices := &noticeCollector{}
		result, err := engine.NewBatchRunner(svc, notices).Run(ctx, action, engine.NewSelection(ids...))
		return batchDoneMsg{result: result, err: err, notices: notices.list()}
	}
}

// expireNotice clears notice seq after ttl.
func expireNotice(seq int, ttl time.Duration) tea.Cmd {
	return tea.Tick(ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// noticeCollector buffers notices raised inside a command until it returns.
type noticeCollector struct {
	notices []noticeMsg
	mu      sync.Mutex
}

func (c *noticeCollector) Info(msg string)    { c.add(msg, noticeInfo) }
func (c *noticeCollector) Success(msg string) { c.add(msg, noticeSuccess) }
func (c *noticeCollector) Error(msg string)   { c.add(msg, noticeError) }

func (c *noticeCollector) add(msg string, level noticeLevel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, noticeMsg{text: msg, level: level})
}

func (c *noticeCollector) list() []noticeMsg {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]noticeMsg(nil), c.notices...)
}
