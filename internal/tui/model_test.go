package tui

import (
	"testing"
	"time"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/Veraticus/wardrobe/internal/testutil"
	"github.com/Veraticus/wardrobe/internal/tui/components"
	tuitest "github.com/Veraticus/wardrobe/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCloset() *testutil.Closet {
	return testutil.NewCloset(testutil.FixtureMinimal.Garments()...)
}

func loadedModel(t *testing.T, svc *testutil.Closet) Model {
	t.Helper()
	cfg := defaultConfig()
	cfg.Service = svc
	m := newModel(cfg)

	m = update(t, m, m.loadGarments()())
	m = update(t, m, m.loadStats()())
	require.True(t, m.ready)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	result, ok := updated.(Model)
	require.True(t, ok)
	return result
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	result, ok := updated.(Model)
	require.True(t, ok)
	return result, cmd
}

// runCmd executes cmd and feeds its message back into the model.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	return update(t, m, cmd())
}

func TestModel_LoadsGarments(t *testing.T) {
	m := loadedModel(t, testCloset())

	assert.Len(t, m.grid.Items(), 3)
	assert.Equal(t, StateGrid, m.state)

	view := m.View()
	assert.Contains(t, view, "衬衫")
	assert.Contains(t, view, "牛仔裤")
	assert.Contains(t, view, "Closet")
}

func TestModel_LoadWithoutService(t *testing.T) {
	m := newModel(defaultConfig())

	m = update(t, m, m.loadGarments()())

	require.NotNil(t, m.notice)
	assert.Equal(t, noticeError, m.notice.level)
	assert.ErrorIs(t, m.lastError, common.ErrMissingConfig)
}

func TestModel_OpenDetailAndBack(t *testing.T) {
	m := loadedModel(t, testCloset())

	m, cmd := updateCmd(t, m, tuitest.KeyEnter())
	m = runCmd(t, m, cmd)
	require.Equal(t, StateDetail, m.state)
	assert.Contains(t, m.View(), "#1 衬衫")

	m, cmd = updateCmd(t, m, tuitest.KeyEsc())
	m = runCmd(t, m, cmd)
	assert.Equal(t, StateGrid, m.state)
}

func TestModel_FavoriteFocusedGarment(t *testing.T) {
	svc := testCloset()
	m := loadedModel(t, svc)

	m, cmd := updateCmd(t, m, tuitest.KeyPress("f"))
	m = runCmd(t, m, cmd)

	g, ok := svc.Garment(1)
	require.True(t, ok)
	assert.True(t, g.IsFavorite)
	require.NotNil(t, m.notice)
	assert.Equal(t, "added to favorites", m.notice.text)
}

func TestModel_WearUpdatesDetail(t *testing.T) {
	svc := testCloset()
	m := loadedModel(t, svc)
	shoes, ok := svc.Garment(3)
	require.True(t, ok)
	m = update(t, m, components.GarmentOpenedMsg{Garment: shoes})

	m, cmd := updateCmd(t, m, tuitest.KeyPress("w"))
	m = runCmd(t, m, cmd)

	assert.Equal(t, 1, m.detail.Garment().WearCount)
	assert.Equal(t, "worn 1 time(s)", m.notice.text)
}

func TestModel_BatchSelection(t *testing.T) {
	m := loadedModel(t, testCloset())

	m = update(t, m, tuitest.KeyPress("b"))
	require.Equal(t, StateBatch, m.state)

	m = update(t, m, tuitest.KeySpace())
	m = update(t, m, tuitest.KeyPress("l"))
	m = update(t, m, tuitest.KeySpace())
	assert.Equal(t, []int64{1, 2}, m.selection.IDs())

	m = update(t, m, tuitest.KeySpace())
	assert.Equal(t, []int64{1}, m.selection.IDs(), "toggling twice restores the original state")

	m = update(t, m, tuitest.KeyPress("a"))
	assert.Equal(t, []int64{1, 2, 3}, m.selection.IDs())
	assert.Contains(t, m.View(), "Batch · 3 selected")

	m = update(t, m, tuitest.KeyEsc())
	assert.Equal(t, StateGrid, m.state)
	assert.Zero(t, m.selection.Len())
}

func TestModel_BatchFavorite(t *testing.T) {
	svc := testCloset()
	m := loadedModel(t, svc)

	m = update(t, m, tuitest.KeyPress("b"))
	m = update(t, m, tuitest.KeyPress("a"))
	m, cmd := updateCmd(t, m, tuitest.KeyPress("f"))
	m = runCmd(t, m, cmd)

	assert.Equal(t, 3, svc.CallCount("favorite"))
	assert.Equal(t, StateGrid, m.state)
	assert.Zero(t, m.selection.Len())
	require.NotNil(t, m.notice)
	assert.Contains(t, m.notice.text, "processed 3 garment(s)")
}

func TestModel_BatchEmptySelection(t *testing.T) {
	svc := testCloset()
	m := loadedModel(t, svc)

	m = update(t, m, tuitest.KeyPress("b"))
	m, cmd := updateCmd(t, m, tuitest.KeyPress("f"))
	m = runCmd(t, m, cmd)

	assert.Zero(t, svc.CallCount("favorite"))
	assert.Equal(t, StateBatch, m.state)
	require.NotNil(t, m.notice)
	assert.Equal(t, "select garments first", m.notice.text)
	assert.ErrorIs(t, m.lastError, common.ErrEmptySelection)
}

func TestModel_BatchPartialFailure(t *testing.T) {
	tests := []struct {
		failIDs      []int64
		name         string
		wantState    State
		wantSelected int
	}{
		{
			name:         "one failure exits batch mode",
			failIDs:      []int64{2},
			wantState:    StateGrid,
			wantSelected: 0,
		},
		{
			name:         "all failed keeps selection",
			failIDs:      []int64{1, 2, 3},
			wantState:    StateBatch,
			wantSelected: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testCloset()
			svc.Fail(tt.failIDs...)
			m := loadedModel(t, svc)

			m = update(t, m, tuitest.KeyPress("b"))
			m = update(t, m, tuitest.KeyPress("a"))
			m, cmd := updateCmd(t, m, tuitest.KeyPress("A"))
			m = runCmd(t, m, cmd)

			assert.Equal(t, 3, svc.CallCount("archive"), "a failure never stops the batch")
			assert.Equal(t, tt.wantState, m.state)
			assert.Equal(t, tt.wantSelected, m.selection.Len())
			require.NotNil(t, m.notice)
			assert.Equal(t, noticeError, m.notice.level)
			assert.Contains(t, m.notice.text, "failed to archive")
		})
	}
}

func TestModel_BatchDeleteAsksFirst(t *testing.T) {
	svc := testCloset()
	m := loadedModel(t, svc)

	m = update(t, m, tuitest.KeyPress("b"))
	m = update(t, m, tuitest.KeyPress("a"))
	m, cmd := updateCmd(t, m, tuitest.KeyPress("x"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Delete 3 garment(s)?")

	m = update(t, m, tuitest.KeyPress("n"))
	assert.Nil(t, m.deleting)
	assert.Zero(t, svc.CallCount("delete"))
	assert.Equal(t, 3, m.selection.Len())

	m = update(t, m, tuitest.KeyPress("x"))
	m, cmd = updateCmd(t, m, tuitest.KeyPress("y"))
	m = runCmd(t, m, cmd)

	assert.Equal(t, 3, svc.CallCount("delete"))
	assert.Zero(t, svc.Len())
	assert.Contains(t, m.notice.text, "deleted 3 garment(s)")
}

func TestModel_ConfirmForm(t *testing.T) {
	req := engine.ConfirmRequest{
		File:     model.PendingFile{Name: "coat.png"},
		Form:     engine.ConfirmForm{Category: "外套", Colors: []string{"黑色"}, Styles: []string{"通勤"}, Seasons: []string{"冬季"}},
		Position: 1,
		Total:    1,
	}

	t.Run("save", func(t *testing.T) {
		results := make(chan promptResult, 1)
		m := loadedModel(t, testCloset())
		m.resultChan = results

		m = update(t, m, confirmRequestMsg{req: req})
		require.Equal(t, StateConfirm, m.state)
		assert.Contains(t, m.View(), "Image 1 of 1: coat.png")

		m = update(t, m, tuitest.KeyCtrlS())

		result := <-results
		require.NoError(t, result.err)
		assert.Equal(t, "外套", result.form.Category)
		assert.Equal(t, StateUploading, m.state)
	})

	t.Run("skip", func(t *testing.T) {
		results := make(chan promptResult, 1)
		m := loadedModel(t, testCloset())
		m.resultChan = results

		m = update(t, m, confirmRequestMsg{req: req})
		update(t, m, tuitest.KeyEsc())

		result := <-results
		assert.ErrorIs(t, result.err, common.ErrConfirmCancelled)
	})

	t.Run("force quit leaves the confirmation unanswered", func(t *testing.T) {
		results := make(chan promptResult, 1)
		m := loadedModel(t, testCloset())
		m.resultChan = results

		m = update(t, m, confirmRequestMsg{req: req})
		m, cmd := updateCmd(t, m, tuitest.KeyCtrlC())

		assert.Empty(t, results)
		assert.True(t, m.quitting)
		assert.Equal(t, tea.QuitMsg{}, cmd())
	})
}

func TestModel_UploadProgressAndCompletion(t *testing.T) {
	m := loadedModel(t, testCloset())

	m = update(t, m, uploadProgressMsg{cursor: 1, total: 3})
	assert.Equal(t, StateUploading, m.state)
	assert.Contains(t, m.View(), "1 of 3 done")

	m = update(t, m, workflowDoneMsg{report: engine.WorkflowReport{Saved: 2, Failed: 1}})
	assert.Equal(t, StateGrid, m.state)
	assert.False(t, m.uploading)
	require.NotNil(t, m.notice)
	assert.Equal(t, "upload finished: 2 saved, 1 failed, 0 skipped", m.notice.text)
}

func TestModel_NoticeExpires(t *testing.T) {
	m := loadedModel(t, testCloset())

	m = update(t, m, noticeMsg{text: "first", level: noticeInfo})
	firstSeq := m.noticeSeq
	m = update(t, m, noticeMsg{text: "second", level: noticeInfo})

	m = update(t, m, noticeExpiredMsg{seq: firstSeq})
	require.NotNil(t, m.notice, "a stale expiry must not clear a newer notice")
	assert.Equal(t, "second", m.notice.text)

	m = update(t, m, noticeExpiredMsg{seq: m.noticeSeq})
	assert.Nil(t, m.notice)
}

func TestModel_HelpToggle(t *testing.T) {
	m := loadedModel(t, testCloset())

	m = update(t, m, tuitest.KeyPress("?"))
	require.Equal(t, StateHelp, m.state)
	assert.Contains(t, m.View(), "Wardrobe - Help")

	m = update(t, m, tuitest.KeyPress("?"))
	assert.Equal(t, StateGrid, m.state)
}

func TestModel_Resize(t *testing.T) {
	m := loadedModel(t, testCloset())

	m = update(t, m, tuitest.WindowSize(140, 40))
	assert.Equal(t, 30, m.statsWidth())
	assert.Contains(t, m.View(), "By category")

	m = update(t, m, tuitest.WindowSize(40, 20))
	assert.Zero(t, m.statsWidth())
	assert.Equal(t, 1, m.grid.Columns())
}

func TestCombineNotices(t *testing.T) {
	combined := combineNotices([]noticeMsg{
		{text: "processed 2 garment(s)", level: noticeSuccess},
		{text: "1 garment(s) failed to favorite", level: noticeError},
	})

	assert.Equal(t, "processed 2 garment(s) · 1 garment(s) failed to favorite", combined.text)
	assert.Equal(t, noticeError, combined.level)
}

func TestNoticeTTL(t *testing.T) {
	assert.Equal(t, 3*time.Second, defaultConfig().NoticeTTL)
}
