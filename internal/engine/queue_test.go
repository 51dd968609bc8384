package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionQueue_AddKeepsOrderAndRejectsNonImages(t *testing.T) {
	notifier := &recordingNotifier{}
	q := NewSelectionQueue(notifier)

	var snapshots [][]model.PendingFile
	q.OnChange(func(files []model.PendingFile) { snapshots = append(snapshots, files) })

	added, rejected := q.Add(
		model.PendingFile{Name: "b.png", Data: pngBytes},
		model.PendingFile{Name: "notes.txt", Data: textBytes},
		model.PendingFile{Name: "a.jpg", Data: jpegBytes},
	)

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"notes.txt"}, rejected)
	require.Len(t, notifier.errors, 1)
	assert.Contains(t, notifier.errors[0], "notes.txt")

	files := q.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "b.png", files[0].Name)
	assert.Equal(t, "image/png", files[0].ContentType)
	assert.Equal(t, "a.jpg", files[1].Name)
	assert.Equal(t, "image/jpeg", files[1].ContentType)
	assert.Equal(t, 1, files[1].Index)
	require.Len(t, snapshots, 1)
}

func TestSelectionQueue_AllRejected(t *testing.T) {
	notifier := &recordingNotifier{}
	q := NewSelectionQueue(notifier)

	added, rejected := q.Add(model.PendingFile{Name: "notes.txt", Data: textBytes})
	assert.Zero(t, added)
	assert.Len(t, rejected, 1)
	assert.Equal(t, []string{common.ErrNoValidImages.Error()}, notifier.errors)
	assert.Zero(t, q.Len())
}

func TestSelectionQueue_RemoveAt(t *testing.T) {
	q := NewSelectionQueue(nil)
	q.Add(pngFile("1.png"), pngFile("2.png"), pngFile("3.png"))

	require.NoError(t, q.RemoveAt(1))
	files := q.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "3.png", files[1].Name)
	assert.Equal(t, 1, files[1].Index)

	require.ErrorIs(t, q.RemoveAt(5), common.ErrIndexOutOfRange)
	require.ErrorIs(t, q.RemoveAt(-1), common.ErrIndexOutOfRange)

	require.True(t, q.lock())
	require.ErrorIs(t, q.RemoveAt(0), common.ErrQueueLocked)
	q.unlock()
	require.NoError(t, q.RemoveAt(0))

	q.Clear()
	assert.Zero(t, q.Len())
}

func TestSelectionQueue_AddPaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), pngBytes, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), jpegBytes, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), textBytes, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o700))

	q := NewSelectionQueue(nil)
	added, rejected, err := q.AddPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"readme.txt"}, rejected)

	files := q.Files()
	assert.Equal(t, "a.jpg", files[0].Name)
	assert.Equal(t, filepath.Join(dir, "a.jpg"), files[0].Path)

	_, _, err = q.AddPaths(filepath.Join(dir, "missing.png"))
	require.Error(t, err)

	empty := t.TempDir()
	_, _, err = q.AddPaths(empty)
	require.ErrorIs(t, err, common.ErrNoFiles)
}
