package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/model"
	"github.com/gabriel-vasile/mimetype"
)

// SelectionQueue holds the images picked for upload, in arrival order.
// It is safe for concurrent use; the TUI renders it while the workflow consumes it.
type SelectionQueue struct {
	notifier Notifier
	onChange func([]model.PendingFile)
	files    []model.PendingFile
	mu       sync.Mutex
	locked   bool
}

// NewSelectionQueue creates an empty queue. A nil notifier discards notices.
func NewSelectionQueue(notifier Notifier) *SelectionQueue {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &SelectionQueue{notifier: notifier}
}

// OnChange registers a hook called with a snapshot after every mutation.
func (q *SelectionQueue) OnChange(fn func([]model.PendingFile)) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

// Add appends the image candidates and drops the rest with a notice.
// It returns how many were added and the names of rejected candidates.
func (q *SelectionQueue) Add(files ...model.PendingFile) (int, []string) {
	if len(files) == 0 {
		return 0, nil
	}

	var (
		accepted []model.PendingFile
		rejected []string
	)
	for _, f := range files {
		mime := mimetype.Detect(f.Data)
		if !strings.HasPrefix(mime.String(), "image/") {
			rejected = append(rejected, f.Name)
			continue
		}
		f.ContentType = mime.String()
		accepted = append(accepted, f)
	}

	switch {
	case len(accepted) == 0:
		q.notifier.Error(common.ErrNoValidImages.Error())
		return 0, rejected
	case len(rejected) > 0:
		q.notifier.Error(fmt.Sprintf("skipped %d non-image file(s): %s", len(rejected), strings.Join(rejected, ", ")))
	}

	q.mu.Lock()
	q.files = append(q.files, accepted...)
	q.reindex()
	snapshot, hook := q.snapshotLocked()
	q.mu.Unlock()

	if hook != nil {
		hook(snapshot)
	}
	return len(accepted), rejected
}

// AddPaths reads files from disk and adds them. Directories contribute their
// regular files in name order; nested directories are not descended into.
func (q *SelectionQueue) AddPaths(paths ...string) (int, []string, error) {
	var files []model.PendingFile
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to stat %s: %w", p, err)
		}

		candidates := []string{p}
		if info.IsDir() {
			entries, err := os.ReadDir(p)
			if err != nil {
				return 0, nil, fmt.Errorf("failed to read directory %s: %w", p, err)
			}
			candidates = candidates[:0]
			for _, e := range entries {
				if e.Type().IsRegular() {
					candidates = append(candidates, filepath.Join(p, e.Name()))
				}
			}
			sort.Strings(candidates)
		}

		for _, c := range candidates {
			data, err := os.ReadFile(c) //nolint:gosec // paths come from the user's own command line
			if err != nil {
				return 0, nil, fmt.Errorf("failed to read %s: %w", c, err)
			}
			files = append(files, model.PendingFile{Name: filepath.Base(c), Path: c, Data: data})
		}
	}

	if len(files) == 0 {
		return 0, nil, common.ErrNoFiles
	}
	added, rejected := q.Add(files...)
	return added, rejected, nil
}

// RemoveAt deletes the entry at index. It fails while the workflow holds the queue.
func (q *SelectionQueue) RemoveAt(index int) error {
	q.mu.Lock()
	if q.locked {
		q.mu.Unlock()
		return common.ErrQueueLocked
	}
	if index < 0 || index >= len(q.files) {
		q.mu.Unlock()
		return fmt.Errorf("%w: %d (queue has %d)", common.ErrIndexOutOfRange, index, len(q.files))
	}
	q.files = slices.Delete(q.files, index, index+1)
	q.reindex()
	snapshot, hook := q.snapshotLocked()
	q.mu.Unlock()

	if hook != nil {
		hook(snapshot)
	}
	return nil
}

// Clear empties the queue.
func (q *SelectionQueue) Clear() {
	q.mu.Lock()
	q.files = nil
	snapshot, hook := q.snapshotLocked()
	q.mu.Unlock()

	if hook != nil {
		hook(snapshot)
	}
}

// Len returns the number of queued files.
func (q *SelectionQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.files)
}

// At returns the file at index.
func (q *SelectionQueue) At(index int) (model.PendingFile, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if index < 0 || index >= len(q.files) {
		return model.PendingFile{}, false
	}
	return q.files[index], true
}

// Files returns a snapshot of the queue.
func (q *SelectionQueue) Files() []model.PendingFile {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.files)
}

// Locked reports whether the workflow currently holds the queue.
func (q *SelectionQueue) Locked() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.locked
}

func (q *SelectionQueue) lock() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.locked {
		return false
	}
	q.locked = true
	return true
}

func (q *SelectionQueue) unlock() {
	q.mu.Lock()
	q.locked = false
	q.mu.Unlock()
}

func (q *SelectionQueue) reindex() {
	for i := range q.files {
		q.files[i].Index = i
	}
}

func (q *SelectionQueue) snapshotLocked() ([]model.PendingFile, func([]model.PendingFile)) {
	return slices.Clone(q.files), q.onChange
}
