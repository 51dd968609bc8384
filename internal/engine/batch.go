package engine

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Veraticus/wardrobe/internal/common"
)

// Selection is a set of garment IDs marked in batch mode.
type Selection struct {
	ids map[int64]struct{}
	mu  sync.RWMutex
}

// NewSelection creates a selection holding ids.
func NewSelection(ids ...int64) *Selection {
	s := &Selection{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle flips membership of id and reports whether it is now selected.
func (s *Selection) Toggle(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Add selects id.
func (s *Selection) Add(id int64) {
	s.mu.Lock()
	s.ids[id] = struct{}{}
	s.mu.Unlock()
}

// Remove deselects id.
func (s *Selection) Remove(id int64) {
	s.mu.Lock()
	delete(s.ids, id)
	s.mu.Unlock()
}

// Has reports whether id is selected.
func (s *Selection) Has(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok
}

// SelectAll adds every id.
func (s *Selection) SelectAll(ids []int64) {
	s.mu.Lock()
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.mu.Unlock()
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.mu.Lock()
	clear(s.ids)
	s.mu.Unlock()
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	s.mu.RLock()
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// BatchAction is a bulk operation over selected garments.
type BatchAction int

// Supported batch actions.
const (
	BatchFavorite BatchAction = iota
	BatchDelete
	BatchArchive
)

func (a BatchAction) String() string {
	switch a {
	case BatchFavorite:
		return "favorite"
	case BatchDelete:
		return "delete"
	case BatchArchive:
		return "archive"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseBatchAction maps a command-line name onto an action.
func ParseBatchAction(name string) (BatchAction, error) {
	switch name {
	case "favorite", "fav":
		return BatchFavorite, nil
	case "delete", "rm":
		return BatchDelete, nil
	case "archive":
		return BatchArchive, nil
	default:
		return 0, fmt.Errorf("%w: unknown batch action %q (use favorite, delete or archive)", common.ErrInvalidConfig, name)
	}
}

// BatchResult tallies a batch run. Success + Failed equals the selection size.
type BatchResult struct {
	Errors  map[int64]error
	Action  BatchAction
	Success int
	Failed  int
}

// Total returns the number of garments the batch covered.
func (r BatchResult) Total() int {
	return r.Success + r.Failed
}

// ShouldExitBatchMode reports whether batch mode ends after this run.
func (r BatchResult) ShouldExitBatchMode() bool {
	return r.Success > 0
}

// BatchRunner applies an action to each selected garment, one request at a time.
type BatchRunner struct {
	service  BatchService
	notifier Notifier
}

// NewBatchRunner creates a runner. A nil notifier discards notices.
func NewBatchRunner(svc BatchService, notifier Notifier) *BatchRunner {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &BatchRunner{service: svc, notifier: notifier}
}

// Run applies action to every id in sel. A failure never stops the run;
// a cancelled context does, and the ids not reached count as failed.
func (r *BatchRunner) Run(ctx context.Context, action BatchAction, sel *Selection) (BatchResult, error) {
	result := BatchResult{Action: action, Errors: make(map[int64]error)}
	if sel == nil || sel.Len() == 0 {
		r.notifier.Error("select garments first")
		return result, common.ErrEmptySelection
	}

	ids := sel.IDs()
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			for _, rest := range ids[i:] {
				result.Errors[rest] = err
			}
			result.Failed += len(ids) - i
			break
		}

		if err := r.apply(ctx, action, id); err != nil {
			slog.Debug("Batch item failed", "action", action.String(), "id", id, "error", err)
			result.Errors[id] = err
			result.Failed++
			continue
		}
		result.Success++
	}

	r.report(result)
	return result, nil
}

func (r *BatchRunner) apply(ctx context.Context, action BatchAction, id int64) error {
	switch action {
	case BatchFavorite:
		_, err := r.service.ToggleFavorite(ctx, id)
		return err
	case BatchArchive:
		_, err := r.service.ToggleArchive(ctx, id)
		return err
	case BatchDelete:
		return r.service.Delete(ctx, id)
	default:
		return fmt.Errorf("unsupported batch action %s", action)
	}
}

func (r *BatchRunner) report(result BatchResult) {
	if result.Success > 0 {
		verb := "processed"
		if result.Action == BatchDelete {
			verb = "deleted"
		}
		r.notifier.Success(fmt.Sprintf("%s %d garment(s)", verb, result.Success))
	}
	if result.Failed > 0 {
		r.notifier.Error(fmt.Sprintf("%d garment(s) failed to %s", result.Failed, result.Action))
	}
}
