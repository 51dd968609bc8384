package engine

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/model"
)

// WorkflowReport summarizes one run of the upload workflow.
// Saved + Failed + Cancelled always equals len(Outcomes).
type WorkflowReport struct {
	Outcomes  []FileOutcome
	Saved     int
	Failed    int
	Cancelled int
}

// Total returns the number of files processed.
func (r WorkflowReport) Total() int {
	return len(r.Outcomes)
}

// FailedFiles lists files that were not saved because of an error.
func (r WorkflowReport) FailedFiles() []FileOutcome {
	var failed []FileOutcome
	for _, o := range r.Outcomes {
		if o.Stage == StageFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

func (r *WorkflowReport) record(o FileOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Stage {
	case StageDone:
		r.Saved++
	case StageCancelled:
		r.Cancelled++
	default:
		r.Failed++
	}
}

// UploadWorkflow walks the selection queue one file at a time.
// Failed and cancelled files are not re-queued; the cursor only moves forward.
type UploadWorkflow struct {
	queue      *SelectionQueue
	processor  *Processor
	onComplete func(WorkflowReport)
	onAdvance  func(cursor, total int)
	cursor     int
	mu         sync.Mutex
}

// NewUploadWorkflow creates a workflow over queue.
func NewUploadWorkflow(queue *SelectionQueue, processor *Processor) *UploadWorkflow {
	return &UploadWorkflow{queue: queue, processor: processor}
}

// OnComplete registers a hook called once the queue has been drained and cleared.
func (w *UploadWorkflow) OnComplete(fn func(WorkflowReport)) {
	w.mu.Lock()
	w.onComplete = fn
	w.mu.Unlock()
}

// OnAdvance registers a hook called each time the cursor moves.
func (w *UploadWorkflow) OnAdvance(fn func(cursor, total int)) {
	w.mu.Lock()
	w.onAdvance = fn
	w.mu.Unlock()
}

// Cursor returns the index of the file in flight.
func (w *UploadWorkflow) Cursor() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cursor
}

// Run processes every queued file in order, then clears the queue and resets the cursor.
// A cancelled context marks the file in flight as failed and stops the walk; files not
// reached are left in the queue.
func (w *UploadWorkflow) Run(ctx context.Context) (WorkflowReport, error) {
	if w.queue.Len() == 0 {
		return WorkflowReport{}, common.ErrNoFiles
	}
	if !w.queue.lock() {
		return WorkflowReport{}, common.ErrWorkflowRunning
	}
	defer w.queue.unlock()

	w.setCursor(0)
	var report WorkflowReport
	for {
		cursor := w.Cursor()
		total := w.queue.Len()
		if cursor >= total {
			break
		}

		file, _ := w.queue.At(cursor)
		outcome := w.processor.Process(ctx, file, cursor+1, total)
		report.record(outcome)
		w.setCursor(cursor + 1)

		if err := ctx.Err(); err != nil {
			slog.Info("Upload workflow interrupted", "processed", report.Total(), "remaining", total-cursor-1)
			return report, err
		}
	}

	w.queue.unlock()
	w.queue.Clear()
	w.setCursor(0)

	slog.Debug("Upload workflow finished", "saved", report.Saved, "failed", report.Failed, "cancelled", report.Cancelled)
	w.mu.Lock()
	hook := w.onComplete
	w.mu.Unlock()
	if hook != nil {
		hook(report)
	}
	return report, nil
}

func (w *UploadWorkflow) setCursor(cursor int) {
	w.mu.Lock()
	w.cursor = cursor
	hook := w.onAdvance
	total := w.queue.Len()
	w.mu.Unlock()
	if hook != nil {
		hook(cursor, total)
	}
}

// Snapshot returns the queue contents with the cursor position.
func (w *UploadWorkflow) Snapshot() ([]model.PendingFile, int) {
	return w.queue.Files(), w.Cursor()
}
