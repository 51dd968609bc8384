package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/model"
)

// Stage is a step of one file's trip through the upload workflow.
type Stage int

// Stages in order. Done, Failed and Cancelled are terminal.
const (
	StageIdle Stage = iota
	StageClassifying
	StageAwaitingConfirmation
	StageSaving
	StageDone
	StageFailed
	StageCancelled
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageClassifying:
		return "classifying"
	case StageAwaitingConfirmation:
		return "awaiting confirmation"
	case StageSaving:
		return "saving"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	case StageCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Terminal reports whether s ends a file's processing.
func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed || s == StageCancelled
}

// FileOutcome is the result of processing one file.
// FailedAt names the stage that failed when Stage is StageFailed.
type FileOutcome struct {
	Err      error
	Garment  *model.Garment
	File     model.PendingFile
	Stage    Stage
	FailedAt Stage
}

// Processor runs one file through classify, confirm and save.
type Processor struct {
	service      UploadService
	prompter     Prompter
	notifier     Notifier
	onStage      func(model.PendingFile, Stage)
	autoClassify bool
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithAutoClassify controls whether the service classifies uploads.
func WithAutoClassify(enabled bool) ProcessorOption {
	return func(p *Processor) { p.autoClassify = enabled }
}

// WithStageHook registers fn to observe every stage transition.
func WithStageHook(fn func(model.PendingFile, Stage)) ProcessorOption {
	return func(p *Processor) { p.onStage = fn }
}

// NewProcessor creates a processor. Uploads are auto-classified unless disabled.
func NewProcessor(svc UploadService, prompter Prompter, notifier Notifier, opts ...ProcessorOption) *Processor {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	p := &Processor{
		service:      svc,
		prompter:     prompter,
		notifier:     notifier,
		autoClassify: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process drives file to a terminal stage. It never returns an error;
// failures are reported through the notifier and recorded in the outcome.
func (p *Processor) Process(ctx context.Context, file model.PendingFile, position, total int) FileOutcome {
	outcome := FileOutcome{File: file}
	fields := common.Fields{"file": file.Name, "position": position, "total": total}

	p.enter(file, StageClassifying)
	p.notifier.Info(fmt.Sprintf("processing image %d of %d: %s", position, total, file.Name))

	result, err := p.service.Upload(ctx, file, p.autoClassify)
	if err == nil && result == nil {
		err = common.ErrMissingClassified
	}
	if err != nil {
		fields["error"] = err.Error()
		common.LogDebug("Classification failed", fields)
		p.notifier.Error(fmt.Sprintf("image %d failed: %s", position, err.Error()))
		return p.fail(outcome, StageClassifying, err)
	}

	form := NewConfirmForm(result)
	if form.Filename == "" {
		form.Filename = file.Name
	}

	p.enter(file, StageAwaitingConfirmation)
	var problem *ValidationError
	for {
		edited, err := p.prompter.ConfirmGarment(ctx, ConfirmRequest{
			File:     file,
			Form:     form,
			Position: position,
			Total:    total,
			Problem:  problem,
		})
		if err != nil {
			if !errors.Is(err, common.ErrConfirmCancelled) {
				slog.Debug("Confirmation aborted", "file", file.Name, "error", err)
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return p.fail(outcome, StageAwaitingConfirmation, ctxErr)
			}
			outcome.Stage = StageCancelled
			outcome.Err = common.ErrConfirmCancelled
			p.enter(file, StageCancelled)
			p.notifier.Info(fmt.Sprintf("skipped %s", file.Name))
			return outcome
		}

		form = edited
		verr := form.Validate()
		if verr == nil {
			break
		}
		if !errors.As(verr, &problem) {
			problem = &ValidationError{Message: verr.Error()}
		}
		p.notifier.Error(problem.Message)
	}

	p.enter(file, StageSaving)
	p.notifier.Info("saving...")
	garment, err := p.service.Confirm(ctx, form.Record())
	if err != nil {
		fields["error"] = err.Error()
		common.LogDebug("Save failed", fields)
		p.notifier.Error(fmt.Sprintf("save failed: %s", err.Error()))
		return p.fail(outcome, StageSaving, err)
	}

	outcome.Stage = StageDone
	outcome.Garment = garment
	p.enter(file, StageDone)
	p.notifier.Success(fmt.Sprintf("saved %s", file.Name))
	if garment != nil {
		fields["garment_id"] = garment.ID
	}
	common.LogDebug("Garment saved", fields)
	return outcome
}

func (p *Processor) fail(outcome FileOutcome, at Stage, err error) FileOutcome {
	outcome.Stage = StageFailed
	outcome.FailedAt = at
	outcome.Err = err
	p.enter(outcome.File, StageFailed)
	return outcome
}

func (p *Processor) enter(file model.PendingFile, stage Stage) {
	slog.Debug("Upload stage", "file", file.Name, "stage", stage.String())
	if p.onStage != nil {
		p.onStage(file, stage)
	}
}
