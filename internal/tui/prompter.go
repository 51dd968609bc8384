package tui

import (
	"context"
	"fmt"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

// Prompter implements engine.Prompter and engine.Notifier on top of the
// bubbletea program. The workflow goroutine blocks in ConfirmGarment while the
// program shows the form; the model answers on resultChan.
type Prompter struct {
	program    *tea.Program
	resultChan chan promptResult
	config     Config
}

type promptResult struct {
	err  error
	form engine.ConfirmForm
}

// Ensure we implement the interfaces.
var (
	_ engine.Prompter = (*Prompter)(nil)
	_ engine.Notifier = (*Prompter)(nil)
)

// New creates the terminal browser.
func New(ctx context.Context, opts ...Option) (*Prompter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Service == nil {
		return nil, fmt.Errorf("%w: closet service is required", common.ErrMissingConfig)
	}

	p := &Prompter{
		config:     cfg,
		resultChan: make(chan promptResult, 1),
	}

	m := newModel(cfg)
	m.resultChan = p.resultChan

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.Input != nil {
		programOpts = append(programOpts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(cfg.Output))
	}
	p.program = tea.NewProgram(m, programOpts...)

	return p, nil
}

// Start runs the program until the user quits.
func (p *Prompter) Start() error {
	if _, err := p.program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// Quit asks the program to exit.
func (p *Prompter) Quit() {
	p.program.Quit()
}

// ConfirmGarment implements engine.Prompter.
func (p *Prompter) ConfirmGarment(ctx context.Context, req engine.ConfirmRequest) (engine.ConfirmForm, error) {
	if err := ctx.Err(); err != nil {
		return engine.ConfirmForm{}, err
	}

	p.program.Send(confirmRequestMsg{req: req})

	select {
	case result := <-p.resultChan:
		if result.err != nil {
			return engine.ConfirmForm{}, result.err
		}
		return result.form, nil
	case <-ctx.Done():
		return engine.ConfirmForm{}, ctx.Err()
	}
}

// Info implements engine.Notifier.
func (p *Prompter) Info(msg string) {
	p.program.Send(noticeMsg{text: msg, level: noticeInfo})
}

// Success implements engine.Notifier.
func (p *Prompter) Success(msg string) {
	p.program.Send(noticeMsg{text: msg, level: noticeSuccess})
}

// Error implements engine.Notifier.
func (p *Prompter) Error(msg string) {
	p.program.Send(noticeMsg{text: msg, level: noticeError})
}

// progress reports the workflow cursor to the program.
func (p *Prompter) progress(cursor, total int) {
	p.program.Send(uploadProgressMsg{cursor: cursor, total: total})
}

// finish reports the end of the workflow to the program.
func (p *Prompter) finish(report engine.WorkflowReport, err error) {
	p.program.Send(workflowDoneMsg{report: report, err: err})
}
