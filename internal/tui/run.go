package tui

import (
	"context"
	"errors"
	"sync"

	"github.com/Veraticus/wardrobe/internal/common"
	"github.com/Veraticus/wardrobe/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

// Browse runs the terminal browser. When queue holds files, the upload
// workflow runs alongside the program and each confirmation appears as a form.
func Browse(ctx context.Context, queue *engine.SelectionQueue, opts ...Option) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p, err := New(ctx, opts...)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	if queue != nil && queue.Len() > 0 {
		processor := engine.NewProcessor(p.config.Service, p, p, engine.WithAutoClassify(p.config.AutoClassify))
		workflow := engine.NewUploadWorkflow(queue, processor)
		workflow.OnAdvance(p.progress)

		wg.Add(1)
		go func() {
			defer wg.Done()
			report, runErr := workflow.Run(ctx)
			if runErr != nil {
				common.LogDebug("Upload workflow stopped", common.Fields{"error": runErr})
			}
			p.finish(report, runErr)
		}()
	}

	runErr := p.Start()
	cancel()
	wg.Wait()

	if errors.Is(runErr, tea.ErrProgramKilled) {
		return ctx.Err()
	}
	return runErr
}
