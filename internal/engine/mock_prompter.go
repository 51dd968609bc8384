package engine

import (
	"context"
	"sync"

	"github.com/Veraticus/wardrobe/internal/common"
)

// MockPrompter is a test implementation of the Prompter interface.
// By default it accepts every form unchanged.
type MockPrompter struct {
	edits       map[string][]func(ConfirmForm) ConfirmForm
	cancelFiles map[string]bool
	calls       []ConfirmRequest
	mu          sync.Mutex
}

// NewMockPrompter creates a prompter that accepts every proposal.
func NewMockPrompter() *MockPrompter {
	return &MockPrompter{
		edits:       make(map[string][]func(ConfirmForm) ConfirmForm),
		cancelFiles: make(map[string]bool),
	}
}

// CancelFile makes the prompter cancel confirmation of the named file.
func (m *MockPrompter) CancelFile(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelFiles[name] = true
}

// QueueEdits registers edits applied to successive prompts for the named file.
// Once the edits run out the form is accepted unchanged.
func (m *MockPrompter) QueueEdits(name string, edits ...func(ConfirmForm) ConfirmForm) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edits[name] = append(m.edits[name], edits...)
}

// ConfirmGarment implements Prompter.
func (m *MockPrompter) ConfirmGarment(ctx context.Context, req ConfirmRequest) (ConfirmForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	if err := ctx.Err(); err != nil {
		return ConfirmForm{}, err
	}
	if m.cancelFiles[req.File.Name] {
		return ConfirmForm{}, common.ErrConfirmCancelled
	}

	form := req.Form
	if pending := m.edits[req.File.Name]; len(pending) > 0 {
		form = pending[0](form)
		m.edits[req.File.Name] = pending[1:]
	}
	return form, nil
}

// Calls returns every prompt received so far.
func (m *MockPrompter) Calls() []ConfirmRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]ConfirmRequest, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of prompts received.
func (m *MockPrompter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears recorded prompts and scripted behavior.
func (m *MockPrompter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.edits = make(map[string][]func(ConfirmForm) ConfirmForm)
	m.cancelFiles = make(map[string]bool)
}
