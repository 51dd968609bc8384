package tui

import (
	"github.com/Veraticus/wardrobe/internal/engine"
	"github.com/Veraticus/wardrobe/internal/model"
)

// Request messages from the upload workflow.
type confirmRequestMsg struct {
	req engine.ConfirmRequest
}

type uploadProgressMsg struct {
	cursor int
	total  int
}

type workflowDoneMsg struct {
	err    error
	report engine.WorkflowReport
}

// Data loading messages.
type garmentsLoadedMsg struct {
	err   error
	items []model.Garment
}

type statsLoadedMsg struct {
	err   error
	stats *model.Statistics
}

// Action results.
type garmentUpdatedMsg struct {
	err     error
	garment *model.Garment
	notice  string
}

type batchDoneMsg struct {
	err     error
	notices []noticeMsg
	result  engine.BatchResult
}

// Notices.
type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

type noticeMsg struct {
	text  string
	level noticeLevel
}

type noticeExpiredMsg struct {
	seq int
}
