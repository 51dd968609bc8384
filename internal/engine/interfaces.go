package engine

import (
	"context"

	"github.com/Veraticus/wardrobe/internal/model"
)

// UploadService is the part of the closet service the upload workflow needs.
type UploadService interface {
	Upload(ctx context.Context, file model.PendingFile, autoClassify bool) (*model.ClassificationResult, error)
	Confirm(ctx context.Context, record model.ConfirmedRecord) (*model.Garment, error)
}

// BatchService is the part of the closet service batch actions need.
type BatchService interface {
	ToggleFavorite(ctx context.Context, id int64) (bool, error)
	ToggleArchive(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Prompter defines the contract for user review of a classification.
// ConfirmGarment returns the form the user accepted, or common.ErrConfirmCancelled
// when the user discards the file. Any other error is treated as a cancel.
type Prompter interface {
	ConfirmGarment(ctx context.Context, req ConfirmRequest) (ConfirmForm, error)
}

// Notifier shows transient messages to the user.
type Notifier interface {
	Info(msg string)
	Success(msg string)
	Error(msg string)
}

// ConfirmRequest is one prompt for the user. Problem is set when the
// previously submitted form failed validation.
type ConfirmRequest struct {
	Problem  *ValidationError
	File     model.PendingFile
	Form     ConfirmForm
	Position int
	Total    int
}

// NopNotifier discards all messages.
type NopNotifier struct{}

// Info implements Notifier.
func (NopNotifier) Info(string) {}

// Success implements Notifier.
func (NopNotifier) Success(string) {}

// Error implements Notifier.
func (NopNotifier) Error(string) {}
