package gallery

import (
	"PlanPhotos/internal/model"
	"context"
	"io"
)

// Gateway persists photo collections remotely. Every mutation is expected
// to refresh the affected collections once it completes, whatever the outcome.
type Gateway interface {
	FetchPhotos(ctx context.Context, kind model.Kind) ([]model.PhotoRecord, error)
	AddPhoto(ctx context.Context, reference string, kind model.Kind) error
	DeletePhoto(ctx context.Context, reference string, sortIndex int, kind model.Kind) error
	UpdateSortOrder(ctx context.Context, order []model.SortEntry, kind model.Kind) error
}

// Uploader stores a file and reports the names it was stored under.
type Uploader interface {
	Upload(ctx context.Context, meta model.UploadMeta, fileName string, body io.Reader) ([]model.UploadResult, error)
}

// Notifier shows transient success/error messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
