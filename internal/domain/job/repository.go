package job

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("job not found")

// Filter narrows Find. Zero value matches every job, newest first.
type Filter struct {
	OrgID string
	Query string
}

// UpdateFunc receives the stored job and returns its replacement. An error
// aborts the update and is returned unchanged.
type UpdateFunc func(current Job) (Job, error)

type Repository interface {
	Find(ctx context.Context, f Filter) ([]Job, error)
	FindByID(ctx context.Context, id string) (Job, error)
	Create(ctx context.Context, j Job) (Job, error)
	// Update reads the job and writes apply's result atomically.
	Update(ctx context.Context, id string, apply UpdateFunc) (Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}
