// Package seeder fills a job store with demo listings for local development.
package seeder

import (
	"context"

	jobentity "job-board/internal/domain/job"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, jobs jobentity.Repository) error
}
