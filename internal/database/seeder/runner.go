package seeder

import (
	"context"
	"fmt"

	jobentity "job-board/internal/domain/job"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, jobs jobentity.Repository) error {
	if jobs == nil {
		return fmt.Errorf("nil job repository")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, jobs); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return nil
}
