package main

import (
	"context"
	"fmt"

	"job-board/internal/app"
	"job-board/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedOrgID string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo job listings for an organization",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if seedOrgID == "" {
			return fmt.Errorf("--org is required")
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			r := seeder.Runner{Seeders: seeder.Defaults(seedOrgID)}
			if err := r.Run(ctx, c.Jobs); err != nil {
				return err
			}
			c.Logger.Printf("[Seed] done org_id=%s", seedOrgID)
			return nil
		})
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOrgID, "org", "", "organization id that owns the demo jobs")
}
