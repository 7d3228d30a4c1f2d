package main

import (
	"context"

	"job-board/internal/app"
	"job-board/internal/database/migration"
	"job-board/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending SQL migrations",
	Long:  "Apply pending SQL migrations to Postgres. With DB_DRIVER=mongo only the collection indexes are ensured.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			if c.DB == nil {
				c.Logger.Printf("[Migrate] mongo indexes ensured, nothing else to apply")
				return nil
			}
			r := migration.Runner{FS: migrations.Files, Logger: c.Logger}
			return r.Run(ctx, c.DB.SQLDB())
		})
	},
}
