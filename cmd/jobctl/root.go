package main

import (
	"context"
	"time"

	"job-board/internal/app"
	"job-board/internal/config"

	"github.com/spf13/cobra"
)

var timeout time.Duration

var rootCmd = &cobra.Command{
	Use:           "jobctl",
	Short:         "Job board administration",
	Long:          "jobctl runs migrations, seeds demo listings and manages companies for the job board.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall deadline for the command")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(companyCmd)
}

// withContainer loads config, builds the container and closes it after fn.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *app.Container) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	return fn(ctx, c)
}
