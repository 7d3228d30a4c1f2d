package main

import (
	"context"
	"fmt"

	"job-board/internal/app"
	"job-board/internal/domain/identity"
	"job-board/internal/usecase"

	"github.com/spf13/cobra"
)

var (
	companyName   string
	companyUserID string
)

var companyCmd = &cobra.Command{
	Use:   "company",
	Short: "Manage companies in the identity provider",
}

var companyCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a company and make a user its admin",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if companyName == "" || companyUserID == "" {
			return fmt.Errorf("--name and --user are required")
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			uc := usecase.NewCompanyUsecase(c.Identity, c.Identity, c.Logger)
			org, err := uc.CreateCompany(ctx, viewerFor(companyUserID), companyName)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", org.ID, org.Name)
			return nil
		})
	},
}

var companyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active companies of a user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if companyUserID == "" {
			return fmt.Errorf("--user is required")
		}
		return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
			uc := usecase.NewCompanyUsecase(c.Identity, c.Identity, c.Logger)
			orgs, err := uc.ListCompanies(ctx, viewerFor(companyUserID))
			if err != nil {
				return err
			}
			for _, o := range orgs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", o.ID, o.Name)
			}
			return nil
		})
	},
}

func init() {
	companyCreateCmd.Flags().StringVar(&companyName, "name", "", "company name")
	companyCreateCmd.Flags().StringVar(&companyUserID, "user", "", "identity provider user id")
	companyListCmd.Flags().StringVar(&companyUserID, "user", "", "identity provider user id")

	companyCmd.AddCommand(companyCreateCmd)
	companyCmd.AddCommand(companyListCmd)
}

func viewerFor(userID string) *identity.Viewer {
	return &identity.Viewer{User: identity.User{ID: userID}}
}
