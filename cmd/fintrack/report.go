package main

import (
	"fmt"

	"fintrack/internal/backend"
	"fintrack/internal/report"

	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard for one owner",
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := ownerFlag(cmd)
			if err != nil {
				return err
			}

			be, err := backend.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer be.Close()

			ctx := cmd.Context()
			dash, err := be.Dashboard.Build(ctx, owner)
			if err != nil {
				return err
			}
			goals, err := be.GoalSvc.List(ctx)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), report.Render(owner, dash, goals))
			return nil
		},
	}
	cmd.Flags().String("owner", "", "owner id (defaults to DEFAULT_OWNER_ID)")
	return cmd
}
