package main

import (
	"fmt"
	"io"
	"os"

	"fintrack/internal/backend"
	"fintrack/internal/transfer"

	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one owner's records as JSON or XLSX",
		RunE: func(cmd *cobra.Command, _ []string) error {
			owner, err := ownerFlag(cmd)
			if err != nil {
				return err
			}
			if format != "json" && format != "xlsx" {
				return fmt.Errorf("unsupported format %q: use json or xlsx", format)
			}

			be, err := backend.Open(cfg, logger)
			if err != nil {
				return err
			}
			defer be.Close()

			snap, err := be.Transfer.Export(cmd.Context(), owner)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			if format == "xlsx" {
				return transfer.WriteXLSX(w, snap)
			}
			return transfer.WriteJSON(w, snap)
		},
	}
	cmd.Flags().String("owner", "", "owner id (defaults to DEFAULT_OWNER_ID)")
	cmd.Flags().StringVar(&format, "format", "json", "json or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
