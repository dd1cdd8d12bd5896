package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archivedCmd = &cobra.Command{
	Use:   "archived <key>",
	Short: "Re-import a snapshot from the object-storage archive",
	Long:  "Fetches an archived snapshot such as snapshots/wantedly/20251123132822.json and imports it again. Requires MINIO_ENDPOINT.",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchived,
}

func init() {
	rootCmd.AddCommand(archivedCmd)
}

func runArchived(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	n, err := a.importer.ReimportArchived(cmd.Context(), args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "%d records imported\n", n)
	return err
}
