package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"profileviews/internal/snapshot"
)

var fileCmd = &cobra.Command{
	Use:   "file <snapshot.json>...",
	Short: "Import one or more snapshot files",
	Long:  "Imports the given snapshot files. Each file name must be its capture time as YYYYMMDDhhmmss.json in SNAPSHOT_TIMEZONE.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFile,
}

var fileConcurrency int

func init() {
	fileCmd.Flags().IntVarP(&fileConcurrency, "concurrency", "c", 0, "Snapshots imported in parallel (default IMPORT_CONCURRENCY)")
	rootCmd.AddCommand(fileCmd)
}

func runFile(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	snaps := make([]*snapshot.Snapshot, 0, len(args))
	for _, p := range args {
		snap, err := snapshot.Load(p, a.loc)
		if err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		snaps = append(snaps, snap)
	}

	results, err := a.importer.ImportSnapshots(cmd.Context(), snaps, concurrencyOr(fileConcurrency, a.cfg.Import.Concurrency))
	report(cmd.OutOrStdout(), results)
	return err
}

func concurrencyOr(flag, def int) int {
	if flag > 0 {
		return flag
	}
	return def
}
