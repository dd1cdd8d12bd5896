package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"profileviews/internal/snapshot"
)

var dirCmd = &cobra.Command{
	Use:   "dir [directory]",
	Short: "Import every snapshot in a directory",
	Long:  "Imports every YYYYMMDDhhmmss.json snapshot in the directory (default SNAPSHOT_DIR), oldest first. Other files are skipped.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDir,
}

var dirConcurrency int

func init() {
	dirCmd.Flags().IntVarP(&dirConcurrency, "concurrency", "c", 0, "Snapshots imported in parallel (default IMPORT_CONCURRENCY)")
	rootCmd.AddCommand(dirCmd)
}

func runDir(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	dir := a.cfg.Snapshot.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	paths, err := snapshot.List(dir, a.loc)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no snapshots in %s\n", dir)
		return nil
	}

	snaps := make([]*snapshot.Snapshot, 0, len(paths))
	for _, p := range paths {
		snap, err := snapshot.Load(p, a.loc)
		if err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		snaps = append(snaps, snap)
	}

	a.log.Info("snapshot_dir_import_started", "dir", dir, "snapshots", len(snaps))
	results, err := a.importer.ImportSnapshots(cmd.Context(), snaps, concurrencyOr(dirConcurrency, a.cfg.Import.Concurrency))
	report(cmd.OutOrStdout(), results)
	return err
}
