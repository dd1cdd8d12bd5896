// Command importer loads Wantedly profile-view snapshot files into PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "importer",
	Short:        "Import Wantedly profile-view snapshots",
	Long:         "Imports Wantedly \"who viewed my profile\" snapshot exports into PostgreSQL. Re-importing a snapshot is idempotent.",
	SilenceUsage: true,
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
