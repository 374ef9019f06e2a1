package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bookroll/bookroll/pkg/errors"
	"github.com/bookroll/bookroll/pkg/sources"
)

var (
	syncDepartment string
	syncPeriod     string
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Copy a historical period's rows into the submission sheet",
	Long: `Sync appends one department's history rows for a chosen period to
the live submission sheet, skipping identities the submission sheet
already owns. Rows arriving without an identity get a fresh one.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncDepartment, "dept", "", "department to sync (required)")
	syncCmd.Flags().StringVar(&syncPeriod, "period", "", "historical school year to copy from (required)")

	_ = syncCmd.MarkFlagRequired("dept")
	_ = syncCmd.MarkFlagRequired("period")
}

func runSync(cmd *cobra.Command, _ []string) error {
	if cfg.SchoolYear == "" {
		return errors.NewValidationError("school_year", "", "set the current school year before syncing")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	written, err := sources.SyncHistory(cmd.Context(),
		newReader(store), newWriter(store),
		syncDepartment, syncPeriod, cfg.SchoolYear)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Synced %d records from %s into %s\n",
		written, syncPeriod, cfg.SheetNames().Submission)
	return nil
}
