package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "List the historical school years available for merging",
	Long: `Periods lists the distinct school years present in the history
sheet, newest first, excluding the configured current year. Pass one
of them to merge --period or sync --period.`,
	RunE: runPeriods,
}

func init() {
	rootCmd.AddCommand(periodsCmd)
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	periods, err := newReader(store).HistoryPeriods(cmd.Context(), cfg.SchoolYear)
	if err != nil {
		return err
	}
	return renderList(os.Stdout, "學年度", periods)
}
