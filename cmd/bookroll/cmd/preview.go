package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bookroll/bookroll/pkg/reconciler"
)

var (
	previewDepartment string
	previewUseHistory bool
	previewPeriod     string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show a whole department's reported records",
	Long: `Preview reconciles every grade and semester of one department
without synthesizing curriculum placeholders, so the output reflects
only rows that truly exist in a source.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringVar(&previewDepartment, "dept", "", "department to preview (required)")
	previewCmd.Flags().BoolVar(&previewUseHistory, "history", false, "fill gaps from a historical period")
	previewCmd.Flags().StringVar(&previewPeriod, "period", "", "historical school year (required with --history)")

	_ = previewCmd.MarkFlagRequired("dept")
}

func runPreview(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine, err := reconciler.New(newReader(store))
	if err != nil {
		return err
	}

	result, err := engine.Preview(cmd.Context(), previewDepartment, previewUseHistory, previewPeriod)
	if err != nil {
		return err
	}
	return renderResult(os.Stdout, result)
}
