package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/bookroll/bookroll/pkg/reconciler"
)

var mergeQuery reconciler.Query

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Reconcile a department's textbook records into one view",
	Long: `Merge filters live submissions by department (and grade/semester
when given), optionally fills gaps from a historical period, and
optionally pads the view with curriculum placeholders for courses
nobody has reported yet.`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().StringVar(&mergeQuery.Department, "dept", "", "department to reconcile (required)")
	mergeCmd.Flags().StringVar(&mergeQuery.Grade, "grade", "", "grade filter")
	mergeCmd.Flags().StringVar(&mergeQuery.Semester, "semester", "", "semester filter")
	mergeCmd.Flags().BoolVar(&mergeQuery.UseHistory, "history", false, "fill gaps from a historical period")
	mergeCmd.Flags().StringVar(&mergeQuery.Period, "period", "", "historical school year (required with --history)")
	mergeCmd.Flags().BoolVar(&mergeQuery.PadFromCurriculum, "pad", false, "synthesize placeholders for unreported curriculum courses")

	_ = mergeCmd.MarkFlagRequired("dept")
}

func runMerge(cmd *cobra.Command, _ []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	engine, err := reconciler.New(newReader(store))
	if err != nil {
		return err
	}

	result, err := engine.Merge(cmd.Context(), mergeQuery)
	if err != nil {
		return err
	}
	return renderResult(os.Stdout, result)
}
