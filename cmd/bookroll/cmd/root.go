package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bookroll/bookroll/internal/config"
	"github.com/bookroll/bookroll/pkg/sheets"
	"github.com/bookroll/bookroll/pkg/sources"
)

var (
	configFile string
	cfg        *config.Config

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bookroll",
	Short: "Textbook reporting reconciliation CLI",
	Long: `Bookroll merges a department's live textbook submissions with a
prior year's history and the curriculum template into one consistent
view, keeping a stable identity per course row across merges.

The backing store is a spreadsheet workbook used as a database; point
--workbook at it or set BOOKROLL_WORKBOOK.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date string) {
	Version = version
	Commit = commit
	Date = date
	rootCmd.Version = version

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.bookroll.yaml)")
	rootCmd.PersistentFlags().String("workbook", "", "path to the backing workbook")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")

	for _, flag := range []string{"config", "workbook", "verbose", "quiet"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("Failed to bind %s flag: %v", flag, err))
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}
	cfg = loaded

	configureLogging()
}

// configureLogging sets the global log level from flags and environment.
func configureLogging() {
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	if cfg.Quiet {
		level = zerolog.WarnLevel
	}
	if envLevel := os.Getenv("LOG_LEVEL"); envLevel != "" {
		if parsed, err := zerolog.ParseLevel(envLevel); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
}

// openStore opens the configured workbook.
func openStore() (*sheets.XLSXStore, error) {
	return sheets.OpenWorkbook(cfg.WorkbookPath)
}

// newReader builds a source reader over a store with the configured
// sheet names and curriculum cache lifetime.
func newReader(store sheets.Store) *sources.Reader {
	return sources.NewReader(store,
		sources.WithSheetNames(cfg.SheetNames()),
		sources.WithCurriculumTTL(cfg.CurriculumTTL),
	)
}

// newWriter builds a submission writer over a store.
func newWriter(store sheets.Store) *sources.Writer {
	return sources.NewWriter(store,
		sources.WithWriterSheetNames(cfg.SheetNames()),
	)
}
