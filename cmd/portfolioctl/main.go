package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/osa911/portfolio-api/internal/config"
	"github.com/osa911/portfolio-api/internal/logging"
	"github.com/osa911/portfolio-api/internal/version"
)

var (
	logger *logging.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "portfolioctl - admin tool for the portfolio contact API",
	Long: `portfolioctl manages the portfolio contact API's record store and
Google Sheets integration. It reads the same environment as the server.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var err error
		cfg, err = config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		// CLI output goes to the terminal only
		logger = logging.NewWriterLogger(os.Stderr, cfg.LogLevel)
		logging.SetGlobalLogger(logger)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Works without a valid environment
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetBuildInfo()
		fmt.Printf("portfolioctl %s\n", version.Info())
		fmt.Printf("  commit:   %s\n", info.GitCommit)
		fmt.Printf("  go:       %s\n", info.GoVersion)
		fmt.Printf("  platform: %s\n", info.Platform)
	},
}

// withSpinner runs fn while showing msg, then stops the spinner.
func withSpinner(msg string, fn func(ctx context.Context) error) error {
	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	s.Suffix = " " + msg
	s.Writer = os.Stderr
	s.Start()
	defer s.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	return fn(ctx)
}

func fail(format string, v ...interface{}) {
	logger.Error(format, v...)
	os.Exit(1)
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(sheetsCmd)
	rootCmd.AddCommand(contactsCmd)
	rootCmd.AddCommand(inquiriesCmd)
	rootCmd.AddCommand(userCmd)

	initSheetsCommands()
	initRecordCommands()
	initUserCommands()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
