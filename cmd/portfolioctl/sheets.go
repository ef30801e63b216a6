package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osa911/portfolio-api/internal/sheets"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Google Sheets integration helpers",
}

var sheetsScriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print the Apps Script for web-hook mode",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(sheets.AppsScriptCode())
		for _, step := range sheets.SetupInstructions() {
			fmt.Println("// " + step)
		}
	},
}

var sheetsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the header row when the sheet is empty",
	Long: `Write the header row to the configured spreadsheet when its first row is empty.
Needs GOOGLE_SHEETS_SPREADSHEET_ID with an API key or service-account credentials.`,
	Run: func(cmd *cobra.Command, args []string) {
		var written bool
		err := withSpinner("Checking sheet header...", func(ctx context.Context) error {
			client, err := sheets.New(ctx, cfg.Sheets)
			if err != nil {
				return err
			}
			written, err = client.EnsureHeader(ctx)
			return err
		})
		if err != nil {
			fail("Sheet initialization failed: %v", err)
		}

		if written {
			logger.Info("✅ Header row written")
		} else {
			logger.Info("Header row already present")
		}
	},
}

func initSheetsCommands() {
	sheetsCmd.AddCommand(sheetsScriptCmd)
	sheetsCmd.AddCommand(sheetsInitCmd)
}
