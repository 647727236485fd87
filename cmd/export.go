package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/spf13/cobra"
)

// exportCmd writes the store with total scores to a file.
var exportCmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Export every entry with its total score.",
	Long: `Write the entry store to a spreadsheet, report or data file.

Columns are the entity name, one column per criterion in registry order,
and the total score. Exporting an empty store is an error.

Supported formats: xlsx (default), csv, pdf, json, parquet

Examples:
  # Excel workbook with the default name
  scorecard export team.csv

  # Printable report
  scorecard export team.csv --format pdf --output-file review.pdf`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runView("Cannot export scorecard", core.ExecuteExport)
	},
}
