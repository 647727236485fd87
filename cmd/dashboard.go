package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/spf13/cobra"
)

// dashboardCmd shows overall scores and category averages.
var dashboardCmd = &cobra.Command{
	Use:   "dashboard [files...]",
	Short: "Show overall scores and category performance.",
	Long: `Import the given files, score every entry and print the dashboard.

The dashboard has three parts:
- Overall performance: one weighted score per entry, in store order
- Category performance: the mean value of every criterion
- Category breakdown (with --detail or --explain): per-criterion values

Scores are the weighted sum of criterion values. Weights are not
normalized; use --score-mode normalized to scale scores to 0-100.

Examples:
  # Score a team spreadsheet
  scorecard dashboard team.xlsx

  # Combine files and a manual entry
  scorecard dashboard q1.csv q2.csv --entry name=Dana,productivity=70,quality=85,timeliness=90

  # Show each criterion's contribution
  scorecard dashboard team.csv --explain

  # Emphasize quality
  scorecard dashboard team.csv --weight quality=0.6 --weight timeliness=0`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runView("Cannot build dashboard", core.ExecuteDashboard)
	},
}
