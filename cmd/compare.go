package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/spf13/cobra"
)

// compareCmd ranks selected entities side by side.
var compareCmd = &cobra.Command{
	Use:   "compare [files...]",
	Short: "Compare entities side by side and rank them.",
	Long: `Compare the criterion values of selected entities and rank them by score.

When a name appears more than once in the store, the first entry wins.
Without --select every entity is compared.

Examples:
  # Compare two people
  scorecard compare team.csv --select Alice,Bob

  # Rank everyone as JSON
  scorecard compare team.csv --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runView("Cannot run comparison", core.ExecuteCompare)
	},
}
