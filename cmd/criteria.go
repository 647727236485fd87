package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/spf13/cobra"
)

// criteriaCmd displays the effective criteria registry.
var criteriaCmd = &cobra.Command{
	Use:   "criteria",
	Short: "Display the scoring criteria, weights and formula.",
	Long: `Show the criteria registry after config file and --weight overrides.

No files are imported. Use this to check custom criteria in .scorecard.yaml
or to explain the scoring formula to your team.

Examples:
  # Show the default criteria
  scorecard criteria

  # Preview a weight change
  scorecard criteria --weight productivity=0.5 --output yaml`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runView("Cannot display criteria", core.ExecuteCriteria)
	},
}
