package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/trip"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a day-by-day itinerary for a destination",
	Long: `Generate a budget-constrained itinerary for a specific destination,
including a budget breakdown, accommodation suggestions, local customs and
packing tips, enriched with a weather forecast and nearby places.

The result is cached locally; re-render it later with 'wander trips save'
or export it with 'wander trips export'.`,
	Example: `  wander plan --destination Paris --budget 1500 --days 4 --people 2 --group couple
  wander plan --destination Tokyo --budget 3000 --days 7 --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeneration(cmd, trip.KindPlan, trip.Params{
			Destination: generateFlags.Destination,
			Budget:      generateFlags.Budget,
			Days:        generateFlags.Days,
			People:      generateFlags.People,
			GroupType:   trip.GroupType(generateFlags.Group),
		})
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&generateFlags.Destination, "destination", "", "where the trip goes (required)")
	registerGenerateFlags(planCmd)
}
