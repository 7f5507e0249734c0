package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/trip"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Get destination suggestions from a starting location",
	Long: `Suggest destinations reachable within a budget from a starting location,
with an itinerary for the top choice, budget considerations, local customs
and packing tips.`,
	Example: `  wander suggest --location Berlin --budget 800 --days 3 --people 4
  wander suggest --location "New York" --budget 2000 --days 5 --group family --save`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGeneration(cmd, trip.KindSuggest, trip.Params{
			Location:  generateFlags.Location,
			Budget:    generateFlags.Budget,
			Days:      generateFlags.Days,
			People:    generateFlags.People,
			GroupType: trip.GroupType(generateFlags.Group),
		})
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVar(&generateFlags.Location, "location", "", "where the trip starts (required)")
	registerGenerateFlags(suggestCmd)
}
