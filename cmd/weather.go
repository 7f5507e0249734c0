package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/render"
)

var weatherDays int

var weatherCmd = &cobra.Command{
	Use:     "weather <city>",
	Short:   "Show the forecast for a city",
	Args:    cobra.ExactArgs(1),
	Example: `  wander weather Lisbon
  wander weather "Buenos Aires" --days 7 --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		// FetchWeather never fails hard; an unavailable forecast renders as
		// its empty state.
		report := deps.Client.FetchWeather(cmd.Context(), args[0], weatherDays)

		format := resolveFormat(deps.Config.Format)
		return render.To(globalFlags.Out, func(w io.Writer) error {
			return render.Weather(w, format, report)
		})
	},
}

func init() {
	rootCmd.AddCommand(weatherCmd)
	weatherCmd.Flags().IntVar(&weatherDays, "days", 5, "number of forecast days")
}
