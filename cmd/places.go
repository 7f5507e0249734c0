package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/render"
)

var placesLimit int

var placesCmd = &cobra.Command{
	Use:     "places <city>",
	Short:   "Show restaurants and hotels for a city",
	Args:    cobra.ExactArgs(1),
	Example: `  wander places Rome
  wander places Kyoto --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		report := deps.Client.FetchPlaces(cmd.Context(), args[0], placesLimit)

		format := resolveFormat(deps.Config.Format)
		return render.To(globalFlags.Out, func(w io.Writer) error {
			return render.Places(w, format, report)
		})
	},
}

func init() {
	rootCmd.AddCommand(placesCmd)
	placesCmd.Flags().IntVar(&placesLimit, "limit", 5, "max places per section")
}
