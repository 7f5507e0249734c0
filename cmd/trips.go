package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/export"
	"github.com/dstrand/wander/internal/render"
	"github.com/dstrand/wander/internal/trip"
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Manage your saved trips",
}

// ─── trips list ───────────────────────────────────────────────────────────────

var tripsListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List your saved trips",
	Example: `  wander trips list
  wander trips list --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		records, err := deps.Client.ListTrips(cmd.Context())
		if err != nil {
			return mapAuthError(deps, err)
		}

		format := resolveFormat(deps.Config.Format)
		return render.To(globalFlags.Out, func(w io.Writer) error {
			return render.TripList(w, format, records)
		})
	},
}

// ─── trips show ───────────────────────────────────────────────────────────────

var tripsShowNoExtras bool

var tripsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved trip in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()
		ctx := cmd.Context()

		record, err := deps.Client.FetchTrip(ctx, args[0])
		if err != nil {
			var notFound *api.NotFoundError
			if errors.As(err, &notFound) {
				return fmt.Errorf("trip %s not found; see `wander trips list`", args[0])
			}
			return mapAuthError(deps, err)
		}

		canonical := trip.Normalize(*record)

		var weather api.WeatherReport
		var places api.PlacesReport
		if tripsShowNoExtras {
			weather = api.WeatherReport{Err: "skipped"}
			places = api.PlacesReport{Err: "skipped"}
		} else {
			weather, places = fetchSideData(ctx, deps, sideDataCity(canonical), tripDays(canonical), 5)
		}

		detail := render.Detail{Trip: canonical, Weather: weather, Places: places}
		format := resolveFormat(deps.Config.Format)
		return render.To(globalFlags.Out, func(w io.Writer) error {
			return detail.Render(w, format)
		})
	},
}

// ─── trips delete ─────────────────────────────────────────────────────────────

var tripsDeleteYes bool

var tripsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !tripsDeleteYes && !confirm(fmt.Sprintf("Delete trip %s? [y/N] ", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		if err := deps.Client.DeleteTrip(cmd.Context(), args[0]); err != nil {
			return mapAuthError(deps, fmt.Errorf("failed to delete trip: %w", err))
		}
		if !deps.Config.Quiet {
			fmt.Println("✓ Trip deleted")
		}
		return nil
	},
}

// ─── trips save ───────────────────────────────────────────────────────────────

var tripsSaveType string

var tripsSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the most recent generation result to your account",
	Long: `Save the locally cached result of the last 'wander plan' or 'wander suggest'
run so it appears in 'wander trips list'. Equivalent to passing --save at
generation time.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := trip.KindPlan
		if tripsSaveType == string(trip.KindSuggest) {
			kind = trip.KindSuggest
		} else if tripsSaveType != string(trip.KindPlan) {
			return fmt.Errorf("--type must be plan or suggest")
		}

		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()

		res, found, err := deps.Store.GetResult(kind)
		if err != nil {
			return fmt.Errorf("reading cached result: %w", err)
		}
		if !found {
			return fmt.Errorf("no cached %s result; generate one first with `wander %s`", kind, kindCommand(kind))
		}

		if err := deps.Client.SaveTrip(cmd.Context(), kind, res.Params, res.Raw); err != nil {
			return mapAuthError(deps, err)
		}
		if !deps.Config.Quiet {
			fmt.Println("✓ Trip saved")
		}
		return nil
	},
}

// ─── trips export ─────────────────────────────────────────────────────────────

var tripsExportOut string

var tripsExportCmd = &cobra.Command{
	Use:     "export <id>",
	Short:   "Export a saved trip as a PDF",
	Args:    cobra.ExactArgs(1),
	Example: "  wander trips export 66421a0c --pdf paris.pdf",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tripsExportOut == "" {
			return fmt.Errorf("--pdf <file> is required")
		}
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		defer deps.Close()
		ctx := cmd.Context()

		record, err := deps.Client.FetchTrip(ctx, args[0])
		if err != nil {
			return mapAuthError(deps, err)
		}
		canonical := trip.Normalize(*record)

		weather := deps.Client.FetchWeather(ctx, sideDataCity(canonical), tripDays(canonical))

		f, err := os.Create(tripsExportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", tripsExportOut, err)
		}
		defer f.Close()

		if err := export.WritePDF(f, canonical, weather.Days); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		if !deps.Config.Quiet {
			fmt.Printf("✓ Wrote %s\n", tripsExportOut)
		}
		return nil
	},
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func tripDays(c trip.Canonical) int {
	switch {
	case c.Plan != nil && c.Plan.Days > 0:
		return c.Plan.Days
	case c.Suggestion != nil && c.Suggestion.Days > 0:
		return c.Suggestion.Days
	}
	return 5
}

func kindCommand(kind trip.Kind) string {
	if kind == trip.KindSuggest {
		return "suggest"
	}
	return "plan"
}

// confirm asks a yes/no question on stdin. Anything but y/yes declines.
func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(tripsCmd)
	tripsCmd.AddCommand(tripsListCmd)
	tripsCmd.AddCommand(tripsShowCmd)
	tripsCmd.AddCommand(tripsDeleteCmd)
	tripsCmd.AddCommand(tripsSaveCmd)
	tripsCmd.AddCommand(tripsExportCmd)

	tripsShowCmd.Flags().BoolVar(&tripsShowNoExtras, "no-extras", false, "skip the weather and places lookups")
	tripsDeleteCmd.Flags().BoolVar(&tripsDeleteYes, "yes", false, "skip the confirmation prompt")
	tripsSaveCmd.Flags().StringVar(&tripsSaveType, "type", "plan", "which cached result to save: plan|suggest")
	tripsExportCmd.Flags().StringVar(&tripsExportOut, "pdf", "", "output PDF file path")
}
