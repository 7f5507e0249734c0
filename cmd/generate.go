package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/render"
	"github.com/dstrand/wander/internal/session"
	"github.com/dstrand/wander/internal/trip"
)

// generateFlags is shared by `wander plan` and `wander suggest`; the two
// commands differ only in the starting-point flag and the backend endpoint.
var generateFlags struct {
	Destination string
	Location    string
	Budget      float64
	Days        int
	People      int
	Group       string
	Save        bool
	NoExtras    bool
	PlacesLimit int
}

// runGeneration is the shared generate→cache→enrich→render flow behind the
// plan and suggest commands.
func runGeneration(cmd *cobra.Command, kind trip.Kind, params trip.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}

	deps, err := buildDeps()
	if err != nil {
		return err
	}
	defer deps.Close()
	ctx := cmd.Context()

	if !deps.Config.Quiet {
		fmt.Fprintln(cmd.ErrOrStderr(), "Generating... this can take a minute.")
	}

	var raw json.RawMessage
	if kind == trip.KindSuggest {
		raw, err = deps.Client.CreateSuggestions(ctx, params)
	} else {
		raw, err = deps.Client.CreatePlan(ctx, params)
	}
	if err != nil {
		return mapAuthError(deps, err)
	}

	entry, err := buildEntry(kind, params, raw)
	if err != nil {
		return err
	}

	canonical := trip.Normalize(trip.RawTripRecord{TripType: string(kind), Data: entry})

	// Weather and places are independent lookups keyed off the effective
	// destination; their failures stay confined to their own sections.
	var weather api.WeatherReport
	var places api.PlacesReport
	if generateFlags.NoExtras {
		weather = api.WeatherReport{Err: "skipped"}
		places = api.PlacesReport{Err: "skipped"}
	} else {
		weather, places = fetchSideData(ctx, deps, sideDataCity(canonical), params.Days, generateFlags.PlacesLimit)
	}

	stored := session.StoredResult{
		Kind:    kind,
		Params:  params,
		Raw:     entry,
		Weather: weather.Days,
	}
	if !places.Failed() {
		stored.Places = &places.Result
	}
	if err := deps.Store.PutResult(stored); err != nil {
		return fmt.Errorf("caching result: %w", err)
	}

	if generateFlags.Save {
		if err := deps.Client.SaveTrip(ctx, kind, params, entry); err != nil {
			return mapAuthError(deps, err)
		}
		if !deps.Config.Quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), "✓ Trip saved")
		}
	}

	detail := render.Detail{Trip: canonical, Weather: weather, Places: places}
	format := resolveFormat(deps.Config.Format)
	return render.To(globalFlags.Out, func(w io.Writer) error {
		return detail.Render(w, format)
	})
}

// buildEntry wraps the unwrapped generation payload together with the form
// parameters in the same envelope the backend stores for saved trips, so the
// fresh-result path and the saved-trip path share one normalization pipeline.
func buildEntry(kind trip.Kind, params trip.Params, raw json.RawMessage) (json.RawMessage, error) {
	var entry any
	if kind == trip.KindSuggest {
		entry = map[string]any{
			"location":    params.Location,
			"budget":      params.Budget,
			"days":        params.Days,
			"people":      params.People,
			"groupType":   string(params.GroupType),
			"suggestions": trip.UnwrapSuggestionResponse(raw),
		}
	} else {
		entry = map[string]any{
			"formParams": map[string]any{
				"destination": params.Destination,
				"budget":      params.Budget,
				"people":      params.People,
				"days":        params.Days,
				"groupType":   string(params.GroupType),
			},
			"planData": trip.UnwrapPlanResponse(raw),
		}
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return data, nil
}

// sideDataCity picks the city used for weather and places lookups: the plan
// destination, or the top suggested destination.
func sideDataCity(c trip.Canonical) string {
	switch {
	case c.Plan != nil:
		return c.Plan.Destination
	case c.Suggestion != nil:
		if len(c.Suggestion.SuggestedDestinations) > 0 {
			return c.Suggestion.SuggestedDestinations[0].Destination
		}
		return c.Suggestion.Location
	}
	return ""
}

func registerGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&generateFlags.Budget, "budget", 0, "total budget in dollars")
	cmd.Flags().IntVar(&generateFlags.Days, "days", 0, "trip length in days")
	cmd.Flags().IntVar(&generateFlags.People, "people", 1, "number of travellers")
	cmd.Flags().StringVar(&generateFlags.Group, "group", "friends", "group type: friends|couple|family|solo")
	cmd.Flags().BoolVar(&generateFlags.Save, "save", false, "also save the trip to your account")
	cmd.Flags().BoolVar(&generateFlags.NoExtras, "no-extras", false, "skip the weather and places lookups")
	cmd.Flags().IntVar(&generateFlags.PlacesLimit, "places-limit", 5, "max places per section")
}
