package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/app"
	"github.com/dstrand/wander/internal/render"
)

// resolveFormat returns the effective format string, falling back to "table".
func resolveFormat(cfgFormat string) string {
	if globalFlags.Format != "" {
		return globalFlags.Format
	}
	if cfgFormat != "" {
		return cfgFormat
	}
	return render.FormatTable
}

// mapAuthError converts a 401 into a friendly re-login prompt and clears the
// stored token. Invalidating the local session is the call site's job, not
// the client's, so every authenticated command funnels errors through here.
func mapAuthError(deps *app.Deps, err error) error {
	if err == nil {
		return nil
	}
	var authErr *api.AuthError
	if errors.As(err, &authErr) {
		_ = deps.Store.ClearToken()
		return fmt.Errorf("your session has expired; run `wander login` to sign in again")
	}
	var netErr *api.NetworkError
	if errors.As(err, &netErr) {
		return fmt.Errorf("cannot reach the backend at %s; check your connection and --base-url", deps.Config.BaseURL)
	}
	return err
}

// fetchSideData issues the weather and places lookups concurrently. Both are
// supplementary: each failure stays inside its own report and neither blocks
// the other, or the primary result.
func fetchSideData(ctx context.Context, deps *app.Deps, city string, days, placesLimit int) (api.WeatherReport, api.PlacesReport) {
	var (
		wg      sync.WaitGroup
		weather api.WeatherReport
		places  api.PlacesReport
	)
	if city == "" {
		return api.WeatherReport{Err: "no location to look up"},
			api.PlacesReport{Err: "no location to look up"}
	}
	wg.Add(2)
	go func() {
		defer wg.Done()
		weather = deps.Client.FetchWeather(ctx, city, days)
	}()
	go func() {
		defer wg.Done()
		places = deps.Client.FetchPlaces(ctx, city, placesLimit)
	}()
	wg.Wait()
	return weather, places
}

// printKVTable renders a two-column key/value listing with aligned columns.
func printKVTable(rows [][2]string) {
	maxKey := 0
	for _, r := range rows {
		if len(r[0]) > maxKey {
			maxKey = len(r[0])
		}
	}
	for _, r := range rows {
		padding := strings.Repeat(" ", maxKey-len(r[0]))
		fmt.Printf("  %s%s  %s\n", r[0], padding, r[1])
	}
}
