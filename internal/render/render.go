// Package render converts canonical trip payloads into human-readable or
// machine-parseable output. Each format is a separate path; the top-level
// functions dispatch on the format string. Every display section has an
// explicit empty state, so a payload of defaults still renders cleanly.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/trip"
)

// Format constants matching --format flag values.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatMD    = "md"
)

// Empty-state messages. The weather one is load-bearing: a failed weather
// fetch must not look like an error page, just an unavailable section.
const (
	MsgNoWeather        = "Weather information is currently unavailable"
	MsgNoItinerary      = "No itinerary available."
	MsgNoSuggestions    = "No suggestions available."
	MsgNoAccommodations = "No accommodation suggestions available."
	MsgNoCustoms        = "No local customs information available."
	MsgNoPackingTips    = "No packing tips available."
	MsgNoPlaces         = "No places information available."
)

// Detail bundles everything a result view shows: the canonical payload plus
// its independently fetched side data.
type Detail struct {
	Trip    trip.Canonical    `json:"trip"`
	Weather api.WeatherReport `json:"weather"`
	Places  api.PlacesReport  `json:"places"`
}

// To writes with fn to stdout, or to path when it is non-empty.
func To(path string, fn func(w io.Writer) error) error {
	if path == "" {
		return fn(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()
	return fn(f)
}

// ─── Dispatchers ──────────────────────────────────────────────────────────────

// Detail renders a full plan or suggestion result.
func (d Detail) Render(w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, d)
	case FormatJSONL:
		return renderJSONL(w, d)
	default:
		return d.renderText(w, format == FormatMD)
	}
}

// TripList renders saved trips as the dashboard listing. Titles and summary
// fields come from the normalizer, not the raw records.
func TripList(w io.Writer, format string, records []trip.RawTripRecord) error {
	type row struct {
		ID        string  `json:"id"`
		Type      string  `json:"type"`
		Title     string  `json:"title"`
		Budget    float64 `json:"budget"`
		Days      int     `json:"days"`
		People    int     `json:"people"`
		CreatedAt string  `json:"created_at"`
	}
	rows := make([]row, 0, len(records))
	for _, rec := range records {
		c := trip.Normalize(rec)
		r := row{ID: rec.ID, Type: string(c.Kind), Title: c.Title, CreatedAt: rec.CreatedAt}
		if c.Plan != nil {
			r.Budget, r.Days, r.People = c.Plan.Budget, c.Plan.Days, c.Plan.People
		} else if c.Suggestion != nil {
			r.Budget, r.Days, r.People = c.Suggestion.Budget, c.Suggestion.Days, c.Suggestion.People
		}
		rows = append(rows, r)
	}

	switch format {
	case FormatJSON:
		return renderJSON(w, rows)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, r := range rows {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		if len(rows) == 0 {
			fmt.Fprintln(w, "No saved trips yet.")
			return nil
		}
		tw := newTable(w, format == FormatMD)
		tw.SetHeader([]string{"ID", "TYPE", "TITLE", "BUDGET", "DAYS", "PEOPLE", "CREATED"})
		for _, r := range rows {
			tw.Append([]string{
				r.ID, r.Type, r.Title, money(r.Budget),
				strconv.Itoa(r.Days), strconv.Itoa(r.People), r.CreatedAt,
			})
		}
		tw.Render()
		return nil
	}
}

// Weather renders a standalone forecast lookup.
func Weather(w io.Writer, format string, report api.WeatherReport) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, report)
	case FormatJSONL:
		enc := json.NewEncoder(w)
		for _, d := range report.Days {
			if err := enc.Encode(d); err != nil {
				return err
			}
		}
		return nil
	default:
		renderWeatherSection(w, report, format == FormatMD)
		return nil
	}
}

// Places renders a standalone places lookup.
func Places(w io.Writer, format string, report api.PlacesReport) error {
	switch format {
	case FormatJSON:
		return renderJSON(w, report)
	default:
		renderPlacesSection(w, report, format == FormatMD)
		return nil
	}
}

// User renders the authenticated account.
func User(w io.Writer, format string, u *api.User) error {
	switch format {
	case FormatJSON, FormatJSONL:
		return renderJSON(w, u)
	default:
		fmt.Fprintf(w, "Logged in as %s <%s> (id %s)\n", u.Name, u.Email, u.ID)
		return nil
	}
}

// ─── JSON ─────────────────────────────────────────────────────────────────────

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderJSONL(w io.Writer, d Detail) error {
	enc := json.NewEncoder(w)
	return enc.Encode(d)
}

// ─── Text / Markdown ──────────────────────────────────────────────────────────

func (d Detail) renderText(w io.Writer, md bool) error {
	renderSummary(w, d.Trip, md)
	renderWeatherSection(w, d.Weather, md)

	switch d.Trip.Kind {
	case trip.KindSuggest:
		renderSuggestion(w, d.Trip.Suggestion, md)
	default:
		renderPlan(w, d.Trip.Plan, md)
	}

	renderPlacesSection(w, d.Places, md)
	return nil
}

func renderSummary(w io.Writer, c trip.Canonical, md bool) {
	heading(w, "Trip Summary", md)

	var budget float64
	var days, people int
	var group trip.GroupType
	switch {
	case c.Plan != nil:
		budget, days, people, group = c.Plan.Budget, c.Plan.Days, c.Plan.People, c.Plan.GroupType
	case c.Suggestion != nil:
		budget, days, people, group = c.Suggestion.Budget, c.Suggestion.Days, c.Suggestion.People, c.Suggestion.GroupType
	}

	tw := newTable(w, md)
	tw.SetHeader([]string{"FIELD", "VALUE"})
	tw.Append([]string{"Title", c.Title})
	tw.Append([]string{"Budget", money(budget)})
	tw.Append([]string{"Days", strconv.Itoa(days)})
	tw.Append([]string{"Group", fmt.Sprintf("%d people (%s)", people, group)})
	tw.Render()
}

func renderPlan(w io.Writer, p *trip.PlanPayload, md bool) {
	heading(w, "Budget Breakdown", md)
	if len(p.BudgetBreakdown) == 0 {
		fmt.Fprintln(w, "No budget breakdown available.")
	} else {
		tw := newTable(w, md)
		tw.SetHeader([]string{"CATEGORY", "AMOUNT"})
		for _, cat := range sortedKeys(p.BudgetBreakdown) {
			tw.Append([]string{strings.ReplaceAll(cat, "_", " "), money(p.BudgetBreakdown[cat])})
		}
		tw.Render()
	}

	renderItinerary(w, "Itinerary", p.Itinerary, md)

	heading(w, "Recommended Accommodations", md)
	if len(p.AccommodationSuggestions) == 0 {
		fmt.Fprintln(w, MsgNoAccommodations)
	} else {
		tw := newTable(w, md)
		tw.SetHeader([]string{"NAME", "PER NIGHT", "TOTAL"})
		for _, acc := range p.AccommodationSuggestions {
			tw.Append([]string{acc.Name, money(acc.PricePerNight), money(acc.TotalCost)})
		}
		tw.Render()
	}

	renderList(w, "Local Customs", p.LocalCustoms, MsgNoCustoms, md)
	renderList(w, "Packing Tips", p.PackingTips, MsgNoPackingTips, md)
}

func renderSuggestion(w io.Writer, s *trip.SuggestionPayload, md bool) {
	heading(w, "Suggested Destinations", md)
	if len(s.SuggestedDestinations) == 0 {
		fmt.Fprintln(w, MsgNoSuggestions)
	} else {
		tw := newTable(w, md)
		tw.SetHeader([]string{"DESTINATION", "EST. TOTAL", "REASON"})
		for _, sd := range s.SuggestedDestinations {
			est := "-"
			if sd.EstimatedTotalCost != nil {
				est = money(*sd.EstimatedTotalCost)
			}
			tw.Append([]string{sd.Destination, est, sd.Reason})
		}
		tw.Render()
	}

	renderItinerary(w, "Itinerary for Top Choice", s.ItineraryForTopChoice, md)
	renderList(w, "Budget Considerations", s.BudgetConsiderations, "No budget considerations available.", md)
	renderList(w, "Local Customs", s.LocalCustoms, MsgNoCustoms, md)
	renderList(w, "Packing Tips", s.PackingTips, MsgNoPackingTips, md)
}

// renderItinerary prints days in slice order; the day numbers shown are the
// backend's own.
func renderItinerary(w io.Writer, title string, days []trip.DayPlan, md bool) {
	if len(days) > 0 {
		title = fmt.Sprintf("%d-Day %s", len(days), title)
	}
	heading(w, title, md)
	if len(days) == 0 {
		fmt.Fprintln(w, MsgNoItinerary)
		return
	}
	for _, day := range days {
		if day.ApproximateCost != nil {
			fmt.Fprintf(w, "Day %d (%s)\n", day.Day, money(*day.ApproximateCost))
		} else {
			fmt.Fprintf(w, "Day %d\n", day.Day)
		}
		for _, act := range day.Activities {
			fmt.Fprintf(w, "  - %s\n", act)
		}
		if day.Notes != "" {
			fmt.Fprintf(w, "  Notes: %s\n", day.Notes)
		}
	}
}

func renderWeatherSection(w io.Writer, report api.WeatherReport, md bool) {
	heading(w, "Weather Forecast", md)
	if report.Failed() || len(report.Days) == 0 {
		fmt.Fprintln(w, MsgNoWeather)
		return
	}
	tw := newTable(w, md)
	tw.SetHeader([]string{"DAY", "DATE", "TEMP", "MIN", "MAX", "HUMIDITY", "CONDITIONS"})
	for _, d := range report.Days {
		tw.Append([]string{
			d.Day, d.Date,
			fmt.Sprintf("%d°C", d.Temp),
			fmt.Sprintf("%d°C", d.TempMin),
			fmt.Sprintf("%d°C", d.TempMax),
			fmt.Sprintf("%d%%", d.Humidity),
			d.Description,
		})
	}
	tw.Render()
}

func renderPlacesSection(w io.Writer, report api.PlacesReport, md bool) {
	if report.Failed() {
		heading(w, "Places", md)
		fmt.Fprintln(w, MsgNoPlaces)
		return
	}
	renderPlaceTable(w, "Restaurants", report.Result.Restaurants, md)
	renderPlaceTable(w, "Hotels", report.Result.Hotels, md)
}

func renderPlaceTable(w io.Writer, title string, places []trip.Place, md bool) {
	heading(w, title, md)
	if len(places) == 0 {
		fmt.Fprintf(w, "No %s found.\n", strings.ToLower(title))
		return
	}
	tw := newTable(w, md)
	tw.SetHeader([]string{"NAME", "ADDRESS", "RATING"})
	for _, p := range places {
		rating := "-"
		if p.Rating != nil {
			rating = strconv.FormatFloat(*p.Rating, 'f', 1, 64)
		}
		tw.Append([]string{p.Name, p.Address, rating})
	}
	tw.Render()
}

func renderList(w io.Writer, title string, items []string, emptyMsg string, md bool) {
	heading(w, title, md)
	if len(items) == 0 {
		fmt.Fprintln(w, emptyMsg)
		return
	}
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func heading(w io.Writer, title string, md bool) {
	if md {
		fmt.Fprintf(w, "\n## %s\n\n", title)
		return
	}
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", len([]rune(title))))
}

func newTable(w io.Writer, md bool) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAutoWrapText(false)
	if md {
		tw.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
		tw.SetCenterSeparator("|")
	} else {
		tw.SetBorder(true)
		tw.SetRowLine(false)
	}
	return tw
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}

// sortedKeys gives budget categories a stable display order; map iteration
// order is random.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
