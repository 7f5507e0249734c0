// Package export renders a canonical trip into a printable PDF.
package export

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/phpdave11/gofpdf"

	"github.com/dstrand/wander/internal/trip"
)

// doc bundles the pdf handle with the codepage translator for the core fonts.
// All text goes through tr; the payloads are UTF-8.
type doc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// WritePDF writes a one-document summary of the trip to w. Weather may be
// nil; the section is simply omitted, matching the isolated-failure rule for
// side data everywhere else.
func WritePDF(w io.Writer, c trip.Canonical, weather []trip.WeatherDay) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	d := &doc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, d.tr(c.Title))
	pdf.Ln(14)

	switch c.Kind {
	case trip.KindSuggest:
		d.writeSuggestion(c.Suggestion)
	default:
		d.writePlan(c.Plan)
	}

	if len(weather) > 0 {
		d.sectionTitle("Weather Forecast")
		for _, day := range weather {
			d.line(fmt.Sprintf("%s %s: %d°C (%d-%d°C), %d%% humidity, %s",
				day.Day, day.Date, day.Temp, day.TempMin, day.TempMax, day.Humidity, day.Description))
		}
	}

	return pdf.Output(w)
}

func (d *doc) writePlan(p *trip.PlanPayload) {
	d.summary([][2]string{
		{"Destination", p.Destination},
		{"Budget", money(p.Budget)},
		{"Days", strconv.Itoa(p.Days)},
		{"Group", fmt.Sprintf("%d people (%s)", p.People, p.GroupType)},
	})

	if len(p.BudgetBreakdown) > 0 {
		d.sectionTitle("Budget Breakdown")
		keys := make([]string, 0, len(p.BudgetBreakdown))
		for k := range p.BudgetBreakdown {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			d.line(fmt.Sprintf("%s: %s", k, money(p.BudgetBreakdown[k])))
		}
	}

	d.writeItinerary("Itinerary", p.Itinerary)

	if len(p.AccommodationSuggestions) > 0 {
		d.sectionTitle("Accommodations")
		for _, acc := range p.AccommodationSuggestions {
			d.line(fmt.Sprintf("%s: %s per night, %s total",
				acc.Name, money(acc.PricePerNight), money(acc.TotalCost)))
		}
	}

	d.writeList("Local Customs", p.LocalCustoms)
	d.writeList("Packing Tips", p.PackingTips)
}

func (d *doc) writeSuggestion(s *trip.SuggestionPayload) {
	d.summary([][2]string{
		{"From", s.Location},
		{"Budget", money(s.Budget)},
		{"Days", strconv.Itoa(s.Days)},
		{"Group", fmt.Sprintf("%d people (%s)", s.People, s.GroupType)},
	})

	if len(s.SuggestedDestinations) > 0 {
		d.sectionTitle("Suggested Destinations")
		for _, sd := range s.SuggestedDestinations {
			text := sd.Destination
			if sd.EstimatedTotalCost != nil {
				text += fmt.Sprintf(" (est. %s)", money(*sd.EstimatedTotalCost))
			}
			if sd.Reason != "" {
				text += ": " + sd.Reason
			}
			d.line(text)
		}
	}

	d.writeItinerary("Itinerary for Top Choice", s.ItineraryForTopChoice)
	d.writeList("Budget Considerations", s.BudgetConsiderations)
	d.writeList("Local Customs", s.LocalCustoms)
	d.writeList("Packing Tips", s.PackingTips)
}

func (d *doc) writeItinerary(title string, days []trip.DayPlan) {
	if len(days) == 0 {
		return
	}
	d.sectionTitle(title)
	for _, day := range days {
		header := fmt.Sprintf("Day %d", day.Day)
		if day.ApproximateCost != nil {
			header += fmt.Sprintf(" (%s)", money(*day.ApproximateCost))
		}
		d.pdf.SetFont("Arial", "B", 11)
		d.pdf.Cell(0, 7, d.tr(header))
		d.pdf.Ln(7)
		d.pdf.SetFont("Arial", "", 11)
		for _, act := range day.Activities {
			d.line("  - " + act)
		}
		if day.Notes != "" {
			d.line("  Notes: " + day.Notes)
		}
	}
}

func (d *doc) writeList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	d.sectionTitle(title)
	for _, item := range items {
		d.line("  - " + item)
	}
}

func (d *doc) summary(rows [][2]string) {
	d.pdf.SetFont("Arial", "", 12)
	for _, r := range rows {
		d.pdf.Cell(0, 8, d.tr(fmt.Sprintf("%s: %s", r[0], r[1])))
		d.pdf.Ln(8)
	}
}

func (d *doc) sectionTitle(title string) {
	d.pdf.Ln(4)
	d.pdf.SetFont("Arial", "B", 14)
	d.pdf.Cell(0, 9, title)
	d.pdf.Ln(10)
	d.pdf.SetFont("Arial", "", 11)
}

func (d *doc) line(text string) {
	d.pdf.MultiCell(0, 6, d.tr(text), "", "L", false)
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', -1, 64)
}
