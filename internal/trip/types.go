// Package trip defines the canonical data types for generated travel plans
// and destination suggestions, and the normalizer that converts the backend's
// loosely-shaped trip records into them. These types are the single source of
// truth consumed by every renderer and exporter.
package trip

import "encoding/json"

// GroupType classifies the travelling party.
type GroupType string

// Group types accepted by the backend.
const (
	GroupFriends GroupType = "friends"
	GroupCouple  GroupType = "couple"
	GroupFamily  GroupType = "family"
	GroupSolo    GroupType = "solo"
)

// Kind tags which canonical payload variant a record normalized into.
type Kind string

// Kind constants for Canonical.Kind. They match the backend's trip_type values.
const (
	KindPlan    Kind = "plan"
	KindSuggest Kind = "suggest"
)

// ─── Canonical Payloads ───────────────────────────────────────────────────────

// DayPlan is a single day of an itinerary. Day numbers come from the backend
// as-is (1-based); display order follows slice order, not the Day field.
type DayPlan struct {
	Day             int      `json:"day"`
	Activities      []string `json:"activities"`
	ApproximateCost *float64 `json:"approximateCost,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// Accommodation is one suggested place to stay within a plan.
type Accommodation struct {
	Name          string  `json:"name"`
	PricePerNight float64 `json:"pricePerNight"`
	TotalCost     float64 `json:"totalCost"`
}

// SuggestedDestination is one recommended destination in a suggestion result.
type SuggestedDestination struct {
	Destination        string             `json:"destination"`
	Reason             string             `json:"reason,omitempty"`
	EstimatedTotalCost *float64           `json:"estimatedTotalCost,omitempty"`
	CostBreakdown      map[string]float64 `json:"costBreakdown,omitempty"`
}

// PlanPayload is the canonical shape of a destination-specific itinerary.
// Every slice field is non-nil after normalization, and BudgetBreakdown is a
// non-nil map, so callers can always iterate safely.
type PlanPayload struct {
	Destination              string             `json:"destination"`
	Budget                   float64            `json:"budget"`
	Days                     int                `json:"days"`
	People                   int                `json:"people"`
	GroupType                GroupType          `json:"groupType"`
	Itinerary                []DayPlan          `json:"itinerary"`
	BudgetBreakdown          map[string]float64 `json:"budgetBreakdown"`
	AccommodationSuggestions []Accommodation    `json:"accommodationSuggestions"`
	LocalCustoms             []string           `json:"localCustoms"`
	PackingTips              []string           `json:"packingTips"`
}

// SuggestionPayload is the canonical shape of destination recommendations
// generated from a starting location. Same non-nil guarantees as PlanPayload.
type SuggestionPayload struct {
	Location              string                 `json:"location"`
	Budget                float64                `json:"budget"`
	Days                  int                    `json:"days"`
	People                int                    `json:"people"`
	GroupType             GroupType              `json:"groupType"`
	SuggestedDestinations []SuggestedDestination `json:"suggestedDestinations"`
	ItineraryForTopChoice []DayPlan              `json:"itineraryForTopChoice"`
	BudgetConsiderations  []string               `json:"budgetConsiderations"`
	LocalCustoms          []string               `json:"localCustoms"`
	PackingTips           []string               `json:"packingTips"`
}

// Canonical is the tagged union produced by Normalize. Exactly one of Plan or
// Suggestion is non-nil, selected by Kind.
type Canonical struct {
	Kind       Kind               `json:"kind"`
	Title      string             `json:"title"`
	Plan       *PlanPayload       `json:"plan,omitempty"`
	Suggestion *SuggestionPayload `json:"suggestion,omitempty"`
}

// ─── Raw Backend Records ──────────────────────────────────────────────────────

// RawTripRecord is a saved trip exactly as the backend returns it. The shape
// of Data is not guaranteed stable: it may be an object or a JSON-encoded
// string, with the actual payload nested under planData or suggestions. The
// summary fields are present on newer backend versions and absent on older
// ones; Normalize treats them as fallbacks only.
type RawTripRecord struct {
	ID          string          `json:"id"`
	TripType    string          `json:"trip_type"`
	CreatedAt   string          `json:"created_at"`
	Destination string          `json:"destination,omitempty"`
	Location    string          `json:"location,omitempty"`
	Budget      float64         `json:"budget,omitempty"`
	People      int             `json:"people,omitempty"`
	Days        int             `json:"days,omitempty"`
	GroupType   string          `json:"group_type,omitempty"`
	Data        json.RawMessage `json:"data"`
}

// ─── Side Data ────────────────────────────────────────────────────────────────

// WeatherDay is one normalized forecast day. Temperatures are whole °C.
type WeatherDay struct {
	Day         string `json:"day"`
	Date        string `json:"date"`
	Temp        int    `json:"temp"`
	TempMin     int    `json:"tempMin"`
	TempMax     int    `json:"tempMax"`
	Humidity    int    `json:"humidity"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Place is a single restaurant or hotel from the places lookup.
type Place struct {
	Name       string   `json:"name"`
	Address    string   `json:"address"`
	Rating     *float64 `json:"rating,omitempty"`
	Website    string   `json:"website,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// PlacesResult groups places by section.
type PlacesResult struct {
	Restaurants []Place `json:"restaurants"`
	Hotels      []Place `json:"hotels"`
}
