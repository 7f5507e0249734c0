package trip

import "encoding/json"

// Normalize converts a raw trip record into exactly one canonical payload
// variant, selected by the record's trip_type. It is total: malformed JSON at
// any decode step degrades to empty defaults at that step, and the worst-case
// result is a fully defaulted payload under a generic title. Normalizing the
// same record twice yields structurally identical output.
//
// The backend has returned several shapes for the same data over time:
// Data may be a JSON-encoded string, the actual payload may sit under a
// planData or suggestions key (itself possibly string-encoded or wrapped in
// one more {data: ...} envelope), and the summary fields may live at the top
// of the record, in a formParams sibling, or inside the nested payload. The
// lookup order below mirrors the observed variants, newest first.
func Normalize(raw RawTripRecord) Canonical {
	data := decodeLoose(raw.Data)
	if raw.TripType == string(KindSuggest) {
		return normalizeSuggestion(raw, data)
	}
	return normalizePlan(raw, data)
}

// ─── Plan ─────────────────────────────────────────────────────────────────────

func normalizePlan(raw RawTripRecord, data map[string]any) Canonical {
	payload := locatePayload(data, "planData")
	form, _ := data["formParams"].(map[string]any)
	if form == nil {
		form = map[string]any{}
	}

	p := &PlanPayload{
		Destination: firstString(
			getString(form, "destination"),
			getString(payload, "destination"),
			raw.Destination,
			"Planned Trip",
		),
		Budget:                   firstFloat(getFloat(form, "budget"), getFloat(payload, "budget"), raw.Budget),
		Days:                     firstInt(getInt(form, "days"), getInt(payload, "days"), raw.Days),
		People:                   firstInt(getInt(form, "people"), getInt(payload, "people"), raw.People),
		GroupType:                groupType(form, payload, raw.GroupType),
		Itinerary:                dayPlans(payload, "itinerary", true),
		BudgetBreakdown:          getFloatMap(payload, "budget_breakdown"),
		AccommodationSuggestions: accommodations(payload),
		LocalCustoms:             getStringSlice(payload, "local_customs"),
		PackingTips:              getStringSlice(payload, "packing_tips"),
	}
	// The itinerary length is the ground truth for trip length when the
	// summary fields are missing.
	if p.Days == 0 {
		p.Days = len(p.Itinerary)
	}

	return Canonical{Kind: KindPlan, Title: p.Destination, Plan: p}
}

// ─── Suggestion ───────────────────────────────────────────────────────────────

func normalizeSuggestion(raw RawTripRecord, data map[string]any) Canonical {
	payload := locatePayload(data, "suggestions")

	s := &SuggestionPayload{
		Location: firstString(
			getString(data, "location"),
			getString(payload, "location"),
			raw.Location,
		),
		Budget:                firstFloat(getFloat(data, "budget"), getFloat(payload, "budget"), raw.Budget),
		Days:                  firstInt(getInt(data, "days"), getInt(payload, "days"), raw.Days),
		People:                firstInt(getInt(data, "people"), getInt(payload, "people"), raw.People),
		GroupType:             groupType(data, payload, raw.GroupType),
		SuggestedDestinations: suggestedDestinations(payload),
		ItineraryForTopChoice: dayPlans(payload, "itinerary_for_top_choice", false),
		BudgetConsiderations:  getStringSlice(payload, "budget_considerations"),
		LocalCustoms:          getStringSlice(payload, "local_customs"),
		PackingTips:           getStringSlice(payload, "packing_tips"),
	}
	if s.Days == 0 {
		s.Days = len(s.ItineraryForTopChoice)
	}

	title := "Suggestions"
	if len(s.SuggestedDestinations) > 0 && s.SuggestedDestinations[0].Destination != "" {
		title = "Suggestions: " + s.SuggestedDestinations[0].Destination
	}
	return Canonical{Kind: KindSuggest, Title: title, Suggestion: s}
}

// ─── Payload Location ─────────────────────────────────────────────────────────

// locatePayload finds the nested payload object inside data. Checked in
// order: data[key] (object, or string-encoded object), then one more
// {data: ...} envelope inside that, then data itself.
func locatePayload(data map[string]any, key string) map[string]any {
	payload, ok := unwrapNested(data[key])
	if !ok {
		payload = data
	}
	if inner, ok := unwrapNested(payload["data"]); ok {
		payload = inner
	}
	return payload
}

// groupType resolves the party type, accepting both the camelCase form used
// by cached form parameters and the snake_case form stored by the backend.
func groupType(primary, secondary map[string]any, fallback string) GroupType {
	return GroupType(firstString(
		getString(primary, "groupType"),
		getString(primary, "group_type"),
		getString(secondary, "groupType"),
		getString(secondary, "group_type"),
		fallback,
	))
}

// ─── Section Builders ─────────────────────────────────────────────────────────

// dayPlans extracts an itinerary. Day numbers are taken as given (1-based,
// per the generation prompt) and deliberately not renumbered or sorted.
// Suggestion itineraries carry no per-day cost, so withCost is false there.
func dayPlans(payload map[string]any, key string, withCost bool) []DayPlan {
	out := []DayPlan{}
	for _, obj := range getObjectSlice(payload, key) {
		dp := DayPlan{
			Day:        getInt(obj, "day"),
			Activities: getStringSlice(obj, "activities"),
			Notes:      getString(obj, "notes"),
		}
		if withCost {
			dp.ApproximateCost = optFloat(obj, "approximate_cost")
		}
		out = append(out, dp)
	}
	return out
}

func accommodations(payload map[string]any) []Accommodation {
	out := []Accommodation{}
	for _, obj := range getObjectSlice(payload, "accommodation_suggestions") {
		out = append(out, Accommodation{
			Name:          getString(obj, "name"),
			PricePerNight: getFloat(obj, "price_per_night"),
			TotalCost:     getFloat(obj, "total_cost"),
		})
	}
	return out
}

func suggestedDestinations(payload map[string]any) []SuggestedDestination {
	out := []SuggestedDestination{}
	for _, obj := range getObjectSlice(payload, "suggested_destinations") {
		sd := SuggestedDestination{
			Destination:        getString(obj, "destination"),
			Reason:             getString(obj, "reason"),
			EstimatedTotalCost: optFloat(obj, "estimated_total_cost"),
		}
		if cb := getFloatMap(obj, "cost_breakdown"); len(cb) > 0 {
			sd.CostBreakdown = cb
		}
		out = append(out, sd)
	}
	return out
}

// ─── Generation Responses ─────────────────────────────────────────────────────

// UnwrapPlanResponse extracts the plan object from a raw generation response.
// The body may be the payload directly, a {plan: ...} envelope, or either of
// those JSON-encoded as a string. Failures yield an empty object.
func UnwrapPlanResponse(body json.RawMessage) map[string]any {
	return unwrapResponse(body, "plan")
}

// UnwrapSuggestionResponse is the suggestions counterpart of
// UnwrapPlanResponse, unwrapping a {suggestions: ...} envelope when present.
func UnwrapSuggestionResponse(body json.RawMessage) map[string]any {
	return unwrapResponse(body, "suggestions")
}

func unwrapResponse(body json.RawMessage, key string) map[string]any {
	data := decodeLoose(body)
	if inner, ok := unwrapNested(data[key]); ok {
		return inner
	}
	return data
}
