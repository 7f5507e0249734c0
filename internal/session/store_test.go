package session_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/dstrand/wander/internal/session"
	"github.com/dstrand/wander/internal/trip"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(filepath.Join(t.TempDir(), "wander.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := openStore(t)

	if got := s.Token(); got != "" {
		t.Errorf("fresh store token: got %q", got)
	}
	if err := s.SetToken("tok-xyz"); err != nil {
		t.Fatal(err)
	}
	if got := s.Token(); got != "tok-xyz" {
		t.Errorf("token after set: got %q", got)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatal(err)
	}
	if got := s.Token(); got != "" {
		t.Errorf("token after clear: got %q", got)
	}
}

func TestResultRoundTrip(t *testing.T) {
	s := openStore(t)

	if _, found, err := s.GetResult(trip.KindPlan); err != nil || found {
		t.Fatalf("fresh store: found=%v err=%v", found, err)
	}

	res := session.StoredResult{
		Kind:    trip.KindPlan,
		Params:  trip.Params{Destination: "Paris", Budget: 1000, People: 2, Days: 3, GroupType: trip.GroupCouple},
		Raw:     json.RawMessage(`{"formParams":{"destination":"Paris"},"planData":{}}`),
		Weather: []trip.WeatherDay{{Day: "Mon", Temp: 20}},
	}
	if err := s.PutResult(res); err != nil {
		t.Fatal(err)
	}

	got, found, err := s.GetResult(trip.KindPlan)
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("stored result not found")
	}
	if got.Params.Destination != "Paris" {
		t.Errorf("params: got %+v", got.Params)
	}
	if string(got.Raw) != string(res.Raw) {
		t.Errorf("raw payload altered: %s", got.Raw)
	}
	if len(got.Weather) != 1 || got.Weather[0].Day != "Mon" {
		t.Errorf("weather snapshot: got %+v", got.Weather)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestResultsKeyedByKind(t *testing.T) {
	s := openStore(t)

	plan := session.StoredResult{Kind: trip.KindPlan, Raw: json.RawMessage(`{"p":1}`)}
	suggest := session.StoredResult{Kind: trip.KindSuggest, Raw: json.RawMessage(`{"s":1}`)}
	if err := s.PutResult(plan); err != nil {
		t.Fatal(err)
	}
	if err := s.PutResult(suggest); err != nil {
		t.Fatal(err)
	}

	gotPlan, _, _ := s.GetResult(trip.KindPlan)
	gotSuggest, _, _ := s.GetResult(trip.KindSuggest)
	if string(gotPlan.Raw) != `{"p":1}` || string(gotSuggest.Raw) != `{"s":1}` {
		t.Errorf("kinds crossed: plan=%s suggest=%s", gotPlan.Raw, gotSuggest.Raw)
	}

	// Overwrite replaces only the matching kind.
	if err := s.PutResult(session.StoredResult{Kind: trip.KindPlan, Raw: json.RawMessage(`{"p":2}`)}); err != nil {
		t.Fatal(err)
	}
	gotPlan, _, _ = s.GetResult(trip.KindPlan)
	gotSuggest, _, _ = s.GetResult(trip.KindSuggest)
	if string(gotPlan.Raw) != `{"p":2}` || string(gotSuggest.Raw) != `{"s":1}` {
		t.Errorf("overwrite leaked across kinds: plan=%s suggest=%s", gotPlan.Raw, gotSuggest.Raw)
	}
}

func TestClearResultsKeepsToken(t *testing.T) {
	s := openStore(t)

	if err := s.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.PutResult(session.StoredResult{Kind: trip.KindPlan, Raw: json.RawMessage(`{}`)}); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearResults(); err != nil {
		t.Fatal(err)
	}

	if _, found, _ := s.GetResult(trip.KindPlan); found {
		t.Error("plan result survived ClearResults")
	}
	if got := s.Token(); got != "tok" {
		t.Errorf("token lost by ClearResults: got %q", got)
	}
}

func TestReopenPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wander.db")
	s, err := session.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetToken("persisted"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s2, err := session.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	if got := s2.Token(); got != "persisted" {
		t.Errorf("token after reopen: got %q", got)
	}
}
