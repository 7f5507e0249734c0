package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dstrand/wander/internal/api"
	"github.com/dstrand/wander/internal/trip"
)

// newClient builds a client against a test server with a generous rate so
// tests never block on the limiter.
func newClient(srv *httptest.Server, token string) *api.Client {
	return api.NewClient(srv.URL, api.StaticToken(token), 5*time.Second, 100, false)
}

// ─── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type: got %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostForm.Get("username") != "ana@example.com" || r.PostForm.Get("password") != "hunter2" {
			t.Errorf("credentials not form-encoded: %v", r.PostForm)
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	}))
	defer srv.Close()

	token, err := newClient(srv, "").Login(context.Background(), "ana@example.com", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if token != "tok-123" {
		t.Errorf("token: got %q", token)
	}
}

func TestLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
	}))
	defer srv.Close()

	_, err := newClient(srv, "").Login(context.Background(), "ana@example.com", "wrong")
	var authErr *api.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %T: %v", err, err)
	}
	if authErr.Message != "Incorrect email or password" {
		t.Errorf("message: got %q", authErr.Message)
	}
}

func TestRegisterValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Email already registered"})
	}))
	defer srv.Close()

	err := newClient(srv, "").Register(context.Background(), "Ana", "ana@example.com", "hunter2")
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Status != http.StatusBadRequest || verr.Message != "Email already registered" {
		t.Errorf("got status=%d message=%q", verr.Status, verr.Message)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-abc" {
			t.Errorf("Authorization: got %q", got)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("X-Request-ID header missing")
		}
		json.NewEncoder(w).Encode(api.User{ID: "u1", Name: "Ana", Email: "ana@example.com"})
	}))
	defer srv.Close()

	u, err := newClient(srv, "tok-abc").CurrentUser(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if u.Name != "Ana" {
		t.Errorf("user: got %+v", u)
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := newClient(srv, "")
	srv.Close()

	_, err := c.CurrentUser(context.Background())
	var netErr *api.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T: %v", err, err)
	}
}

// ─── Generation ───────────────────────────────────────────────────────────────

func TestCreatePlanWireShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/plans" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req["destination"] != "Paris" || req["group_type"] != "couple" {
			t.Errorf("request body: %v", req)
		}
		// Body comes back raw, even when string-encoded.
		w.Write([]byte(`{"plan":"{\"itinerary\":[]}"}`))
	}))
	defer srv.Close()

	body, err := newClient(srv, "tok").CreatePlan(context.Background(), trip.Params{
		Destination: "Paris", Budget: 1000, People: 2, Days: 3, GroupType: trip.GroupCouple,
	})
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != `{"plan":"{\"itinerary\":[]}"}` {
		t.Errorf("raw body altered: %s", body)
	}
}

func TestCreateSuggestionsWireShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/suggestions" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req["location"] != "Berlin" {
			t.Errorf("request body: %v", req)
		}
		w.Write([]byte(`{"suggestions":{}}`))
	}))
	defer srv.Close()

	if _, err := newClient(srv, "tok").CreateSuggestions(context.Background(), trip.Params{
		Location: "Berlin", Budget: 800, People: 4, Days: 3, GroupType: trip.GroupFriends,
	}); err != nil {
		t.Fatal(err)
	}
}

// ─── Weather & Places ─────────────────────────────────────────────────────────

func TestFetchWeatherSentinelOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	report := newClient(srv, "").FetchWeather(context.Background(), "Paris", 3)
	if !report.Failed() {
		t.Fatal("expected failed report")
	}
	if report.Err != "Could not load weather data" {
		t.Errorf("sentinel message: got %q", report.Err)
	}
}

func TestFetchWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather/Paris" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("days"); got != "3" {
			t.Errorf("days query: got %q", got)
		}
		w.Write([]byte(`{"list":[{"dt":1780315200,"main":{"temp":20,"temp_min":15,"temp_max":24,"humidity":55},"weather":[{"description":"clear sky","icon":"01d"}]}]}`))
	}))
	defer srv.Close()

	report := newClient(srv, "").FetchWeather(context.Background(), "Paris", 3)
	if report.Failed() {
		t.Fatalf("unexpected failure: %s", report.Err)
	}
	if len(report.Days) != 1 || report.Days[0].Temp != 20 {
		t.Errorf("days: got %+v", report.Days)
	}
}

func TestFetchPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("section"); got != "all" {
			t.Errorf("section query: got %q", got)
		}
		w.Write([]byte(`{"restaurants":[{"name":"Trattoria"}],"hotels":[]}`))
	}))
	defer srv.Close()

	report := newClient(srv, "").FetchPlaces(context.Background(), "Rome", 5)
	if report.Failed() {
		t.Fatalf("unexpected failure: %s", report.Err)
	}
	if len(report.Result.Restaurants) != 1 {
		t.Errorf("restaurants: got %+v", report.Result.Restaurants)
	}
}

// ─── Trips ────────────────────────────────────────────────────────────────────

func TestFetchTripNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Trip not found"})
	}))
	defer srv.Close()

	_, err := newClient(srv, "tok").FetchTrip(context.Background(), "missing")
	var nfErr *api.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nfErr.Message != "Trip not found" {
		t.Errorf("message: got %q", nfErr.Message)
	}
}

func TestListTrips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trips" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"t1","trip_type":"plan","destination":"Paris","data":{"planData":{}}}]`))
	}))
	defer srv.Close()

	records, err := newClient(srv, "tok").ListTrips(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ID != "t1" || records[0].TripType != "plan" {
		t.Errorf("records: got %+v", records)
	}
}

func TestDeleteTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/trips/t1" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"message":"deleted"}`))
	}))
	defer srv.Close()

	if err := newClient(srv, "tok").DeleteTrip(context.Background(), "t1"); err != nil {
		t.Fatal(err)
	}
}

func TestSaveTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/trips/save" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req["trip_type"] != "plan" || req["destination"] != "Paris" {
			t.Errorf("request body: %v", req)
		}
		if _, ok := req["data"]; !ok {
			t.Error("data field missing from save payload")
		}
		if _, ok := req["location"]; ok {
			t.Error("empty location must be omitted")
		}
		w.Write([]byte(`{"id":"t9"}`))
	}))
	defer srv.Close()

	err := newClient(srv, "tok").SaveTrip(context.Background(), trip.KindPlan, trip.Params{
		Destination: "Paris", Budget: 1000, People: 2, Days: 3, GroupType: trip.GroupCouple,
	}, map[string]any{"formParams": map[string]any{}})
	if err != nil {
		t.Fatal(err)
	}
}

// ─── Validation message parsing ───────────────────────────────────────────────

func TestFieldErrorListMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":[{"loc":["body","budget"],"msg":"ensure this value is greater than 0"}]}`))
	}))
	defer srv.Close()

	_, err := newClient(srv, "tok").CreatePlan(context.Background(), trip.Params{Destination: "Paris"})
	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Message != "ensure this value is greater than 0" {
		t.Errorf("message: got %q", verr.Message)
	}
}
