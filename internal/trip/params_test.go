package trip_test

import (
	"strings"
	"testing"

	"github.com/dstrand/wander/internal/trip"
)

func TestParamsValidate(t *testing.T) {
	valid := trip.Params{
		Destination: "Paris",
		Budget:      1000,
		People:      2,
		Days:        3,
		GroupType:   trip.GroupCouple,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	// Location alone satisfies the place requirement.
	loc := valid
	loc.Destination = ""
	loc.Location = "Berlin"
	if err := loc.Validate(); err != nil {
		t.Fatalf("location-only params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*trip.Params)
		want   string
	}{
		{"no place", func(p *trip.Params) { p.Destination = "" }, "destination or starting location"},
		{"zero budget", func(p *trip.Params) { p.Budget = 0 }, "budget must be greater than"},
		{"negative budget", func(p *trip.Params) { p.Budget = -50 }, "budget must be greater than"},
		{"zero people", func(p *trip.Params) { p.People = 0 }, "people must be at least"},
		{"zero days", func(p *trip.Params) { p.Days = 0 }, "days must be at least"},
		{"bad group type", func(p *trip.Params) { p.GroupType = "commune" }, "grouptype must be one of"},
	}
	for _, tc := range cases {
		p := valid
		tc.mutate(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: message %q missing %q", tc.name, err.Error(), tc.want)
		}
	}
}
