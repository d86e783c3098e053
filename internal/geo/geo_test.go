package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/arjunvn/sahaya/internal/faults"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in      string
		wantLat float64
		wantLon float64
	}{
		{"12.01,12.01", 12.01, 12.01},
		{"-33.86, 151.21", -33.86, 151.21},
		{"0,0", 0, 0},
		{" 51.5 , -0.12 ", 51.5, -0.12},
	}
	for _, tt := range tests {
		got, err := ParseLocation(tt.in)
		if err != nil {
			t.Errorf("ParseLocation(%q) error: %v", tt.in, err)
			continue
		}
		if got.Lat != tt.wantLat || got.Lon != tt.wantLon {
			t.Errorf("ParseLocation(%q) = %v, want (%v,%v)", tt.in, got, tt.wantLat, tt.wantLon)
		}
	}
}

func TestParseLocation_Malformed(t *testing.T) {
	for _, in := range []string{"", "12.01", "12.01;12.01", "abc,12", "12,xyz", "1,2,3"} {
		_, err := ParseLocation(in)
		if err == nil {
			t.Errorf("ParseLocation(%q) succeeded, want error", in)
			continue
		}
		if !errors.Is(err, faults.ErrValidation) {
			t.Errorf("ParseLocation(%q) error = %v, want ErrValidation", in, err)
		}
	}
}

func TestDistance(t *testing.T) {
	a := Coordinate{Lat: 0, Lon: 0}
	b := Coordinate{Lat: 3, Lon: 4}
	if got := Distance(a, b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Distance(b, b); got != 0 {
		t.Errorf("Distance to self = %v, want 0", got)
	}
}

func TestNearest_Empty(t *testing.T) {
	if id, ok := Nearest(Coordinate{}, nil); ok {
		t.Errorf("Nearest on empty set returned %q, want none", id)
	}
}

func TestNearest_PicksClosest(t *testing.T) {
	target := Coordinate{Lat: 12.01, Lon: 12.01}
	candidates := []Candidate{
		{ID: "vol-near", At: Coordinate{Lat: 12.00, Lon: 12.00}},
		{ID: "vol-far", At: Coordinate{Lat: 13.00, Lon: 13.00}},
	}
	id, ok := Nearest(target, candidates)
	if !ok {
		t.Fatal("Nearest returned none")
	}
	if id != "vol-near" {
		t.Errorf("Nearest = %q, want vol-near", id)
	}

	// Sanity-check the distances the scenario relies on.
	near := Distance(target, candidates[0].At)
	far := Distance(target, candidates[1].At)
	if math.Abs(near-0.01414) > 0.001 {
		t.Errorf("near distance = %v, want ≈0.014", near)
	}
	if math.Abs(far-1.4001) > 0.01 {
		t.Errorf("far distance = %v, want ≈1.40", far)
	}
}

func TestNearest_TieKeepsFirst(t *testing.T) {
	target := Coordinate{Lat: 0, Lon: 0}
	candidates := []Candidate{
		{ID: "vol-a", At: Coordinate{Lat: 1, Lon: 0}},
		{ID: "vol-b", At: Coordinate{Lat: 0, Lon: 1}},
		{ID: "vol-c", At: Coordinate{Lat: -1, Lon: 0}},
	}
	id, _ := Nearest(target, candidates)
	if id != "vol-a" {
		t.Errorf("tie broke to %q, want first-scanned vol-a", id)
	}
}

func TestCoordinate_String(t *testing.T) {
	c := Coordinate{Lat: 12.5, Lon: -77.25}
	if got := c.String(); got != "12.5,-77.25" {
		t.Errorf("String() = %q", got)
	}
}
