// Package geo provides coordinate parsing and the nearest-candidate scan
// used to pick one volunteer per category.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/arjunvn/sahaya/internal/faults"
)

// Coordinate is a (latitude, longitude) pair in decimal degrees. No range
// validation is applied; values are used as-is.
type Coordinate struct {
	Lat float64
	Lon float64
}

// ParseLocation parses a "lat,lon" decimal string. A missing comma or a
// non-numeric component fails the request rather than defaulting to (0,0).
func ParseLocation(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("geo: location %q is not \"lat,lon\": %w", s, faults.ErrValidation)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("geo: latitude %q: %w", parts[0], faults.ErrValidation)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("geo: longitude %q: %w", parts[1], faults.ErrValidation)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// String renders the coordinate back to "lat,lon" form.
func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Distance is the planar Euclidean distance between two coordinates,
// computed over raw decimal degrees. This is a deliberate approximation:
// a degree of longitude shrinks away from the equator, so results are only
// roughly proportional to ground distance. Candidate sets are small and
// local, which is all the contract asks for.
func Distance(a, b Coordinate) float64 {
	return math.Sqrt((b.Lat-a.Lat)*(b.Lat-a.Lat) + (b.Lon-a.Lon)*(b.Lon-a.Lon))
}

// Candidate pairs an opaque id with its coordinate for a nearest scan.
type Candidate struct {
	ID string
	At Coordinate
}

// Nearest returns the id of the candidate closest to target, scanning in
// slice order so exact-distance ties keep the first candidate seen. Returns
// ("", false) for an empty set. O(n); no spatial index.
func Nearest(target Coordinate, candidates []Candidate) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	best := candidates[0].ID
	bestDist := Distance(target, candidates[0].At)
	for _, c := range candidates[1:] {
		if d := Distance(target, c.At); d < bestDist {
			best = c.ID
			bestDist = d
		}
	}
	return best, true
}
