// Package geo ranks stores by great-circle distance from a query point.
package geo

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	// EarthRadiusKm is the mean Earth radius used by Distance.
	EarthRadiusKm = 6371.0

	DefaultRadiusKm = 50.0
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Query is a point and the search radius around it, in kilometres.
type Query struct {
	Point
	RadiusKm float64
}

// Locatable is anything that may carry coordinates.
type Locatable interface {
	Coordinates() (lat, lng *float64)
}

// Ranked pairs an item with its rounded distance to the query point.
type Ranked[T Locatable] struct {
	Item       T
	DistanceKm float64
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Distance returns the haversine distance in kilometres.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dlat := radians(lat2 - lat1)
	dlng := radians(lng2 - lng1)

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParseQuery reads raw lat, lng and radius parameters. ok is false when
// either coordinate is missing or not a number; callers then skip geo
// filtering entirely. A missing, unparsable or non-positive radius falls
// back to DefaultRadiusKm.
func ParseQuery(lat, lng, radius string) (Query, bool) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || math.IsNaN(la) || math.IsInf(la, 0) {
		return Query{}, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil || math.IsNaN(lo) || math.IsInf(lo, 0) {
		return Query{}, false
	}

	r, err := strconv.ParseFloat(strings.TrimSpace(radius), 64)
	if err != nil || r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		r = DefaultRadiusKm
	}

	return Query{Point: Point{Lat: la, Lng: lo}, RadiusKm: r}, true
}

// Rank keeps the items with both coordinates whose distance is within the
// radius, ordered nearest first with the distance rounded to 0.1 km. Ties
// on the rounded distance keep their input order.
func Rank[T Locatable](items []T, q Query) []Ranked[T] {
	out := make([]Ranked[T], 0, len(items))
	for _, it := range items {
		lat, lng := it.Coordinates()
		if lat == nil || lng == nil {
			continue
		}

		d := Distance(q.Lat, q.Lng, *lat, *lng)
		if d <= q.RadiusKm {
			out = append(out, Ranked[T]{Item: it, DistanceKm: Round1(d)})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})

	return out
}
