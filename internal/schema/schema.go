// Package schema defines the column layout and value bounds for
// crash-prediction CSV data.
//
// The schema is fixed at compile time: the map pipeline that consumes these
// files expects exactly this shape, so it is deliberately not configurable.
package schema

import "sort"

// Column names recognized in a crash-prediction CSV header.
const (
	// ColLatitude holds the predicted hot spot latitude in decimal degrees.
	ColLatitude = "lat"
	// ColLongitude holds the predicted hot spot longitude in decimal degrees.
	ColLongitude = "lon"
	// ColProbability holds the crash probability as a fraction in [0, 1].
	ColProbability = "probability"
	// ColHour holds the hour of day as an integer in [0, 23].
	ColHour = "hour"
	// ColLocationName holds an optional human-readable place name.
	ColLocationName = "location_name"
)

// Global bounds. Values outside these ranges are invalid anywhere on Earth.
const (
	LatMin = -90.0
	LatMax = 90.0
	LonMin = -180.0
	LonMax = 180.0

	ProbabilityMin = 0.0
	ProbabilityMax = 1.0

	HourMin = 0
	HourMax = 23
)

// Virginia bounding box. Coordinates outside this box are plausible data but
// unexpected for a Virginia map, so they warrant a warning rather than an
// error.
const (
	RegionLatMin = 36.5
	RegionLatMax = 39.5
	RegionLonMin = -83.7
	RegionLonMax = -75.2
)

// Required returns the columns every crash-prediction CSV must declare.
func Required() []string {
	return []string{ColLatitude, ColLongitude, ColProbability, ColHour}
}

// Optional returns the columns a crash-prediction CSV may declare.
func Optional() []string {
	return []string{ColLocationName}
}

// Missing returns the required columns absent from header, sorted by name.
// Columns in header that the schema does not know are ignored.
func Missing(header []string) []string {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		seen[name] = true
	}

	var missing []string
	for _, name := range Required() {
		if !seen[name] {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}
