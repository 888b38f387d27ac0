package query

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	minPolygonPoints = 4
	minLinePoints    = 2
)

// Coordinate is a longitude/latitude pair in degrees.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Coord is shorthand for Coordinate{Lon: lon, Lat: lat}.
func Coord(lon, lat float64) Coordinate {
	return Coordinate{Lon: lon, Lat: lat}
}

func (c Coordinate) String() string {
	return formatFloat(c.Lon) + "," + formatFloat(c.Lat)
}

// stripSpace removes every whitespace rune; CMR rejects spaces in point values.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// pointValue validates a "lon,lat" string and returns its escaped wire form.
func pointValue(raw string) (string, error) {
	compact := stripSpace(raw)

	parts := strings.Split(compact, ",")
	if len(parts) != 2 {
		return "", newValidationError(ErrInvalidGeometry, ParamPoint, raw, "expected a single lon,lat pair")
	}
	for _, part := range parts {
		if _, err := strconv.ParseFloat(part, 64); err != nil {
			return "", newValidationError(ErrInvalidGeometry, ParamPoint, raw, "%q is not a number", part)
		}
	}

	return escape(compact), nil
}

// flatten joins coordinates as lon1,lat1,lon2,lat2,...
func flatten(coords []Coordinate) string {
	parts := make([]string, 0, len(coords))
	for _, c := range coords {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ",")
}

func polygonValue(coords []Coordinate) (string, error) {
	if len(coords) < minPolygonPoints {
		return "", newValidationError(ErrInvalidGeometry, ParamPolygon, flatten(coords),
			"a polygon needs at least %d points, got %d", minPolygonPoints, len(coords))
	}
	if coords[0] != coords[len(coords)-1] {
		return "", newValidationError(ErrInvalidGeometry, ParamPolygon, flatten(coords),
			"ring is not closed: first point %s, last point %s", coords[0], coords[len(coords)-1])
	}
	return flatten(coords), nil
}

func lineValue(coords []Coordinate) (string, error) {
	if len(coords) < minLinePoints {
		return "", newValidationError(ErrInvalidGeometry, ParamLine, flatten(coords),
			"a line needs at least %d points, got %d", minLinePoints, len(coords))
	}
	return flatten(coords), nil
}

func boundingBoxValue(llLon, llLat, urLon, urLat float64) string {
	return strings.Join([]string{
		formatFloat(llLon),
		formatFloat(llLat),
		formatFloat(urLon),
		formatFloat(urLat),
	}, ",")
}
