package query

import (
	"strconv"
	"strings"
)

// ParseCoordinates reads "lon1,lat1,lon2,lat2,..." into coordinates.
func ParseCoordinates(s string) ([]Coordinate, error) {
	nums, err := parseFloats("coordinates", s)
	if err != nil {
		return nil, err
	}
	if len(nums)%2 != 0 {
		return nil, newValidationError(ErrInvalidGeometry, "coordinates", s, "expected lon,lat pairs, got %d values", len(nums))
	}
	return pairUp(nums), nil
}

// ParseBoundingBox reads "llLon,llLat,urLon,urLat".
func ParseBoundingBox(s string) (llLon, llLat, urLon, urLat float64, err error) {
	nums, err := parseFloats(ParamBoundingBox, s)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if len(nums) != 4 {
		return 0, 0, 0, 0, newValidationError(ErrInvalidGeometry, ParamBoundingBox, s, "expected 4 values, got %d", len(nums))
	}
	return nums[0], nums[1], nums[2], nums[3], nil
}

// ParseTemporal reads "from,to" where either side may be empty.
func ParseTemporal(s string) (from, to DateInput, err error) {
	parts := strings.Split(stripSpace(s), ",")
	if len(parts) != 2 {
		return Absent(), Absent(), newValidationError(ErrInvalidDateFormat, ParamTemporal, s, "expected from,to")
	}
	return ISO(parts[0]), ISO(parts[1]), nil
}

// ParseFloatRange reads "min,max" where either side may be empty.
func ParseFloatRange(field, s string) (min, max *float64, err error) {
	parts := strings.Split(stripSpace(s), ",")
	if len(parts) != 2 {
		return nil, nil, newValidationError(ErrInvalidRange, field, s, "expected min,max")
	}

	bounds := make([]*float64, 2)
	for i, part := range parts {
		if part == "" {
			continue
		}
		f, perr := strconv.ParseFloat(part, 64)
		if perr != nil {
			return nil, nil, newValidationError(ErrTypeMismatch, field, s, "%q is not a number", part)
		}
		bounds[i] = &f
	}
	return bounds[0], bounds[1], nil
}

func parseFloats(field, s string) ([]float64, error) {
	compact := stripSpace(s)
	if compact == "" {
		return nil, nil
	}

	parts := strings.Split(compact, ",")
	nums := make([]float64, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, newValidationError(ErrInvalidGeometry, field, s, "%q is not a number", part)
		}
		nums = append(nums, f)
	}
	return nums, nil
}

func pairUp(nums []float64) []Coordinate {
	coords := make([]Coordinate, 0, len(nums)/2)
	for i := 0; i+1 < len(nums); i += 2 {
		coords = append(coords, Coord(nums[i], nums[i+1]))
	}
	return coords
}
