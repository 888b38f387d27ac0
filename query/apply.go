package query

import (
	"math"
	"slices"
)

// apply routes named values to setters in sorted name order. Values have the
// shapes produced by YAML or JSON decoding: strings, bools, numbers and
// lists. route handles kind-specific names and reports whether it did.
//
// exclude_boundary is not a parameter of its own; it qualifies every
// temporal range given in the same map.
func (b *base[T]) apply(params map[string]any, route func(name string, value any) bool) T {
	excludeBoundary := false
	if raw, ok := params[OptionExcludeBoundary]; ok {
		flag, isBool := raw.(bool)
		if !isBool {
			b.mismatch(OptionExcludeBoundary, raw, "expected a boolean")
			return b.self
		}
		if _, hasTemporal := params[ParamTemporal]; flag && !hasTemporal {
			b.fail(newValidationError(ErrInvalidOption, OptionExcludeBoundary, raw, "requires %s", ParamTemporal))
			return b.self
		}
		excludeBoundary = flag
	}

	names := make([]string, 0, len(params))
	for name := range params {
		if name != OptionExcludeBoundary {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	for _, name := range names {
		if b.err != nil {
			break
		}
		value := params[name]
		if b.applyShared(name, value, excludeBoundary) {
			continue
		}
		if route != nil && route(name, value) {
			continue
		}
		b.fail(newValidationError(ErrUnknownParameter, name, value, "not supported for %s queries", b.kind))
	}
	return b.self
}

func (b *base[T]) applyShared(name string, value any, excludeBoundary bool) bool {
	switch name {
	case ParamPoint:
		if nums, ok := toFloats(value); ok {
			if len(nums) != 2 {
				b.fail(newValidationError(ErrInvalidGeometry, name, value, "expected [lon, lat], got %d values", len(nums)))
				return true
			}
			b.Point(Coord(nums[0], nums[1]).String())
			return true
		}
		s, ok := value.(string)
		if !ok {
			b.mismatch(name, value, "expected a lon,lat string or [lon, lat]")
			return true
		}
		b.Point(s)
	case ParamShortName, ParamVersion, ParamEntryTitle:
		s, ok := value.(string)
		if !ok {
			b.mismatch(name, value, "expected a string")
			return true
		}
		switch name {
		case ParamShortName:
			b.ShortName(s)
		case ParamVersion:
			b.Version(s)
		default:
			b.EntryTitle(s)
		}
	case ParamPolygon, ParamLine:
		coords, err := coordinatesValue(name, value)
		if err != nil {
			b.fail(err)
			return true
		}
		if name == ParamPolygon {
			b.Polygon(coords...)
		} else {
			b.Line(coords...)
		}
	case ParamBoundingBox:
		var nums []float64
		switch v := value.(type) {
		case string:
			llLon, llLat, urLon, urLat, err := ParseBoundingBox(v)
			if err != nil {
				b.fail(err)
				return true
			}
			nums = []float64{llLon, llLat, urLon, urLat}
		default:
			floats, ok := toFloats(value)
			if !ok || len(floats) != 4 {
				b.mismatch(name, value, "expected 4 numbers")
				return true
			}
			nums = floats
		}
		b.BoundingBox(nums[0], nums[1], nums[2], nums[3])
	case ParamTemporal:
		var ranges []string
		switch v := value.(type) {
		case string:
			ranges = []string{v}
		case []any:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					b.mismatch(name, value, "expected from,to strings")
					return true
				}
				ranges = append(ranges, s)
			}
		default:
			b.mismatch(name, value, "expected a from,to string or a list of them")
			return true
		}
		for _, r := range ranges {
			from, to, err := ParseTemporal(r)
			if err != nil {
				b.fail(err)
				return true
			}
			b.Temporal(from, to, excludeBoundary)
		}
	case ParamOnlineOnly, ParamDownloadable:
		flag, ok := value.(bool)
		if !ok {
			b.mismatch(name, value, "expected a boolean")
			return true
		}
		b.setBool(name, flag)
	default:
		return false
	}
	return true
}

func (b *base[T]) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *base[T]) mismatch(name string, value any, reason string) {
	b.fail(newValidationError(ErrTypeMismatch, name, value, "%s, got %T", reason, value))
}

// coordinatesValue accepts "lon,lat,...", a flat list of numbers, or a list
// of [lon, lat] pairs.
func coordinatesValue(name string, value any) ([]Coordinate, error) {
	if s, ok := value.(string); ok {
		return ParseCoordinates(s)
	}

	list, ok := value.([]any)
	if !ok {
		return nil, newValidationError(ErrTypeMismatch, name, value, "expected coordinates, got %T", value)
	}

	if nums, ok := toFloats(list); ok {
		if len(nums)%2 != 0 {
			return nil, newValidationError(ErrInvalidGeometry, name, value, "expected lon,lat pairs, got %d values", len(nums))
		}
		return pairUp(nums), nil
	}

	coords := make([]Coordinate, 0, len(list))
	for _, item := range list {
		pair, ok := toFloats(item)
		if !ok || len(pair) != 2 {
			return nil, newValidationError(ErrTypeMismatch, name, value, "expected [lon, lat] pairs")
		}
		coords = append(coords, Coord(pair[0], pair[1]))
	}
	return coords, nil
}

// rangeValue accepts "min,max" or a two element list whose items are numbers or null.
func rangeValue(name string, value any) (min, max *float64, err error) {
	if s, ok := value.(string); ok {
		return ParseFloatRange(name, s)
	}

	list, ok := value.([]any)
	if !ok || len(list) != 2 {
		return nil, nil, newValidationError(ErrTypeMismatch, name, value, "expected [min, max], got %T", value)
	}

	bounds := make([]*float64, 2)
	for i, item := range list {
		if item == nil {
			continue
		}
		f, ok := toFloat(item)
		if !ok {
			return nil, nil, newValidationError(ErrTypeMismatch, name, value, "bounds must be numbers")
		}
		bounds[i] = &f
	}
	return bounds[0], bounds[1], nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

func toFloats(v any) ([]float64, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	nums := make([]float64, 0, len(list))
	for _, item := range list {
		f, ok := toFloat(item)
		if !ok {
			return nil, false
		}
		nums = append(nums, f)
	}
	return nums, true
}

// toNumbers returns list items unchanged when every item is numeric.
func toNumbers(v any) ([]any, bool) {
	list, ok := v.([]any)
	if !ok {
		return nil, false
	}
	if _, numeric := toFloats(list); !numeric {
		return nil, false
	}
	return list, true
}
