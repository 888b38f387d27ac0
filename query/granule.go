package query

import (
	"strconv"
	"strings"
)

// DayNight values accepted by DayNightFlag.
const (
	Day         = "day"
	Night       = "night"
	Unspecified = "unspecified"
)

// GranuleQuery searches granules. Spatial filters must be combined with a
// short name or entry title.
type GranuleQuery struct {
	base[*GranuleQuery]
}

// NewGranuleQuery returns an empty granule query.
func NewGranuleQuery() *GranuleQuery {
	q := &GranuleQuery{}
	q.base = newBase(q, KindGranules, requireCollectionForSpatial)
	return q
}

// OrbitNumber filters by a single orbit.
func (q *GranuleQuery) OrbitNumber(orbit int) *GranuleQuery {
	return q.do(func() error {
		q.params.Set(ParamOrbitNumber, strconv.Itoa(orbit))
		return nil
	})
}

// OrbitRange filters by an inclusive range of orbits.
func (q *GranuleQuery) OrbitRange(start, end int) *GranuleQuery {
	return q.do(func() error {
		q.params.Set(ParamOrbitNumber, escape(strconv.Itoa(start)+","+strconv.Itoa(end)))
		return nil
	})
}

// DayNightFlag filters by acquisition time of day: day, night or unspecified
// in any case.
func (q *GranuleQuery) DayNightFlag(flag string) *GranuleQuery {
	if flag == "" {
		return q
	}
	return q.do(func() error {
		normalized := strings.ToLower(flag)
		switch normalized {
		case Day, Night, Unspecified:
		default:
			return newValidationError(ErrInvalidEnumValue, ParamDayNightFlag, flag,
				"must be one of %s, %s or %s", Day, Night, Unspecified)
		}
		q.params.Set(ParamDayNightFlag, normalized)
		return nil
	})
}

// CloudCover filters by percentage cloud cover. Either bound may be nil but
// not both.
func (q *GranuleQuery) CloudCover(min, max *float64) *GranuleQuery {
	return q.do(func() error {
		v, err := floatRange(ParamCloudCover, min, max)
		if err != nil {
			return err
		}
		q.params.Set(ParamCloudCover, v)
		return nil
	})
}

// Instrument filters by instrument short name.
func (q *GranuleQuery) Instrument(instrument string) *GranuleQuery {
	return q.setString(ParamInstrument, instrument)
}

// Platform filters by platform short name.
func (q *GranuleQuery) Platform(platform string) *GranuleQuery {
	return q.setString(ParamPlatform, platform)
}

// GranuleUR filters by granule universal reference.
func (q *GranuleQuery) GranuleUR(ur string) *GranuleQuery {
	return q.setString(ParamGranuleUR, ur)
}

// Apply sets parameters by name from decoded YAML or JSON. Names are applied
// in sorted order. Ranges and coordinates may be given as "a,b" strings or
// as lists; exclude_boundary qualifies the temporal ranges in the same map.
func (q *GranuleQuery) Apply(params map[string]any) *GranuleQuery {
	return q.apply(params, q.applyGranule)
}

func (q *GranuleQuery) applyGranule(name string, value any) bool {
	switch name {
	case ParamOrbitNumber:
		if n, ok := toInt(value); ok {
			q.OrbitNumber(n)
			return true
		}
		pair, ok := toNumbers(value)
		if !ok || len(pair) != 2 {
			q.mismatch(name, value, "expected an integer or a [start, end] pair")
			return true
		}
		start, okStart := toInt(pair[0])
		end, okEnd := toInt(pair[1])
		if !okStart || !okEnd {
			q.mismatch(name, value, "orbit numbers must be integers")
			return true
		}
		q.OrbitRange(start, end)
	case ParamDayNightFlag:
		s, ok := value.(string)
		if !ok {
			q.mismatch(name, value, "expected a string")
			return true
		}
		q.DayNightFlag(s)
	case ParamCloudCover:
		min, max, err := rangeValue(name, value)
		if err != nil {
			q.fail(err)
			return true
		}
		q.CloudCover(min, max)
	case ParamInstrument, ParamPlatform, ParamGranuleUR:
		s, ok := value.(string)
		if !ok {
			q.mismatch(name, value, "expected a string")
			return true
		}
		q.setString(name, s)
	default:
		return false
	}
	return true
}

// Float returns a pointer to f, for optional range bounds.
func Float(f float64) *float64 {
	return &f
}

func floatRange(field string, min, max *float64) (string, error) {
	if min == nil && max == nil {
		return "", newValidationError(ErrInvalidRange, field, nil, "at least one of min or max is required")
	}
	if min != nil && max != nil && *min > *max {
		return "", newValidationError(ErrInvalidRange, field, formatFloat(*min)+","+formatFloat(*max),
			"min must not be greater than max")
	}

	var lo, hi string
	if min != nil {
		lo = formatFloat(*min)
	}
	if max != nil {
		hi = formatFloat(*max)
	}
	return lo + "," + hi, nil
}
