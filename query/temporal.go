package query

import (
	"fmt"
	"time"
)

// TimeLayout is the canonical CMR timestamp: UTC, second precision.
// Fixed width and zero padded, so string order equals chronological order.
const TimeLayout = "2006-01-02T15:04:05Z"

type dateKind uint8

const (
	dateAbsent dateKind = iota
	dateISO
	dateTime
)

// DateInput is one bound of a temporal range. The zero value is an absent
// bound, which leaves that side of the range open.
type DateInput struct {
	kind dateKind
	iso  string
	at   time.Time
}

// Absent returns an open bound.
func Absent() DateInput {
	return DateInput{}
}

// ISO wraps a timestamp already formatted as YYYY-MM-DDTHH:MM:SSZ.
// An empty string is an absent bound.
func ISO(s string) DateInput {
	if s == "" {
		return DateInput{}
	}
	return DateInput{kind: dateISO, iso: s}
}

// At wraps a time value. The zero time is an absent bound.
func At(t time.Time) DateInput {
	if t.IsZero() {
		return DateInput{}
	}
	return DateInput{kind: dateTime, at: t}
}

// Date builds a UTC bound from its fields.
func Date(year int, month time.Month, day, hour, min, sec int) DateInput {
	return At(time.Date(year, month, day, hour, min, sec, 0, time.UTC))
}

// IsAbsent reports whether the bound is open.
func (d DateInput) IsAbsent() bool {
	return d.kind == dateAbsent
}

// Canonical returns the bound in TimeLayout, or "" when absent.
func (d DateInput) Canonical() (string, error) {
	switch d.kind {
	case dateAbsent:
		return "", nil
	case dateTime:
		return d.at.UTC().Format(TimeLayout), nil
	case dateISO:
		// time.Parse also accepts fractional seconds; only an exact round trip is canonical
		t, err := time.Parse(TimeLayout, d.iso)
		if err != nil || t.Format(TimeLayout) != d.iso {
			return "", fmt.Errorf("%q is not formatted as %s", d.iso, TimeLayout)
		}
		return d.iso, nil
	default:
		return "", fmt.Errorf("unknown date input kind %d", d.kind)
	}
}

// String returns the canonical form, or the raw text if it does not parse.
func (d DateInput) String() string {
	s, err := d.Canonical()
	if err != nil {
		return d.iso
	}
	return s
}

// temporalRange validates a pair of bounds and returns the "from,to" wire value.
func temporalRange(from, to DateInput) (string, error) {
	start, err := from.Canonical()
	if err != nil {
		return "", newValidationError(ErrInvalidDateFormat, ParamTemporal, from.iso, "%v", err)
	}
	end, err := to.Canonical()
	if err != nil {
		return "", newValidationError(ErrInvalidDateFormat, ParamTemporal, to.iso, "%v", err)
	}

	if start != "" && end != "" && start > end {
		return "", newValidationError(ErrInvalidRange, ParamTemporal, start+","+end, "start must not be later than end")
	}

	return start + "," + end, nil
}
