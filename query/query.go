package query

import (
	"fmt"
	"strconv"
)

// Parameter names as sent to CMR.
const (
	ParamShortName    = "short_name"
	ParamVersion      = "version"
	ParamEntryTitle   = "entry_title"
	ParamPoint        = "point"
	ParamPolygon      = "polygon"
	ParamLine         = "line"
	ParamBoundingBox  = "bounding_box"
	ParamTemporal     = "temporal"
	ParamOnlineOnly   = "online_only"
	ParamDownloadable = "downloadable"
	ParamOrbitNumber  = "orbit_number"
	ParamDayNightFlag = "day_night_flag"
	ParamCloudCover   = "cloud_cover"
	ParamInstrument   = "instrument"
	ParamPlatform     = "platform"
	ParamGranuleUR    = "granule_ur"

	// OptionExcludeBoundary excludes the range endpoints from temporal matches.
	OptionExcludeBoundary = "exclude_boundary"
)

// Kind identifies the searchable resource a query targets.
type Kind string

const (
	KindGranules    Kind = "granules"
	KindCollections Kind = "collections"
)

// Endpoint returns the search path for the kind, relative to the search root.
func (k Kind) Endpoint() string {
	return string(k) + ".json"
}

// Request is a query ready to be handed to an executor.
type Request interface {
	Kind() Kind
	Encode() (string, error)
}

// base holds the state and setters shared by every resource kind. T is the
// concrete builder so chained calls keep their type.
type base[T any] struct {
	self   T
	kind   Kind
	params *Params
	err    error
	check  func(*Params) error
}

func newBase[T any](self T, kind Kind, check func(*Params) error) base[T] {
	return base[T]{
		self:   self,
		kind:   kind,
		params: NewParams(),
		check:  check,
	}
}

// do runs a validated write unless an earlier setter failed.
func (b *base[T]) do(write func() error) T {
	if b.err != nil {
		return b.self
	}
	if err := write(); err != nil {
		b.err = err
	}
	return b.self
}

// Kind returns the resource kind.
func (b *base[T]) Kind() Kind {
	return b.kind
}

// Params exposes the accumulated parameters.
func (b *base[T]) Params() *Params {
	return b.params
}

// Err returns the first validation error recorded by a setter. Once set,
// later setters are ignored and Encode fails with it.
func (b *base[T]) Err() error {
	return b.err
}

// Validate checks query-level constraints that span several parameters.
func (b *base[T]) Validate() error {
	if b.err != nil {
		return b.err
	}
	if b.check == nil {
		return nil
	}
	return b.check(b.params)
}

// Encode validates the query and renders its query string.
func (b *base[T]) Encode() (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	return Encode(b.params), nil
}

// String renders the query for logs.
func (b *base[T]) String() string {
	return fmt.Sprintf("%s?%s", b.kind.Endpoint(), Encode(b.params))
}

// ShortName filters by collection short name.
func (b *base[T]) ShortName(name string) T {
	return b.setString(ParamShortName, name)
}

// Version filters by collection version.
func (b *base[T]) Version(version string) T {
	return b.setString(ParamVersion, version)
}

// EntryTitle filters by collection entry title.
func (b *base[T]) EntryTitle(title string) T {
	if title == "" {
		return b.self
	}
	return b.do(func() error {
		b.params.Set(ParamEntryTitle, escape(title))
		return nil
	})
}

// Point filters by a "lon,lat" location. Whitespace is ignored.
func (b *base[T]) Point(point string) T {
	if point == "" {
		return b.self
	}
	return b.do(func() error {
		v, err := pointValue(point)
		if err != nil {
			return err
		}
		b.params.Set(ParamPoint, v)
		return nil
	})
}

// Polygon filters by a closed ring of at least four points.
func (b *base[T]) Polygon(coords ...Coordinate) T {
	if len(coords) == 0 {
		return b.self
	}
	return b.do(func() error {
		v, err := polygonValue(coords)
		if err != nil {
			return err
		}
		b.params.Set(ParamPolygon, v)
		return nil
	})
}

// Line filters by a line of at least two points.
func (b *base[T]) Line(coords ...Coordinate) T {
	if len(coords) == 0 {
		return b.self
	}
	return b.do(func() error {
		v, err := lineValue(coords)
		if err != nil {
			return err
		}
		b.params.Set(ParamLine, v)
		return nil
	})
}

// BoundingBox filters by a lower-left / upper-right rectangle.
func (b *base[T]) BoundingBox(llLon, llLat, urLon, urLat float64) T {
	return b.do(func() error {
		b.params.Set(ParamBoundingBox, boundingBoxValue(llLon, llLat, urLon, urLat))
		return nil
	})
}

// Temporal adds a time range. Either bound may be absent for an open range,
// and repeated calls add further ranges. excludeBoundary applies to every
// range of the query; the last call that sets it decides its value.
func (b *base[T]) Temporal(from, to DateInput, excludeBoundary bool) T {
	if from.IsAbsent() && to.IsAbsent() {
		return b.self
	}
	return b.do(func() error {
		v, err := temporalRange(from, to)
		if err != nil {
			return err
		}
		b.params.Append(ParamTemporal, v)

		if _, recorded := b.params.Option(ParamTemporal, OptionExcludeBoundary); excludeBoundary || recorded {
			return b.params.SetOption(ParamTemporal, OptionExcludeBoundary, excludeBoundary)
		}
		return nil
	})
}

// OnlineOnly restricts results to granules available online.
func (b *base[T]) OnlineOnly(online bool) T {
	return b.setBool(ParamOnlineOnly, online)
}

// Downloadable restricts results to downloadable granules.
func (b *base[T]) Downloadable(downloadable bool) T {
	return b.setBool(ParamDownloadable, downloadable)
}

func (b *base[T]) setString(name, value string) T {
	if value == "" {
		return b.self
	}
	return b.do(func() error {
		b.params.Set(name, value)
		return nil
	})
}

func (b *base[T]) setBool(name string, value bool) T {
	return b.do(func() error {
		b.params.Set(name, strconv.FormatBool(value))
		return nil
	})
}

// requireCollectionForSpatial rejects spatial filters without a collection
// identifier; CMR refuses unscoped spatial granule searches.
func requireCollectionForSpatial(p *Params) error {
	if p.Has(ParamShortName) || p.Has(ParamEntryTitle) {
		return nil
	}
	for _, name := range []string{ParamPoint, ParamPolygon, ParamLine, ParamBoundingBox} {
		if p.Has(name) {
			return newValidationError(ErrInvalidQueryState, name, nil,
				"spatial filters require %s or %s", ParamShortName, ParamEntryTitle)
		}
	}
	return nil
}
