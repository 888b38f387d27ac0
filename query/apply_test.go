package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGranuleApply(t *testing.T) {
	q := NewGranuleQuery().Apply(map[string]any{
		"short_name":       "MOD09GA",
		"version":          "006",
		"temporal":         []any{"2016-10-10T01:02:03Z,2016-10-12T09:08:07Z"},
		"exclude_boundary": true,
		"online_only":      true,
		"cloud_cover":      []any{5, 10},
		"orbit_number":     []any{1, 2},
	})

	encoded, err := q.Encode()
	require.NoError(t, err)
	assert.Equal(t,
		"cloud_cover=5,10&online_only=true&orbit_number=1%2C2&short_name=MOD09GA&temporal[]=2016-10-10T01:02:03Z,2016-10-12T09:08:07Z&version=006&options[temporal][exclude_boundary]=true",
		encoded)
}

func TestApplyValueShapes(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]any
		param  string
		want   string
	}{
		{
			name:   "point as list",
			params: map[string]any{"point": []any{-63.6, 44.6}},
			param:  ParamPoint,
			want:   "-63.6%2C44.6",
		},
		{
			name:   "polygon as pairs",
			params: map[string]any{"polygon": []any{[]any{0, 0}, []any{1, 0}, []any{1, 1}, []any{0, 0}}},
			param:  ParamPolygon,
			want:   "0,0,1,0,1,1,0,0",
		},
		{
			name:   "polygon as flat list",
			params: map[string]any{"polygon": []any{0, 0, 1.5, 0, 1.5, 1, 0, 0}},
			param:  ParamPolygon,
			want:   "0,0,1.5,0,1.5,1,0,0",
		},
		{
			name:   "line as string",
			params: map[string]any{"line": "0,0, 1,1"},
			param:  ParamLine,
			want:   "0,0,1,1",
		},
		{
			name:   "bounding box as string",
			params: map[string]any{"bounding_box": "-10,-5,10,5"},
			param:  ParamBoundingBox,
			want:   "-10,-5,10,5",
		},
		{
			name:   "bounding box as list",
			params: map[string]any{"bounding_box": []any{-10, -5.5, 10, 5.5}},
			param:  ParamBoundingBox,
			want:   "-10,-5.5,10,5.5",
		},
		{
			name:   "single orbit",
			params: map[string]any{"orbit_number": 12},
			param:  ParamOrbitNumber,
			want:   "12",
		},
		{
			name:   "cloud cover string with open side",
			params: map[string]any{"cloud_cover": ",30"},
			param:  ParamCloudCover,
			want:   ",30",
		},
		{
			name:   "cloud cover list with null",
			params: map[string]any{"cloud_cover": []any{nil, 30.5}},
			param:  ParamCloudCover,
			want:   ",30.5",
		},
		{
			name:   "day night flag normalized",
			params: map[string]any{"day_night_flag": "NIGHT"},
			param:  ParamDayNightFlag,
			want:   "night",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewGranuleQuery().Apply(tt.params)
			require.NoError(t, q.Err())
			assert.Equal(t, tt.want, scalar(t, q.Params(), tt.param))
		})
	}
}

func TestApplyErrors(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]any
		wantErr error
	}{
		{name: "online only as string", params: map[string]any{"online_only": "yes"}, wantErr: ErrTypeMismatch},
		{name: "downloadable as int", params: map[string]any{"downloadable": 1}, wantErr: ErrTypeMismatch},
		{name: "version as number", params: map[string]any{"version": 6}, wantErr: ErrTypeMismatch},
		{name: "day night flag as number", params: map[string]any{"day_night_flag": 1}, wantErr: ErrTypeMismatch},
		{name: "day night flag outside set", params: map[string]any{"day_night_flag": "dusk"}, wantErr: ErrInvalidEnumValue},
		{name: "orbit as float", params: map[string]any{"orbit_number": 1.5}, wantErr: ErrTypeMismatch},
		{name: "orbit out of int range", params: map[string]any{"orbit_number": 1e20}, wantErr: ErrTypeMismatch},
		{name: "orbit range out of int range", params: map[string]any{"orbit_number": []any{1, -1e20}}, wantErr: ErrTypeMismatch},
		{name: "temporal as number", params: map[string]any{"temporal": 2016}, wantErr: ErrTypeMismatch},
		{name: "temporal reversed", params: map[string]any{"temporal": "2017-01-01T00:00:00Z,2016-01-01T00:00:00Z"}, wantErr: ErrInvalidRange},
		{name: "temporal malformed", params: map[string]any{"temporal": "2016"}, wantErr: ErrInvalidDateFormat},
		{name: "exclude boundary without temporal", params: map[string]any{"exclude_boundary": true}, wantErr: ErrInvalidOption},
		{name: "exclude boundary as string", params: map[string]any{"exclude_boundary": "true", "temporal": ",2016-01-01T00:00:00Z"}, wantErr: ErrTypeMismatch},
		{name: "cloud cover reversed", params: map[string]any{"cloud_cover": []any{10, 5}}, wantErr: ErrInvalidRange},
		{name: "cloud cover text", params: map[string]any{"cloud_cover": "low,high"}, wantErr: ErrTypeMismatch},
		{name: "point with three values", params: map[string]any{"point": []any{1, 2, 3}}, wantErr: ErrInvalidGeometry},
		{name: "point as number", params: map[string]any{"point": 44.6}, wantErr: ErrTypeMismatch},
		{name: "odd coordinate count", params: map[string]any{"line": []any{0, 0, 1}}, wantErr: ErrInvalidGeometry},
		{name: "unknown parameter", params: map[string]any{"sort_key": "start_date"}, wantErr: ErrUnknownParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewGranuleQuery().Apply(tt.params)
			require.ErrorIs(t, q.Err(), tt.wantErr)
		})
	}
}

func TestApplyExcludeBoundaryFalseWithoutTemporal(t *testing.T) {
	q := NewCollectionQuery().Apply(map[string]any{
		"short_name":       "MOD09GA",
		"exclude_boundary": false,
	})

	encoded, err := q.Encode()
	require.NoError(t, err)
	assert.Equal(t, "short_name=MOD09GA", encoded)
}

func TestCollectionApplyRejectsGranuleParameters(t *testing.T) {
	q := NewCollectionQuery().Apply(map[string]any{
		"short_name":   "MOD09GA",
		"orbit_number": 5,
	})

	require.ErrorIs(t, q.Err(), ErrUnknownParameter)
	assert.Contains(t, q.Err().Error(), "collections")
}

func TestParseHelpers(t *testing.T) {
	coords, err := ParseCoordinates("1,2, 3,4")
	require.NoError(t, err)
	assert.Equal(t, []Coordinate{Coord(1, 2), Coord(3, 4)}, coords)

	_, err = ParseCoordinates("1,2,3")
	require.ErrorIs(t, err, ErrInvalidGeometry)

	_, _, _, _, err = ParseBoundingBox("1,2,3")
	require.ErrorIs(t, err, ErrInvalidGeometry)

	from, to, err := ParseTemporal("2016-01-01T00:00:00Z,")
	require.NoError(t, err)
	assert.False(t, from.IsAbsent())
	assert.True(t, to.IsAbsent())

	_, _, err = ParseTemporal("2016-01-01T00:00:00Z")
	require.ErrorIs(t, err, ErrInvalidDateFormat)

	min, max, err := ParseFloatRange(ParamCloudCover, "5,")
	require.NoError(t, err)
	require.NotNil(t, min)
	assert.Nil(t, max)
	assert.Equal(t, 5.0, *min)
}
