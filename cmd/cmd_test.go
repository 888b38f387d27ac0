package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cmrquery/config"
	"github.com/s0up4200/cmrquery/query"
)

func parseSearchFlags(t *testing.T, granules bool, args ...string) map[string]any {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var f searchFlags
	f.register(fs, granules)
	require.NoError(t, fs.Parse(args))

	params, err := f.params(fs, granules)
	require.NoError(t, err)
	return params
}

func TestSearchFlags(t *testing.T) {
	t.Run("granule flags", func(t *testing.T) {
		params := parseSearchFlags(t, true,
			"--short-name=MOD09GA",
			"--point=-63.6,44.6",
			"--temporal", "2020-01-01T00:00:00Z,2020-01-31T00:00:00Z",
			"--day-night", "DAY",
			"--orbit", "1,2",
			"--cloud-cover", ",50",
			"--online-only",
		)

		encoded, err := query.NewGranuleQuery().Apply(params).Encode()
		require.NoError(t, err)
		assert.Equal(t,
			"cloud_cover=,50&day_night_flag=day&online_only=true&orbit_number=1%2C2&point=-63.6%2C44.6&short_name=MOD09GA&temporal[]=2020-01-01T00:00:00Z,2020-01-31T00:00:00Z",
			encoded)
	})

	t.Run("unset flags are omitted", func(t *testing.T) {
		params := parseSearchFlags(t, true, "--short-name", "MOD09GA")
		assert.Equal(t, map[string]any{query.ParamShortName: "MOD09GA"}, params)
	})

	t.Run("explicit false is kept", func(t *testing.T) {
		params := parseSearchFlags(t, false, "--downloadable=false")
		assert.Equal(t, false, params[query.ParamDownloadable])
	})

	t.Run("repeated temporal with exclude boundary", func(t *testing.T) {
		params := parseSearchFlags(t, false,
			"--temporal", "2016-01-01T00:00:00Z,2016-01-31T00:00:00Z",
			"--temporal", "2017-01-01T00:00:00Z,",
			"--exclude-boundary",
		)

		encoded, err := query.NewCollectionQuery().Apply(params).Encode()
		require.NoError(t, err)
		assert.Equal(t,
			"temporal[]=2016-01-01T00:00:00Z,2016-01-31T00:00:00Z&temporal[]=2017-01-01T00:00:00Z,&options[temporal][exclude_boundary]=true",
			encoded)
	})

	t.Run("exclude boundary without temporal", func(t *testing.T) {
		params := parseSearchFlags(t, false, "--exclude-boundary")
		_, err := query.NewCollectionQuery().Apply(params).Encode()
		assert.ErrorIs(t, err, query.ErrInvalidOption)
	})

	t.Run("granule flags rejected for collection queries", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		var f searchFlags
		f.register(fs, true)
		require.NoError(t, fs.Parse([]string{"--short-name", "MOD09GA", "--day-night", "day"}))

		_, err := f.params(fs, false)
		require.ErrorIs(t, err, query.ErrUnknownParameter)
		assert.Contains(t, err.Error(), "--day-night")
	})

	t.Run("exclude boundary false without temporal", func(t *testing.T) {
		params := parseSearchFlags(t, false, "--short-name", "MOD09GA", "--exclude-boundary=false")
		encoded, err := query.NewCollectionQuery().Apply(params).Encode()
		require.NoError(t, err)
		assert.Equal(t, "short_name=MOD09GA", encoded)
	})

	t.Run("collections have no granule flags", func(t *testing.T) {
		fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
		var f searchFlags
		f.register(fs, false)
		assert.Nil(t, fs.Lookup("cloud-cover"))
		assert.NotNil(t, fs.Lookup("where"))
	})
}

func TestParseOrbit(t *testing.T) {
	tests := []struct {
		in      string
		want    any
		wantErr bool
	}{
		{in: "12", want: 12},
		{in: "1, 5", want: []any{1, 5}},
		{in: "x", wantErr: true},
		{in: "1,2,3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseOrbit(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildPreset(t *testing.T) {
	t.Run("granules", func(t *testing.T) {
		q, err := buildPreset(config.Preset{
			Kind: "granules",
			Params: map[string]any{
				"short_name": "MOD09GA",
				"version":    "006",
				"point":      []any{44.6, -63.6},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, query.KindGranules, q.Kind())

		encoded, err := q.Encode()
		require.NoError(t, err)
		assert.Equal(t, "point=44.6%2C-63.6&short_name=MOD09GA&version=006", encoded)
	})

	t.Run("invalid state", func(t *testing.T) {
		_, err := buildPreset(config.Preset{
			Kind:   "granules",
			Params: map[string]any{"bounding_box": "-10,-10,10,10"},
		})
		assert.ErrorIs(t, err, query.ErrInvalidQueryState)
	})

	t.Run("unknown parameter", func(t *testing.T) {
		_, err := buildPreset(config.Preset{
			Kind:   "collections",
			Params: map[string]any{"cloud_cover": "1,2"},
		})
		assert.ErrorIs(t, err, query.ErrUnknownParameter)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := buildPreset(config.Preset{Kind: "services"})
		assert.Error(t, err)
	})
}

func TestWriteEntries(t *testing.T) {
	entries := []map[string]any{{"id": "G1", "cloud_cover": "12"}}

	t.Cleanup(func() { outputFormat = "json" })

	t.Run("json", func(t *testing.T) {
		outputFormat = "json"
		var buf bytes.Buffer
		require.NoError(t, writeEntries(&buf, entries))
		assert.JSONEq(t, `[{"id":"G1","cloud_cover":"12"}]`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		outputFormat = "yaml"
		var buf bytes.Buffer
		require.NoError(t, writeEntries(&buf, entries))
		assert.YAMLEq(t, "- id: G1\n  cloud_cover: \"12\"\n", buf.String())
	})

	t.Run("empty json is an array", func(t *testing.T) {
		outputFormat = "json"
		var buf bytes.Buffer
		require.NoError(t, writeEntries(&buf, nil))
		assert.JSONEq(t, `[]`, buf.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := newEncoder("xml", &bytes.Buffer{})
		assert.Error(t, err)
	})
}
