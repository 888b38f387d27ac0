package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/s0up4200/cmrquery/cmr"
	"github.com/s0up4200/cmrquery/filter"
	"github.com/s0up4200/cmrquery/query"
)

// searchFlags holds the query flags shared by the search commands
type searchFlags struct {
	shortName       string
	version         string
	entryTitle      string
	point           string
	polygon         string
	line            string
	boundingBox     string
	temporal        []string
	excludeBoundary bool
	onlineOnly      bool
	downloadable    bool
	where           string

	// granules only
	orbit      string
	dayNight   string
	cloudCover string
	instrument string
	platform   string
	granuleUR  string
}

// granuleOnlyFlags are registered for granule queries only
var granuleOnlyFlags = []string{"orbit", "day-night", "cloud-cover", "instrument", "platform", "granule-ur"}

var (
	granuleFlags    searchFlags
	collectionFlags searchFlags
)

var granulesCmd = &cobra.Command{
	Use:   "granules",
	Short: "Search granules",
	Long: `Search granules. Spatial filters require --short-name or --entry-title.

Examples:
  cmrquery granules --short-name MOD09GA --version 006 --point -63.6,44.6
  cmrquery granules --short-name MOD09GA --temporal 2020-01-01T00:00:00Z,2020-01-31T00:00:00Z --day-night day`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := granuleFlags.params(cmd.Flags(), true)
		if err != nil {
			return err
		}
		return runSearch(cmd, query.NewGranuleQuery().Apply(params), granuleFlags.where)
	},
}

var collectionsCmd = &cobra.Command{
	Use:   "collections",
	Short: "Search collections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := collectionFlags.params(cmd.Flags(), false)
		if err != nil {
			return err
		}
		return runSearch(cmd, query.NewCollectionQuery().Apply(params), collectionFlags.where)
	},
}

func init() {
	granuleFlags.register(granulesCmd.Flags(), true)
	collectionFlags.register(collectionsCmd.Flags(), false)
}

func (f *searchFlags) register(flags *pflag.FlagSet, granules bool) {
	flags.StringVar(&f.shortName, "short-name", "", "collection short name")
	flags.StringVar(&f.version, "version", "", "collection version")
	flags.StringVar(&f.entryTitle, "entry-title", "", "collection entry title")
	flags.StringVar(&f.point, "point", "", "point as lon,lat")
	flags.StringVar(&f.polygon, "polygon", "", "closed polygon as lon1,lat1,lon2,lat2,...")
	flags.StringVar(&f.line, "line", "", "line as lon1,lat1,lon2,lat2,...")
	flags.StringVar(&f.boundingBox, "bounding-box", "", "bounding box as ll_lon,ll_lat,ur_lon,ur_lat")
	flags.StringArrayVar(&f.temporal, "temporal", nil, "temporal range as from,to; repeatable, either side may be empty")
	flags.BoolVar(&f.excludeBoundary, "exclude-boundary", false, "exclude the temporal range boundaries")
	flags.BoolVar(&f.onlineOnly, "online-only", false, "only online entries")
	flags.BoolVar(&f.downloadable, "downloadable", false, "only downloadable entries")
	flags.StringVarP(&f.where, "where", "w", "", "filter expression applied to returned entries")

	if !granules {
		return
	}
	flags.StringVar(&f.orbit, "orbit", "", "orbit number, or start,end")
	flags.StringVar(&f.dayNight, "day-night", "", "day, night or unspecified")
	flags.StringVar(&f.cloudCover, "cloud-cover", "", "cloud cover range as min,max; either side may be empty")
	flags.StringVar(&f.instrument, "instrument", "", "instrument short name")
	flags.StringVar(&f.platform, "platform", "", "platform short name")
	flags.StringVar(&f.granuleUR, "granule-ur", "", "granule UR")
}

// params converts the flags that were set into named query parameters
func (f *searchFlags) params(flags *pflag.FlagSet, granules bool) (map[string]any, error) {
	params := make(map[string]any)

	setString := func(flag, name, value string) {
		if flags.Changed(flag) {
			params[name] = value
		}
	}
	setBool := func(flag, name string, value bool) {
		if flags.Changed(flag) {
			params[name] = value
		}
	}

	setString("short-name", query.ParamShortName, f.shortName)
	setString("version", query.ParamVersion, f.version)
	setString("entry-title", query.ParamEntryTitle, f.entryTitle)
	setString("point", query.ParamPoint, f.point)
	setString("polygon", query.ParamPolygon, f.polygon)
	setString("line", query.ParamLine, f.line)
	setString("bounding-box", query.ParamBoundingBox, f.boundingBox)
	setBool("online-only", query.ParamOnlineOnly, f.onlineOnly)
	setBool("downloadable", query.ParamDownloadable, f.downloadable)

	if len(f.temporal) > 0 {
		ranges := make([]any, len(f.temporal))
		for i, r := range f.temporal {
			ranges[i] = r
		}
		params[query.ParamTemporal] = ranges
	}
	setBool("exclude-boundary", query.OptionExcludeBoundary, f.excludeBoundary)

	if !granules {
		for _, name := range granuleOnlyFlags {
			if flags.Lookup(name) != nil && flags.Changed(name) {
				return nil, fmt.Errorf("%w: --%s applies to granule queries only", query.ErrUnknownParameter, name)
			}
		}
		return params, nil
	}

	setString("day-night", query.ParamDayNightFlag, f.dayNight)
	setString("cloud-cover", query.ParamCloudCover, f.cloudCover)
	setString("instrument", query.ParamInstrument, f.instrument)
	setString("platform", query.ParamPlatform, f.platform)
	setString("granule-ur", query.ParamGranuleUR, f.granuleUR)

	if flags.Changed("orbit") {
		orbit, err := parseOrbit(f.orbit)
		if err != nil {
			return nil, err
		}
		params[query.ParamOrbitNumber] = orbit
	}

	return params, nil
}

// parseOrbit accepts "N" or "start,end"
func parseOrbit(s string) (any, error) {
	parts := strings.Split(s, ",")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid --orbit %q: expected N or start,end", s)
	}

	nums := make([]any, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid --orbit %q: %w", s, err)
		}
		nums[i] = n
	}
	if len(nums) == 1 {
		return nums[0], nil
	}
	return nums, nil
}

// runSearch executes a single query and prints its entries, optionally filtered
func runSearch(cmd *cobra.Command, q query.Request, where string) error {
	var compiled filter.CompiledFilter
	if where != "" {
		var err error
		compiled, err = filters.Compile(where)
		if err != nil {
			return fmt.Errorf("invalid --where expression: %w", err)
		}
	}

	ctx := cmd.Context()
	logger.Info().Str("kind", string(q.Kind())).Msg("Searching CMR")

	resp, err := client.Execute(ctx, q)
	if err != nil {
		return err
	}

	entries := cmr.Entries(resp)
	if compiled != nil {
		entries, err = filters.Apply(ctx, compiled, entries)
		if err != nil {
			return err
		}
	}

	logger.Info().Int("entries", len(entries)).Msg("Search complete")
	return writeEntries(cmd.OutOrStdout(), entries)
}
