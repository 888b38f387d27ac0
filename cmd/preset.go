package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cmrquery/cmr"
	"github.com/s0up4200/cmrquery/config"
	"github.com/s0up4200/cmrquery/query"
)

var presetCmd = &cobra.Command{
	Use:   "preset NAME...",
	Short: "Run queries defined as presets in the config file",
	Long: `Run one or more named presets from the config file concurrently.

Example config:
  presets:
    modis-halifax:
      kind: granules
      where: num(cloud_cover) < 20
      params:
        short_name: MOD09GA
        version: "006"
        point: [-63.6, 44.6]
        temporal: ["2020-01-01T00:00:00Z,2020-01-31T00:00:00Z"]`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPresets,
}

func runPresets(cmd *cobra.Command, args []string) error {
	queries := make([]query.Request, 0, len(args))
	for _, name := range args {
		preset, ok := cfg.Preset(name)
		if !ok {
			return fmt.Errorf("preset '%s' not found", name)
		}
		q, err := buildPreset(preset)
		if err != nil {
			return fmt.Errorf("preset '%s': %w", name, err)
		}
		queries = append(queries, q)
	}

	ctx := cmd.Context()
	results, err := client.ExecuteAll(ctx, queries...)
	if err != nil {
		return err
	}

	var entries []map[string]any
	for i, name := range args {
		matches := cmr.Entries(results[i])
		if f, ok := filters.GetFilter(name); ok {
			if matches, err = filters.Apply(ctx, f, matches); err != nil {
				return fmt.Errorf("preset '%s': %w", name, err)
			}
		}
		logger.Info().Str("preset", name).Int("entries", len(matches)).Msg("Preset complete")
		entries = append(entries, matches...)
	}

	return writeEntries(cmd.OutOrStdout(), entries)
}

// buildPreset turns a preset into a validated query
func buildPreset(p config.Preset) (query.Request, error) {
	var q query.Request
	switch query.Kind(p.Kind) {
	case query.KindGranules:
		q = query.NewGranuleQuery().Apply(p.Params)
	case query.KindCollections:
		q = query.NewCollectionQuery().Apply(p.Params)
	default:
		return nil, fmt.Errorf("unknown kind %q", p.Kind)
	}

	if _, err := q.Encode(); err != nil {
		return nil, err
	}
	return q, nil
}
