package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/cmrquery/query"
)

var (
	urlFlags       searchFlags
	urlCollections bool
)

var urlCmd = &cobra.Command{
	Use:   "url",
	Short: "Print the search URL for a query without running it",
	Long: `Print the search URL for a query without running it. Accepts the
granules flags, or the collection flags with --collections.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := urlFlags.params(cmd.Flags(), !urlCollections)
		if err != nil {
			return err
		}

		var q query.Request
		if urlCollections {
			q = query.NewCollectionQuery().Apply(params)
		} else {
			q = query.NewGranuleQuery().Apply(params)
		}

		u, err := client.URL(q)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), u)
		return err
	},
}

func init() {
	urlFlags.register(urlCmd.Flags(), true)
	urlCmd.Flags().BoolVar(&urlCollections, "collections", false, "build a collection query instead of a granule query")
	_ = urlCmd.Flags().MarkHidden("where")
}
