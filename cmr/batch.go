package cmr

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/cmrquery/query"
)

// ExecuteAll runs queries concurrently, bounded by WithConcurrency. Results
// are returned in input order. The first failure cancels requests still in
// flight and is returned.
func (c *Client) ExecuteAll(ctx context.Context, queries ...query.Request) ([]Response, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	// Reject invalid queries before sending any of them
	for i, q := range queries {
		if _, err := c.URL(q); err != nil {
			return nil, fmt.Errorf("query %d: invalid %s query: %w", i, q.Kind(), err)
		}
	}

	results := make([]Response, len(queries))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, q := range queries {
		g.Go(func() error {
			resp, err := c.Execute(ctx, q)
			if err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("queries", len(queries)).Msg("Executed CMR queries")
	return results, nil
}
