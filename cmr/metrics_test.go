package cmr

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/cmrquery/query"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/granules.json" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{}`))
	}, WithMetrics(reg))

	ctx := context.Background()
	_, err := client.Execute(ctx, query.NewCollectionQuery())
	require.NoError(t, err)
	_, err = client.Execute(ctx, query.NewCollectionQuery())
	require.NoError(t, err)
	_, err = client.Execute(ctx, query.NewGranuleQuery().ShortName("X"))
	require.Error(t, err)

	server.Close()
	_, err = client.Execute(ctx, query.NewGranuleQuery().ShortName("X"))
	require.Error(t, err)

	m := client.metrics
	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("collections", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("granules", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("granules", "error")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observe(query.KindGranules, 200, time.Millisecond)
	})
}
