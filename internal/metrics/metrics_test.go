package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()

	a.JobsScheduled.Inc()
	a.Deliveries.WithLabelValues("delivered").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.JobsScheduled))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.JobsScheduled))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.ItemsReceived.WithLabelValues("photo").Add(2)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `affiliate_bot_items_received_total{kind="photo"} 2`)
}
