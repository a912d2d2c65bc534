package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value returns the sample of family name whose labels include all of
// labels, or -1 when absent.
func value(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	next:
		for _, metric := range fam.GetMetric() {
			got := make(map[string]string)
			for _, lp := range metric.GetLabel() {
				got[lp.GetName()] = lp.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue next
				}
			}
			switch {
			case metric.GetCounter() != nil:
				return metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				return metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				return float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return -1
}

func TestScanLifecycle(t *testing.T) {
	m := New()

	m.ScanStarted()
	assert.Equal(t, 1.0, value(t, m, "webble_scans_active", nil))

	m.ScanFinished("hci0", OutcomeMatched, 300*time.Millisecond)
	assert.Equal(t, 0.0, value(t, m, "webble_scans_active", nil))
	assert.Equal(t, 1.0, value(t, m, "webble_scans_total", map[string]string{"adapter": "hci0", "outcome": OutcomeMatched}))
	assert.Equal(t, 1.0, value(t, m, "webble_scan_duration_seconds", map[string]string{"outcome": OutcomeMatched}))
}

func TestSessionEnded(t *testing.T) {
	m := New()
	m.SessionEnded("hci0", OutcomeRejected)
	m.SessionEnded("hci0", OutcomeRejected)
	m.SessionEnded("hci0", OutcomeFailed)

	assert.Equal(t, 1.0, value(t, m, "webble_scans_total", map[string]string{"adapter": "hci0", "outcome": OutcomeFailed}))

	assert.Equal(t, 2.0, value(t, m, "webble_scans_total", map[string]string{"adapter": "hci0", "outcome": OutcomeRejected}))
}

func TestScanCommand(t *testing.T) {
	m := New()
	m.ScanCommand("hci0", "start", nil)
	m.ScanCommand("hci0", "stop", errors.New("radio gone"))

	assert.Equal(t, 1.0, value(t, m, "webble_scan_commands_total", map[string]string{"command": "start", "result": "ok"}))
	assert.Equal(t, 1.0, value(t, m, "webble_scan_commands_total", map[string]string{"command": "stop", "result": "error"}))
}

func TestIdentityCacheAndAvailability(t *testing.T) {
	m := New()
	m.IdentityCacheSize(7)
	m.AvailabilityQueried(true, nil)
	m.AvailabilityQueried(false, nil)
	m.AvailabilityQueried(false, errors.New("bus"))

	assert.Equal(t, 7.0, value(t, m, "webble_identity_cache_entries", nil))
	for _, result := range []string{"available", "unavailable", "error"} {
		assert.Equal(t, 1.0, value(t, m, "webble_availability_queries_total", map[string]string{"result": result}), result)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ScanStarted()
		m.ScanFinished("hci0", OutcomeFailed, time.Second)
		m.SessionEnded("hci0", OutcomeRejected)
		m.ScanCommand("hci0", "start", nil)
		m.IdentityCacheSize(1)
		m.AvailabilityQueried(true, nil)
	})
}

func TestHandlerServesExposition(t *testing.T) {
	m := New()
	m.IdentityCacheSize(3)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "webble_identity_cache_entries 3"))
}

func TestIndependentInstances(t *testing.T) {
	a, b := New(), New()
	a.IdentityCacheSize(1)
	b.IdentityCacheSize(2)

	assert.Equal(t, 1.0, value(t, a, "webble_identity_cache_entries", nil))
	assert.Equal(t, 2.0, value(t, b, "webble_identity_cache_entries", nil))
}
