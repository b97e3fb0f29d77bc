package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telecom-kpi/backend/internal/config"
	"telecom-kpi/backend/internal/domain"
	"telecom-kpi/backend/internal/logging"
	"telecom-kpi/backend/internal/metrics"
)

type stubLoader struct {
	snap  domain.Snapshot
	err   error
	loads int
}

func (s *stubLoader) Source() string { return "stub" }

func (s *stubLoader) Load(context.Context) (domain.Snapshot, error) {
	s.loads++
	if s.err != nil {
		return domain.Snapshot{}, s.err
	}
	// Hand out a deep enough copy that callers cannot alias the stub.
	out := s.snap
	out.NetworkKPIs = domain.CloneKPIs(s.snap.NetworkKPIs)
	out.RegionalPerformance = append([]domain.RegionPerformance(nil), s.snap.RegionalPerformance...)
	out.BaseStations = append([]domain.BaseStation(nil), s.snap.BaseStations...)
	out.Alerts = append([]domain.Alert(nil), s.snap.Alerts...)
	return out, nil
}

func baseSnapshot() domain.Snapshot {
	return domain.Snapshot{
		NetworkKPIs: map[string]domain.KPI{
			domain.KPIActiveUsers:         {Current: 1000000, Unit: "users", Threshold: 1000000, Trend: []float64{990000, 1000000}, Status: domain.StatusGood},
			domain.KPILatency:             {Current: 50, Unit: "ms", Threshold: 80, Trend: []float64{49, 50}, Status: domain.StatusGood},
			domain.KPICallDropRate:        {Current: 1.2, Unit: "%", Threshold: 2, Trend: []float64{1.1, 1.2}, Status: domain.StatusGood},
			domain.KPINetworkAvailability: {Current: 99.7, Unit: "%", Threshold: 99.5, Trend: []float64{99.6, 99.7}, Status: domain.StatusGood},
		},
		RegionalPerformance: []domain.RegionPerformance{
			{Region: "North", CallDropRate: 1.1, Availability: 99.8, Throughput: 48.5},
		},
		BaseStations: []domain.BaseStation{
			{ID: "BS002", Name: "Tower B", Status: domain.StationOperational},
			{ID: "BS001", Name: "Tower A", Status: domain.StationMaintenance},
		},
		Alerts: []domain.Alert{
			{Severity: domain.SeverityInfo, Message: "All systems operating normally", Timestamp: "2024-01-15T10:30:00.000Z"},
		},
	}
}

func newTestPipeline(t *testing.T, l *stubLoader) (*Pipeline, *metrics.Collector) {
	t.Helper()
	m, err := metrics.New(prometheus.NewRegistry())
	require.NoError(t, err)
	opts := Options{
		Seed:             42,
		AlertProbability: 1,
		Now:              func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}
	return New(l, opts, m, logging.Noop()), m
}

func TestLiveSimulatesFromBase(t *testing.T) {
	l := &stubLoader{snap: baseSnapshot()}
	p, m := newTestPipeline(t, l)

	live, err := p.Live(context.Background())
	require.NoError(t, err)

	assert.Len(t, live.NetworkKPIs, 4)
	for name, k := range live.NetworkKPIs {
		assert.Len(t, k.Trend, 2, name)
		assert.Equal(t, k.Current, k.Trend[len(k.Trend)-1], name)
	}
	require.Len(t, live.Alerts, 2)
	assert.Equal(t, "2025-03-01T12:00:00.000Z", live.Alerts[0].Timestamp)
	assert.Equal(t, baseSnapshot().BaseStations, live.BaseStations)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FixtureLoads.WithLabelValues("stub", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Simulations))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsGenerated))
}

func TestLiveIsDeterministicForSeed(t *testing.T) {
	p, _ := newTestPipeline(t, &stubLoader{snap: baseSnapshot()})

	first, err := p.Live(context.Background())
	require.NoError(t, err)
	second, err := p.Live(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBaseIsNotSimulated(t *testing.T) {
	p, m := newTestPipeline(t, &stubLoader{snap: baseSnapshot()})

	base, err := p.Base(context.Background())
	require.NoError(t, err)

	assert.Equal(t, baseSnapshot(), base)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Simulations))
}

func TestKPI(t *testing.T) {
	p, _ := newTestPipeline(t, &stubLoader{snap: baseSnapshot()})

	k, err := p.KPI(context.Background(), domain.KPILatency)
	require.NoError(t, err)
	assert.Equal(t, "ms", k.Unit)
	assert.GreaterOrEqual(t, k.Current, 10.0)
	assert.LessOrEqual(t, k.Current, 100.0)

	_, err = p.KPI(context.Background(), "foo")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.NotFoundKPI, nf.Kind)
	assert.Equal(t, "foo", nf.Key)
	assert.Equal(t, []string{
		domain.KPIActiveUsers,
		domain.KPICallDropRate,
		domain.KPILatency,
		domain.KPINetworkAvailability,
	}, nf.Available)
}

func TestStation(t *testing.T) {
	t.Run("maintenance bias is applied", func(t *testing.T) {
		p, _ := newTestPipeline(t, &stubLoader{snap: baseSnapshot()})
		view, err := p.Station(context.Background(), "BS001")
		require.NoError(t, err)

		assert.Equal(t, "Tower A", view.Station.Name)
		users := view.KPIs[domain.KPIActiveUsers]
		// One step moves active users by at most 2000 before the bias.
		assert.GreaterOrEqual(t, users.Current, 998000*0.6-1e-6)
		assert.LessOrEqual(t, users.Current, 1002000*0.6+1e-6)
	})

	t.Run("biased view matches the live tick", func(t *testing.T) {
		p, _ := newTestPipeline(t, &stubLoader{snap: baseSnapshot()})
		live, err := p.Live(context.Background())
		require.NoError(t, err)

		view, err := p.Station(context.Background(), "BS001")
		require.NoError(t, err)
		assert.InDelta(t, live.NetworkKPIs[domain.KPIActiveUsers].Current*0.6, view.KPIs[domain.KPIActiveUsers].Current, 1e-6)
		assert.InDelta(t, live.NetworkKPIs[domain.KPINetworkAvailability].Current-2, view.KPIs[domain.KPINetworkAvailability].Current, 1e-9)
		assert.Equal(t, live.NetworkKPIs[domain.KPILatency], view.KPIs[domain.KPILatency])
	})

	t.Run("unknown id lists stations in fixture order without simulating", func(t *testing.T) {
		p, m := newTestPipeline(t, &stubLoader{snap: baseSnapshot()})
		_, err := p.Station(context.Background(), "BS999")

		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.NotFoundStation, nf.Kind)
		assert.Equal(t, []string{"BS002", "BS001"}, nf.Available)
		assert.Equal(t, 0.0, testutil.ToFloat64(m.Simulations))
	})
}

func TestLoadFailure(t *testing.T) {
	l := &stubLoader{err: domain.BadFixture("data.json", errors.New("no such file"))}
	p, m := newTestPipeline(t, l)

	_, err := p.Live(context.Background())
	assert.ErrorIs(t, err, domain.ErrBadFixture)

	_, err = p.KPI(context.Background(), domain.KPILatency)
	assert.ErrorIs(t, err, domain.ErrBadFixture)

	_, err = p.Station(context.Background(), "BS001")
	assert.ErrorIs(t, err, domain.ErrBadFixture)

	assert.Equal(t, 3, l.loads)
	assert.Equal(t, 3.0, testutil.ToFloat64(m.FixtureLoads.WithLabelValues("stub", "error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.Simulations))
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{
		SimSeed:            7,
		AlertProbability:   0.5,
		AlertSeverities:    []string{"warning"},
		StationBiasReclamp: true,
	}
	opts := OptionsFromConfig(cfg)

	assert.Equal(t, uint64(7), opts.Seed)
	assert.Equal(t, 0.5, opts.AlertProbability)
	assert.Equal(t, []domain.AlertSeverity{domain.SeverityWarning}, opts.AlertSeverities)
	assert.True(t, opts.Bias.Reclamp)
	assert.Nil(t, opts.Now)
}
