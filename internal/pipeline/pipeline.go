package pipeline

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"telecom-kpi/backend/internal/config"
	"telecom-kpi/backend/internal/domain"
	"telecom-kpi/backend/internal/logging"
	"telecom-kpi/backend/internal/metrics"
	"telecom-kpi/backend/internal/simulator"
	"telecom-kpi/backend/internal/store"
	"telecom-kpi/backend/internal/tracing"
)

type Options struct {
	Seed             uint64
	AlertProbability float64
	AlertSeverities  []domain.AlertSeverity
	Bias             simulator.BiasPolicy
	Now              func() time.Time
}

func OptionsFromConfig(cfg *config.Config) Options {
	sev := make([]domain.AlertSeverity, 0, len(cfg.AlertSeverities))
	for _, s := range cfg.AlertSeverities {
		sev = append(sev, domain.AlertSeverity(s))
	}
	return Options{
		Seed:             cfg.SimSeed,
		AlertProbability: cfg.AlertProbability,
		AlertSeverities:  sev,
		Bias:             simulator.BiasPolicy{Reclamp: cfg.StationBiasReclamp},
	}
}

// Pipeline loads the base snapshot and simulates a fresh live tick on every
// call. It holds no simulation state between calls and is safe for
// concurrent use when its loader is.
type Pipeline struct {
	loader  store.BaseLoader
	opts    Options
	metrics *metrics.Collector
	log     logging.Logger
}

func New(loader store.BaseLoader, opts Options, m *metrics.Collector, log logging.Logger) *Pipeline {
	if log == nil {
		log = logging.Noop()
	}
	return &Pipeline{loader: loader, opts: opts, metrics: m, log: log}
}

// StationView is a station's reference data with its biased KPI view.
type StationView struct {
	Station domain.BaseStation
	KPIs    map[string]domain.KPI
}

// Base loads the unsimulated snapshot.
func (p *Pipeline) Base(ctx context.Context) (domain.Snapshot, error) {
	ctx, span := tracing.Tracer().Start(ctx, "pipeline.load")
	defer span.End()
	span.SetAttributes(attribute.String("fixture.source", p.loader.Source()))

	snap, err := p.loader.Load(ctx)
	p.metrics.ObserveFixtureLoad(p.loader.Source(), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fixture load failed")
		logging.FromContext(ctx, p.log).Error(ctx, "base snapshot load failed",
			logging.String("source", p.loader.Source()),
			logging.Err(err),
		)
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// Live loads the base snapshot and simulates one tick from it.
func (p *Pipeline) Live(ctx context.Context) (domain.Snapshot, error) {
	base, err := p.Base(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return p.simulate(ctx, base), nil
}

func (p *Pipeline) KPI(ctx context.Context, name string) (domain.KPI, error) {
	live, err := p.Live(ctx)
	if err != nil {
		return domain.KPI{}, err
	}
	k, ok := live.NetworkKPIs[name]
	if !ok {
		return domain.KPI{}, &domain.NotFoundError{
			Kind:      domain.NotFoundKPI,
			Key:       name,
			Available: live.KPINames(),
		}
	}
	return k, nil
}

// Station resolves id against the base snapshot before simulating, so an
// unknown id never pays for a simulation.
func (p *Pipeline) Station(ctx context.Context, id string) (StationView, error) {
	base, err := p.Base(ctx)
	if err != nil {
		return StationView{}, err
	}

	station, ok := base.Station(id)
	if !ok {
		return StationView{}, &domain.NotFoundError{
			Kind:      domain.NotFoundStation,
			Key:       id,
			Available: base.StationIDs(),
		}
	}

	live := p.simulate(ctx, base)
	return StationView{
		Station: station,
		KPIs:    simulator.ApplyStationBias(station.Status, live.NetworkKPIs, p.opts.Bias),
	}, nil
}

func (p *Pipeline) simulate(ctx context.Context, base domain.Snapshot) domain.Snapshot {
	_, span := tracing.Tracer().Start(ctx, "pipeline.simulate")
	defer span.End()

	sim := p.newSimulator()
	live := sim.Simulate(base)

	statuses := make(map[string]string, len(live.NetworkKPIs))
	for name, k := range live.NetworkKPIs {
		statuses[name] = string(k.Status)
	}
	p.metrics.ObserveSimulation(sim.Stats().AlertsGenerated, statuses)

	span.SetAttributes(
		attribute.Int("kpis", len(live.NetworkKPIs)),
		attribute.Int("alerts.generated", sim.Stats().AlertsGenerated),
	)
	return live
}

func (p *Pipeline) newSimulator() *simulator.Simulator {
	opts := []simulator.Option{
		simulator.WithAlertProbability(p.opts.AlertProbability),
		simulator.WithAlertSeverities(p.opts.AlertSeverities...),
	}
	if p.opts.Now != nil {
		opts = append(opts, simulator.WithClock(p.opts.Now))
	}
	return simulator.New(simulator.NewRand(p.opts.Seed), opts...)
}
