// Package simulator derives a plausible next-tick snapshot from a base
// snapshot: bounded random walks for KPIs and regional metrics, status
// reclassification, and probabilistic alert rotation.
//
// A Simulator owns its random generator and is not safe for concurrent use.
// Build one per request.
package simulator

import (
	"math/rand/v2"
	"time"

	"telecom-kpi/backend/internal/domain"
)

var DefaultAlertMessages = []string{
	"Minor network congestion detected in South region",
	"All systems operating normally",
	"Peak traffic hour - monitoring closely",
	"Scheduled maintenance completed successfully",
	"Network optimization in progress",
}

var DefaultAlertSeverities = []domain.AlertSeverity{domain.SeverityInfo, domain.SeverityWarning}

const DefaultAlertProbability = 0.3

type Simulator struct {
	rng              *rand.Rand
	now              func() time.Time
	alertProbability float64
	severities       []domain.AlertSeverity
	messages         []string
	stats            Stats
}

// Stats counts what a Simulator has done since it was built.
type Stats struct {
	Ticks           int
	AlertsGenerated int
}

type Option func(*Simulator)

// WithAlertProbability sets the chance that a tick synthesizes a new alert.
func WithAlertProbability(p float64) Option {
	return func(s *Simulator) {
		s.alertProbability = p
	}
}

func WithAlertSeverities(sev ...domain.AlertSeverity) Option {
	return func(s *Simulator) {
		if len(sev) > 0 {
			s.severities = append([]domain.AlertSeverity(nil), sev...)
		}
	}
}

func WithAlertMessages(msgs ...string) Option {
	return func(s *Simulator) {
		if len(msgs) > 0 {
			s.messages = append([]string(nil), msgs...)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Simulator) {
		if now != nil {
			s.now = now
		}
	}
}

func New(rng *rand.Rand, opts ...Option) *Simulator {
	s := &Simulator{
		rng:              rng,
		now:              time.Now,
		alertProbability: DefaultAlertProbability,
		severities:       DefaultAlertSeverities,
		messages:         DefaultAlertMessages,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRand returns a PCG-backed generator. A zero seed draws a fresh one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Simulate builds a new snapshot one tick ahead of base. base is not
// modified and shares no slices or maps with the result.
func (s *Simulator) Simulate(base domain.Snapshot) domain.Snapshot {
	s.stats.Ticks++
	return domain.Snapshot{
		NetworkKPIs:         s.SimulateKPIs(base.NetworkKPIs),
		RegionalPerformance: s.SimulateRegions(base.RegionalPerformance),
		BaseStations:        append([]domain.BaseStation{}, base.BaseStations...),
		Alerts:              s.RotateAlerts(base.Alerts),
	}
}

func (s *Simulator) Stats() Stats { return s.stats }

func (s *Simulator) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}
