package simulator

import (
	"sort"

	"telecom-kpi/backend/internal/domain"
)

// SimulateKPIs advances every KPI by one step. Names are visited in sorted
// order so a seeded generator always yields the same result.
func (s *Simulator) SimulateKPIs(base map[string]domain.KPI) map[string]domain.KPI {
	out := make(map[string]domain.KPI, len(base))

	names := make([]string, 0, len(base))
	for name := range base {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		out[name] = s.StepKPI(name, base[name])
	}
	return out
}

// StepKPI perturbs, clamps, rounds, slides the trend window and
// reclassifies a single KPI.
func (s *Simulator) StepKPI(name string, k domain.KPI) domain.KPI {
	rule := domain.RuleFor(name)

	v := s.perturb(rule.Delta, k.Current)
	v = rule.Clamp.Clamp(v)
	v = domain.Round(v, rule.Places)

	return domain.KPI{
		Current:   v,
		Unit:      k.Unit,
		Threshold: k.Threshold,
		Trend:     slide(k.Trend, v),
		Status:    domain.Classify(v, k.Threshold, rule.Polarity),
	}
}

func (s *Simulator) perturb(d domain.Delta, current float64) float64 {
	switch d.Kind {
	case domain.IntegerStep:
		spread := int(d.Spread)
		return current + float64(s.rng.IntN(2*spread+1)-spread)
	case domain.RealStep:
		return current + s.uniform(-d.Spread, d.Spread)
	default:
		return current * (1 + s.uniform(-d.Spread, d.Spread))
	}
}

// slide drops the oldest sample and appends v, keeping the window length.
// An empty window stays empty.
func slide(trend []float64, v float64) []float64 {
	if len(trend) == 0 {
		return []float64{}
	}
	out := make([]float64, len(trend))
	copy(out, trend[1:])
	out[len(out)-1] = v
	return out
}
