package simulator

import "telecom-kpi/backend/internal/domain"

// SimulateRegions adds independent noise to each region's metrics.
func (s *Simulator) SimulateRegions(base []domain.RegionPerformance) []domain.RegionPerformance {
	out := make([]domain.RegionPerformance, len(base))
	for i, r := range base {
		out[i] = domain.RegionPerformance{
			Region:       r.Region,
			CallDropRate: s.stepRegionMetric(domain.RegionCallDropRateRule, r.CallDropRate),
			Availability: s.stepRegionMetric(domain.RegionAvailabilityRule, r.Availability),
			Throughput:   s.stepRegionMetric(domain.RegionThroughputRule, r.Throughput),
		}
	}
	return out
}

// Rounding comes before the clamp; the bounds carry no more precision than
// the rounding, so the result stays in range.
func (s *Simulator) stepRegionMetric(rule domain.RegionMetricRule, v float64) float64 {
	v = domain.Round(v+s.uniform(-rule.Spread, rule.Spread), rule.Places)
	return rule.Clamp.Clamp(v)
}
