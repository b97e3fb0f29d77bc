package simulator

import "telecom-kpi/backend/internal/domain"

// BiasPolicy controls post-processing of station-biased values.
type BiasPolicy struct {
	// Reclamp re-applies each KPI's clamp range after biasing.
	Reclamp bool
}

type biasStep struct {
	kpi   string
	apply func(float64) float64
}

var stationBiases = map[domain.StationStatus][]biasStep{
	domain.StationWarning: {
		{kpi: domain.KPICallDropRate, apply: func(v float64) float64 { return v * 1.3 }},
		{kpi: domain.KPILatency, apply: func(v float64) float64 { return v * 1.2 }},
	},
	domain.StationMaintenance: {
		{kpi: domain.KPIActiveUsers, apply: func(v float64) float64 { return v * 0.6 }},
		{kpi: domain.KPINetworkAvailability, apply: func(v float64) float64 { return v - 2 }},
	},
}

// ApplyStationBias returns a per-station copy of kpis skewed by the
// station's status. Trend and status are left as simulated. KPIs missing
// from the mapping are skipped; kpis itself is never modified.
func ApplyStationBias(status domain.StationStatus, kpis map[string]domain.KPI, policy BiasPolicy) map[string]domain.KPI {
	out := domain.CloneKPIs(kpis)
	if out == nil {
		out = map[string]domain.KPI{}
	}

	for _, step := range stationBiases[status] {
		k, ok := out[step.kpi]
		if !ok {
			continue
		}
		k.Current = step.apply(k.Current)
		if policy.Reclamp {
			k.Current = domain.RuleFor(step.kpi).Clamp.Clamp(k.Current)
		}
		out[step.kpi] = k
	}
	return out
}
