package simulator

import "telecom-kpi/backend/internal/domain"

// TimestampLayout matches JavaScript's Date.toISOString output.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// RotateAlerts prepends a synthesized alert with the configured probability
// and caps the sequence at domain.MaxAlerts, most recent first.
func (s *Simulator) RotateAlerts(base []domain.Alert) []domain.Alert {
	out := make([]domain.Alert, 0, domain.MaxAlerts)

	if s.rng.Float64() < s.alertProbability {
		out = append(out, s.newAlert())
		s.stats.AlertsGenerated++
	}
	for _, a := range base {
		if len(out) == domain.MaxAlerts {
			break
		}
		out = append(out, a)
	}
	return out
}

func (s *Simulator) newAlert() domain.Alert {
	return domain.Alert{
		Severity:  s.severities[s.rng.IntN(len(s.severities))],
		Message:   s.messages[s.rng.IntN(len(s.messages))],
		Timestamp: s.now().UTC().Format(TimestampLayout),
	}
}
