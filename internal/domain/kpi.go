package domain

const (
	KPIActiveUsers          = "active_users"
	KPILatency              = "latency"
	KPICallDropRate         = "call_drop_rate"
	KPIPacketLoss           = "packet_loss"
	KPICallSetupSuccessRate = "call_setup_success_rate"
	KPINetworkAvailability  = "network_availability"
)

type Status string

const (
	StatusExcellent Status = "excellent"
	StatusGood      Status = "good"
	StatusWarning   Status = "warning"
	StatusCritical  Status = "critical"
)

type Polarity int

const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
)

func (p Polarity) String() string {
	if p == LowerIsBetter {
		return "lower_is_better"
	}
	return "higher_is_better"
}

type KPI struct {
	Current   float64   `json:"current"`
	Unit      string    `json:"unit"`
	Threshold float64   `json:"threshold"`
	Trend     []float64 `json:"trend"`
	Status    Status    `json:"status"`
}

// Clone returns a copy that shares no backing array with k.
func (k KPI) Clone() KPI {
	out := k
	if k.Trend != nil {
		out.Trend = append([]float64(nil), k.Trend...)
	}
	return out
}

// Classify maps a value onto a health status relative to its threshold.
// Boundaries are inclusive on the better side.
func Classify(current, threshold float64, p Polarity) Status {
	if p == LowerIsBetter {
		switch {
		case current <= threshold*0.6:
			return StatusExcellent
		case current <= threshold*0.85:
			return StatusGood
		case current <= threshold:
			return StatusWarning
		default:
			return StatusCritical
		}
	}

	switch {
	case current >= threshold*1.05:
		return StatusExcellent
	case current >= threshold*0.98:
		return StatusGood
	case current >= threshold*0.90:
		return StatusWarning
	default:
		return StatusCritical
	}
}

// CloneKPIs deep-copies a KPI mapping.
func CloneKPIs(in map[string]KPI) map[string]KPI {
	if in == nil {
		return nil
	}
	out := make(map[string]KPI, len(in))
	for name, k := range in {
		out[name] = k.Clone()
	}
	return out
}
