package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

type DeltaKind int

const (
	// IntegerStep adds a uniform integer drawn from [-Spread, Spread].
	IntegerStep DeltaKind = iota
	// RealStep adds a uniform real drawn from [-Spread, Spread).
	RealStep
	// Jitter multiplies by a uniform factor drawn from [1-Spread, 1+Spread).
	Jitter
)

type Delta struct {
	Kind   DeltaKind
	Spread float64
}

// Range is a closed interval; infinite ends mean no bound on that side.
type Range struct {
	Min float64
	Max float64
}

var Unbounded = Range{Min: math.Inf(-1), Max: math.Inf(1)}

func (r Range) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// KPIRule is the variation and classification policy for one KPI kind.
type KPIRule struct {
	Delta    Delta
	Clamp    Range
	Places   int32
	Polarity Polarity
}

var percentRule = KPIRule{
	Delta:    Delta{Kind: RealStep, Spread: 0.2},
	Clamp:    Range{Min: 95, Max: 100},
	Places:   2,
	Polarity: HigherIsBetter,
}

var lossRule = KPIRule{
	Delta:    Delta{Kind: RealStep, Spread: 0.15},
	Clamp:    Range{Min: 0.1, Max: 3},
	Places:   2,
	Polarity: LowerIsBetter,
}

var KPIRules = map[string]KPIRule{
	KPIActiveUsers: {
		Delta:    Delta{Kind: IntegerStep, Spread: 2000},
		Clamp:    Range{Min: 100000, Max: math.Inf(1)},
		Places:   0,
		Polarity: HigherIsBetter,
	},
	KPILatency: {
		Delta:    Delta{Kind: IntegerStep, Spread: 3},
		Clamp:    Range{Min: 10, Max: 100},
		Places:   0,
		Polarity: LowerIsBetter,
	},
	KPICallDropRate:         lossRule,
	KPIPacketLoss:           lossRule,
	KPICallSetupSuccessRate: percentRule,
	KPINetworkAvailability:  percentRule,
}

// DefaultKPIRule applies to any KPI name without an entry in KPIRules.
var DefaultKPIRule = KPIRule{
	Delta:    Delta{Kind: Jitter, Spread: 0.05},
	Clamp:    Unbounded,
	Places:   2,
	Polarity: HigherIsBetter,
}

func RuleFor(name string) KPIRule {
	if r, ok := KPIRules[name]; ok {
		return r
	}
	return DefaultKPIRule
}

// RegionMetricRule bounds one regional performance field.
type RegionMetricRule struct {
	Spread float64
	Clamp  Range
	Places int32
}

var (
	RegionCallDropRateRule = RegionMetricRule{Spread: 0.15, Clamp: Range{Min: 0.5, Max: 3}, Places: 2}
	RegionAvailabilityRule = RegionMetricRule{Spread: 0.1, Clamp: Range{Min: 98, Max: 100}, Places: 2}
	RegionThroughputRule   = RegionMetricRule{Spread: 2, Clamp: Range{Min: 30, Max: 60}, Places: 1}
)

// Round rounds half away from zero to the given number of decimal places.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
