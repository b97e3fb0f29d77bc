package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		threshold float64
		polarity  Polarity
		expected  Status
	}{
		{"latency well under threshold", 40, 80, LowerIsBetter, StatusExcellent},
		{"latency on excellent boundary", 48, 80, LowerIsBetter, StatusExcellent},
		{"latency 50 of 80", 50, 80, LowerIsBetter, StatusGood},
		{"latency on good boundary", 68, 80, LowerIsBetter, StatusGood},
		{"latency at threshold", 80, 80, LowerIsBetter, StatusWarning},
		{"latency over threshold", 81, 80, LowerIsBetter, StatusCritical},
		{"availability well over threshold", 105, 100, HigherIsBetter, StatusExcellent},
		{"availability on good boundary", 98, 100, HigherIsBetter, StatusGood},
		{"availability on warning boundary", 90, 100, HigherIsBetter, StatusWarning},
		{"availability below warning", 89.99, 100, HigherIsBetter, StatusCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.current, tt.threshold, tt.polarity))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	first := Classify(1.7, 2, LowerIsBetter)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Classify(1.7, 2, LowerIsBetter))
	}
}

func TestRuleFor(t *testing.T) {
	t.Run("lower is better kinds", func(t *testing.T) {
		for _, name := range []string{KPILatency, KPICallDropRate, KPIPacketLoss} {
			assert.Equal(t, LowerIsBetter, RuleFor(name).Polarity, name)
		}
	})

	t.Run("higher is better kinds", func(t *testing.T) {
		for _, name := range []string{KPIActiveUsers, KPICallSetupSuccessRate, KPINetworkAvailability, "throughput_gbps"} {
			assert.Equal(t, HigherIsBetter, RuleFor(name).Polarity, name)
		}
	})

	t.Run("unknown name falls back to jitter", func(t *testing.T) {
		r := RuleFor("spectral_efficiency")
		assert.Equal(t, Jitter, r.Delta.Kind)
		assert.Equal(t, 0.05, r.Delta.Spread)
		assert.Equal(t, int32(2), r.Places)
		assert.True(t, math.IsInf(r.Clamp.Max, 1))
	})

	t.Run("active users has no upper bound", func(t *testing.T) {
		r := RuleFor(KPIActiveUsers)
		assert.Equal(t, 100000.0, r.Clamp.Clamp(5))
		assert.Equal(t, 5e9, r.Clamp.Clamp(5e9))
	})
}

func TestRound(t *testing.T) {
	assert.Equal(t, 1.24, Round(1.235, 2))
	assert.Equal(t, 99.1, Round(99.0999, 2))
	assert.Equal(t, 42.0, Round(41.5, 0))
	assert.Equal(t, 45.3, Round(45.26, 1))
}

func TestKPIClone(t *testing.T) {
	orig := KPI{Current: 1, Trend: []float64{1, 2, 3}}
	cp := orig.Clone()
	cp.Trend[0] = 99

	assert.Equal(t, 1.0, orig.Trend[0])
}
