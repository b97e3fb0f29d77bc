package domain

import (
	"errors"
	"fmt"
	"sort"
)

type StationStatus string

const (
	StationOperational StationStatus = "operational"
	StationWarning     StationStatus = "warning"
	StationMaintenance StationStatus = "maintenance"
	StationUnknown     StationStatus = "unknown"
)

type BaseStation struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	City           string        `json:"city"`
	Region         string        `json:"region"`
	Latitude       float64       `json:"latitude"`
	Longitude      float64       `json:"longitude"`
	CoverageRadius float64       `json:"coverage_radius"`
	Status         StationStatus `json:"status"`
}

type RegionPerformance struct {
	Region       string  `json:"region"`
	CallDropRate float64 `json:"call_drop_rate"`
	Availability float64 `json:"availability"`
	Throughput   float64 `json:"throughput"`
}

type AlertSeverity string

const (
	SeverityInfo    AlertSeverity = "info"
	SeverityWarning AlertSeverity = "warning"
)

// MaxAlerts caps the alert sequence; index 0 is the most recent.
const MaxAlerts = 3

type Alert struct {
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
}

// Snapshot is the full dashboard data set, either the base fixture or a
// simulated live tick derived from it.
type Snapshot struct {
	NetworkKPIs         map[string]KPI      `json:"network_kpis"`
	RegionalPerformance []RegionPerformance `json:"regional_performance"`
	BaseStations        []BaseStation       `json:"base_stations"`
	Alerts              []Alert             `json:"alerts"`
}

// KPINames returns the KPI names in sorted order.
func (s Snapshot) KPINames() []string {
	names := make([]string, 0, len(s.NetworkKPIs))
	for name := range s.NetworkKPIs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Snapshot) Station(id string) (BaseStation, bool) {
	for _, st := range s.BaseStations {
		if st.ID == id {
			return st, true
		}
	}
	return BaseStation{}, false
}

// StationIDs returns station ids in fixture order.
func (s Snapshot) StationIDs() []string {
	ids := make([]string, len(s.BaseStations))
	for i, st := range s.BaseStations {
		ids[i] = st.ID
	}
	return ids
}

// Validate rejects snapshots the simulator cannot safely consume.
func (s Snapshot) Validate() error {
	if s.NetworkKPIs == nil {
		return errors.New("network_kpis is missing")
	}
	seen := make(map[string]bool, len(s.BaseStations))
	for i, st := range s.BaseStations {
		if st.ID == "" {
			return fmt.Errorf("base_stations[%d] has no id", i)
		}
		if seen[st.ID] {
			return fmt.Errorf("duplicate base station id %q", st.ID)
		}
		seen[st.ID] = true
	}
	return nil
}
