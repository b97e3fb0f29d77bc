package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"telecom-kpi/backend/internal/domain"
	"telecom-kpi/backend/internal/pipeline"
	"telecom-kpi/backend/internal/simulator"
)

// Service is what the handlers need from the pipeline.
type Service interface {
	Base(ctx context.Context) (domain.Snapshot, error)
	Live(ctx context.Context) (domain.Snapshot, error)
	KPI(ctx context.Context, name string) (domain.KPI, error)
	Station(ctx context.Context, id string) (pipeline.StationView, error)
}

type Handler struct {
	svc     Service
	service string
	version string
	now     func() time.Time
}

func NewHandler(svc Service, serviceName, version string) *Handler {
	return &Handler{svc: svc, service: serviceName, version: version, now: time.Now}
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(simulator.TimestampLayout)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": h.timestamp(),
		"service":   h.service,
		"version":   h.version,
	})
}

func (h *Handler) KPIs(c *gin.Context) {
	live, err := h.svc.Live(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, live)
}

func (h *Handler) KPIByName(c *gin.Context) {
	name := c.Param("name")
	k, err := h.svc.KPI(c.Request.Context(), name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"kpi_name":  name,
		"data":      k,
		"timestamp": h.timestamp(),
	})
}

func (h *Handler) Regional(c *gin.Context) {
	live, err := h.svc.Live(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"regional_performance": nonNil(live.RegionalPerformance),
		"timestamp":            h.timestamp(),
	})
}

func (h *Handler) Alerts(c *gin.Context) {
	live, err := h.svc.Live(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"alerts":    nonNil(live.Alerts),
		"count":     len(live.Alerts),
		"timestamp": h.timestamp(),
	})
}

// BaseStations serves reference data straight from the base snapshot.
func (h *Handler) BaseStations(c *gin.Context) {
	base, err := h.svc.Base(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"base_stations": nonNil(base.BaseStations),
		"count":         len(base.BaseStations),
		"timestamp":     h.timestamp(),
	})
}

func (h *Handler) BaseStation(c *gin.Context) {
	view, err := h.svc.Station(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"station":   view.Station,
		"kpis":      view.KPIs,
		"timestamp": h.timestamp(),
	})
}

// nonNil keeps empty collections encoding as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
