// Package http exposes the KPI pipeline as a read-only JSON API.
package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"telecom-kpi/backend/internal/logging"
	"telecom-kpi/backend/internal/metrics"
)

type RouterConfig struct {
	Prefix         string
	ServiceName    string
	ServiceVersion string
	AllowedOrigins []string
}

// Endpoints lists the public routes under prefix, in registration order.
func Endpoints(prefix string) []string {
	prefix = normalizePrefix(prefix)
	return []string{
		"GET " + prefix + "/health",
		"GET " + prefix + "/kpis",
		"GET " + prefix + "/kpis/:name",
		"GET " + prefix + "/regional",
		"GET " + prefix + "/alerts",
		"GET " + prefix + "/base-stations",
		"GET " + prefix + "/base-stations/:id",
	}
}

// NewRouter builds the gin engine. /metrics is served outside the prefix
// when m is non-nil.
func NewRouter(rc RouterConfig, svc Service, m *metrics.Collector, log logging.Logger) *gin.Engine {
	if log == nil {
		log = logging.Noop()
	}
	prefix := normalizePrefix(rc.Prefix)

	r := gin.New()
	r.Use(
		RequestID(log),
		Recovery(log),
		AccessLog(log),
		Metrics(m),
		CORS(rc.AllowedOrigins),
	)

	h := NewHandler(svc, rc.ServiceName, rc.ServiceVersion)
	api := r.Group(prefix)
	{
		api.GET("/health", h.Health)
		api.GET("/kpis", h.KPIs)
		api.GET("/kpis/:name", h.KPIByName)
		api.GET("/regional", h.Regional)
		api.GET("/alerts", h.Alerts)
		api.GET("/base-stations", h.BaseStations)
		api.GET("/base-stations/:id", h.BaseStation)
	}

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	endpoints := Endpoints(prefix)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, routeNotFoundBody{
			Error:              "Route not found",
			AvailableEndpoints: endpoints,
		})
	})
	return r
}

func normalizePrefix(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if p != "" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
