package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"telecom-kpi/backend/internal/domain"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type kpiNotFoundBody struct {
	Error         string   `json:"error"`
	AvailableKPIs []string `json:"available_kpis"`
}

type stationNotFoundBody struct {
	Error             string   `json:"error"`
	AvailableStations []string `json:"available_stations"`
}

type routeNotFoundBody struct {
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints"`
}

// writeError maps a pipeline error onto the response body.
func writeError(c *gin.Context, err error) {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		available := nf.Available
		if available == nil {
			available = []string{}
		}
		switch nf.Kind {
		case domain.NotFoundStation:
			c.JSON(http.StatusNotFound, stationNotFoundBody{
				Error:             "Base station not found",
				AvailableStations: available,
			})
		default:
			c.JSON(http.StatusNotFound, kpiNotFoundBody{
				Error:         "KPI not found",
				AvailableKPIs: available,
			})
		}
		return
	}

	c.JSON(http.StatusInternalServerError, errorBody{
		Error:   "Internal server error",
		Message: err.Error(),
	})
}
