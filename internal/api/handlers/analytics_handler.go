// internal/api/handlers/analytics_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stylesense/backend/internal/forecast"
	"github.com/stylesense/backend/internal/service"
)

type AnalyticsHandler struct {
	service *service.AnalyticsService
}

func NewAnalyticsHandler(service *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// GetPredictions serves the forecast dashboard payload: the 7-day revenue
// projection, trend alert, and stockout risks.
func (h *AnalyticsHandler) GetPredictions(c *gin.Context) {
	report, err := h.service.GetPredictionsAndRisks(c.Request.Context())
	if err != nil {
		// Too little history is a client-visible condition, not a fault.
		if errors.Is(err, forecast.ErrInsufficientData) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough data for prediction"})
			return
		}
		log.Error().Err(err).Msg("failed to build analytics report")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to build analytics report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetStats serves the storefront KPI aggregates.
func (h *AnalyticsHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get store stats")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to get store stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
