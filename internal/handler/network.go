package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetNetworkMetrics godoc
// @Summary      Get network health metrics
// @Description  Returns hash rate, difficulty, block time, address and transaction activity
// @Tags         network
// @Produce      json
// @Success      200  {object}  domain.NetworkMetrics
// @Router       /api/network/metrics [get]
func (h *Handler) GetNetworkMetrics(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-network-metrics")
	defer span.End()

	metrics, err := h.marketService.GetNetworkMetrics(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, metrics)
}
