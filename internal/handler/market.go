package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"kaspalytics/internal/domain"
)

const maxLookbackDays = 3650

// GetSeries godoc
// @Summary      Get the hourly price/volume series
// @Description  Returns the hourly series for the requested lookback, truncated to the caller's tier history window
// @Tags         market
// @Produce      json
// @Param        days  query  int  false  "Lookback window in days"  default(365)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/market/series [get]
func (h *Handler) GetSeries(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-series")
	defer span.End()

	days, ok := h.lookbackDays(c)
	if !ok {
		return
	}
	span.SetAttributes(attribute.Int("lookback_days", days))

	series, err := h.marketService.GetSeries(ctx, days, currentTier(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lookback_days": days,
		"points":        len(series),
		"series":        series,
	})
}

// GetMarketStats godoc
// @Summary      Get the market statistics snapshot
// @Description  Returns current price, 24h/7d/30d changes, volume and high/low aggregates, and market cap
// @Tags         market
// @Produce      json
// @Param        days  query  int  false  "Lookback window in days"  default(365)
// @Success      200  {object}  domain.MarketStats
// @Failure      400  {object}  map[string]string
// @Router       /api/market/stats [get]
func (h *Handler) GetMarketStats(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-market-stats")
	defer span.End()

	days, ok := h.lookbackDays(c)
	if !ok {
		return
	}

	stats, err := h.marketService.GetMarketStats(ctx, days, currentTier(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetIndicators godoc
// @Summary      Get technical indicators
// @Description  Returns SMA, EMA, MACD, RSI, and Bollinger band series plus a current-value snapshot
// @Tags         market
// @Produce      json
// @Param        days  query  int  false  "Lookback window in days"  default(365)
// @Success      200  {object}  domain.IndicatorSet
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/market/indicators [get]
func (h *Handler) GetIndicators(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-indicators")
	defer span.End()

	days, ok := h.lookbackDays(c)
	if !ok {
		return
	}

	set, err := h.marketService.GetIndicators(ctx, days, currentTier(c))
	if errors.Is(err, domain.ErrInsufficientData) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "not enough history for indicators; request a longer lookback"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, set)
}

// GetPowerLaw godoc
// @Summary      Get power-law trend overlays
// @Description  Returns the conservative/base/aggressive scenario curves with deviations and log-log fit statistics
// @Tags         market
// @Produce      json
// @Param        days  query  int  false  "Lookback window in days"  default(365)
// @Success      200  {object}  domain.PowerLawResult
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /api/market/powerlaw [get]
func (h *Handler) GetPowerLaw(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-power-law")
	defer span.End()

	days, ok := h.lookbackDays(c)
	if !ok {
		return
	}

	result, err := h.marketService.GetPowerLaw(ctx, days, currentTier(c))
	if errors.Is(err, domain.ErrInsufficientData) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "not enough history for a power-law overlay; request a longer lookback"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) lookbackDays(c *gin.Context) (int, bool) {
	days := h.defaultLookback
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLookbackDays {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be an integer between 1 and 3650"})
			return 0, false
		}
		days = n
	}
	return days, true
}
