package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// Export godoc
// @Summary      Export the price series
// @Description  Downloads the tier-visible series as CSV or JSON
// @Tags         export
// @Produce      json
// @Param        format  query  string  false  "Export format (csv or json)"  default(csv)
// @Param        days    query  int     false  "Lookback window in days"      default(365)
// @Success      200  {string}  string
// @Failure      400  {object}  map[string]string
// @Router       /api/export [get]
func (h *Handler) Export(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.export")
	defer span.End()

	days, ok := h.lookbackDays(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	span.SetAttributes(attribute.String("format", format))

	filename := fmt.Sprintf("kaspalytics_%s.%s", time.Now().UTC().Format("20060102_150405"), format)

	switch format {
	case "csv":
		data, err := h.marketService.ExportCSV(ctx, days, currentTier(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "json":
		data, err := h.marketService.ExportJSON(ctx, days, currentTier(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/json", data)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or json"})
	}
}
