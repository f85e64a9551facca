package handlers

import (
	"context"
	"net/http"

	"investeasy/internal/api/models"
	"investeasy/internal/data"

	"github.com/gin-gonic/gin"
)

// IndicatorLookup serves the current market indicators. *data.Fetcher implements it.
type IndicatorLookup interface {
	Lookup(ctx context.Context) (data.Lookup, error)
}

// IndicatorHandler exposes market indicators
type IndicatorHandler struct {
	indicators IndicatorLookup
}

func NewIndicatorHandler(indicators IndicatorLookup) *IndicatorHandler {
	return &IndicatorHandler{indicators: indicators}
}

// GetIndicators handles GET /api/v1/indicators
func (h *IndicatorHandler) GetIndicators(c *gin.Context) {
	lookup, err := h.indicators.Lookup(c.Request.Context())
	if err != nil {
		marketDataError(c, err)
		return
	}

	snap := lookup.Snapshot
	c.JSON(http.StatusOK, models.IndicatorsResponse{
		Selic:         snap.SelicDisplay,
		CDI:           snap.CDIDisplay,
		SelicRate:     snap.SelicAnnualRate,
		CDIRate:       snap.CDIAnnualRate,
		ReferenceDate: snap.ReferenceDate.Format("2006-01-02"),
		FetchedAt:     lookup.FetchedAt,
		Stale:         lookup.Stale,
	})
}

// ListSeries handles GET /api/v1/series
func ListSeries(c *gin.Context) {
	series := make([]models.SeriesInfo, len(data.Catalog))
	for i, s := range data.Catalog {
		series[i] = models.SeriesInfo{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Unit:        s.Unit,
		}
	}
	c.JSON(http.StatusOK, gin.H{"series": series})
}
