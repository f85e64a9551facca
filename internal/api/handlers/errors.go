package handlers

import (
	"errors"
	"net/http"

	"investeasy/internal/api/models"
	"investeasy/internal/data"

	"github.com/gin-gonic/gin"
)

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.NewError(code, err.Error()))
}

// marketDataError maps a Fetcher error onto the response. Market data
// unavailability is a 503; anything else is unexpected.
func marketDataError(c *gin.Context, err error) {
	var mdErr *data.MarketDataError
	if errors.Is(err, data.ErrUnavailable) && errors.As(err, &mdErr) {
		detail := models.ErrorDetail{
			Code:    "MARKET_DATA_UNAVAILABLE",
			Message: "Market rates are temporarily unavailable",
			Details: map[string]interface{}{"kind": mdErr.Kind.String()},
		}
		var bcbErr *data.BCBError
		if errors.As(err, &bcbErr) {
			detail.Details["upstream_status"] = bcbErr.StatusCode
			if bcbErr.RetryAfter != "" {
				detail.Details["retry_after"] = bcbErr.RetryAfter
				c.Header("Retry-After", bcbErr.RetryAfter)
			}
		}
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: detail})
		return
	}
	c.JSON(http.StatusInternalServerError, models.NewError("INTERNAL_ERROR", err.Error()))
}
