package middleware

import (
	"net/http"

	"investeasy/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ErrorHandler middleware recovers panics into a JSON 500.
func ErrorHandler(log zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")

		message := "An unexpected error occurred"
		if s, ok := recovered.(string); ok {
			message = s
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.NewError("INTERNAL_ERROR", message))
	})
}
