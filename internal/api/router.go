package api

import (
	"net/http"

	"investeasy/internal/api/handlers"
	"investeasy/internal/api/middleware"
	"investeasy/internal/api/models"
	"investeasy/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Deps are the services the HTTP layer sits on.
type Deps struct {
	Indicators  handlers.IndicatorLookup
	Simulator   handlers.Simulator
	Accounts    *identity.Service
	CORSOrigins []string
	Log         zerolog.Logger
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()

	// Apply middleware
	router.Use(middleware.ErrorHandler(d.Log))
	router.Use(middleware.Logger(d.Log))
	router.Use(middleware.CORS(d.CORSOrigins))

	indicatorHandler := handlers.NewIndicatorHandler(d.Indicators)
	simulationHandler := handlers.NewSimulationHandler(d.Simulator, d.Log)
	authHandler := handlers.NewAuthHandler(d.Accounts, d.Log)
	requireAuth := middleware.RequireAuth(d.Accounts)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the InvestEasy API"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/indicators", indicatorHandler.GetIndicators)
		api.GET("/series", handlers.ListSeries)

		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/password/forgot", authHandler.ForgotPassword)
		auth.POST("/password/reset", authHandler.ResetPassword)
		auth.GET("/me", requireAuth, authHandler.Me)

		sims := api.Group("/simulations", requireAuth)
		sims.POST("/cdb", simulationHandler.SimulateCDB)
		sims.POST("/cdb/compare", simulationHandler.CompareCDB)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, models.NewError("NOT_FOUND", "Not found"))
	})

	return router
}
