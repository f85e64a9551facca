package handlers

import (
	"context"
	"net/http"

	"investeasy/internal/analysis"
	"investeasy/internal/api/models"
	"investeasy/internal/format"
	"investeasy/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Simulator runs CDB simulations. *simulation.Engine implements it.
type Simulator interface {
	Simulate(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, error)
	SimulateMany(ctx context.Context, reqs []model.SimulationRequest) ([]model.SimulationResult, error)
}

// SimulationHandler handles simulation requests
type SimulationHandler struct {
	engine Simulator
	log    zerolog.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(engine Simulator, log zerolog.Logger) *SimulationHandler {
	return &SimulationHandler{
		engine: engine,
		log:    log.With().Str("handler", "simulation").Logger(),
	}
}

// SimulateCDB handles POST /api/v1/simulations/cdb
func (h *SimulationHandler) SimulateCDB(c *gin.Context) {
	var req models.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	result, err := h.engine.Simulate(c.Request.Context(), model.SimulationRequest{
		Principal:     req.Principal,
		TermDays:      req.TermDays,
		CDIPercentage: req.CDIPercentage,
	})
	if err != nil {
		h.log.Warn().Err(err).Msg("Simulation failed")
		marketDataError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SimulationResponse{
		Summary: buildSummary(result),
		Display: format.RenderSimulation(result),
	})
}

// CompareCDB handles POST /api/v1/simulations/cdb/compare
func (h *SimulationHandler) CompareCDB(c *gin.Context) {
	var req models.CompareSimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	reqs := make([]model.SimulationRequest, len(req.Offers))
	for i, offer := range req.Offers {
		reqs[i] = model.SimulationRequest{
			Principal:     req.Principal,
			TermDays:      offer.TermDays,
			CDIPercentage: offer.CDIPercentage,
		}
	}

	results, err := h.engine.SimulateMany(c.Request.Context(), reqs)
	if err != nil {
		h.log.Warn().Err(err).Msg("Comparison failed")
		marketDataError(c, err)
		return
	}

	ranked := analysis.RankByNetValue(results)
	comparison := make([]models.ComparisonResult, len(ranked))
	for i := range ranked {
		r := &ranked[i]
		comparison[i] = models.ComparisonResult{
			Rank:    r.Rank,
			Name:    req.Offers[r.Index].Name,
			Summary: buildSummary(&r.SimulationResult),
			Display: format.RenderSimulation(&r.SimulationResult),
		}
	}

	c.JSON(http.StatusOK, models.CompareSimulationResponse{Comparison: comparison})
}

func buildSummary(r *model.SimulationResult) models.SimulationSummary {
	s := models.SimulationSummary{
		Instrument:          r.InstrumentLabel,
		Principal:           r.Principal,
		TermDays:            r.TermDays,
		CDIPercentage:       r.CDIPercentage,
		CDIAnnualRate:       r.CDIAnnualRate,
		EffectiveAnnualRate: r.EffectiveAnnualRate,
		PeriodRate:          r.PeriodRate,
		GrossYield:          r.GrossYield,
		GrossValue:          r.GrossValue,
		TaxRate:             r.TaxRate,
		TaxAmount:           r.TaxAmount,
		NetValue:            r.NetValue,
		Stale:               r.Stale,
	}
	if !r.ReferenceDate.IsZero() {
		s.ReferenceDate = r.ReferenceDate.Format("2006-01-02")
	}
	return s
}
