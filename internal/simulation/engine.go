package simulation

import (
	"context"
	"math"

	"investeasy/internal/data"
	"investeasy/internal/model"

	"github.com/rs/zerolog"
)

// DaysPerYear is the calendar convention used to compound over the holding period.
// Annualization of the daily CDI uses 252 business days; the two conventions differ
// on purpose.
const DaysPerYear = 365

// IndicatorSource supplies the market snapshot a simulation runs against.
// *data.Fetcher implements it.
type IndicatorSource interface {
	Lookup(ctx context.Context) (data.Lookup, error)
}

type Engine struct {
	indicators IndicatorSource
	log        zerolog.Logger
}

func New(indicators IndicatorSource, log zerolog.Logger) *Engine {
	return &Engine{
		indicators: indicators,
		log:        log.With().Str("component", "simulation").Logger(),
	}
}

// Simulate runs a CDB simulation against the current CDI.
// Market data errors are returned as-is. Inputs are not validated here.
func (e *Engine) Simulate(ctx context.Context, req model.SimulationRequest) (*model.SimulationResult, error) {
	l, err := e.indicators.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	res := Compute(req, l.Snapshot)
	res.Stale = l.Stale

	e.log.Debug().
		Float64("principal", req.Principal).
		Int("term_days", req.TermDays).
		Float64("cdi_percentage", req.CDIPercentage).
		Float64("net_value", res.NetValue).
		Bool("stale", l.Stale).
		Msg("Simulated CDB")

	return res, nil
}

// SimulateMany runs several requests against one market snapshot, so every
// result in a comparison uses the same CDI.
func (e *Engine) SimulateMany(ctx context.Context, reqs []model.SimulationRequest) ([]model.SimulationResult, error) {
	l, err := e.indicators.Lookup(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.SimulationResult, 0, len(reqs))
	for _, req := range reqs {
		res := Compute(req, l.Snapshot)
		res.Stale = l.Stale
		out = append(out, *res)
	}
	return out, nil
}

// Compute is the pure calculation behind Simulate.
func Compute(req model.SimulationRequest, snap model.IndicatorSnapshot) *model.SimulationResult {
	cdiFactor := req.CDIPercentage / 100
	effectiveAnnualRate := snap.CDIAnnualRate * cdiFactor
	periodRate := math.Pow(1+effectiveAnnualRate, float64(req.TermDays)/DaysPerYear) - 1

	grossYield := req.Principal * periodRate
	grossValue := req.Principal + grossYield

	// Tax applies to the yield only.
	taxRate := TaxRateFor(req.TermDays)
	taxAmount := grossYield * taxRate
	netValue := grossValue - taxAmount

	return &model.SimulationResult{
		InstrumentLabel: model.InstrumentLabel(model.InstrumentCDB, req.CDIPercentage),

		Principal:     req.Principal,
		TermDays:      req.TermDays,
		CDIPercentage: req.CDIPercentage,

		CDIAnnualRate:       snap.CDIAnnualRate,
		EffectiveAnnualRate: effectiveAnnualRate,
		PeriodRate:          periodRate,

		GrossYield: grossYield,
		GrossValue: grossValue,
		TaxRate:    taxRate,
		TaxAmount:  taxAmount,
		NetValue:   netValue,

		ReferenceDate: snap.ReferenceDate,
		CDIDisplay:    snap.CDIDisplay,
	}
}
