package model

import "time"

// SimulationRequest is the caller-supplied part of a CDB simulation.
// CDIPercentage is expressed in percent of CDI: 115 means 115%.
type SimulationRequest struct {
	Principal     float64
	TermDays      int
	CDIPercentage float64
}

// SimulationResult carries the raw numbers of a simulation. Rendering is left to
// the caller (see internal/format).
type SimulationResult struct {
	InstrumentLabel string

	// Echoed input.
	Principal     float64
	TermDays      int
	CDIPercentage float64

	// Rates, as fractions.
	CDIAnnualRate       float64
	EffectiveAnnualRate float64
	PeriodRate          float64

	GrossYield float64
	GrossValue float64
	TaxRate    float64
	TaxAmount  float64
	NetValue   float64

	// Market data provenance.
	ReferenceDate time.Time
	CDIDisplay    string
	Stale         bool
}
