// Package format renders simulation numbers for people: BRL currency and percentages.
// The calculation packages only ever return raw float64 values.
package format

import (
	"fmt"

	"investeasy/internal/model"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code every amount is rendered in.
const Currency = money.BRL

// Cents rounds an amount to the nearest cent, half away from zero.
func Cents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Round(2).Shift(2).IntPart()
}

// BRL renders amount with the real's symbol and separators.
func BRL(amount float64) string {
	return money.New(Cents(amount), Currency).Display()
}

// Percent renders a fraction as a percentage: Percent(0.2, 1) == "20.0%".
func Percent(rate float64, places int32) string {
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(places) + "%"
}

// Simulation is the display block of a simulation result.
type Simulation struct {
	Instrument string          `json:"instrument"`
	Input      SimulationInput `json:"input"`
	Results    SimulationTotal `json:"results"`
}

type SimulationInput struct {
	Principal string `json:"principal"`
	TermDays  int    `json:"term_days"`
	RateUsed  string `json:"rate_used"`
}

type SimulationTotal struct {
	GrossYield string `json:"gross_yield"`
	TaxRate    string `json:"tax_rate"`
	TaxAmount  string `json:"tax_amount"`
	NetValue   string `json:"net_value"`
}

// RenderSimulation builds the display block for res.
func RenderSimulation(res *model.SimulationResult) Simulation {
	return Simulation{
		Instrument: res.InstrumentLabel,
		Input: SimulationInput{
			Principal: BRL(res.Principal),
			TermDays:  res.TermDays,
			RateUsed:  fmt.Sprintf("%g%% of CDI (%s)", res.CDIPercentage, res.CDIDisplay),
		},
		Results: SimulationTotal{
			GrossYield: BRL(res.GrossYield),
			TaxRate:    Percent(res.TaxRate, 1),
			TaxAmount:  BRL(res.TaxAmount),
			NetValue:   BRL(res.NetValue),
		},
	}
}
