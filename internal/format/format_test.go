package format

import (
	"testing"

	"investeasy/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestCents(t *testing.T) {
	assert.Equal(t, int64(123457), Cents(1234.565))
	assert.Equal(t, int64(98565), Cents(985.6475635292617))
	assert.Equal(t, int64(0), Cents(0))
	assert.Equal(t, int64(-101), Cents(-1.005))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "20.0%", Percent(0.2, 1))
	assert.Equal(t, "22.5%", Percent(0.225, 1))
	assert.Equal(t, "12.01%", Percent(0.12005130540139453, 2))
}

func TestBRL(t *testing.T) {
	s := BRL(1234.56)
	assert.Contains(t, s, "R$")
	assert.Contains(t, s, "234")
	assert.Contains(t, s, "56")
}

func TestRenderSimulation(t *testing.T) {
	res := &model.SimulationResult{
		InstrumentLabel: "CDB 115% CDI",
		Principal:       10000,
		TermDays:        360,
		CDIPercentage:   115,
		CDIDisplay:      "12.01%",
		GrossYield:      985.6475635292617,
		TaxRate:         0.2,
		TaxAmount:       197.12951270585233,
		NetValue:        10788.518050823408,
	}

	view := RenderSimulation(res)
	assert.Equal(t, "CDB 115% CDI", view.Instrument)
	assert.Equal(t, 360, view.Input.TermDays)
	assert.Equal(t, "115% of CDI (12.01%)", view.Input.RateUsed)
	assert.Equal(t, "20.0%", view.Results.TaxRate)
	assert.Equal(t, BRL(10788.52), view.Results.NetValue)
	assert.Equal(t, BRL(985.65), view.Results.GrossYield)
}
