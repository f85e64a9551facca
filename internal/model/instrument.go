package model

import "fmt"

// Instrument identifies the simulated product.
// Keep these values stable; they are echoed in API and CSV output.
type Instrument string

const (
	InstrumentCDB Instrument = "CDB"
)

// InstrumentLabel renders the display label, e.g. "CDB 115% CDI".
func InstrumentLabel(inst Instrument, cdiPercentage float64) string {
	return fmt.Sprintf("%s %g%% CDI", inst, cdiPercentage)
}
