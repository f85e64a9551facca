package model

import "time"

// SGS series identifiers published by the Banco Central do Brasil.
const (
	SeriesSelic = 11
	SeriesCDI   = 12
)

// Observation is one row of the BCB SGS JSON response.
//
// Example:
//
//	[
//	  {"id_serie": 11, "data": "02/01/2024", "valor": "0.043739"},
//	  {"id_serie": 12, "data": "02/01/2024", "valor": "0.043739"}
//	]
//
// Values arrive as decimal strings in percent-per-day units.
type Observation struct {
	SeriesID int    `json:"id_serie"`
	Date     string `json:"data"`  // dd/mm/yyyy
	Value    string `json:"valor"` // e.g. "0.043739"
}

// IndicatorSnapshot holds annualized market rates derived from one successful fetch.
// A snapshot is never mutated; a newer fetch replaces it whole.
type IndicatorSnapshot struct {
	// Annual rates as fractions (0.1165 == 11.65%).
	SelicAnnualRate float64
	CDIAnnualRate   float64

	// ReferenceDate is the date of the Selic observation the snapshot was built from.
	ReferenceDate time.Time

	SelicDisplay string // "11.65%"
	CDIDisplay   string
}

// CacheEntry pairs a snapshot with the instant it was stored.
type CacheEntry struct {
	Snapshot  IndicatorSnapshot
	FetchedAt time.Time
}
