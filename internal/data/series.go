package data

import "investeasy/internal/model"

// Series describes one SGS series this service consumes.
type Series struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

// Catalog lists the series behind an IndicatorSnapshot.
var Catalog = []Series{
	{
		ID:          model.SeriesSelic,
		Name:        "Selic",
		Description: "Taxa de juros - Selic (central bank policy rate), daily",
		Unit:        "% per day",
	},
	{
		ID:          model.SeriesCDI,
		Name:        "CDI",
		Description: "Taxa de juros - CDI (interbank deposit rate), daily",
		Unit:        "% per day",
	},
}

// IndicatorQuery is the request the Fetcher sends: the last two observations of
// every catalogued series.
func IndicatorQuery() SeriesQuery {
	ids := make([]int, len(Catalog))
	for i, s := range Catalog {
		ids[i] = s.ID
	}
	return SeriesQuery{SeriesIDs: ids, Last: 2}
}
