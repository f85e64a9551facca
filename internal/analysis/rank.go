package analysis

import (
	"sort"

	"investeasy/internal/model"
)

// RankedResult is a simulation result with its position in a ranking.
type RankedResult struct {
	Rank  int // 1-based
	Index int // position in the input slice
	model.SimulationResult
}

// RankByNetValue sorts results descending by NetValue. Ties keep input order.
func RankByNetValue(results []model.SimulationResult) []RankedResult {
	out := make([]RankedResult, len(results))
	for i, r := range results {
		out[i] = RankedResult{Index: i, SimulationResult: r}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetValue > out[j].NetValue
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// NetGain is the net value minus the principal.
func NetGain(r model.SimulationResult) float64 {
	return r.NetValue - r.Principal
}
