package data

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"investeasy/internal/model"
)

// BusinessDaysPerYear is the market convention used to annualize daily rates.
const BusinessDaysPerYear = 252

const sgsDateLayout = "02/01/2006"

// Annualize compounds a daily rate in percent units over one business year.
// Annualize(0.045) == (1.00045)^252 - 1.
func Annualize(dailyPercent float64) float64 {
	return math.Pow(1+dailyPercent/100, BusinessDaysPerYear) - 1
}

// FormatRate renders an annual fraction as a percentage with 2 decimals ("11.65%").
func FormatRate(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// ParseIndicators turns raw SGS observations into a snapshot.
// For each series the last matching row in the slice wins.
// Any missing series or unreadable value/date yields an error matching ErrParseFailure.
func ParseIndicators(obs []model.Observation) (model.IndicatorSnapshot, error) {
	selic, ok := latest(obs, model.SeriesSelic)
	if !ok {
		return model.IndicatorSnapshot{}, parseErrorf("series %d (Selic) missing from response", model.SeriesSelic)
	}
	cdi, ok := latest(obs, model.SeriesCDI)
	if !ok {
		return model.IndicatorSnapshot{}, parseErrorf("series %d (CDI) missing from response", model.SeriesCDI)
	}

	selicDaily, err := parseValue(selic)
	if err != nil {
		return model.IndicatorSnapshot{}, err
	}
	cdiDaily, err := parseValue(cdi)
	if err != nil {
		return model.IndicatorSnapshot{}, err
	}
	refDate, err := time.Parse(sgsDateLayout, strings.TrimSpace(selic.Date))
	if err != nil {
		return model.IndicatorSnapshot{}, parseErrorf("series %d: invalid date %q", selic.SeriesID, selic.Date)
	}

	selicAnnual := Annualize(selicDaily)
	cdiAnnual := Annualize(cdiDaily)

	return model.IndicatorSnapshot{
		SelicAnnualRate: selicAnnual,
		CDIAnnualRate:   cdiAnnual,
		ReferenceDate:   refDate,
		SelicDisplay:    FormatRate(selicAnnual),
		CDIDisplay:      FormatRate(cdiAnnual),
	}, nil
}

func latest(obs []model.Observation, seriesID int) (model.Observation, bool) {
	for i := len(obs) - 1; i >= 0; i-- {
		if obs[i].SeriesID == seriesID {
			return obs[i], true
		}
	}
	return model.Observation{}, false
}

func parseValue(o model.Observation) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(o.Value), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, parseErrorf("series %d: invalid value %q", o.SeriesID, o.Value)
	}
	return v, nil
}
