package simulation

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"investeasy/internal/model"
)

func WriteResultsCSV(path string, results []model.SimulationResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"instrument",
		"principal",
		"term_days",
		"cdi_percentage",
		"cdi_annual_rate",
		"effective_annual_rate",
		"period_rate",
		"gross_yield",
		"gross_value",
		"tax_rate",
		"tax_amount",
		"net_value",
		"reference_date",
		"stale",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.InstrumentLabel,
			fmtFloat(r.Principal),
			strconv.Itoa(r.TermDays),
			fmtFloat(r.CDIPercentage),
			fmtFloat(r.CDIAnnualRate),
			fmtFloat(r.EffectiveAnnualRate),
			fmtFloat(r.PeriodRate),
			fmtFloat(r.GrossYield),
			fmtFloat(r.GrossValue),
			fmtFloat(r.TaxRate),
			fmtFloat(r.TaxAmount),
			fmtFloat(r.NetValue),
			fmtDate(r.ReferenceDate),
			strconv.FormatBool(r.Stale),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
