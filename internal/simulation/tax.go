package simulation

// Regressive income-tax brackets on fixed-income yield. Each bracket's upper
// bound is inclusive; anything above the last bound pays the floor rate.
var taxBrackets = []struct {
	maxDays int
	rate    float64
}{
	{180, 0.225},
	{360, 0.200},
	{720, 0.175},
}

const longTermTaxRate = 0.150

// TaxRateFor returns the withholding rate for a holding period in days.
// Non-positive terms fall in the first bracket.
func TaxRateFor(termDays int) float64 {
	for _, b := range taxBrackets {
		if termDays <= b.maxDays {
			return b.rate
		}
	}
	return longTermTaxRate
}
