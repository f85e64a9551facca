package data

import (
	"errors"
	"math"
	"testing"
	"time"

	"investeasy/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnualize(t *testing.T) {
	assert.Equal(t, math.Pow(1.00045, 252)-1, Annualize(0.045))
	assert.InDelta(t, 0.120051, Annualize(0.045), 1e-6)
	assert.Equal(t, 0.0, Annualize(0))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "12.01%", FormatRate(0.12005130540139453))
	assert.Equal(t, "0.00%", FormatRate(0))
}

func TestParseIndicators(t *testing.T) {
	obs := []model.Observation{
		{SeriesID: 11, Date: "01/01/2024", Value: "0.05"},
		{SeriesID: 12, Date: "01/01/2024", Value: "0.045"},
	}

	snap, err := ParseIndicators(obs)
	require.NoError(t, err)

	assert.Equal(t, Annualize(0.05), snap.SelicAnnualRate)
	assert.Equal(t, Annualize(0.045), snap.CDIAnnualRate)
	assert.InDelta(t, math.Pow(1.00045, 252)-1, snap.CDIAnnualRate, 1e-6)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), snap.ReferenceDate)
	assert.Equal(t, "13.42%", snap.SelicDisplay)
	assert.Equal(t, "12.01%", snap.CDIDisplay)
}

func TestParseIndicators_LastEntryWins(t *testing.T) {
	obs := []model.Observation{
		{SeriesID: 11, Date: "01/01/2024", Value: "0.04"},
		{SeriesID: 12, Date: "01/01/2024", Value: "0.03"},
		{SeriesID: 11, Date: "02/01/2024", Value: "0.05"},
		{SeriesID: 12, Date: "02/01/2024", Value: "0.045"},
	}

	snap, err := ParseIndicators(obs)
	require.NoError(t, err)
	assert.Equal(t, Annualize(0.05), snap.SelicAnnualRate)
	assert.Equal(t, Annualize(0.045), snap.CDIAnnualRate)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), snap.ReferenceDate)
}

func TestParseIndicators_Failures(t *testing.T) {
	tests := []struct {
		name string
		obs  []model.Observation
	}{
		{"empty", nil},
		{"missing cdi", []model.Observation{{SeriesID: 11, Date: "01/01/2024", Value: "0.05"}}},
		{"missing selic", []model.Observation{{SeriesID: 12, Date: "01/01/2024", Value: "0.05"}}},
		{"bad value", []model.Observation{
			{SeriesID: 11, Date: "01/01/2024", Value: "abc"},
			{SeriesID: 12, Date: "01/01/2024", Value: "0.045"},
		}},
		{"nan value", []model.Observation{
			{SeriesID: 11, Date: "01/01/2024", Value: "0.05"},
			{SeriesID: 12, Date: "01/01/2024", Value: "NaN"},
		}},
		{"bad date", []model.Observation{
			{SeriesID: 11, Date: "2024-01-01", Value: "0.05"},
			{SeriesID: 12, Date: "01/01/2024", Value: "0.045"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIndicators(tt.obs)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParseFailure))
		})
	}
}
