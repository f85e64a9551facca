package models

import (
	"time"

	"investeasy/internal/format"
)

// IndicatorsResponse represents the current market indicators
type IndicatorsResponse struct {
	Selic         string    `json:"selic"`
	CDI           string    `json:"cdi"`
	SelicRate     float64   `json:"selic_rate"`
	CDIRate       float64   `json:"cdi_rate"`
	ReferenceDate string    `json:"reference_date"` // YYYY-MM-DD
	FetchedAt     time.Time `json:"fetched_at"`
	Stale         bool      `json:"stale"`
}

// SimulationResponse carries both the raw numbers and their display rendering.
type SimulationResponse struct {
	Summary SimulationSummary `json:"summary"`
	Display format.Simulation `json:"display"`
}

// SimulationSummary contains the raw simulation output
type SimulationSummary struct {
	Instrument          string  `json:"instrument"`
	Principal           float64 `json:"principal"`
	TermDays            int     `json:"term_days"`
	CDIPercentage       float64 `json:"cdi_percentage"`
	CDIAnnualRate       float64 `json:"cdi_annual_rate"`
	EffectiveAnnualRate float64 `json:"effective_annual_rate"`
	PeriodRate          float64 `json:"period_rate"`
	GrossYield          float64 `json:"gross_yield"`
	GrossValue          float64 `json:"gross_value"`
	TaxRate             float64 `json:"tax_rate"`
	TaxAmount           float64 `json:"tax_amount"`
	NetValue            float64 `json:"net_value"`
	ReferenceDate       string  `json:"reference_date,omitempty"`
	Stale               bool    `json:"stale"`
}

// CompareSimulationResponse represents the response from a comparison
type CompareSimulationResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one offer
type ComparisonResult struct {
	Rank    int               `json:"rank"`
	Name    string            `json:"name"`
	Summary SimulationSummary `json:"summary"`
	Display format.Simulation `json:"display"`
}

// SeriesInfo represents information about an SGS series
type SeriesInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse is returned by login.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// NewError builds an ErrorResponse.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
