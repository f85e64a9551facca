package models

// SimulationRequest represents the request body for a CDB simulation.
// Non-positive principal or term is rejected here; the engine itself is permissive.
type SimulationRequest struct {
	Principal     float64 `json:"principal" binding:"required,gt=0"`
	TermDays      int     `json:"term_days" binding:"required,gt=0"`
	CDIPercentage float64 `json:"cdi_percentage" binding:"required,gt=0,lte=1000"`
}

// CompareSimulationRequest runs several offers over one principal.
type CompareSimulationRequest struct {
	Principal float64 `json:"principal" binding:"required,gt=0"`
	Offers    []Offer `json:"offers" binding:"required,min=1,max=20,dive"`
}

// Offer is one CDB variation to compare.
type Offer struct {
	Name          string  `json:"name" binding:"required"`
	TermDays      int     `json:"term_days" binding:"required,gt=0"`
	CDIPercentage float64 `json:"cdi_percentage" binding:"required,gt=0,lte=1000"`
}

// RegisterRequest represents the request body for account creation.
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required,max=64"`
	LastName  string `json:"last_name" binding:"required,max=64"`
	Email     string `json:"email" binding:"required,email,max=120"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}
