package handlers

import (
	"errors"
	"net/http"

	"investeasy/internal/api/middleware"
	"investeasy/internal/api/models"
	"investeasy/internal/identity"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles account requests
type AuthHandler struct {
	accounts *identity.Service
	log      zerolog.Logger
}

func NewAuthHandler(accounts *identity.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		log:      log.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	u, err := h.accounts.Register(c.Request.Context(), identity.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	switch {
	case errors.Is(err, identity.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.NewError("EMAIL_TAKEN", "An account with this email already exists"))
		return
	case errors.Is(err, identity.ErrInvalidInput):
		badRequest(c, "INVALID_REQUEST", err)
		return
	case err != nil:
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(u))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, identity.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, models.NewError("INVALID_CREDENTIALS", "Invalid email or password"))
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   session.ExpiresAt,
		User:        toUserResponse(session.User),
	})
}

// ForgotPassword handles POST /api/v1/auth/password/forgot
// The response does not reveal whether the email is registered.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	if _, err := h.accounts.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "If the email is registered, a reset token has been issued"})
}

// ResetPassword handles POST /api/v1/auth/password/reset
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	err := h.accounts.ResetPassword(c.Request.Context(), req.Token, req.Password)
	switch {
	case errors.Is(err, identity.ErrTokenExpired):
		c.JSON(http.StatusBadRequest, models.NewError("TOKEN_EXPIRED", err.Error()))
		return
	case errors.Is(err, identity.ErrTokenConsumed):
		c.JSON(http.StatusBadRequest, models.NewError("TOKEN_CONSUMED", err.Error()))
		return
	case errors.Is(err, identity.ErrInvalidToken), errors.Is(err, identity.ErrNotFound):
		c.JSON(http.StatusBadRequest, models.NewError("INVALID_TOKEN", "invalid token"))
		return
	case errors.Is(err, identity.ErrInvalidInput):
		badRequest(c, "INVALID_REQUEST", err)
		return
	case err != nil:
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.NewError("UNAUTHORIZED", "missing bearer token"))
		return
	}

	u, err := h.accounts.Me(c.Request.Context(), claims.UserID)
	if errors.Is(err, identity.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.NewError("USER_NOT_FOUND", "user no longer exists"))
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(u))
}

func (h *AuthHandler) internalError(c *gin.Context, err error) {
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Account request failed")
	c.JSON(http.StatusInternalServerError, models.NewError("INTERNAL_ERROR", "An unexpected error occurred"))
}

func toUserResponse(u *identity.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
