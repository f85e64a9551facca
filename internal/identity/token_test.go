package identity

import (
	"testing"
	"time"

	"investeasy/internal/clock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenSigner_RejectsShortSecret(t *testing.T) {
	_, err := NewTokenSigner("short", time.Hour, nil)
	assert.Error(t, err)
}

func TestTokenSigner_RoundTripAndExpiry(t *testing.T) {
	clk := clock.NewManual(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	signer, err := NewTokenSigner(testSecret, time.Hour, clk)
	require.NoError(t, err)

	u := &User{ID: uuid.New(), Email: "ana@example.com"}
	raw, issued, err := signer.Sign(u)
	require.NoError(t, err)

	claims, err := signer.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.True(t, issued.ExpiresAt.Equal(claims.ExpiresAt))
	assert.True(t, clk.Now().Equal(claims.IssuedAt))

	clk.Advance(2 * time.Hour)
	_, err = signer.Parse(raw)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenSigner_RejectsForeignSignature(t *testing.T) {
	clk := clock.NewManual(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	a, err := NewTokenSigner(testSecret, time.Hour, clk)
	require.NoError(t, err)
	b, err := NewTokenSigner("another-secret-9876543210", time.Hour, clk)
	require.NoError(t, err)

	raw, _, err := a.Sign(&User{ID: uuid.New(), Email: "ana@example.com"})
	require.NoError(t, err)

	_, err = b.Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
