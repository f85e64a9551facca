package identity

import (
	"context"
	"testing"
	"time"

	"investeasy/internal/clock"
	"investeasy/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-0123456789"

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.New(database.Config{Path: ":memory:", Name: "test"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(context.Background()))
	return db
}

func newTestService(t *testing.T) (*Service, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC))
	signer, err := NewTokenSigner(testSecret, time.Hour, clk)
	require.NoError(t, err)
	svc := NewService(NewStore(newTestDB(t).Conn()), NewBcryptHasher(bcrypt.MinCost), signer, clk,
		ServiceConfig{RecoveryTTL: 30 * time.Minute}, zerolog.Nop())
	return svc, clk
}

func validInput() RegisterInput {
	return RegisterInput{
		FirstName: "Ana",
		LastName:  "Souza",
		Email:     "Ana.Souza@Example.com ",
		Password:  "s3cret-pass",
	}
}
