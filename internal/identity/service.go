package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investeasy/internal/clock"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is the result of a successful login.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *User
}

// Service implements registration, login, token verification and password recovery.
type Service struct {
	store       *Store
	hasher      *BcryptHasher
	signer      *TokenSigner
	clock       clock.Clock
	recoveryTTL time.Duration
	log         zerolog.Logger
}

type ServiceConfig struct {
	RecoveryTTL time.Duration
}

func NewService(store *Store, hasher *BcryptHasher, signer *TokenSigner, clk clock.Clock, cfg ServiceConfig, log zerolog.Logger) *Service {
	if clk == nil {
		clk = clock.Real{}
	}
	if cfg.RecoveryTTL <= 0 {
		cfg.RecoveryTTL = 30 * time.Minute
	}
	return &Service{
		store:       store,
		hasher:      hasher,
		signer:      signer,
		clock:       clk,
		recoveryTTL: cfg.RecoveryTTL,
		log:         log.With().Str("component", "identity").Logger(),
	}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	in = in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", u.ID.String()).Msg("User registered")
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	u, err := s.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		s.log.Debug().Str("user_id", u.ID.String()).Msg("Password mismatch")
		return nil, ErrInvalidCredentials
	}

	token, claims, err := s.signer.Sign(u)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &Session{AccessToken: token, ExpiresAt: claims.ExpiresAt, User: u}, nil
}

// Authenticate verifies an access token.
func (s *Service) Authenticate(token string) (Claims, error) {
	return s.signer.Parse(token)
}

func (s *Service) Me(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.store.GetUserByID(ctx, id)
}

// RequestPasswordReset issues a reset token for email. There is no mail delivery:
// the token is written to the log. Unknown emails succeed silently and return "".
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	u, err := s.store.GetUserByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		s.log.Debug().Msg("Password reset requested for unknown email")
		return "", nil
	}
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	expiresAt := s.clock.Now().Add(s.recoveryTTL)
	if err := s.store.CreateResetToken(ctx, token, u.ID, expiresAt); err != nil {
		return "", err
	}

	s.log.Info().
		Str("user_id", u.ID.String()).
		Str("reset_token", token).
		Time("expires_at", expiresAt).
		Msg("Password reset token issued")
	return token, nil
}

func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}
	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.ResetPassword(ctx, token, hash, s.clock.Now())
}
