package identity

import (
	"errors"
	"fmt"
	"time"

	"investeasy/internal/clock"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "investeasy"

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenSigner issues and verifies HS256 access tokens.
type TokenSigner struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewTokenSigner(secret string, ttl time.Duration, clk clock.Clock) (*TokenSigner, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	if clk == nil {
		clk = clock.Real{}
	}
	return &TokenSigner{secret: []byte(secret), ttl: ttl, clock: clk}, nil
}

func (s *TokenSigner) Sign(u *User) (string, Claims, error) {
	now := s.clock.Now().UTC().Truncate(time.Second)
	claims := Claims{
		UserID:    u.ID,
		Email:     u.Email,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: u.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

// Parse verifies signature, issuer and expiry. Failures match ErrInvalidToken or ErrTokenExpired.
func (s *TokenSigner) Parse(raw string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &accessClaims{}, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: subject: %v", ErrInvalidToken, err)
	}

	return Claims{
		UserID:    userID,
		Email:     claims.Email,
		IssuedAt:  claims.IssuedAt.Time.UTC(),
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}
