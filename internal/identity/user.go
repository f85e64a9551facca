package identity

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxNameLength     = 64
	maxEmailLength    = 120
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLength = 72
)

// User is a registered account.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RegisterInput is what a caller supplies to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// normalize trims names and lowercases the email.
func (in RegisterInput) normalize() RegisterInput {
	return RegisterInput{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     NormalizeEmail(in.Email),
		Password:  in.Password,
	}
}

func (in RegisterInput) validate() error {
	if in.FirstName == "" || len(in.FirstName) > maxNameLength {
		return fmt.Errorf("%w: first name must be 1..%d characters", ErrInvalidInput, maxNameLength)
	}
	if in.LastName == "" || len(in.LastName) > maxNameLength {
		return fmt.Errorf("%w: last name must be 1..%d characters", ErrInvalidInput, maxNameLength)
	}
	if err := ValidateEmail(in.Email); err != nil {
		return err
	}
	return ValidatePassword(in.Password)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if email == "" || len(email) > maxEmailLength {
		return fmt.Errorf("%w: email must be 1..%d characters", ErrInvalidInput, maxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: email is not a valid address", ErrInvalidInput)
	}
	return nil
}

// ValidatePassword enforces the length policy.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: password must be <= %d bytes", ErrInvalidInput, maxPasswordLength)
	}
	return nil
}
