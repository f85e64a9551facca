package data

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable reports that neither fresh nor stale market data could be obtained.
	ErrUnavailable = errors.New("market data unavailable")
	// ErrParseFailure reports a malformed rates response or one missing a required series.
	ErrParseFailure = errors.New("market data parse failure")
)

// Kind classifies a MarketDataError.
type Kind int

const (
	KindUnavailable Kind = iota + 1
	KindParseFailure
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindParseFailure:
		return "parse_failure"
	default:
		return "unknown"
	}
}

// MarketDataError is the only error kind returned by the Fetcher.
//
// A parse failure with no cached fallback still leaves the caller without data, so
// errors.Is(err, ErrUnavailable) holds for both kinds; errors.Is(err, ErrParseFailure)
// holds only when the response itself was the problem.
type MarketDataError struct {
	Kind Kind
	Err  error
}

func (e *MarketDataError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("market data %s", e.Kind)
	}
	return fmt.Sprintf("market data %s: %v", e.Kind, e.Err)
}

func (e *MarketDataError) Unwrap() error { return e.Err }

func (e *MarketDataError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return true
	case ErrParseFailure:
		return e.Kind == KindParseFailure
	}
	return false
}

// parseErrorf builds an error that matches ErrParseFailure.
func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParseFailure, fmt.Sprintf(format, args...))
}

// kindOf picks the MarketDataError kind for a failed refresh.
func kindOf(cause error) Kind {
	if errors.Is(cause, ErrParseFailure) {
		return KindParseFailure
	}
	return KindUnavailable
}
