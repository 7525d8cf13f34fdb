package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrLocationNotFound means a geocoder could not match the text to a place.
	ErrLocationNotFound = errors.New("location not found")
	// ErrNoRouteFound is the soft routing failure that advances retry tiers.
	ErrNoRouteFound = errors.New("no route found")
	// ErrProviderHard is a routing failure that is never retried across tiers.
	ErrProviderHard = errors.New("route provider hard error")
	// ErrNoUsableCommuteData means no destination produced a usable, weighted route.
	ErrNoUsableCommuteData = errors.New("no usable commute data")
	// ErrInvalidTenancy means the tenancy length is below one month.
	ErrInvalidTenancy = errors.New("invalid tenancy")
	// ErrInvalidInput covers malformed candidates, destinations and options.
	ErrInvalidInput = errors.New("invalid input")
)

// ProviderError is a hard routing failure tagged with the tier that raised it.
type ProviderError struct {
	Tier    RouteTier
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("route provider hard error (tier=%s): %s", e.Tier, e.Message)
}

func (e *ProviderError) Unwrap() error { return ErrProviderHard }

// Stable error codes used in API payloads and CLI output.
const (
	CodeLocationNotFound    = "LOCATION_NOT_FOUND"
	CodeNoRouteFound        = "NO_ROUTE_FOUND"
	CodeProviderHardError   = "PROVIDER_HARD_ERROR"
	CodeNoUsableCommuteData = "NO_USABLE_COMMUTE_DATA"
	CodeInvalidTenancy      = "INVALID_TENANCY"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInternal            = "INTERNAL"
)

// ErrorCode maps an error to its stable code. It returns "" for nil.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLocationNotFound):
		return CodeLocationNotFound
	case errors.Is(err, ErrNoRouteFound):
		return CodeNoRouteFound
	case errors.Is(err, ErrProviderHard):
		return CodeProviderHardError
	case errors.Is(err, ErrNoUsableCommuteData):
		return CodeNoUsableCommuteData
	case errors.Is(err, ErrInvalidTenancy):
		return CodeInvalidTenancy
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	default:
		return CodeInternal
	}
}
