package weather

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a provider lookup could not be completed
type ErrorKind int

const (
	KindNetwork ErrorKind = iota + 1
	KindAuthorization
	KindNotFound
	KindMalformed
	KindStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindMalformed:
		return "malformed_response"
	case KindStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching against a *ProviderError
var (
	ErrNetwork          = errors.New("weather provider unreachable")
	ErrUnauthorized     = errors.New("weather provider rejected credentials")
	ErrNotFound         = errors.New("city not found")
	ErrMalformed        = errors.New("malformed weather provider response")
	ErrUnexpectedStatus = errors.New("unexpected weather provider status")
	ErrLocationNotFound = errors.New("no city found for location")
)

// ProviderError is returned by every Client lookup that fails
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	// Message is the provider's own human-readable description, if it sent one
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.StatusCode != 0:
		return fmt.Sprintf("API request failed with status: %d", e.StatusCode)
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.sentinel().Error()
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *ProviderError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ProviderError) sentinel() error {
	switch e.Kind {
	case KindNetwork:
		return ErrNetwork
	case KindAuthorization:
		return ErrUnauthorized
	case KindNotFound:
		return ErrNotFound
	case KindMalformed:
		return ErrMalformed
	default:
		return ErrUnexpectedStatus
	}
}

// KindOf returns the kind of a provider error, or 0 if err is not one
func KindOf(err error) ErrorKind {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return 0
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case 401, 403:
		return KindAuthorization
	case 404:
		return KindNotFound
	default:
		return KindStatus
	}
}
