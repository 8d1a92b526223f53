package api

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes fetch failures
type ErrorKind int

const (
	KindTransport ErrorKind = iota
	KindStatus
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// FetchError is returned for every failed FetchCountries call.
// No partial result accompanies it.
type FetchError struct {
	Kind       ErrorKind
	URL        string
	StatusCode int // set for KindStatus
	Cause      error
}

func (e *FetchError) Error() string {
	msg := "failed to fetch data"
	if e.Kind == KindStatus {
		msg = fmt.Sprintf("%s: unexpected status %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

var (
	// ErrNoEndpoint is the cause of a FetchError when no URL was configured
	ErrNoEndpoint = errors.New("no API endpoint configured")

	// ErrMissingCurrency marks a raw record without any currency entry
	ErrMissingCurrency = errors.New("country has no currency")

	// ErrDuplicateName marks a raw record whose name was already mapped
	ErrDuplicateName = errors.New("duplicate country name")
)

// IsFetchError reports whether err is or wraps a *FetchError
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
