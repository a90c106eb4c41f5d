package telemetry

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingIdentity = errors.New("identity is required")
	ErrMissingSecret   = errors.New("secret is required")
	ErrMissingBitrate  = errors.New("bitrate is required")
	ErrMissingCodec    = errors.New("codec is required")

	ErrMalformedStatus           = errors.New("malformed stream status")
	ErrNoGeolocator              = errors.New("geolocation requested without a geolocator")
	ErrGeolocationBudgetExceeded = fmt.Errorf("%d geolocation lookups already made in this run, the ip-api.com free tier limit", GeolocationBudget)
)

// ConnectivityError reports that a stream mount could not be reached. It is
// the only error that aborts a snapshot.
type ConnectivityError struct {
	Mount string
	Err   error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("unable to reach the streaming platform for mount %s: %v", e.Mount, e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every missing credential field.
type ValidationErrors struct {
	Errs []error
}

func (e *ValidationErrors) HasErrors() bool {
	return len(e.Errs) > 0
}

func (e *ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return "configuration validation failed: " + strings.Join(msgs, ", ")
}

func (e *ValidationErrors) Unwrap() []error {
	return e.Errs
}
