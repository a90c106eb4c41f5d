package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/zachfi/streamstats/pkg/ipapi"
)

// GeolocationBudget is the maximum number of geolocation lookups in one run.
const GeolocationBudget = 150

// StreamState carries the raw diagnostic text of both mounts.
type StreamState struct {
	Principal string `json:"principal"`
	Backup    string `json:"backup"`
}

func NewStreamState(principal, backup string) (*StreamState, error) {
	switch {
	case strings.TrimSpace(principal) == "":
		return nil, fmt.Errorf("%w: empty principal mount status", ErrMalformedStatus)
	case strings.TrimSpace(backup) == "":
		return nil, fmt.Errorf("%w: empty backup mount status", ErrMalformedStatus)
	}

	return &StreamState{Principal: principal, Backup: backup}, nil
}

type AudienceSummary struct {
	Peak    int `json:"peak"`
	Current int `json:"current"`
}

type ListenerRecord struct {
	IP               string          `json:"ip"`
	ConnectedSeconds int64           `json:"connected_seconds"`
	Geo              *ipapi.Location `json:"geo,omitempty"`
}

// Snapshot is the result of one aggregation run. Stream and Audience are nil
// when their stage failed; LastError names the most recent failure.
type Snapshot struct {
	RunID      string           `json:"run_id"`
	TakenAt    time.Time        `json:"taken_at"`
	Stream     *StreamState     `json:"stream,omitempty"`
	Audience   *AudienceSummary `json:"audience,omitempty"`
	Listeners  []ListenerRecord `json:"listeners"`
	GeoLookups int              `json:"geo_lookups"`
	LastError  string           `json:"last_error,omitempty"`
}
