package telemetry

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/zachfi/zkit/pkg/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zachfi/streamstats/pkg/infomaniak"
	"github.com/zachfi/streamstats/pkg/ipapi"
)

const tracerName = "github.com/zachfi/streamstats/pkg/telemetry"

// Platform is the statistics source for one radio account.
type Platform interface {
	Status(ctx context.Context, m infomaniak.Mount) (string, error)
	Stats(ctx context.Context) (*infomaniak.Stats, error)
	Listeners(ctx context.Context, m infomaniak.Mount) ([]infomaniak.Listener, error)
}

// Geolocator resolves a listener IP address to a location.
type Geolocator interface {
	Locate(ctx context.Context, ip string) (*ipapi.Location, error)
}

// Aggregator builds snapshots. It holds no per-run state, so concurrent calls
// to Snapshot never share an error slot or a lookup budget.
type Aggregator struct {
	creds    Credentials
	opts     Options
	platform Platform
	geo      Geolocator
	logger   *slog.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

// New validates the credentials and returns an Aggregator. geo may be nil
// when opts.Geolocate is false.
func New(creds Credentials, opts Options, platform Platform, geo Geolocator, logger *slog.Logger) (*Aggregator, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if opts.Geolocate && geo == nil {
		return nil, ErrNoGeolocator
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Aggregator{
		creds:    creds,
		opts:     opts,
		platform: platform,
		geo:      geo,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}, nil
}

// Snapshot runs the stream probe, the audience stats and the listener roster
// stages in that order. A *ConnectivityError from the probe is returned
// without a snapshot.
func (a *Aggregator) Snapshot(ctx context.Context) (*Snapshot, error) {
	runID := uuid.NewString()
	logger := a.logger.With("run", runID)

	ctx, span := a.tracer.Start(ctx, "Snapshot", trace.WithAttributes(attribute.String("run", runID)))
	defer span.End()

	snap := &Snapshot{RunID: runID, TakenAt: a.now()}
	var slot errorSlot

	stream, err := a.probeStream(ctx, logger)
	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return nil, err
	}
	slot = slot.record(err)
	snap.Stream = stream

	audience, err := a.fetchAudience(ctx, logger)
	slot = slot.record(err)
	snap.Audience = audience

	budget := newLookupBudget(GeolocationBudget)
	listeners, err := a.fetchRoster(ctx, budget, logger)
	slot = slot.record(err)
	snap.Listeners = listeners
	snap.GeoLookups = budget.used

	snap.LastError = slot.message()

	logger.Debug("snapshot assembled",
		"listeners", len(snap.Listeners),
		"geo_lookups", snap.GeoLookups,
		"last_error", snap.LastError,
	)

	return snap, nil
}

func (a *Aggregator) probeStream(ctx context.Context, logger *slog.Logger) (*StreamState, error) {
	ctx, span := a.tracer.Start(ctx, "probeStream")

	principal, err := a.mountStatus(ctx, false)
	if err != nil {
		return nil, tracing.ErrHandler(span, err, "principal mount unreachable", logger)
	}

	backup, err := a.mountStatus(ctx, true)
	if err != nil {
		return nil, tracing.ErrHandler(span, err, "backup mount unreachable", logger)
	}

	state, err := NewStreamState(principal, backup)
	return state, tracing.ErrHandler(span, err, "stream status rejected", logger)
}

func (a *Aggregator) mountStatus(ctx context.Context, backup bool) (string, error) {
	m := a.creds.mount(backup)
	body, err := a.platform.Status(ctx, m)
	if err != nil {
		return "", &ConnectivityError{Mount: m.String(), Err: err}
	}
	return body, nil
}

func (a *Aggregator) fetchAudience(ctx context.Context, logger *slog.Logger) (*AudienceSummary, error) {
	ctx, span := a.tracer.Start(ctx, "fetchAudience")

	var summary *AudienceSummary
	stats, err := a.platform.Stats(ctx)
	switch {
	case err != nil:
		err = fmt.Errorf("audience stats: %w", err)
	case stats.ListenerPeak < 0 || stats.Listeners < 0:
		err = fmt.Errorf("audience stats: negative listener count (peak %d, current %d)", stats.ListenerPeak, stats.Listeners)
	default:
		summary = &AudienceSummary{Peak: stats.ListenerPeak, Current: stats.Listeners}
	}

	return summary, tracing.ErrHandler(span, err, "audience stage failed", logger)
}

// fetchRoster builds the listener records in document order, geolocating
// them while the budget allows, then sorts them when requested. A failed
// fetch yields an empty roster.
func (a *Aggregator) fetchRoster(ctx context.Context, budget *lookupBudget, logger *slog.Logger) ([]ListenerRecord, error) {
	ctx, span := a.tracer.Start(ctx, "fetchRoster")

	entries, err := a.platform.Listeners(ctx, a.creds.mount(false))
	if err != nil {
		return []ListenerRecord{}, tracing.ErrHandler(span, fmt.Errorf("listener roster: %w", err), "roster stage failed", logger)
	}

	listeners := make([]ListenerRecord, 0, len(entries))
	var stageErr error
	for _, e := range entries {
		rec := ListenerRecord{IP: e.IP, ConnectedSeconds: e.Connected}

		if a.opts.Geolocate {
			if budget.take() {
				loc, err := a.geo.Locate(ctx, e.IP)
				if err != nil {
					logger.Warn("geolocation lookup failed", "ip", e.IP, "err", err)
				} else {
					rec.Geo = loc
				}
			} else {
				stageErr = ErrGeolocationBudgetExceeded
			}
		}

		listeners = append(listeners, rec)
	}

	if a.opts.SortByDuration {
		slices.SortStableFunc(listeners, func(x, y ListenerRecord) int {
			return cmp.Compare(y.ConnectedSeconds, x.ConnectedSeconds)
		})
	}

	span.SetAttributes(
		attribute.Int("listeners", len(listeners)),
		attribute.Int("geo_lookups", budget.used),
	)

	return listeners, tracing.ErrHandler(span, stageErr, "roster stage failed", logger)
}
