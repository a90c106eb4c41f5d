package collector

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/grafana/dskit/services"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/zachfi/streamstats/pkg/infomaniak"
	"github.com/zachfi/streamstats/pkg/ipapi"
	"github.com/zachfi/streamstats/pkg/telemetry"
)

// Collector takes a snapshot of the stream every interval and on every HTTP
// request. Runs are independent; nothing is carried from one to the next.
type Collector struct {
	services.Service
	cfg     *Config
	logger  *slog.Logger
	agg     *telemetry.Aggregator
	metrics *metrics
}

var module = "collector"

// New creates and returns a new Collector.
func New(cfg Config, logger slog.Logger, reg prometheus.Registerer) (*Collector, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}

	c := &Collector{
		cfg:    &cfg,
		logger: logger.With("module", module),
	}

	var geo telemetry.Geolocator
	if cfg.Geolocate {
		geo = ipapi.NewClient(cfg.Geolocation)
	}

	platform := infomaniak.NewClient(cfg.Platform, cfg.Identity, cfg.Secret)
	agg, err := telemetry.New(cfg.credentials(), cfg.options(), platform, geo, c.logger)
	if err != nil {
		return nil, err
	}
	c.agg = agg
	c.metrics = newMetrics(reg)

	c.Service = services.NewBasicService(c.starting, c.running, c.stopping)

	return c, nil
}

func (c *Collector) starting(_ context.Context) error {
	c.logger.Info("starting",
		"identity", c.cfg.Identity,
		"bitrate", c.cfg.Bitrate,
		"codec", c.cfg.Codec,
		"interval", c.cfg.Interval,
		"geolocate", c.cfg.Geolocate,
	)
	return nil
}

func (c *Collector) running(ctx context.Context) error {
	ticker := time.NewTicker(c.cfg.Interval)
	defer ticker.Stop()

	for {
		// A fatal run is logged and counted; the next tick tries again.
		_, _ = c.collect(ctx)

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (c *Collector) stopping(_ error) error {
	c.logger.Info("stopping")
	return nil
}

func (c *Collector) collect(ctx context.Context) (*telemetry.Snapshot, error) {
	snap, err := c.agg.Snapshot(ctx)
	c.metrics.observe(snap, err)
	if err != nil {
		c.logger.Error("snapshot failed", "err", err)
		return nil, err
	}

	args := []any{"run", snap.RunID, "listeners", len(snap.Listeners), "geo_lookups", snap.GeoLookups}
	if snap.Audience != nil {
		args = append(args, "peak", snap.Audience.Peak, "current", snap.Audience.Current)
	}
	c.logger.Info("snapshot taken", args...)

	if snap.LastError != "" {
		c.logger.Warn("snapshot incomplete", "run", snap.RunID, "err", snap.LastError)
	}

	return snap, nil
}

// ServeHTTP takes a fresh snapshot and writes it as JSON. A stream that
// cannot be reached is reported as 502.
func (c *Collector) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap, err := c.collect(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	if err := json.NewEncoder(w).Encode(snap); err != nil {
		c.logger.Error("error encoding snapshot", "err", err)
	}
}
