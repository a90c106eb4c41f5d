package collector

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zachfi/streamstats/pkg/telemetry"
)

const metricsNamespace = "streamstats"

const (
	resultOK       = "ok"
	resultDegraded = "degraded"
	resultFailed   = "failed"
)

type metrics struct {
	streamUp        prometheus.Gauge
	listenersPeak   prometheus.Gauge
	listenersNow    prometheus.Gauge
	rosterSize      prometheus.Gauge
	geoLookupsTotal prometheus.Counter
	snapshotsTotal  *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)

	return &metrics{
		streamUp: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "stream_up",
			Help:      "Whether both the primary and backup mounts answered the last probe.",
		}),
		listenersPeak: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "listeners_peak",
			Help:      "Peak listener count reported by the platform.",
		}),
		listenersNow: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "listeners_current",
			Help:      "Current listener count reported by the platform.",
		}),
		rosterSize: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "roster_listeners",
			Help:      "Number of entries in the last listener roster.",
		}),
		geoLookupsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "geolocation_lookups_total",
			Help:      "Total number of geolocation lookups made.",
		}),
		snapshotsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "snapshots_total",
			Help:      "Total number of snapshot runs by result.",
		}, []string{"result"}),
	}
}

func (m *metrics) observe(snap *telemetry.Snapshot, err error) {
	if err != nil {
		m.streamUp.Set(0)
		m.snapshotsTotal.WithLabelValues(resultFailed).Inc()
		return
	}

	m.streamUp.Set(1)
	if snap.Audience != nil {
		m.listenersPeak.Set(float64(snap.Audience.Peak))
		m.listenersNow.Set(float64(snap.Audience.Current))
	}
	m.rosterSize.Set(float64(len(snap.Listeners)))
	m.geoLookupsTotal.Add(float64(snap.GeoLookups))

	result := resultOK
	if snap.LastError != "" {
		result = resultDegraded
	}
	m.snapshotsTotal.WithLabelValues(result).Inc()
}
