package collector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/zachfi/streamstats/pkg/infomaniak"
	"github.com/zachfi/streamstats/pkg/telemetry"
)

const (
	statsXML  = `<icestats><source mount="/radio1-128.mp3"><listener_peak>42</listener_peak><listeners>7</listeners></source></icestats>`
	rosterXML = `<icestats><source mount="/radio1-128.mp3">` +
		`<listener><IP>1.2.3.4</IP><Connected>300</Connected></listener>` +
		`<listener><IP>5.6.7.8</IP><Connected>120</Connected></listener>` +
		`<listener><IP>9.9.9.9</IP><Connected>300</Connected></listener>` +
		`</source></icestats>`
)

func platformServer(t *testing.T, backupDown bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/radio/diag/status.php":
			if backupDown && r.URL.Query().Get("mount") == "/radio1-128-bak.mp3" {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			fmt.Fprint(w, "OK")
		case "/admin/stats.xml":
			fmt.Fprint(w, statsXML)
		case "/mediastats.php":
			fmt.Fprint(w, rosterXML)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func testConfig(url string) Config {
	return Config{
		Identity:       "radio1",
		Secret:         "s3cret",
		Bitrate:        "128",
		Codec:          "mp3",
		SortByDuration: true,
		Platform:       infomaniak.Config{URL: url},
	}
}

func testLogger() slog.Logger {
	return *slog.New(slog.NewTextHandler(io.Discard, nil))
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := g.Write(m); err != nil {
		t.Fatalf("writing metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	if err := c.Write(m); err != nil {
		t.Fatalf("writing metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestServeHTTP_Snapshot(t *testing.T) {
	server := platformServer(t, false)

	c, err := New(testConfig(server.URL), testLogger(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var snap telemetry.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decoding snapshot: %v", err)
	}

	if snap.Audience == nil || snap.Audience.Peak != 42 || snap.Audience.Current != 7 {
		t.Errorf("unexpected audience %+v", snap.Audience)
	}
	if len(snap.Listeners) != 3 || snap.Listeners[0].IP != "1.2.3.4" || snap.Listeners[1].IP != "9.9.9.9" || snap.Listeners[2].IP != "5.6.7.8" {
		t.Errorf("unexpected listeners %+v", snap.Listeners)
	}
	if snap.LastError != "" {
		t.Errorf("unexpected error %q", snap.LastError)
	}

	if v := gaugeValue(t, c.metrics.listenersPeak); v != 42 {
		t.Errorf("expected peak gauge 42, got %v", v)
	}
	if v := gaugeValue(t, c.metrics.rosterSize); v != 3 {
		t.Errorf("expected roster gauge 3, got %v", v)
	}
	if v := gaugeValue(t, c.metrics.streamUp); v != 1 {
		t.Errorf("expected stream up, got %v", v)
	}
	if v := counterValue(t, c.metrics.snapshotsTotal.WithLabelValues(resultOK)); v != 1 {
		t.Errorf("expected one ok snapshot, got %v", v)
	}
}

func TestServeHTTP_BackupDown(t *testing.T) {
	server := platformServer(t, true)

	c, err := New(testConfig(server.URL), testLogger(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/snapshot", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["error"] == "" {
		t.Error("expected an error message")
	}

	if v := gaugeValue(t, c.metrics.streamUp); v != 0 {
		t.Errorf("expected stream down, got %v", v)
	}
	if v := counterValue(t, c.metrics.snapshotsTotal.WithLabelValues(resultFailed)); v != 1 {
		t.Errorf("expected one failed snapshot, got %v", v)
	}
}

func TestServeHTTP_MethodNotAllowed(t *testing.T) {
	server := platformServer(t, false)

	c, err := New(testConfig(server.URL), testLogger(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec := httptest.NewRecorder()
	c.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/snapshot", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestNew_MissingCredentials(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Secret = ""

	_, err := New(cfg, testLogger(), prometheus.NewRegistry())
	if !errors.Is(err, telemetry.ErrMissingSecret) {
		t.Errorf("expected ErrMissingSecret, got %v", err)
	}
}
