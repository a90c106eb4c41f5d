package telemetry

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewStreamState(t *testing.T) {
	state, err := NewStreamState("OK", "OK backup")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.Principal != "OK" || state.Backup != "OK backup" {
		t.Errorf("unexpected state %+v", state)
	}

	for _, tc := range []struct{ principal, backup string }{{"", "OK"}, {"OK", " "}} {
		if _, err := NewStreamState(tc.principal, tc.backup); !errors.Is(err, ErrMalformedStatus) {
			t.Errorf("(%q, %q): expected ErrMalformedStatus, got %v", tc.principal, tc.backup, err)
		}
	}
}

func TestCredentialsValidate(t *testing.T) {
	if err := testCreds.Validate(); err != nil {
		t.Errorf("expected valid credentials, got %v", err)
	}

	err := Credentials{}.Validate()
	for _, want := range []error{ErrMissingIdentity, ErrMissingSecret, ErrMissingBitrate, ErrMissingCodec} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
	if !strings.HasPrefix(err.Error(), "configuration validation failed:") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestSnapshotJSON(t *testing.T) {
	snap := Snapshot{
		RunID:     "run",
		Listeners: []ListenerRecord{{IP: "1.2.3.4", ConnectedSeconds: 300}},
	}

	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(b)
	for _, absent := range []string{`"audience"`, `"stream"`, `"last_error"`, `"geo"`} {
		if strings.Contains(out, absent) {
			t.Errorf("expected %s to be omitted: %s", absent, out)
		}
	}
	if !strings.Contains(out, `"connected_seconds":300`) {
		t.Errorf("unexpected encoding: %s", out)
	}
}
