package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestSlogAdapter_EmitsFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	logger := NewSlogAdapter(base)

	logger.Info("parcel created",
		String("parcel_id", "abc"),
		Int("amount", 500),
		Duration("took", 10*time.Millisecond),
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["msg"] != "parcel created" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["parcel_id"] != "abc" {
		t.Fatalf("unexpected parcel_id: %v", entry["parcel_id"])
	}
}

func TestSlogAdapter_WithAttachesFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	logger := NewSlogAdapter(base).With(String("component", "assignment"))

	logger.Warn("rider update failed", Err(errors.New("no reachable servers")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["component"] != "assignment" {
		t.Fatalf("With field missing: %v", entry)
	}
	if entry["err"] != "no reachable servers" {
		t.Fatalf("err field missing: %v", entry)
	}
}

func TestErr_Nil(t *testing.T) {
	t.Parallel()

	f := Err(nil)
	if f.Key != "err" || f.Value != nil {
		t.Fatalf("Err(nil) = %+v", f)
	}
}

func TestNop_DoesNothing(t *testing.T) {
	t.Parallel()

	l := Nop()
	l.Info("ignored", String("k", "v"))
	if l.With(String("k", "v")) == nil {
		t.Fatal("Nop().With returned nil")
	}
}
