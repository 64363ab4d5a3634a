package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_TextFormat_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatText, App: "pet-registry", Writer: &buf})
	l.(*StdLogger).now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	l.Debug("hidden", nil)
	l.Info("pet created", map[string]any{"pet_id": 7})

	out := strings.TrimSpace(buf.String())
	want := "app=pet-registry level=info msg=pet created pet_id=7 ts=2025-01-02T03:04:05Z"
	if out != want {
		t.Fatalf("unexpected output:\n got: %s\nwant: %s", out, want)
	}
}

func TestLogger_JSONFormat_WithFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatJSON, Writer: &buf}).
		With(map[string]any{"component": "pets"})

	l.Warn("unsafe delete", map[string]any{"err": errors.New("boom"), "": "ignored"})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, buf.String())
	}
	if entry["component"] != "pets" || entry["level"] != "warn" || entry["err"] != "boom" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if _, ok := entry[""]; ok {
		t.Fatalf("empty keys must be dropped")
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel("WARNING") != Warn || ParseLevel("nope") != Info {
		t.Fatalf("unexpected ParseLevel result")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected ParseFormat result")
	}
}
