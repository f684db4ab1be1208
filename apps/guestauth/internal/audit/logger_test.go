package audit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

func TestLoggerLog(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "udp", logging.NewMasker(true))
	logger.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger.Log(OpAccept, "alice", "AA-BB-CC-DD-EE-FF", "guest accepted", "3 times")

	var entry Entry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON: %v", err)
	}

	if entry.Time != "2026-01-02T03:04:05Z" {
		t.Errorf("expected time 2026-01-02T03:04:05Z, got %s", entry.Time)
	}
	if entry.App != "guestauth" || entry.EventID != "AUDIT_LOG" || entry.Level != "INFO" {
		t.Errorf("unexpected header fields: %+v", entry)
	}
	if entry.Operation != OpAccept {
		t.Errorf("expected operation accept, got %s", entry.Operation)
	}
	if entry.User != "alice" {
		t.Errorf("expected user alice, got %s", entry.User)
	}
	if entry.Device != "AA-BB-CC-**-**-**" {
		t.Errorf("expected masked device, got %s", entry.Device)
	}
	if entry.Actor != "udp" {
		t.Errorf("expected actor udp, got %s", entry.Actor)
	}
	if entry.Details != "3 times" {
		t.Errorf("expected details '3 times', got %s", entry.Details)
	}
}

func TestLoggerLogSystem(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "udp", nil)

	logger.LogSystem(OpExpire, "bob", "aa:bb:cc:dd:ee:ff", "expired user dropped")

	output := buf.String()
	if !strings.Contains(output, `"actor":"system"`) {
		t.Error("expected actor to be system")
	}
	if !strings.Contains(output, `"device":"aa:bb:cc:dd:ee:ff"`) {
		t.Error("expected unmasked device")
	}
	if strings.Contains(output, `"details"`) {
		t.Error("expected details to be omitted")
	}
}

func TestNilLogger(t *testing.T) {
	var logger *Logger
	logger.Log(OpDrop, "bob", "", "user dropped", "")
	logger.LogSystem(OpExpire, "bob", "", "expired")
}
