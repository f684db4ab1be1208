package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestWithTraceID(t *testing.T) {
	attr := WithTraceID("trace-12345")
	if attr.Key != FieldTraceID {
		t.Errorf("Key = %q, want %q", attr.Key, FieldTraceID)
	}
	if attr.Value.String() != "trace-12345" {
		t.Errorf("Value = %q, want %q", attr.Value.String(), "trace-12345")
	}
}

func TestWithEventID(t *testing.T) {
	attr := WithEventID("GUEST_JOIN_REQUEST")
	if attr.Key != FieldEventID {
		t.Errorf("Key = %q, want %q", attr.Key, FieldEventID)
	}
	if attr.Value.String() != "GUEST_JOIN_REQUEST" {
		t.Errorf("Value = %q, want %q", attr.Value.String(), "GUEST_JOIN_REQUEST")
	}
}

func TestWithError(t *testing.T) {
	t.Run("With error", func(t *testing.T) {
		attr := WithError(errors.New("connection failed"))
		if attr.Key != FieldError {
			t.Errorf("Key = %q, want %q", attr.Key, FieldError)
		}
		if attr.Value.String() != "connection failed" {
			t.Errorf("Value = %q, want %q", attr.Value.String(), "connection failed")
		}
	})

	t.Run("With nil error", func(t *testing.T) {
		attr := WithError(nil)
		if attr.Value.String() != "" {
			t.Errorf("Value = %q, want empty string", attr.Value.String())
		}
	})
}

func TestSimpleFields(t *testing.T) {
	tests := []struct {
		name    string
		attr    slog.Attr
		wantKey string
		wantVal string
	}{
		{"src ip", WithSrcIP("192.168.1.100"), FieldSrcIP, "192.168.1.100"},
		{"user", WithUser("alice"), FieldUser, "alice"},
		{"session", WithSession("5A2B0001"), FieldSession, "5A2B0001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.wantKey {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.wantKey)
			}
			if tt.attr.Value.String() != tt.wantVal {
				t.Errorf("Value = %q, want %q", tt.attr.Value.String(), tt.wantVal)
			}
		})
	}
}

func TestWithLatency(t *testing.T) {
	attr := WithLatency(150)
	if attr.Key != FieldLatencyMs {
		t.Errorf("Key = %q, want %q", attr.Key, FieldLatencyMs)
	}
	if attr.Value.Int64() != 150 {
		t.Errorf("Value = %d, want %d", attr.Value.Int64(), 150)
	}
}

func TestCommonFields(t *testing.T) {
	t.Run("nil masker falls back to disabled", func(t *testing.T) {
		cf := NewCommonFields(nil)
		attr := cf.WithDevice("aa-bb-cc-dd-ee-ff")
		if attr.Value.String() != "aa-bb-cc-dd-ee-ff" {
			t.Errorf("Value = %q, want unmasked", attr.Value.String())
		}
	})

	t.Run("guest log fields", func(t *testing.T) {
		cf := NewCommonFields(NewMasker(true))
		fields := cf.GuestLogFields("GUEST_ALLOWED", "alice", "aa-bb-cc-dd-ee-ff")
		if len(fields) != 3 {
			t.Fatalf("len(fields) = %d, want 3", len(fields))
		}
		device, ok := fields[2].(slog.Attr)
		if !ok {
			t.Fatalf("fields[2] is %T, want slog.Attr", fields[2])
		}
		if device.Value.String() != "aa-bb-cc-**-**-**" {
			t.Errorf("device = %q, want masked", device.Value.String())
		}
	})
}
