package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestHistory(t *testing.T) {
	h := NewHistory(3)

	if got := h.Prev(); got != "" {
		t.Errorf("Prev() on empty = %q", got)
	}

	h.Add("LIST")
	h.Add("LIST")
	h.Add("OK 3 times")
	h.Add("")
	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	if got := h.Prev(); got != "OK 3 times" {
		t.Errorf("Prev() = %q", got)
	}
	if got := h.Prev(); got != "LIST" {
		t.Errorf("Prev() = %q", got)
	}
	// 先頭で止まる
	if got := h.Prev(); got != "LIST" {
		t.Errorf("Prev() at head = %q", got)
	}
	if got := h.Next(); got != "OK 3 times" {
		t.Errorf("Next() = %q", got)
	}
	if got := h.Next(); got != "" {
		t.Errorf("Next() past end = %q", got)
	}
}

func TestHistoryLimit(t *testing.T) {
	h := NewHistory(2)
	h.Add("A")
	h.Add("B")
	h.Add("C")

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	h.Prev()
	if got := h.Prev(); got != "B" {
		t.Errorf("oldest entry = %q, want B", got)
	}
}

func TestFormatIncoming(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

	got := FormatIncoming(ts, "bob (device cc-dd) [blocked]\n")
	want := "[gray]09:30:00[-] [teal]<[-] bob (device cc-dd) [blocked[]"
	if got != want {
		t.Errorf("FormatIncoming() = %q, want %q", got, want)
	}

	got = FormatIncoming(ts, "User data:\nState: Allowed")
	want = "[gray]09:30:00[-] [teal]<[-] User data:\n           State: Allowed"
	if got != want {
		t.Errorf("FormatIncoming() multi-line = %q, want %q", got, want)
	}
}

func TestFormatOutgoing(t *testing.T) {
	ts := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	got := FormatOutgoing(ts, "MANAGE SHOW alice")
	want := "[gray]09:30:00[-] [green]>[-] MANAGE SHOW alice"
	if got != want {
		t.Errorf("FormatOutgoing() = %q, want %q", got, want)
	}
}

func TestQuickCommand(t *testing.T) {
	tests := []struct {
		key    tcell.Key
		want   string
		wantOK bool
	}{
		{tcell.KeyF1, "HELP", true},
		{tcell.KeyF2, "LIST", true},
		{tcell.KeyF4, "NO", true},
		{tcell.KeyF5, "PASS", true},
		{tcell.KeyUp, "", false},
		{tcell.KeyCtrlQ, "", false},
	}
	for _, tt := range tests {
		got, ok := QuickCommand(tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("QuickCommand(%v) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestFormatKeyBindingHint(t *testing.T) {
	got := FormatKeyBindingHint([]KeyBinding{
		{tcell.KeyF2, "LIST", "LIST"},
		{tcell.KeyCtrlQ, "Quit", ""},
	})
	if got != "F2:LIST | Ctrl+Q:Quit" {
		t.Errorf("FormatKeyBindingHint() = %q", got)
	}
}

func TestStatusText(t *testing.T) {
	if got := errorText("send failed [x]"); got != "[red::b] ✗ send failed [x[] [-::-]" {
		t.Errorf("errorText() = %q", got)
	}

	hint := FormatKeyBindingHint(GetKeyBindings())
	if got := statusLine("127.0.0.1:9999", ""); got != " listen 127.0.0.1:9999 | guestauth [yellow]waiting[white] | "+hint {
		t.Errorf("statusLine() without peer = %q", got)
	}
	if got := statusLine("127.0.0.1:9999", "127.0.0.1:40000"); got != " listen 127.0.0.1:9999 | guestauth 127.0.0.1:40000 | "+hint {
		t.Errorf("statusLine() with peer = %q", got)
	}
}
