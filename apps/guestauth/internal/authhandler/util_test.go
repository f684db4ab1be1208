package authhandler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

// fakeRunner は実行されたコマンドを記録する
type fakeRunner struct {
	calls []string
	fail  map[string]bool
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	r.calls = append(r.calls, line)
	if r.fail[name] {
		return errors.New("exit status 1")
	}
	return nil
}

// fakeDisassociator は切断要求を記録する
type fakeDisassociator struct {
	devices []string
}

func (d *fakeDisassociator) Disassociate(deviceID string) string {
	d.devices = append(d.devices, deviceID)
	return msgDisassociated
}

func TestRejectOnlyWhenBlocked(t *testing.T) {
	user := &users.UserIdentifier{Name: "alice", DeviceID: "aa-bb", Password: "123456"}

	tests := []struct {
		state    users.JoinState
		want     Decision
		wantAttr bool
	}{
		{users.StateWaiting, DecisionAllow, true},
		{users.StateAllowed, DecisionAllow, true},
		{users.StateBlocked, DecisionReject, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			got, attrs := RejectOnlyWhenBlocked(user, tt.state)
			if got != tt.want {
				t.Errorf("decision = %v, want %v", got, tt.want)
			}
			if tt.wantAttr && attrs[AttrCleartextPassword] != "123456" {
				t.Errorf("attrs = %v, want password", attrs)
			}
			if !tt.wantAttr && attrs != nil {
				t.Errorf("attrs = %v, want nil", attrs)
			}
		})
	}
}

func TestHostapdDisassociator(t *testing.T) {
	runner := &fakeRunner{}
	d := NewHostapdDisassociator(runner)

	if got := d.Disassociate("AA-BB-CC-DD-EE-FF"); got != msgDisassociated {
		t.Errorf("Disassociate() = %q, want %q", got, msgDisassociated)
	}
	if len(runner.calls) != 1 || runner.calls[0] != "hostapd_cli disassociate aa:bb:cc:dd:ee:ff" {
		t.Errorf("calls = %v", runner.calls)
	}

	runner.fail = map[string]bool{"hostapd_cli": true}
	if got := d.Disassociate("aa-bb"); got != msgDisassociateFail {
		t.Errorf("Disassociate() on failure = %q, want %q", got, msgDisassociateFail)
	}
}

func TestNewDisassociator(t *testing.T) {
	cfg := &config.Config{DisassociateMode: "hostapd"}
	if _, ok := NewDisassociator(cfg, &fakeRunner{}).(*HostapdDisassociator); !ok {
		t.Error("hostapd mode should build HostapdDisassociator")
	}

	cfg = &config.Config{DisassociateMode: "CoA", CoAAddr: "127.0.0.1:3799", CoASecret: "s"}
	if _, ok := NewDisassociator(cfg, &fakeRunner{}).(*CoADisassociator); !ok {
		t.Error("coa mode should build CoADisassociator")
	}
}

func TestDecisionString(t *testing.T) {
	if DecisionAllow.String() != "ALLOW" || DecisionNoOp.String() != "NO_OP" || DecisionReject.String() != "REJECT" {
		t.Error("Decision.String() mismatch")
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		label    string
		wantName string
	}{
		{"default", HandlerDefault},
		{"Firewall", HandlerFirewall},
		{"VLAN", HandlerVLAN},
		{"xmpp", HandlerDefault},
	}
	for _, tt := range tests {
		name, h, err := r.New(tt.label)
		if err != nil {
			t.Fatalf("New(%q) error = %v", tt.label, err)
		}
		if name != tt.wantName {
			t.Errorf("New(%q) name = %q, want %q", tt.label, name, tt.wantName)
		}
		if h == nil {
			t.Errorf("New(%q) returned nil handler", tt.label)
		}
	}
}
