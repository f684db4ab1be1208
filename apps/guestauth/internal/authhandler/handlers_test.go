package authhandler

import (
	"strings"
	"testing"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

func newTestUser(state users.JoinState) *users.UserIdentifier {
	u := &users.UserIdentifier{Name: "alice", DeviceID: "AA-BB-CC-DD-EE-FF", Password: "654321"}
	if state != users.StateNew && state != users.StateWaiting {
		u.Data = &users.UserData{JoinState: state}
	}
	return u
}

func TestDefaultHandler(t *testing.T) {
	h := NewDefaultHandler()
	if err := h.Start(&config.Config{}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	decision, attrs := h.HandleUserState(newTestUser(users.StateAllowed), users.StateAllowed, "s1")
	if decision != DecisionAllow || attrs[AttrCleartextPassword] != "654321" {
		t.Errorf("ALLOWED: got %v %v", decision, attrs)
	}

	for _, state := range []users.JoinState{users.StateWaiting, users.StateBlocked} {
		decision, attrs := h.HandleUserState(newTestUser(state), state, "s1")
		if decision != DecisionReject || attrs != nil {
			t.Errorf("%v: got %v %v, want REJECT", state, decision, attrs)
		}
	}

	if h.OnPostAuth(newTestUser(users.StateAllowed), "s1") != nil {
		t.Error("OnPostAuth() should return nil")
	}
	if h.OnHostAccept(newTestUser(users.StateAllowed)) != "" || h.OnHostDeny(newTestUser(users.StateBlocked)) != "" {
		t.Error("host callbacks should return no message")
	}
}

func TestFirewallHandlerLifecycle(t *testing.T) {
	runner := &fakeRunner{}
	h := NewFirewallHandlerWith(runner, &fakeDisassociator{})

	if err := h.Start(&config.Config{FirewallScriptDir: "/etc/guestauth"}); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	h.Shutdown()

	want := []string{"/etc/guestauth/fw_reset.sh", "/etc/guestauth/fw_reset.sh"}
	if strings.Join(runner.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", runner.calls, want)
	}
}

func TestFirewallHandlerWaiting(t *testing.T) {
	runner := &fakeRunner{}
	h := NewFirewallHandlerWith(runner, &fakeDisassociator{})
	_ = h.Start(&config.Config{FirewallScriptDir: "/fw"})
	runner.calls = nil

	user := newTestUser(users.StateWaiting)
	decision, attrs := h.HandleUserState(user, users.StateWaiting, "sess-1")
	if decision != DecisionAllow || attrs[AttrCleartextPassword] != "654321" {
		t.Errorf("WAITING: got %v %v", decision, attrs)
	}
	if len(runner.calls) != 1 || runner.calls[0] != "/fw/fw_user_drop.sh aa:bb:cc:dd:ee:ff" {
		t.Errorf("calls = %v", runner.calls)
	}

	post := h.OnPostAuth(user, "sess-1")
	if post[AttrSessionTimeout] != "60" {
		t.Errorf("OnPostAuth() = %v, want Session-Timeout 60", post)
	}
	if h.OnPostAuth(user, "sess-2") != nil {
		t.Error("OnPostAuth() for other session should return nil")
	}

	// ALLOWED判定で記録は消える
	h.HandleUserState(newTestUser(users.StateAllowed), users.StateAllowed, "sess-1")
	if h.OnPostAuth(user, "sess-1") != nil {
		t.Error("OnPostAuth() after ALLOWED should return nil")
	}

	decision, _ = h.HandleUserState(newTestUser(users.StateBlocked), users.StateBlocked, "sess-3")
	if decision != DecisionReject {
		t.Errorf("BLOCKED: got %v, want REJECT", decision)
	}
}

func TestFirewallHandlerHostCallbacks(t *testing.T) {
	runner := &fakeRunner{}
	dis := &fakeDisassociator{}
	h := NewFirewallHandlerWith(runner, dis)
	_ = h.Start(&config.Config{FirewallScriptDir: "/fw"})
	runner.calls = nil

	if msg := h.OnHostAccept(newTestUser(users.StateAllowed)); msg != "" {
		t.Errorf("OnHostAccept() = %q, want empty", msg)
	}

	// ALLOWEDのdenyは切断しない
	if msg := h.OnHostDeny(newTestUser(users.StateAllowed)); msg != "" {
		t.Errorf("OnHostDeny(ALLOWED) = %q, want empty", msg)
	}
	if len(dis.devices) != 0 {
		t.Errorf("disassociated %v, want none", dis.devices)
	}

	if msg := h.OnHostDeny(newTestUser(users.StateBlocked)); msg != msgDisassociated {
		t.Errorf("OnHostDeny(BLOCKED) = %q, want %q", msg, msgDisassociated)
	}
	if len(dis.devices) != 1 {
		t.Errorf("disassociated %v, want one", dis.devices)
	}

	want := []string{
		"/fw/fw_user_add.sh aa:bb:cc:dd:ee:ff",
		"/fw/fw_user_drop.sh aa:bb:cc:dd:ee:ff",
		"/fw/fw_user_drop.sh aa:bb:cc:dd:ee:ff",
	}
	if strings.Join(runner.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", runner.calls, want)
	}
}

func TestFirewallHandlerCommandFailure(t *testing.T) {
	runner := &fakeRunner{fail: map[string]bool{"/fw/fw_user_drop.sh": true, "/fw/fw_user_add.sh": true}}
	h := NewFirewallHandlerWith(runner, &fakeDisassociator{})
	_ = h.Start(&config.Config{FirewallScriptDir: "/fw"})

	if msg := h.OnHostAccept(newTestUser(users.StateAllowed)); msg != "Command failed: user_add" {
		t.Errorf("OnHostAccept() = %q", msg)
	}
	want := "Command failed: user_drop\n" + msgDisassociated
	if msg := h.OnHostDeny(newTestUser(users.StateBlocked)); msg != want {
		t.Errorf("OnHostDeny() = %q, want %q", msg, want)
	}
}

func TestVLANHandlerPostAuth(t *testing.T) {
	h := NewVLANHandlerWith(&fakeDisassociator{})
	_ = h.Start(&config.Config{VLANAllowedID: "20", VLANGuestID: "10"})

	allowed := newTestUser(users.StateAllowed)
	decision, _ := h.HandleUserState(allowed, users.StateAllowed, "sess-1")
	if decision != DecisionAllow {
		t.Fatalf("decision = %v, want ALLOW", decision)
	}

	attrs := h.OnPostAuth(users.NewUserIdentifier("alice", "aa:bb:cc:dd:ee:ff"), "sess-1")
	if attrs[AttrTunnelPrivateGroupID] != "20" {
		t.Errorf("VLAN = %q, want 20", attrs[AttrTunnelPrivateGroupID])
	}
	if attrs[AttrTunnelType] != "VLAN" || attrs[AttrTunnelMediumType] != "IEEE-802" {
		t.Errorf("tunnel attrs = %v", attrs)
	}

	// 記録は破棄済みなのでゲストVLAN
	attrs = h.OnPostAuth(allowed, "sess-1")
	if attrs[AttrTunnelPrivateGroupID] != "10" {
		t.Errorf("VLAN after reset = %q, want 10", attrs[AttrTunnelPrivateGroupID])
	}

	h.HandleUserState(allowed, users.StateWaiting, "sess-2")
	if got := h.OnPostAuth(allowed, "sess-2")[AttrTunnelPrivateGroupID]; got != "10" {
		t.Errorf("VLAN for waiting = %q, want 10", got)
	}

	h.HandleUserState(allowed, users.StateAllowed, "sess-3")
	if got := h.OnPostAuth(allowed, "other")[AttrTunnelPrivateGroupID]; got != "10" {
		t.Errorf("VLAN for session mismatch = %q, want 10", got)
	}
}

func TestVLANHandlerReconnect(t *testing.T) {
	dis := &fakeDisassociator{}
	h := NewVLANHandlerWith(dis)
	_ = h.Start(&config.Config{VLANAllowedID: "2", VLANGuestID: "1"})

	want := "Trying to re-connect user to update VLAN...\n" + msgDisassociated
	if msg := h.OnHostAccept(newTestUser(users.StateAllowed)); msg != want {
		t.Errorf("OnHostAccept() = %q, want %q", msg, want)
	}
	if msg := h.OnHostDeny(newTestUser(users.StateBlocked)); msg != want {
		t.Errorf("OnHostDeny() = %q, want %q", msg, want)
	}
	if len(dis.devices) != 2 {
		t.Errorf("disassociated %v, want 2 calls", dis.devices)
	}
}
