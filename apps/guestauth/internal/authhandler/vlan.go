package authhandler

import (
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

// VLANHandler は802.1Qの動的VLAN割り当てで通信可否を制御する。
type VLANHandler struct {
	disassociator Disassociator
	runner        CommandRunner
	allowedVLAN   string
	guestVLAN     string

	// authorizeとpost-authを対応付けるため直前の呼び出しを記録する
	user    *users.UserIdentifier
	state   users.JoinState
	session string
}

// NewVLANHandler は新しいVLANHandlerを生成する。
func NewVLANHandler() *VLANHandler {
	h := &VLANHandler{runner: NewSudoRunner()}
	h.reset()
	return h
}

// NewVLANHandlerWith は切断器を指定してVLANHandlerを生成する。
func NewVLANHandlerWith(disassociator Disassociator) *VLANHandler {
	h := &VLANHandler{disassociator: disassociator}
	h.reset()
	return h
}

func (h *VLANHandler) reset() {
	h.user = nil
	h.state = users.StateBlocked
	h.session = ""
}

func (h *VLANHandler) Start(cfg *config.Config) error {
	h.allowedVLAN = cfg.VLANAllowedID
	h.guestVLAN = cfg.VLANGuestID
	if h.disassociator == nil {
		h.disassociator = NewDisassociator(cfg, h.runner)
	}
	return nil
}

func (h *VLANHandler) Shutdown() {}

func (h *VLANHandler) HandleUserState(user *users.UserIdentifier, state users.JoinState, sessionID string) (Decision, Attributes) {
	h.user = user
	h.state = state
	h.session = sessionID
	return RejectOnlyWhenBlocked(user, state)
}

// OnPostAuth は直前のauthorizeと一致するALLOWEDユーザーのみ許可VLANに割り当てる。
// 誤割り当てを防ぐため記録は毎回破棄する。
func (h *VLANHandler) OnPostAuth(user *users.UserIdentifier, sessionID string) Attributes {
	vlan := h.guestVLAN
	if sessionID == h.session && user.Equal(h.user) && h.state == users.StateAllowed {
		vlan = h.allowedVLAN
	}
	h.reset()
	return Attributes{
		AttrTunnelType:           "VLAN",
		AttrTunnelMediumType:     "IEEE-802",
		AttrTunnelPrivateGroupID: vlan,
	}
}

func (h *VLANHandler) OnHostAccept(user *users.UserIdentifier) string {
	return h.reconnect(user.DeviceID)
}

func (h *VLANHandler) OnHostDeny(user *users.UserIdentifier) string {
	return h.reconnect(user.DeviceID)
}

func (h *VLANHandler) reconnect(deviceID string) string {
	return "Trying to re-connect user to update VLAN...\n" + h.disassociator.Disassociate(deviceID)
}
