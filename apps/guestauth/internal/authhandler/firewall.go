package authhandler

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

// ファイアウォールスクリプト名（fw_<cmd>.sh）
const (
	fwReset    = "reset"
	fwUserAdd  = "user_add"
	fwUserDrop = "user_drop"
)

// FirewallHandler はファイアウォールのホワイトリストで通信可否を制御する。
// 承認待ちの端末も接続は許可し、ホワイトリスト登録まで通信を遮断する。
type FirewallHandler struct {
	runner             CommandRunner
	disassociator      Disassociator
	scriptDir          string
	lastSessionWaiting string
}

// NewFirewallHandler はsudo実行のFirewallHandlerを生成する。
func NewFirewallHandler() *FirewallHandler {
	return &FirewallHandler{runner: NewSudoRunner()}
}

// NewFirewallHandlerWith は実行器と切断器を指定してFirewallHandlerを生成する。
func NewFirewallHandlerWith(runner CommandRunner, disassociator Disassociator) *FirewallHandler {
	return &FirewallHandler{runner: runner, disassociator: disassociator}
}

// Start はスクリプトの配置先を設定し、ファイアウォールを初期化する。
func (h *FirewallHandler) Start(cfg *config.Config) error {
	h.scriptDir = cfg.FirewallScriptDir
	if h.disassociator == nil {
		h.disassociator = NewDisassociator(cfg, h.runner)
	}
	h.runScript(fwReset, "")
	return nil
}

func (h *FirewallHandler) Shutdown() {
	h.runScript(fwReset, "")
}

// HandleUserState は承認待ちの端末をホワイトリストから外し、セッションを記録する。
// 期限切れで再度承認待ちとなった端末が許可されたままになるのを防ぐ。
func (h *FirewallHandler) HandleUserState(user *users.UserIdentifier, state users.JoinState, sessionID string) (Decision, Attributes) {
	if state == users.StateWaiting && user != nil {
		h.runScript(fwUserDrop, user.DeviceID)
		h.lastSessionWaiting = sessionID
	} else {
		h.lastSessionWaiting = ""
	}
	return RejectOnlyWhenBlocked(user, state)
}

// OnPostAuth は承認待ちセッションに短いSession-Timeoutを付与し、再接続を促す。
func (h *FirewallHandler) OnPostAuth(_ *users.UserIdentifier, sessionID string) Attributes {
	if h.lastSessionWaiting != "" && sessionID == h.lastSessionWaiting {
		return Attributes{AttrSessionTimeout: strconv.Itoa(config.WaitingSessionTimeout)}
	}
	return nil
}

func (h *FirewallHandler) OnHostAccept(user *users.UserIdentifier) string {
	return h.runScript(fwUserAdd, user.DeviceID)
}

// OnHostDeny はホワイトリストから外し、BLOCKEDなら切断する。
func (h *FirewallHandler) OnHostDeny(user *users.UserIdentifier) string {
	msg := h.runScript(fwUserDrop, user.DeviceID)
	if user.IsBlocked() && h.disassociator != nil {
		if msg != "" {
			msg += "\n"
		}
		msg += h.disassociator.Disassociate(user.DeviceID)
	}
	return msg
}

// runScript は<scriptDir>/fw_<cmd>.sh [mac]を実行する。成功時は空文字列を返す。
func (h *FirewallHandler) runScript(cmd, deviceID string) string {
	script := filepath.Join(h.scriptDir, fmt.Sprintf("fw_%s.sh", cmd))
	var args []string
	if deviceID != "" {
		args = []string{users.FormatMAC(deviceID)}
	}
	return runCommand(h.runner, "", "Command failed: "+cmd, script, args...)
}
