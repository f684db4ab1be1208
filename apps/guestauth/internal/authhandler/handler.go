// Package authhandler はネットワーク側の許可・拒否処理（ハンドラ）を提供する。
package authhandler

import (
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

//go:generate mockgen -source=handler.go -destination=../mocks/mock_handler.go -package=mocks

// Decision はauthorizeの判定結果。
type Decision int

const (
	DecisionReject Decision = iota
	DecisionAllow
	DecisionNoOp
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "ALLOW"
	case DecisionNoOp:
		return "NO_OP"
	default:
		return "REJECT"
	}
}

// Attributes はFreeRADIUSへ返す属性（"reply:Session-Timeout"等）。
type Attributes map[string]string

// 返却属性名
const (
	AttrCleartextPassword    = "control:Cleartext-Password"
	AttrSessionTimeout       = "reply:Session-Timeout"
	AttrTunnelType           = "reply:Tunnel-Type"
	AttrTunnelMediumType     = "reply:Tunnel-Medium-Type"
	AttrTunnelPrivateGroupID = "reply:Tunnel-Private-Group-ID"
)

// Handler は参加状態に応じたネットワーク制御を行う。
// On*系の戻り値はオペレーターへ転送するメッセージで、空文字列はメッセージなし。
type Handler interface {
	Start(cfg *config.Config) error
	Shutdown()
	HandleUserState(user *users.UserIdentifier, state users.JoinState, sessionID string) (Decision, Attributes)
	OnPostAuth(user *users.UserIdentifier, sessionID string) Attributes
	OnHostAccept(user *users.UserIdentifier) string
	OnHostDeny(user *users.UserIdentifier) string
}
