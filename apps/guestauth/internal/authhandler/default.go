package authhandler

import (
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

// DefaultHandler は任意のAPで使える既定のハンドラ。
// ALLOWEDのユーザーのみ許可し、追加の処理は行わない。
type DefaultHandler struct{}

// NewDefaultHandler は新しいDefaultHandlerを生成する。
func NewDefaultHandler() *DefaultHandler {
	return &DefaultHandler{}
}

func (h *DefaultHandler) Start(*config.Config) error { return nil }

func (h *DefaultHandler) Shutdown() {}

// HandleUserState はALLOWEDのみパスワード付きで許可する。
func (h *DefaultHandler) HandleUserState(user *users.UserIdentifier, state users.JoinState, _ string) (Decision, Attributes) {
	if state == users.StateAllowed && user != nil {
		return DecisionAllow, Attributes{AttrCleartextPassword: user.Password}
	}
	return DecisionReject, nil
}

func (h *DefaultHandler) OnPostAuth(*users.UserIdentifier, string) Attributes { return nil }

func (h *DefaultHandler) OnHostAccept(*users.UserIdentifier) string { return "" }

func (h *DefaultHandler) OnHostDeny(*users.UserIdentifier) string { return "" }
