// Package chat はオペレーターとのチャット連携（通知・コマンド受付）を提供する。
package chat

import "github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"

//go:generate mockgen -source=transport.go -destination=../mocks/mock_transport.go -package=mocks

// Transport はチャットの送受信手段。
// SendMessageは呼び出し元をブロックせず、失敗はTransport側でログに記録する。
type Transport interface {
	Startup(cfg *config.Config) error
	SendMessage(text string)
	RegisterReceive(hook func(string))
	Shutdown()
}

// Inbox は外部（REST等）から受信メッセージを投入できるTransport。
type Inbox interface {
	Deliver(text string)
}
