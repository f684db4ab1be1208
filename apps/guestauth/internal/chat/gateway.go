package chat

import (
	"fmt"
	"log/slog"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/command"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

const (
	msgStarted      = "Guest Auth module started."
	msgShuttingDown = "Guest Auth module is shutting down."
)

// Gateway はTransportとコマンドRegistryを仲介する。
type Gateway struct {
	transport Transport
	registry  *command.Registry
	serialize func(fn func())
}

// NewGateway は新しいGatewayを生成する。
// serializeはコマンド実行を状態更新と直列化するための関数で、nilの場合は直接実行する。
func NewGateway(transport Transport, registry *command.Registry, serialize func(fn func())) *Gateway {
	if serialize == nil {
		serialize = func(fn func()) { fn() }
	}
	return &Gateway{
		transport: transport,
		registry:  registry,
		serialize: serialize,
	}
}

// Start は受信フックを登録してTransportを起動し、起動メッセージを送信する。
func (g *Gateway) Start(cfg *config.Config) error {
	g.transport.RegisterReceive(g.Receive)
	if err := g.transport.Startup(cfg); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrChatStartup, err)
	}

	g.transport.SendMessage(msgStarted)
	if cfg.GeneratePasswordOnStartup {
		g.transport.SendMessage(g.dispatch("PASS"))
	}
	return nil
}

// Receive は受信テキストをコマンドとして実行し、結果を返信する。
func (g *Gateway) Receive(text string) {
	slog.Debug("chat message received",
		logging.WithEventID("CHAT_RECV"),
		slog.Int("length", len(text)),
	)
	g.transport.SendMessage(g.dispatch(text))
}

func (g *Gateway) dispatch(text string) string {
	var reply string
	g.serialize(func() {
		reply = g.registry.Dispatch(text)
	})
	return reply
}

// NotifyJoin は参加リクエストをオペレーターへ通知する。nilは無視する。
func (g *Gateway) NotifyJoin(id *users.UserIdentifier) {
	if id == nil {
		return
	}
	g.transport.SendMessage(fmt.Sprintf("%s wants to join with device %s", id.Name, id.DeviceID))
}

// Inbox はTransportが外部投入に対応していればそれを返す。
func (g *Gateway) Inbox() (Inbox, bool) {
	inbox, ok := g.transport.(Inbox)
	return inbox, ok
}

// Stop は停止メッセージを送信してTransportを停止する。
func (g *Gateway) Stop() {
	g.transport.SendMessage(msgShuttingDown)
	g.transport.Shutdown()
}
