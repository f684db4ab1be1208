package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/xmppo/go-xmpp"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// xmppDefaultPort はXMPP_HOST未指定時にJIDのドメインへ接続するポート。
const xmppDefaultPort = "5222"

// xmppClient は*xmpp.Clientのうち本トランスポートが使うメソッド。
type xmppClient interface {
	Send(chat xmpp.Chat) (int, error)
	Recv() (any, error)
	Close() error
}

// XMPPTransport はXMPPのチャットメッセージでオペレーターと通信する。
// CHAT_USERでログインし、CHAT_RECIPIENTとのみメッセージをやり取りする。
type XMPPTransport struct {
	mu   sync.RWMutex
	hook func(string)

	client    xmppClient
	recipient string
	closing   bool
	done      chan struct{}

	dial func(opts xmpp.Options) (xmppClient, error)
}

// NewXMPPTransport は新しいXMPPTransportを生成する。
func NewXMPPTransport() *XMPPTransport {
	return &XMPPTransport{
		hook: func(string) {},
		dial: func(opts xmpp.Options) (xmppClient, error) {
			return opts.NewClient()
		},
	}
}

func (t *XMPPTransport) RegisterReceive(hook func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = hook
}

// Startup はXMPPサーバーへログインし、受信ループを開始する。
// XMPP_USE_TLS=falseの場合はSTARTTLSを使わず平文で認証する。
func (t *XMPPTransport) Startup(cfg *config.Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.client != nil {
		return nil
	}
	if cfg.ChatUser == "" || cfg.ChatRecipient == "" {
		return errors.New("CHAT_USER and CHAT_RECIPIENT are required for xmpp chat")
	}

	opts := xmppOptions(cfg)
	client, err := t.dial(opts)
	if err != nil {
		return fmt.Errorf("xmpp login %s: %w", cfg.ChatUser, err)
	}

	t.client = client
	t.recipient = cfg.ChatRecipient
	t.closing = false
	t.done = make(chan struct{})
	go t.receiveLoop(client, bareJID(cfg.ChatRecipient))

	slog.Info("xmpp chat started",
		logging.WithEventID("CHAT_XMPP_START"),
		slog.String("host", opts.Host),
		slog.String("user", cfg.ChatUser),
		slog.String("recipient", cfg.ChatRecipient),
		slog.Bool("tls", cfg.XMPPUseTLS),
	)
	return nil
}

func xmppOptions(cfg *config.Config) xmpp.Options {
	host := cfg.XMPPHost
	if host == "" {
		domain := bareJID(cfg.ChatUser)
		if i := strings.IndexByte(domain, '@'); i >= 0 {
			domain = domain[i+1:]
		}
		host = net.JoinHostPort(domain, xmppDefaultPort)
	}
	return xmpp.Options{
		Host:                         host,
		User:                         cfg.ChatUser,
		Password:                     cfg.ChatPassword,
		NoTLS:                        true,
		StartTLS:                     cfg.XMPPUseTLS,
		InsecureAllowUnencryptedAuth: !cfg.XMPPUseTLS,
		Session:                      true,
		Status:                       "chat",
	}
}

// receiveLoop はCHAT_RECIPIENTからのchat/normalメッセージだけをフックへ渡す。
func (t *XMPPTransport) receiveLoop(client xmppClient, recipient string) {
	defer close(t.done)
	for {
		stanza, err := client.Recv()
		if err != nil {
			t.mu.RLock()
			closing := t.closing
			t.mu.RUnlock()
			if !closing {
				slog.Error("xmpp chat receive failed",
					logging.WithEventID("CHAT_RECV_ERR"),
					logging.WithError(err),
				)
			}
			return
		}

		msg, ok := stanza.(xmpp.Chat)
		if !ok || msg.Text == "" {
			continue
		}
		switch msg.Type {
		case "chat", "normal", "":
		default:
			continue
		}
		if !strings.EqualFold(bareJID(msg.Remote), recipient) {
			slog.Warn("xmpp message from unknown sender dropped",
				logging.WithEventID("CHAT_RECV_REJECT"),
				slog.String("from", msg.Remote),
			)
			continue
		}

		t.mu.RLock()
		hook := t.hook
		t.mu.RUnlock()
		hook(msg.Text)
	}
}

// SendMessage はCHAT_RECIPIENTへchatメッセージを送る。
func (t *XMPPTransport) SendMessage(text string) {
	t.mu.RLock()
	client, recipient := t.client, t.recipient
	t.mu.RUnlock()

	if client == nil {
		slog.Warn("xmpp chat send skipped",
			logging.WithEventID("CHAT_SEND_ERR"),
			logging.WithError(apperr.ErrChatNotStarted),
		)
		return
	}
	if _, err := client.Send(xmpp.Chat{Remote: recipient, Type: "chat", Text: text}); err != nil {
		slog.Warn("xmpp chat send failed",
			logging.WithEventID("CHAT_SEND_ERR"),
			logging.WithError(fmt.Errorf("%w: %v", apperr.ErrChatSend, err)),
		)
	}
}

// Shutdown は接続を閉じて受信ループの終了を待つ。
func (t *XMPPTransport) Shutdown() {
	t.mu.Lock()
	client := t.client
	t.client = nil
	t.closing = true
	t.mu.Unlock()

	if client == nil {
		return
	}
	_ = client.Close()
	<-t.done
}

// bareJID はリソース部分（"/"以降）を除いたJIDを返す。
func bareJID(jid string) string {
	if i := strings.IndexByte(jid, '/'); i >= 0 {
		return jid[:i]
	}
	return jid
}
