package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/valkey"
	"github.com/redis/go-redis/v9"
)

// ValkeyTransport はValkeyのPub/Subでチャットボット等と通信する。
// 送信はCHAT_VALKEY_OUT_CHANNELへPUBLISH、受信はCHAT_VALKEY_IN_CHANNELをSUBSCRIBEする。
type ValkeyTransport struct {
	mu   sync.RWMutex
	hook func(string)

	client     *valkey.Client
	pubsub     *redis.PubSub
	inChannel  string
	outChannel string
	done       chan struct{}
}

// NewValkeyTransport は新しいValkeyTransportを生成する。
func NewValkeyTransport() *ValkeyTransport {
	return &ValkeyTransport{hook: func(string) {}}
}

func (t *ValkeyTransport) RegisterReceive(hook func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = hook
}

// Startup はValkeyへ接続し、受信チャネルの購読を開始する。
func (t *ValkeyTransport) Startup(cfg *config.Config) error {
	opts := valkey.NewOptions(cfg.ValkeyAddr()).WithPassword(cfg.RedisPass)
	ctx := context.Background()
	client, err := valkey.NewClient(ctx, opts)
	if err != nil {
		return err
	}

	pubsub, err := client.Subscribe(ctx, cfg.ChatValkeyInChannel)
	if err != nil {
		_ = client.Close()
		return err
	}

	t.mu.Lock()
	t.client = client
	t.pubsub = pubsub
	t.inChannel = cfg.ChatValkeyInChannel
	t.outChannel = cfg.ChatValkeyOutChannel
	t.done = make(chan struct{})
	t.mu.Unlock()

	go t.receiveLoop(pubsub.Channel())

	slog.Info("valkey chat started",
		logging.WithEventID("CHAT_VALKEY_START"),
		slog.String("addr", opts.Addr),
		slog.String("in_channel", t.inChannel),
		slog.String("out_channel", t.outChannel),
	)
	return nil
}

func (t *ValkeyTransport) receiveLoop(ch <-chan *redis.Message) {
	defer close(t.done)
	for msg := range ch {
		t.mu.RLock()
		hook := t.hook
		t.mu.RUnlock()
		hook(msg.Payload)
	}
}

// SendMessage は送信チャネルへPUBLISHする。
func (t *ValkeyTransport) SendMessage(text string) {
	t.mu.RLock()
	client, channel := t.client, t.outChannel
	t.mu.RUnlock()

	if client == nil {
		slog.Warn("valkey chat send skipped",
			logging.WithEventID("CHAT_SEND_ERR"),
			logging.WithError(apperr.ErrChatNotStarted),
		)
		return
	}

	if err := client.Publish(context.Background(), channel, text); err != nil {
		slog.Warn("valkey chat send failed",
			logging.WithEventID("CHAT_SEND_ERR"),
			logging.WithError(fmt.Errorf("%w: %v", apperr.ErrChatSend, err)),
			slog.Bool("connection_error", valkey.IsConnectionError(err)),
		)
	}
}

// Shutdown は購読を解除して受信ループの終了を待ち、接続を閉じる。
func (t *ValkeyTransport) Shutdown() {
	t.mu.Lock()
	client, pubsub := t.client, t.pubsub
	t.client, t.pubsub = nil, nil
	t.mu.Unlock()

	if client == nil {
		return
	}
	_ = pubsub.Close()
	<-t.done
	_ = client.Close()
}
