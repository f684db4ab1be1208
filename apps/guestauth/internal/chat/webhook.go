package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
	"github.com/sony/gobreaker"
)

// webhookQueueSize は送信待ちメッセージの上限。
const webhookQueueSize = 64

// WebhookMessage はWebhookで送受信するJSONボディ。
type WebhookMessage struct {
	Text string `json:"text"`
}

// WebhookTransport はHTTP Webhookでチャットサービスと通信する。
// 送信はCHAT_WEBHOOK_URLへのPOST、受信はRESTの/chat/webhook経由でDeliverされる。
type WebhookTransport struct {
	mu   sync.RWMutex
	hook func(string)

	httpClient *resty.Client
	cb         *gobreaker.CircuitBreaker
	url        string
	token      string

	queue chan string
	done  chan struct{}
}

// NewWebhookTransport は新しいWebhookTransportを生成する。
func NewWebhookTransport() *WebhookTransport {
	return &WebhookTransport{hook: func(string) {}}
}

func (t *WebhookTransport) RegisterReceive(hook func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = hook
}

// Startup はHTTPクライアントとCircuit Breakerを生成し、送信ワーカーを開始する。
func (t *WebhookTransport) Startup(cfg *config.Config) error {
	if cfg.ChatWebhookURL == "" {
		return errors.New("CHAT_WEBHOOK_URL is not set")
	}

	t.httpClient = resty.New().
		SetTimeout(config.WebhookRequestTimeout).
		SetRetryCount(config.WebhookRetryCount)
	t.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.CBName,
		MaxRequests: config.CBMaxRequests,
		Interval:    config.CBInterval,
		Timeout:     config.CBTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(config.CBFailureThreshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				logging.WithEventID("CB_STATE_CHANGE"),
				slog.String("cb_name", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	t.url = cfg.ChatWebhookURL
	t.token = cfg.ChatWebhookToken

	t.mu.Lock()
	t.queue = make(chan string, webhookQueueSize)
	t.done = make(chan struct{})
	t.mu.Unlock()
	go t.sendLoop(t.queue)

	slog.Info("webhook chat started",
		logging.WithEventID("CHAT_WEBHOOK_START"),
		slog.String("url", t.url),
	)
	return nil
}

// SendMessage は送信キューへ積む。キューが満杯の場合は破棄する。
func (t *WebhookTransport) SendMessage(text string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.queue == nil {
		slog.Warn("webhook chat send skipped",
			logging.WithEventID("CHAT_SEND_ERR"),
			logging.WithError(apperr.ErrChatNotStarted),
		)
		return
	}
	select {
	case t.queue <- text:
	default:
		slog.Warn("webhook chat queue full, message dropped",
			logging.WithEventID("CHAT_SEND_ERR"),
		)
	}
}

func (t *WebhookTransport) sendLoop(queue <-chan string) {
	defer close(t.done)
	for text := range queue {
		if err := t.post(text); err != nil {
			slog.Warn("webhook chat send failed",
				logging.WithEventID("CHAT_SEND_ERR"),
				logging.WithError(err),
			)
		}
	}
}

func (t *WebhookTransport) post(text string) error {
	result, err := t.cb.Execute(func() (any, error) {
		req := t.httpClient.R().
			SetHeader("Content-Type", "application/json").
			SetBody(WebhookMessage{Text: text})
		if t.token != "" {
			req.SetAuthToken(t.token)
		}

		resp, err := req.Post(t.url)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperr.ErrChatSend, err)
		}
		if resp.StatusCode() >= 500 {
			return nil, fmt.Errorf("%w: status %d", apperr.ErrWebhookUnavailable, resp.StatusCode())
		}
		if resp.IsError() {
			// 4xxは設定誤りとしてCBの失敗に数えない
			return fmt.Errorf("%w: status %d", apperr.ErrChatSend, resp.StatusCode()), nil
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: circuit open", apperr.ErrWebhookUnavailable)
		}
		return err
	}
	if resErr, ok := result.(error); ok {
		return resErr
	}
	return nil
}

// Deliver は外部から受信したメッセージを受信フックへ渡す。
func (t *WebhookTransport) Deliver(text string) {
	t.mu.RLock()
	hook := t.hook
	t.mu.RUnlock()
	hook(strings.TrimSpace(text))
}

// Shutdown は送信キューを閉じ、残りの送信完了を待つ。
func (t *WebhookTransport) Shutdown() {
	t.mu.Lock()
	queue := t.queue
	t.queue = nil
	t.mu.Unlock()

	if queue == nil {
		return
	}
	close(queue)
	<-t.done
}
