package valkey

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/redis/go-redis/v9"
)

// Client はPUBLISHとSUBSCRIBEを行うValkeyクライアント。
type Client struct {
	rdb  *redis.Client
	opts *Options
}

// NewClient はValkeyへ接続する。
// 接続確認のためPINGを実行し、失敗した場合はErrValkeyConnectionを返す。
func NewClient(ctx context.Context, opts *Options) (*Client, error) {
	rdb := redis.NewClient(opts.redisOptions())

	ctx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%w: %v", apperr.ErrValkeyConnection, err)
	}

	return &Client{rdb: rdb, opts: opts}, nil
}

// Subscribe はチャネルを購読し、購読の確定を待ってから返す。
// 確定前にPUBLISHされたメッセージは受信できないため、確定を待つ必要がある。
func (c *Client) Subscribe(ctx context.Context, channels ...string) (*redis.PubSub, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.DialTimeout)
	defer cancel()

	pubsub := c.rdb.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("%w: subscribe %v: %v", apperr.ErrValkeyConnection, channels, err)
	}
	return pubsub, nil
}

// Publish はIOTimeout以内にメッセージをPUBLISHする。
func (c *Client) Publish(ctx context.Context, channel, message string) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.IOTimeout)
	defer cancel()
	return c.rdb.Publish(ctx, channel, message).Err()
}

// Close は接続を閉じる。
func (c *Client) Close() error {
	return c.rdb.Close()
}

// IsConnectionError は接続関連のエラーかどうかを判定する。
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, apperr.ErrValkeyConnection) || errors.Is(err, redis.ErrClosed) {
		return true
	}

	// タイムアウトエラー
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	// 接続拒否など
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
