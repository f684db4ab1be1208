// Package valkey はValkeyのPub/Subでメッセージを送受信するための共通機能を提供する。
package valkey

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// 既定値。購読用1本と送信用1本を想定してプールは小さく取る。
const (
	defaultDialTimeout = 3 * time.Second
	defaultIOTimeout   = 2 * time.Second
	defaultPoolSize    = 2
)

// Options はValkeyクライアントの接続オプション。
type Options struct {
	Addr        string        // 接続先アドレス（host:port形式）
	Password    string        // 認証パスワード
	DB          int           // データベース番号（Pub/Subには影響しない）
	DialTimeout time.Duration // 接続タイムアウト
	IOTimeout   time.Duration // 読み書きタイムアウト（PUBLISHにも使う）
	PoolSize    int           // コネクションプールサイズ
}

// NewOptions は指定アドレスへの既定のOptionsを返す。
func NewOptions(addr string) *Options {
	return &Options{
		Addr:        addr,
		DialTimeout: defaultDialTimeout,
		IOTimeout:   defaultIOTimeout,
		PoolSize:    defaultPoolSize,
	}
}

// WithPassword はパスワードを設定する。
func (o *Options) WithPassword(password string) *Options {
	o.Password = password
	return o
}

// WithDB はデータベース番号を設定する。
func (o *Options) WithDB(db int) *Options {
	o.DB = db
	return o
}

// WithTimeouts は接続と読み書きのタイムアウトを設定する。
func (o *Options) WithTimeouts(dial, io time.Duration) *Options {
	o.DialTimeout = dial
	o.IOTimeout = io
	return o
}

func (o *Options) redisOptions() *redis.Options {
	return &redis.Options{
		Addr:         o.Addr,
		Password:     o.Password,
		DB:           o.DB,
		DialTimeout:  o.DialTimeout,
		ReadTimeout:  o.IOTimeout,
		WriteTimeout: o.IOTimeout,
		PoolSize:     o.PoolSize,
		MinIdleConns: 1,
	}
}
