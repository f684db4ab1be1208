// Package apperr は共通エラー定義を提供する。
package apperr

import "errors"

// プラグイン解決関連エラー
var (
	// ErrPluginNotFound は設定されたプラグイン名が登録されていない場合のエラー
	ErrPluginNotFound = errors.New("plugin not found")
	// ErrPluginInit はプラグインの生成に失敗した場合のエラー
	ErrPluginInit = errors.New("plugin initialization failed")
)

// チャット関連エラー
var (
	// ErrChatStartup はチャットトランスポートの起動失敗エラー
	ErrChatStartup = errors.New("chat startup failed")
	// ErrChatSend はチャットメッセージ送信失敗エラー
	ErrChatSend = errors.New("chat send failed")
	// ErrChatNotStarted は未起動のトランスポートを操作した場合のエラー
	ErrChatNotStarted = errors.New("chat transport not started")
)

// 認可ハンドラ関連エラー
var (
	// ErrCommandFailed はホスト側コマンド実行失敗エラー
	ErrCommandFailed = errors.New("host command failed")
	// ErrCommandTimeout はホスト側コマンドのタイムアウトエラー
	ErrCommandTimeout = errors.New("host command timeout")
	// ErrDisconnectNak はDisconnect-Requestが拒否された場合のエラー
	ErrDisconnectNak = errors.New("disconnect request rejected")
)

// インフラ関連エラー
var (
	// ErrValkeyConnection はValkey接続エラー
	ErrValkeyConnection = errors.New("valkey connection error")
	// ErrWebhookUnavailable はWebhook送信先が利用できない場合のエラー
	ErrWebhookUnavailable = errors.New("webhook unavailable")
)

// リクエスト関連エラー
var (
	// ErrInvalidRequest は不正なリクエストエラー
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized は認証トークン不一致エラー
	ErrUnauthorized = errors.New("unauthorized")
)
