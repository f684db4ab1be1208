package config

import "time"

// 切断方式
const (
	DisassociateHostapd = "hostapd"
	DisassociateCoA     = "coa"
)

// チャット種別（validateで個別に検査するもの）
const (
	ChatWebhook = "webhook"
	ChatXMPP    = "xmpp"
)

// ホストコマンド実行設定
const (
	HostCommandTimeout = 2 * time.Second
)

// CoA（Disconnect-Request）設定
const (
	CoATimeout = 2 * time.Second
)

// udpチャット設定
const (
	UDPReceiveTimeout = 1 * time.Second
	UDPMaxDatagram    = 1024
)

// webhookチャット設定
const (
	WebhookRequestTimeout = 5 * time.Second
	WebhookRetryCount     = 2
)

// Circuit Breaker設定
const (
	CBName             = "chat-webhook"
	CBMaxRequests      = 3
	CBInterval         = 10 * time.Second
	CBTimeout          = 30 * time.Second
	CBFailureThreshold = 5
)

// Session-Timeout関連
const (
	// SessionTimeoutMargin は切断時に確実に期限切れとなるよう加算する秒数
	SessionTimeoutMargin = 10 * time.Second
	// WaitingSessionTimeout は承認待ちユーザーに再接続を促す間隔（秒）
	WaitingSessionTimeout = 60
)

// RESTサーバー設定
const (
	ReadHeaderTimeout = 5 * time.Second
	ShutdownTimeout   = 5 * time.Second
)
