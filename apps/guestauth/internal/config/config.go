// Package config はguestauthの設定を環境変数から読み込む。
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config はアプリケーション設定を保持する
type Config struct {
	// REST設定
	ListenAddr string `envconfig:"LISTEN_ADDR" default:"127.0.0.1:8000"`
	GinMode    string `envconfig:"GIN_MODE" default:"release"`

	// プラグイン選択
	AuthHandler string `envconfig:"AUTH_HANDLER" default:"default"`
	Chat        string `envconfig:"CHAT" default:"udp"`

	// 起動時にパスワードを生成してチャットへ通知するか
	GeneratePasswordOnStartup bool `envconfig:"GENERATE_PASSWORD_ON_STARTUP" default:"false"`

	// 期限切れユーザーの定期削除間隔（0で無効）
	DropExpiredInterval time.Duration `envconfig:"DROP_EXPIRED_INTERVAL" default:"0s"`

	// firewallハンドラ設定
	FirewallScriptDir string `envconfig:"FIREWALL_SCRIPT_DIR" default:"/etc/guestauth"`

	// vlanハンドラ設定
	VLANAllowedID string `envconfig:"VLAN_ALLOWED_ID" default:"2"`
	VLANGuestID   string `envconfig:"VLAN_GUEST_ID" default:"1"`

	// 切断方式（hostapd / coa）
	DisassociateMode string `envconfig:"DISASSOCIATE_MODE" default:"hostapd"`
	CoAAddr          string `envconfig:"COA_ADDR" default:"127.0.0.1:3799"`
	CoASecret        string `envconfig:"COA_SECRET"`

	// udpチャット設定
	ChatUDPPeer string `envconfig:"CHAT_UDP_PEER" default:"127.0.0.1:9999"`

	// valkeyチャット設定
	RedisHost            string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort            string `envconfig:"REDIS_PORT" default:"6379"`
	RedisPass            string `envconfig:"REDIS_PASS"`
	ChatValkeyInChannel  string `envconfig:"CHAT_VALKEY_IN_CHANNEL" default:"guestauth:in"`
	ChatValkeyOutChannel string `envconfig:"CHAT_VALKEY_OUT_CHANNEL" default:"guestauth:out"`

	// webhookチャット設定
	ChatWebhookURL   string `envconfig:"CHAT_WEBHOOK_URL"`
	ChatWebhookToken string `envconfig:"CHAT_WEBHOOK_TOKEN"`

	// xmppチャット設定
	ChatUser      string `envconfig:"CHAT_USER"`
	ChatPassword  string `envconfig:"CHAT_PASSWORD"`
	ChatRecipient string `envconfig:"CHAT_RECIPIENT"`
	XMPPUseTLS    bool   `envconfig:"XMPP_USE_TLS" default:"true"`
	XMPPHost      string `envconfig:"XMPP_HOST"` // 空の場合はCHAT_USERのドメイン:5222

	// 監査ログ出力先（空の場合は標準エラー出力）
	AuditLogPath string `envconfig:"AUDIT_LOG_PATH"`

	// ログ設定
	LogLevel   string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogMaskMAC bool   `envconfig:"LOG_MASK_MAC" default:"true"`
}

// Load は環境変数から設定を読み込む
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ValkeyAddr はValkey接続アドレスを "host:port" 形式で返す
func (c *Config) ValkeyAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// validate は設定値のバリデーションを行う。
// プラグイン名の誤りはここでは扱わず、起動時にデフォルトへフォールバックする。
func (c *Config) validate() error {
	if c.DropExpiredInterval < 0 {
		return fmt.Errorf("DROP_EXPIRED_INTERVAL must not be negative")
	}
	switch strings.ToLower(c.DisassociateMode) {
	case DisassociateHostapd, DisassociateCoA:
	default:
		return fmt.Errorf("DISASSOCIATE_MODE must be %q or %q", DisassociateHostapd, DisassociateCoA)
	}
	if strings.EqualFold(c.DisassociateMode, DisassociateCoA) && c.CoASecret == "" {
		return fmt.Errorf("COA_SECRET is required when DISASSOCIATE_MODE=coa")
	}
	if strings.EqualFold(c.Chat, ChatWebhook) && c.ChatWebhookToken == "" {
		return fmt.Errorf("CHAT_WEBHOOK_TOKEN is required when CHAT=webhook")
	}
	if strings.EqualFold(c.Chat, ChatXMPP) && (c.ChatUser == "" || c.ChatRecipient == "") {
		return fmt.Errorf("CHAT_USER and CHAT_RECIPIENT are required when CHAT=xmpp")
	}
	if c.ChatWebhookURL != "" &&
		!strings.HasPrefix(c.ChatWebhookURL, "http://") && !strings.HasPrefix(c.ChatWebhookURL, "https://") {
		return fmt.Errorf("CHAT_WEBHOOK_URL must start with http:// or https://")
	}
	return nil
}
