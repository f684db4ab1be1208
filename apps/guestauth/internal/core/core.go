// Package core はRADIUSイベントと参加承認ワークフローを仲介する。
package core

import (
	"fmt"
	"log/slog"
	"maps"
	"math"
	"strconv"
	"sync"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/audit"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/authhandler"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/chat"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/command"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/plugin"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// GuestAuthCore は認可判定とチャットによる承認フローを統括する。
//
// Authorize・PostAuth・DropExpiredUsersとチャットからのコマンド実行は
// すべて同一のミューテックスで直列化される。
type GuestAuthCore struct {
	mu sync.Mutex

	users      *users.Manager
	handlers   *plugin.Registry[authhandler.Handler]
	transports *plugin.Registry[chat.Transport]
	audit      *audit.Logger
	fields     *logging.CommonFields

	handler authhandler.Handler
	gateway *chat.Gateway

	// EAP-PWDの内側リクエストはUser-Nameしか持たないため、外側の値を保持する
	lastDeviceID      string
	lastSessionID     string
	lastRequestEAPPWD bool
}

// Option はGuestAuthCoreの生成オプション。
type Option func(*GuestAuthCore)

// WithHandlerRegistry はハンドラのRegistryを差し替える。
func WithHandlerRegistry(r *plugin.Registry[authhandler.Handler]) Option {
	return func(c *GuestAuthCore) { c.handlers = r }
}

// WithTransportRegistry はチャットTransportのRegistryを差し替える。
func WithTransportRegistry(r *plugin.Registry[chat.Transport]) Option {
	return func(c *GuestAuthCore) { c.transports = r }
}

// WithAudit は監査ロガーを設定する。
func WithAudit(l *audit.Logger) Option {
	return func(c *GuestAuthCore) { c.audit = l }
}

// WithMasker はログのMACマスキング設定を指定する。
func WithMasker(m *logging.Masker) Option {
	return func(c *GuestAuthCore) { c.fields = logging.NewCommonFields(m) }
}

// WithUserManager はユーザー管理を差し替える。
func WithUserManager(m *users.Manager) Option {
	return func(c *GuestAuthCore) { c.users = m }
}

// New は新しいGuestAuthCoreを生成する。Startupを呼ぶまで判定は行えない。
func New(opts ...Option) *GuestAuthCore {
	c := &GuestAuthCore{
		users:      users.NewManager(),
		handlers:   authhandler.NewRegistry(),
		transports: chat.NewRegistry(),
		fields:     logging.NewCommonFields(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Startup はハンドラとチャットを設定に従って生成・起動する。
// 設定された実装が使えない場合はデフォルト実装で起動し、
// デフォルトも起動できない場合のみエラーを返す。
func (c *GuestAuthCore) Startup(cfg *config.Config) error {
	handler, err := c.startHandler(cfg)
	if err != nil {
		return err
	}

	registry := command.NewDefaultRegistry(command.Deps{
		Users:   c.users,
		Handler: handler,
		Audit:   c.audit,
	})

	gateway, err := c.startGateway(cfg, registry)
	if err != nil {
		handler.Shutdown()
		return err
	}
	// ハンドラはゲートウェイ起動後に公開する。失敗時は未起動のまま残す。
	c.handler = handler
	c.gateway = gateway

	slog.Info("guestauth core started", logging.WithEventID("CORE_START"))
	return nil
}

func (c *GuestAuthCore) startHandler(cfg *config.Config) (authhandler.Handler, error) {
	name, handler, err := c.handlers.New(cfg.AuthHandler)
	if err != nil {
		return nil, err
	}
	if err = handler.Start(cfg); err == nil {
		slog.Info("auth handler started",
			logging.WithEventID("HANDLER_START"),
			slog.String("name", name),
		)
		return handler, nil
	}

	slog.Warn("auth handler start failed",
		logging.WithEventID("HANDLER_START_ERR"),
		slog.String("name", name),
		logging.WithError(err),
	)
	defName, def, derr := c.handlers.Default()
	if derr != nil || defName == name {
		return nil, fmt.Errorf("start auth handler %q: %w", name, err)
	}
	if err := def.Start(cfg); err != nil {
		return nil, fmt.Errorf("start auth handler %q: %w", defName, err)
	}
	slog.Info("auth handler started",
		logging.WithEventID("HANDLER_START"),
		slog.String("name", defName),
	)
	return def, nil
}

func (c *GuestAuthCore) startGateway(cfg *config.Config, registry *command.Registry) (*chat.Gateway, error) {
	name, transport, err := c.transports.New(cfg.Chat)
	if err != nil {
		return nil, err
	}
	gateway := chat.NewGateway(transport, registry, c.serialize)
	if err = gateway.Start(cfg); err == nil {
		return gateway, nil
	}

	slog.Warn("chat start failed",
		logging.WithEventID("CHAT_START_ERR"),
		slog.String("name", name),
		logging.WithError(err),
	)
	transport.Shutdown()

	defName, def, derr := c.transports.Default()
	if derr != nil || defName == name {
		return nil, err
	}
	gateway = chat.NewGateway(def, registry, c.serialize)
	if err := gateway.Start(cfg); err != nil {
		def.Shutdown()
		return nil, err
	}
	return gateway, nil
}

// serialize はチャット受信時のコマンド実行を判定処理と直列化する。
func (c *GuestAuthCore) serialize(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn()
}

// Authorize はFreeRADIUSのauthorize属性から参加可否を判定する。
func (c *GuestAuthCore) Authorize(attrs map[string]string) (authhandler.Decision, authhandler.Attributes) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler == nil {
		return authhandler.DecisionReject, nil
	}

	userName := attrs[AttrUserName]
	deviceID := attrs[AttrCallingStationID]
	sessionID := attrs[AttrAcctSessionID]

	if GetEAPType(attrs) == EAPTypePWD {
		c.lastRequestEAPPWD = true
		c.lastDeviceID = deviceID
		c.lastSessionID = sessionID
	} else if c.lastRequestEAPPWD && deviceID == "" {
		deviceID = c.lastDeviceID
		sessionID = c.lastSessionID
		c.lastDeviceID = ""
		c.lastSessionID = ""
	}

	_, hasEAP := attrs[AttrEAPMessage]
	_, proxied := attrs[AttrProxiedTo]
	if hasEAP && !proxied {
		// 外側のEAP Identity交換
		return authhandler.DecisionNoOp, nil
	}
	if proxied && SkipEAPMessage(attrs) {
		return authhandler.DecisionNoOp, nil
	}

	if userName == "" || deviceID == "" {
		return authhandler.DecisionReject, nil
	}

	c.lastRequestEAPPWD = false
	id := users.NewUserIdentifier(userName, deviceID)
	state := c.users.MayJoin(id)

	switch state {
	case users.StateAllowed:
		id = c.users.Find(userName)
	case users.StateWaiting:
		id = c.users.GetRequest()
	case users.StateNew:
		if c.users.IsRequestPending() {
			slog.Info("new user rejected due to pending request",
				c.fields.GuestLogFields("AUTHZ_PENDING", userName, deviceID)...,
			)
			return authhandler.DecisionReject, nil
		}
		if !c.users.AddRequest(id) {
			slog.Warn("failed to add request",
				c.fields.GuestLogFields("AUTHZ_REQUEST_ERR", userName, deviceID)...,
			)
			return authhandler.DecisionReject, nil
		}
		c.gateway.NotifyJoin(id)
		id = c.users.GetRequest()
		state = users.StateWaiting
	}

	decision, result := c.handler.HandleUserState(id, state, sessionID)
	slog.Info("authorize completed",
		append(c.fields.GuestLogFields("AUTHZ_DONE", userName, deviceID),
			slog.String(logging.FieldState, state.String()),
			slog.String("decision", decision.String()),
			logging.WithSession(sessionID),
		)...,
	)
	return decision, result
}

// PostAuth はpost-auth時の返却属性を返す。
// 有効期限付きの既知ユーザーにはSession-Timeoutを付与する。
func (c *GuestAuthCore) PostAuth(attrs map[string]string) authhandler.Attributes {
	c.mu.Lock()
	defer c.mu.Unlock()

	userName := attrs[AttrUserName]
	deviceID := attrs[AttrCallingStationID]
	if c.handler == nil || userName == "" || deviceID == "" {
		return nil
	}

	id := users.NewUserIdentifier(userName, deviceID)
	result := c.handler.OnPostAuth(id, attrs[AttrAcctSessionID])
	return c.addSessionTimeout(id, result)
}

func (c *GuestAuthCore) addSessionTimeout(id *users.UserIdentifier, attrs authhandler.Attributes) authhandler.Attributes {
	stored := c.users.Find(id.Name)
	if !stored.Equal(id) || stored.Data == nil || stored.Data.ValidUntil == nil {
		return attrs
	}

	// 切断時点で確実に期限切れとなるよう余裕を持たせる
	timeout := stored.Data.ValidUntil.Sub(c.users.Now()) + config.SessionTimeoutMargin
	if timeout <= 0 {
		return attrs
	}

	seconds := int64(math.Ceil(timeout.Seconds()))
	slog.Debug("session timeout added",
		append(c.fields.GuestLogFields("POSTAUTH_TIMEOUT", id.Name, id.DeviceID),
			slog.Int64("session_timeout", seconds),
		)...,
	)

	result := make(authhandler.Attributes, len(attrs)+1)
	maps.Copy(result, attrs)
	result[authhandler.AttrSessionTimeout] = strconv.FormatInt(seconds, 10)
	return result
}

// DropExpiredUsers は期限切れユーザーと承認待ちリクエストを削除する。
// 何も期限切れでなければハンドラは呼ばれない。
func (c *GuestAuthCore) DropExpiredUsers() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handler == nil {
		return 0
	}

	expired := c.users.GetExpiredUsers()
	for _, user := range expired {
		msg := c.handler.OnHostDeny(user)
		c.users.Remove(user)
		slog.Info("expired user dropped",
			append(c.fields.GuestLogFields("USER_EXPIRED", user.Name, user.DeviceID),
				slog.String("handler_message", msg),
			)...,
		)
		c.audit.LogSystem(audit.OpExpire, user.Name, user.DeviceID, "expired user dropped")
	}

	if req := c.users.GetRequest(); req != nil {
		c.handler.OnHostDeny(req)
		c.users.FinishRequest()
		slog.Info("pending request removed",
			c.fields.GuestLogFields("REQUEST_DROPPED", req.Name, req.DeviceID)...,
		)
		c.audit.LogSystem(audit.OpExpire, req.Name, req.DeviceID, "pending request removed")
	}
	return len(expired)
}

// Inbox はチャットTransportが外部投入に対応していればそれを返す。
func (c *GuestAuthCore) Inbox() (chat.Inbox, bool) {
	if c.gateway == nil {
		return nil, false
	}
	return c.gateway.Inbox()
}

// Shutdown はチャット、ハンドラの順に停止する。
// 起動途中の状態でも呼ばれるため、失敗はログに記録して握りつぶす。
// 受信処理がロック待ちの場合があるためロックは取らない。
func (c *GuestAuthCore) Shutdown() {
	if c.gateway != nil {
		safeStop("chat", c.gateway.Stop)
	}
	if c.handler != nil {
		safeStop("auth_handler", c.handler.Shutdown)
	}
	slog.Info("guestauth core stopped", logging.WithEventID("CORE_STOP"))
}

func safeStop(component string, stop func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("shutdown failed",
				logging.WithEventID("CORE_STOP_ERR"),
				slog.String("component", component),
				slog.Any("panic", r),
			)
		}
	}()
	stop()
}
