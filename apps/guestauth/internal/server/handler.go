package server

import (
	"crypto/subtle"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/authhandler"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/chat"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/httputil"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// Core はHTTPハンドラが利用する判定処理。
type Core interface {
	Authorize(attrs map[string]string) (authhandler.Decision, authhandler.Attributes)
	PostAuth(attrs map[string]string) authhandler.Attributes
	DropExpiredUsers() int
	Inbox() (chat.Inbox, bool)
}

// HealthResponse はヘルスチェックのレスポンス。
type HealthResponse struct {
	Status string `json:"status"`
}

// Handler はFreeRADIUS restモジュールとwebhookチャットのハンドラー。
type Handler struct {
	core Core
	cfg  *config.Config
}

// NewHandler は新しいHandlerを生成する。
func NewHandler(core Core, cfg *config.Config) *Handler {
	return &Handler{
		core: core,
		cfg:  cfg,
	}
}

// HandleInfo はGET / のハンドラー。
func (h *Handler) HandleInfo(c *gin.Context) {
	c.String(http.StatusOK, "guestauth REST server running")
}

// HandleHealth はGET /health のハンドラー。
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// HandleAuthorize はPOST /authorize のハンドラー。
// REJECTは401、NO_OPは204、ALLOWは200と返却属性。
func (h *Handler) HandleAuthorize(c *gin.Context) {
	attrs := h.bindAttributes(c)
	decision, result := h.core.Authorize(attrs)

	switch decision {
	case authhandler.DecisionAllow:
		if result == nil {
			result = authhandler.Attributes{}
		}
		c.JSON(http.StatusOK, result)
	case authhandler.DecisionNoOp:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusUnauthorized, gin.H{})
	}
}

// HandlePostAuth はPOST /post-auth のハンドラー。返却属性がなければ204。
func (h *Handler) HandlePostAuth(c *gin.Context) {
	attrs := h.bindAttributes(c)
	result := h.core.PostAuth(attrs)
	if len(result) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result)
}

// HandleDropExpired は/drop-expired のハンドラー。
func (h *Handler) HandleDropExpired(c *gin.Context) {
	dropped := h.core.DropExpiredUsers()
	slog.Info("drop expired requested",
		logging.WithTraceID(c.GetString(TraceIDKey)),
		logging.WithEventID("DROP_EXPIRED"),
		slog.Int("dropped", dropped),
	)
	c.String(http.StatusOK, "OK")
}

// HandleChatWebhook はPOST /chat/webhook のハンドラー。
// webhookチャット使用時のみ受け付ける。
func (h *Handler) HandleChatWebhook(c *gin.Context) {
	traceID := c.GetString(TraceIDKey)

	if !h.authorized(c) {
		slog.Warn("webhook token mismatch",
			logging.WithTraceID(traceID),
			logging.WithEventID("WEBHOOK_AUTH_ERR"),
			logging.WithError(apperr.ErrUnauthorized),
		)
		httputil.WriteError(c, httputil.Unauthorized("Invalid or missing bearer token"))
		return
	}

	inbox, ok := h.core.Inbox()
	if !ok {
		httputil.WriteError(c, httputil.ServiceUnavailable("Webhook chat is not enabled"))
		return
	}

	var msg chat.WebhookMessage
	if err := c.ShouldBindJSON(&msg); err != nil || strings.TrimSpace(msg.Text) == "" {
		slog.Warn("invalid webhook message",
			logging.WithTraceID(traceID),
			logging.WithEventID("WEBHOOK_BAD_REQUEST"),
			logging.WithError(apperr.ErrInvalidRequest),
		)
		httputil.WriteError(c, httputil.BadRequest("Request body must be {\"text\": \"...\"}"))
		return
	}

	inbox.Deliver(msg.Text)
	c.Status(http.StatusAccepted)
}

// authorized はBearerトークンを照合する。トークン未設定の場合はすべて拒否する。
func (h *Handler) authorized(c *gin.Context) bool {
	token := h.cfg.ChatWebhookToken
	if token == "" {
		return false
	}
	got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	return ok && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}

// bindAttributes はrestモジュールのJSONを属性マップに変換する。
// 不正なボディは空の属性として扱う。
func (h *Handler) bindAttributes(c *gin.Context) map[string]string {
	var data map[string]json.RawMessage
	if err := c.ShouldBindJSON(&data); err != nil {
		slog.Warn("malformed attribute body",
			logging.WithTraceID(c.GetString(TraceIDKey)),
			logging.WithEventID("REST_BAD_BODY"),
			logging.WithError(err),
		)
		return map[string]string{}
	}
	return UnpackAttributes(data)
}
