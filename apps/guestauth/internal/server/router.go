package server

import "github.com/gin-gonic/gin"

// SetupRouter はルーティングを設定する。
func SetupRouter(engine *gin.Engine, h *Handler) {
	engine.GET("/", h.HandleInfo)
	engine.GET("/health", h.HandleHealth)

	// FreeRADIUS rest
	engine.POST("/authorize", h.HandleAuthorize)
	engine.POST("/post-auth", h.HandlePostAuth)
	engine.GET("/drop-expired", h.HandleDropExpired)
	engine.POST("/drop-expired", h.HandleDropExpired)

	// webhookチャットの受信
	engine.POST("/chat/webhook", h.HandleChatWebhook)
}
