package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/httputil"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

const (
	traceIDHeader = "X-Trace-ID"
	maxTraceIDLen = 64
)

// TraceIDKey はgin.ContextにトレースIDを格納するキー。
const TraceIDKey = httputil.TraceIDKey

// TraceIDMiddleware はFreeRADIUSが付けたX-Trace-IDを引き継ぐ。
// ヘッダがない、または長すぎる場合はUUIDを採番する。
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(traceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = uuid.NewString()
		}
		c.Set(TraceIDKey, traceID)
		c.Header(traceIDHeader, traceID)
		c.Next()
	}
}

// LoggingMiddleware はアクセスログを出力する。
// 5xxはError、4xxはWarn、それ以外はInfoで出す。
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest && status != http.StatusUnauthorized:
			// /authorizeのREJECTは401で返るため警告扱いにしない
			level = slog.LevelWarn
		}

		slog.LogAttrs(c.Request.Context(), level, "request completed",
			logging.WithTraceID(c.GetString(TraceIDKey)),
			logging.WithSrcIP(c.ClientIP()),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("http_status", status),
			logging.WithLatency(time.Since(start).Milliseconds()),
		)
	}
}

// RecoveryMiddleware はハンドラ内のパニックを500応答に変換する。
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			slog.Error("panic recovered",
				logging.WithTraceID(c.GetString(TraceIDKey)),
				logging.WithEventID("PANIC_RECOVERED"),
				slog.Any("panic", rec),
			)
			httputil.AbortWithError(c, httputil.InternalServerError("An unexpected error occurred"))
		}()
		c.Next()
	}
}
