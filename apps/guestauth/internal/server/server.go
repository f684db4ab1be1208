// Package server はFreeRADIUSのrestモジュールから呼ばれるHTTPファサードを提供する。
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// Server はrestファサードのhttp.Serverを保持する。
type Server struct {
	srv *http.Server
}

// New はGIN_MODEを反映したServerを生成する。
func New(cfg *config.Config, core Core) *Server {
	gin.SetMode(cfg.GinMode)
	return &Server{
		srv: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           NewEngine(NewHandler(core, cfg)),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
	}
}

// NewEngine はミドルウェアとルーティングを設定したgin.Engineを生成する。
// トレースIDを先に採番し、ログとパニック復旧の両方から参照できるようにする。
func NewEngine(h *Handler) *gin.Engine {
	engine := gin.New()
	engine.Use(TraceIDMiddleware(), LoggingMiddleware(), RecoveryMiddleware())
	SetupRouter(engine, h)
	return engine
}

// Run はListenAddrで待ち受ける。Shutdown後はhttp.ErrServerClosedを返す。
func (s *Server) Run() error {
	slog.Info("rest facade listening",
		logging.WithEventID("SERVER_START"),
		slog.String("addr", s.srv.Addr),
	)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("rest facade stopping", logging.WithEventID("SERVER_STOP"))
	return s.srv.Shutdown(ctx)
}
