// Package main はguestauth（ゲストネットワーク参加承認サーバー）のエントリーポイント。
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/audit"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/core"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/server"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

func main() {
	// 1. 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. ロガー初期化
	initLogger(cfg)

	slog.Info("starting guestauth",
		"listen_addr", cfg.ListenAddr,
		"auth_handler", cfg.AuthHandler,
		"chat", cfg.Chat,
		"log_level", cfg.LogLevel,
	)

	// 3. 監査ログ
	auditWriter, closeAudit, err := openAuditWriter(cfg.AuditLogPath)
	if err != nil {
		slog.Error("failed to open audit log", "error", err)
		os.Exit(1)
	}
	defer closeAudit()

	masker := logging.NewMasker(cfg.LogMaskMAC)
	auditLogger := audit.NewLoggerWithWriter(auditWriter, "operator", masker)

	// 4. コア起動（ハンドラ・チャット）
	guestCore := core.New(
		core.WithAudit(auditLogger),
		core.WithMasker(masker),
	)
	if err := guestCore.Startup(cfg); err != nil {
		slog.Error("failed to start guestauth core", "error", err)
		os.Exit(1)
	}
	defer guestCore.Shutdown()

	// 5. 期限切れユーザーの定期削除
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.DropExpiredInterval > 0 {
		go runDropExpired(ctx, guestCore, cfg.DropExpiredInterval)
	}

	// 6. サーバー起動
	srv := server.New(cfg, guestCore)
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 7. シグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		slog.Error("server error", "error", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

// runDropExpired は一定間隔で期限切れユーザーを削除する。
func runDropExpired(ctx context.Context, c *core.GuestAuthCore, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.DropExpiredUsers(); n > 0 {
				slog.Info("expired users dropped",
					logging.WithEventID("DROP_EXPIRED"),
					slog.Int("dropped", n),
				)
			}
		}
	}
}

// openAuditWriter は監査ログの出力先を開く。パス未指定時は標準エラー出力。
func openAuditWriter(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, func() { _ = f.Close() }, nil
}

// initLogger はロガーを初期化する。
func initLogger(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		level = slog.LevelDebug
	case "WARN":
		level = slog.LevelWarn
	case "ERROR":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(handler).With("app", "guestauth")
	slog.SetDefault(logger)
}
