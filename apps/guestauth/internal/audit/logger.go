// Package audit はオペレーター操作の監査ログ機能を提供する。
package audit

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// Operation は監査ログの操作種別を表す。
type Operation string

const (
	// OpAccept は承認待ちリクエストの許可
	OpAccept Operation = "accept"
	// OpDeny は承認待ちリクエストの拒否
	OpDeny Operation = "deny"
	// OpAllow は既存ユーザーの許可条件変更
	OpAllow Operation = "allow"
	// OpBlock は既存ユーザーのブロック
	OpBlock Operation = "block"
	// OpDrop は既存ユーザーの削除
	OpDrop Operation = "drop"
	// OpExpire は期限切れによる自動削除
	OpExpire Operation = "expire"
	// OpPassword はパスワード再生成
	OpPassword Operation = "password"
)

// Entry は監査ログエントリを表す。
type Entry struct {
	Time      string    `json:"time"`              // RFC3339形式のタイムスタンプ
	Level     string    `json:"level"`             // ログレベル（常に"INFO"）
	App       string    `json:"app"`               // アプリケーション名（常に"guestauth"）
	EventID   string    `json:"event_id"`          // イベントID（常に"AUDIT_LOG"）
	Msg       string    `json:"msg"`               // メッセージ
	Operation Operation `json:"operation"`         // 操作種別
	User      string    `json:"user,omitempty"`    // 対象ゲスト名
	Device    string    `json:"device,omitempty"`  // 対象デバイス（マスキング済み）
	Actor     string    `json:"actor"`             // 操作元（チャット種別、"system"等）
	Details   string    `json:"details,omitempty"` // 追加詳細情報
}

// Logger は監査ログを出力する。
type Logger struct {
	writer io.Writer
	actor  string
	masker *logging.Masker
	mu     sync.Mutex
	now    func() time.Time
}

// NewLogger は標準エラー出力へ書き込むLoggerを生成する。
func NewLogger(actor string, masker *logging.Masker) *Logger {
	return NewLoggerWithWriter(os.Stderr, actor, masker)
}

// NewLoggerWithWriter は指定されたWriterを使用するLoggerを生成する。
func NewLoggerWithWriter(writer io.Writer, actor string, masker *logging.Masker) *Logger {
	if masker == nil {
		masker = logging.NewMasker(false)
	}
	return &Logger{
		writer: writer,
		actor:  actor,
		masker: masker,
		now:    time.Now,
	}
}

// Log は監査ログエントリを出力する。nilのLoggerでは何もしない。
func (l *Logger) Log(op Operation, user, deviceID, msg, details string) {
	if l == nil {
		return
	}
	l.write(Entry{
		Time:      l.now().UTC().Format(time.RFC3339),
		Level:     "INFO",
		App:       "guestauth",
		EventID:   "AUDIT_LOG",
		Msg:       msg,
		Operation: op,
		User:      user,
		Device:    l.maskDevice(deviceID),
		Actor:     l.actor,
		Details:   details,
	})
}

// LogSystem は操作元を"system"として監査ログエントリを出力する。
func (l *Logger) LogSystem(op Operation, user, deviceID, msg string) {
	if l == nil {
		return
	}
	l.write(Entry{
		Time:      l.now().UTC().Format(time.RFC3339),
		Level:     "INFO",
		App:       "guestauth",
		EventID:   "AUDIT_LOG",
		Msg:       msg,
		Operation: op,
		User:      user,
		Device:    l.maskDevice(deviceID),
		Actor:     "system",
	})
}

func (l *Logger) maskDevice(deviceID string) string {
	if deviceID == "" {
		return ""
	}
	return l.masker.MAC(deviceID)
}

func (l *Logger) write(entry Entry) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.writer.Write(append(data, '\n'))
}
