package logging

import "log/slog"

// ログのキー名。guestauthの全ログで共通に使う。
const (
	FieldTraceID   = "trace_id"
	FieldEventID   = "event_id"
	FieldError     = "error"
	FieldSrcIP     = "src_ip"
	FieldLatencyMs = "latency_ms"

	// ゲスト関連
	FieldUser    = "user"
	FieldDevice  = "device"
	FieldSession = "acct_session"
	FieldState   = "join_state"
	FieldCommand = "command"
)

func WithTraceID(traceID string) slog.Attr { return slog.String(FieldTraceID, traceID) }
func WithEventID(eventID string) slog.Attr { return slog.String(FieldEventID, eventID) }
func WithSrcIP(ip string) slog.Attr        { return slog.String(FieldSrcIP, ip) }
func WithUser(name string) slog.Attr       { return slog.String(FieldUser, name) }
func WithSession(id string) slog.Attr      { return slog.String(FieldSession, id) }

// WithLatency はミリ秒単位の処理時間。
func WithLatency(ms int64) slog.Attr { return slog.Int64(FieldLatencyMs, ms) }

// WithError はerrの文字列表現を返す。nilの場合は空文字。
func WithError(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String(FieldError, msg)
}

// CommonFields はMaskerを通してデバイスIDを出力するためのフィールド生成器。
type CommonFields struct {
	masker *Masker
}

// NewCommonFields はCommonFieldsを生成する。maskerがnilの場合はマスキングしない。
func NewCommonFields(masker *Masker) *CommonFields {
	return &CommonFields{masker: masker}
}

func (cf *CommonFields) WithDevice(deviceID string) slog.Attr {
	return slog.String(FieldDevice, cf.masker.MAC(deviceID))
}

// GuestLogFields はevent_id, user, deviceの3フィールドをslogの可変長引数として返す。
func (cf *CommonFields) GuestLogFields(eventID, user, deviceID string) []any {
	return []any{WithEventID(eventID), WithUser(user), cf.WithDevice(deviceID)}
}
