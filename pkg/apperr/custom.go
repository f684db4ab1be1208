package apperr

import "fmt"

// ValidationError はバリデーションエラーを表す。
type ValidationError struct {
	Field   string // エラーが発生したフィールド名
	Message string // エラーメッセージ
}

// Error はerrorインターフェースを実装する。
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: field=%s, message=%s", e.Field, e.Message)
}

// NewValidationError はValidationErrorを生成する。
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// PluginError はプラグイン解決・生成のエラーを表す。
type PluginError struct {
	Kind  string // 種別（auth_handler, chat）
	Name  string // 設定されたプラグイン名
	Cause error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *PluginError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("plugin error: kind=%s, name=%s, cause=%v", e.Kind, e.Name, e.Cause)
	}
	return fmt.Sprintf("plugin error: kind=%s, name=%s", e.Kind, e.Name)
}

// Unwrap は根本原因を返す。
func (e *PluginError) Unwrap() error {
	return e.Cause
}

// NewPluginError はPluginErrorを生成する。
func NewPluginError(kind, name string, cause error) *PluginError {
	return &PluginError{
		Kind:  kind,
		Name:  name,
		Cause: cause,
	}
}

// CommandError はホスト側コマンド（ファイアウォールスクリプト等）の実行エラーを表す。
type CommandError struct {
	Command string // 実行したコマンド
	Cause   error  // 根本原因
}

// Error はerrorインターフェースを実装する。
func (e *CommandError) Error() string {
	return fmt.Sprintf("command error: command=%s, cause=%v", e.Command, e.Cause)
}

// Unwrap は根本原因を返す。
func (e *CommandError) Unwrap() error {
	return e.Cause
}

// NewCommandError はCommandErrorを生成する。
func NewCommandError(command string, cause error) *CommandError {
	return &CommandError{
		Command: command,
		Cause:   cause,
	}
}
