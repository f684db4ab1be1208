package ui

import "github.com/gdamore/tcell/v2"

// キーバインド定義
var (
	KeySend        = tcell.KeyEnter
	KeyHistoryPrev = tcell.KeyUp
	KeyHistoryNext = tcell.KeyDown
	KeyList        = tcell.KeyF2
	KeyHelp        = tcell.KeyF1
	KeyDeny        = tcell.KeyF4
	KeyPassword    = tcell.KeyF5
	KeyQuit        = tcell.KeyCtrlQ
)

// KeyBinding はキーバインドの情報を表す。
type KeyBinding struct {
	Key         tcell.Key
	Description string
	Command     string // 送信するguestauthコマンド（ない場合は空）
}

// GetKeyBindings はキーバインドのリストを返す。
func GetKeyBindings() []KeyBinding {
	return []KeyBinding{
		{KeyHelp, "HELP", "HELP"},
		{KeyList, "LIST", "LIST"},
		{KeyDeny, "NO", "NO"},
		{KeyPassword, "PASS", "PASS"},
		{KeyHistoryPrev, "History", ""},
		{KeyQuit, "Quit", ""},
	}
}

// QuickCommand はキーに割り当てられたコマンドを返す。
func QuickCommand(key tcell.Key) (string, bool) {
	for _, b := range GetKeyBindings() {
		if b.Key == key && b.Command != "" {
			return b.Command, true
		}
	}
	return "", false
}

// FormatKeyBindingHint はキーバインドのヒント文字列を生成する。
func FormatKeyBindingHint(bindings []KeyBinding) string {
	hints := ""
	for i, b := range bindings {
		if i > 0 {
			hints += " | "
		}
		hints += keyToString(b.Key) + ":" + b.Description
	}
	return hints
}

// keyToString はキーコードを文字列に変換する。
func keyToString(key tcell.Key) string {
	switch key {
	case tcell.KeyF1:
		return "F1"
	case tcell.KeyF2:
		return "F2"
	case tcell.KeyF4:
		return "F4"
	case tcell.KeyF5:
		return "F5"
	case tcell.KeyUp:
		return "↑"
	case tcell.KeyDown:
		return "↓"
	case tcell.KeyEnter:
		return "Enter"
	case tcell.KeyCtrlQ:
		return "Ctrl+Q"
	default:
		return "?"
	}
}
