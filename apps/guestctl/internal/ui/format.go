package ui

import (
	"strings"
	"time"

	"github.com/rivo/tview"
)

const timeLayout = "15:04:05"

// continuationIndent は時刻とマーカーの幅に揃える。
var continuationIndent = strings.Repeat(" ", len(timeLayout)+3)

// FormatIncoming はguestauthからのメッセージを表示用に整形する。
// 複数行の応答は2行目以降を字下げする。
func FormatIncoming(t time.Time, text string) string {
	return formatLine(t, tagIncoming+"<"+tagReset, text)
}

// FormatOutgoing は送信したコマンドを表示用に整形する。
func FormatOutgoing(t time.Time, text string) string {
	return formatLine(t, tagOutgoing+">"+tagReset, text)
}

func formatLine(t time.Time, marker, text string) string {
	body := tview.Escape(strings.TrimRight(text, "\n"))
	body = strings.ReplaceAll(body, "\n", "\n"+continuationIndent)
	return tagTime + t.Format(timeLayout) + tagReset + " " + marker + " " + body
}
