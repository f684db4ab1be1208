package ui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// errorDuration はエラー表示を通常表示へ戻すまでの時間。
const errorDuration = 5 * time.Second

// StatusBar は待受アドレスと接続中のguestauthを表示する。
// 送信エラーは一定時間だけ上書き表示する。
// メソッドはすべてUIスレッドから呼び出すこと。
type StatusBar struct {
	view  *tview.TextView
	app   *tview.Application
	timer *time.Timer

	listen string
	peer   string
}

// NewStatusBar は新しいStatusBarを生成する。
func NewStatusBar() *StatusBar {
	view := tview.NewTextView().SetDynamicColors(true)
	view.SetBackgroundColor(ColorStatusBg)
	view.SetTextColor(tcell.ColorWhite)
	return &StatusBar{view: view}
}

func (s *StatusBar) setApp(app *tview.Application) {
	s.app = app
	s.render()
}

// SetListenAddr は待受アドレスを設定する。
func (s *StatusBar) SetListenAddr(addr string) {
	s.listen = addr
	s.render()
}

// SetPeer は最後に受信した送信元を設定する。
func (s *StatusBar) SetPeer(addr string) {
	if s.peer == addr {
		return
	}
	s.peer = addr
	if s.timer == nil {
		s.render()
	}
}

// ShowError はエラーメッセージをerrorDurationの間表示する。
func (s *StatusBar) ShowError(message string) {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.view.SetText(errorText(message))
	s.timer = time.AfterFunc(errorDuration, func() {
		if s.app == nil {
			return
		}
		s.app.QueueUpdateDraw(func() {
			s.timer = nil
			s.render()
		})
	})
}

func (s *StatusBar) render() {
	s.view.SetText(statusLine(s.listen, s.peer))
}

func statusLine(listen, peer string) string {
	if peer == "" {
		peer = "[yellow]waiting[white]"
	} else {
		peer = tview.Escape(peer)
	}
	return fmt.Sprintf(" listen %s | guestauth %s | %s",
		tview.Escape(listen), peer, FormatKeyBindingHint(GetKeyBindings()))
}

func errorText(message string) string {
	return "[red::b] ✗ " + tview.Escape(message) + " [-::-]"
}
