// Package ui はguestctlのTUIを提供する。
package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// App はメッセージ表示領域・コマンド入力欄・ステータスバーを管理する。
type App struct {
	app       *tview.Application
	messages  *tview.TextView
	input     *tview.InputField
	statusBar *StatusBar
	layout    *tview.Flex
	history   *History

	onSubmit func(text string)
	now      func() time.Time
}

// NewApp は新しいAppを生成する。
func NewApp(maxLines, historySize int) *App {
	app := tview.NewApplication()
	statusBar := NewStatusBar()

	messages := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(maxLines)
	messages.SetBorder(true).
		SetTitle(" guestauth ").
		SetBorderColor(ColorBorder)
	messages.SetChangedFunc(func() {
		messages.ScrollToEnd()
	})

	input := tview.NewInputField().
		SetLabel("> ").
		SetLabelColor(ColorPrompt).
		SetFieldBackgroundColor(ColorBackground)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(messages, 0, 1, false).
		AddItem(input, 1, 0, true).
		AddItem(statusBar.view, 1, 0, false)

	a := &App{
		app:       app,
		messages:  messages,
		input:     input,
		statusBar: statusBar,
		layout:    layout,
		history:   NewHistory(historySize),
		onSubmit:  func(string) {},
		now:       time.Now,
	}
	input.SetInputCapture(a.handleInputKey)
	app.SetInputCapture(a.handleGlobalKey)
	statusBar.setApp(app)
	return a
}

// SetOnSubmit は入力確定時のコールバックを設定する。
func (a *App) SetOnSubmit(fn func(text string)) {
	a.onSubmit = fn
}

// Run はアプリケーションを実行する。
func (a *App) Run() error {
	return a.app.SetRoot(a.layout, true).EnableMouse(false).Run()
}

// Stop はアプリケーションを停止する。
func (a *App) Stop() {
	a.app.Stop()
}

// GetStatusBar はステータスバーを返す。
func (a *App) GetStatusBar() *StatusBar {
	return a.statusBar
}

// AppendIncoming は受信メッセージを表示し、送信元をステータスバーへ反映する。
// UIスレッド以外から呼び出す。
func (a *App) AppendIncoming(from, text string) {
	line := FormatIncoming(a.now(), text)
	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetPeer(from)
		a.appendLine(line)
	})
}

// AppendOutgoing は送信したコマンドを表示する。UIスレッドから呼び出す。
func (a *App) AppendOutgoing(text string) {
	a.appendLine(FormatOutgoing(a.now(), text))
}

func (a *App) appendLine(line string) {
	_, _ = a.messages.Write([]byte(line + "\n"))
}

// submit は入力欄の内容を送信する。
func (a *App) submit(text string) {
	if text == "" {
		return
	}
	a.history.Add(text)
	a.input.SetText("")
	a.onSubmit(text)
}

func (a *App) handleInputKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case KeySend:
		a.submit(a.input.GetText())
		return nil
	case KeyHistoryPrev:
		a.input.SetText(a.history.Prev())
		return nil
	case KeyHistoryNext:
		a.input.SetText(a.history.Next())
		return nil
	}
	return event
}

func (a *App) handleGlobalKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == KeyQuit {
		a.app.Stop()
		return nil
	}
	if cmd, ok := QuickCommand(event.Key()); ok {
		a.submit(cmd)
		return nil
	}
	return event
}
