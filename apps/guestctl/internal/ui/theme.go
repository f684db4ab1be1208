package ui

import "github.com/gdamore/tcell/v2"

// 色定義
var (
	ColorBorder     = tcell.ColorWhite
	ColorPrompt     = tcell.ColorYellow
	ColorBackground = tcell.ColorDefault
	ColorStatusBg   = tcell.ColorDarkBlue
)

// メッセージ行の色タグ
const (
	tagTime     = "[gray]"
	tagIncoming = "[teal]"
	tagOutgoing = "[green]"
	tagReset    = "[-]"
)
