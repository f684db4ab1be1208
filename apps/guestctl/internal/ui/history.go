package ui

// History は送信したコマンドの履歴を保持する。
type History struct {
	entries []string
	max     int
	pos     int // len(entries)は入力中（履歴外）を表す
}

// NewHistory は最大max件のHistoryを生成する。
func NewHistory(max int) *History {
	if max < 1 {
		max = 1
	}
	return &History{max: max}
}

// Add は履歴に追加し、参照位置を末尾に戻す。直前と同じ内容は追加しない。
func (h *History) Add(text string) {
	if text != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != text) {
		h.entries = append(h.entries, text)
		if len(h.entries) > h.max {
			h.entries = h.entries[len(h.entries)-h.max:]
		}
	}
	h.pos = len(h.entries)
}

// Prev は1つ前の履歴を返す。先頭では先頭のまま。
func (h *History) Prev() string {
	if len(h.entries) == 0 {
		return ""
	}
	if h.pos > 0 {
		h.pos--
	}
	return h.entries[h.pos]
}

// Next は1つ後の履歴を返す。末尾を超えると空文字列。
func (h *History) Next() string {
	if h.pos < len(h.entries) {
		h.pos++
	}
	if h.pos == len(h.entries) {
		return ""
	}
	return h.entries[h.pos]
}

// Len は履歴の件数を返す。
func (h *History) Len() int {
	return len(h.entries)
}
