package command

import (
	"fmt"
	"strconv"
	"time"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

// maxHours は"for <t> h"で指定できる上限時間。
const maxHours = 24

// modifier は"<n> times"または"for <t> h"の解析結果。
type modifier struct {
	n         int
	countMode bool
}

// consumed は修飾子が消費したトークン数を返す。
func (m modifier) consumed() int {
	if m.countMode {
		return 2
	}
	return 3
}

func (m modifier) String() string {
	if m.countMode {
		return fmt.Sprintf("%d times", m.n)
	}
	return fmt.Sprintf("for %d h", m.n)
}

// parseModifier は引数先頭の修飾子を解析する。
// 失敗時はオペレーター向けのメッセージとfalseを返す。
func parseModifier(args []string, usage string) (modifier, string, bool) {
	switch {
	case len(args) >= 2 && isNumeric(args[0]) && args[1] == "times":
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return modifier{}, usage, false
		}
		return modifier{n: n, countMode: true}, "", true
	case len(args) >= 3 && args[0] == "for" && isNumeric(args[1]) && args[2] == "h":
		n, err := strconv.Atoi(args[1])
		if err != nil || n > maxHours {
			return modifier{}, fmt.Sprintf("No more than %d hours are possible", maxHours), false
		}
		return modifier{n: n}, "", true
	default:
		return modifier{}, usage, false
	}
}

// apply はDataを許可状態にし、修飾子に従って期限または回数を設定する。
func (m modifier) apply(data *users.UserData, now time.Time) {
	data.JoinState = users.StateAllowed
	if m.countMode {
		data.MaxNumJoins = m.n
		data.ValidUntil = nil
		return
	}
	until := now.Add(time.Duration(m.n) * time.Hour)
	data.ValidUntil = &until
	data.MaxNumJoins = 0
}

// isNumeric は空でなくASCII数字のみで構成されるかを返す。
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
