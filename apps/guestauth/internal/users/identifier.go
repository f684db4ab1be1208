// Package users はゲストユーザーの参加状態と承認待ちリクエストを管理する。
package users

import (
	"fmt"
	"strings"
	"time"
)

// JoinState はユーザーの参加状態を表す。
type JoinState int

// 参加状態。StateNewは保存されず、判定結果としてのみ現れる。
const (
	StateNew JoinState = iota
	StateWaiting
	StateAllowed
	StateBlocked
)

// String はログ出力用の状態名を返す。
func (s JoinState) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateWaiting:
		return "WAITING"
	case StateAllowed:
		return "ALLOWED"
	case StateBlocked:
		return "BLOCKED"
	default:
		return fmt.Sprintf("JoinState(%d)", int(s))
	}
}

// validUntilLayout はValid until表示の書式（UTC）。
const validUntilLayout = "2006-01-02 15:04:05"

// UserData はユーザーごとの参加ポリシーとカウンタ。
// MaxNumJoinsが0の場合は回数無制限、ValidUntilがnilの場合は期限なし。
type UserData struct {
	JoinState   JoinState
	ValidUntil  *time.Time
	NumJoins    int
	MaxNumJoins int
}

// NewUserData はStateAllowedのUserDataを生成する。
func NewUserData() *UserData {
	return &UserData{JoinState: StateAllowed}
}

// StateString はオペレーター向けの状態表示を返す。
func (d *UserData) StateString() string {
	switch d.JoinState {
	case StateAllowed:
		return "Allowed"
	case StateBlocked:
		return "Blocked"
	default:
		return "Waiting for approval"
	}
}

// CheckExpired は現在時刻で期限切れかどうかを判定する。
func (d *UserData) CheckExpired(increment bool) bool {
	return d.CheckExpiredAt(time.Now(), increment)
}

// CheckExpiredAt は指定時刻で有効期限または参加回数の超過を判定する。
// 期限切れでなく回数制限がある場合、incrementがtrueならNumJoinsを1加算する。
func (d *UserData) CheckExpiredAt(now time.Time, increment bool) bool {
	if d.ValidUntil != nil && d.ValidUntil.Before(now) {
		return true
	}
	if d.MaxNumJoins != 0 {
		if d.NumJoins >= d.MaxNumJoins {
			return true
		}
		if increment {
			d.NumJoins++
		}
	}
	return false
}

func (d *UserData) String() string {
	validUntil := "-"
	if d.ValidUntil != nil {
		validUntil = d.ValidUntil.UTC().Format(validUntilLayout)
	}
	return fmt.Sprintf("User data:\nValid until: %s\nNumber of joins: %d\nMax. number of allowed joins: %d\nState: %s",
		validUntil, d.NumJoins, d.MaxNumJoins, d.StateString())
}

// UserIdentifier はゲストユーザー1件を表す。
// 同一性はNameと正規化したDeviceIDのみで判定し、PasswordとDataは含めない。
type UserIdentifier struct {
	Name     string
	DeviceID string // RADIUSのCalling-Station-Id（ハイフン区切り等）
	Password string
	Data     *UserData
}

// NewUserIdentifier はデータを持たないUserIdentifierを生成する。
func NewUserIdentifier(name, deviceID string) *UserIdentifier {
	return &UserIdentifier{Name: name, DeviceID: deviceID}
}

// FormatMAC はデバイスIDを小文字・コロン区切りのMACアドレス表記に変換する。
func FormatMAC(deviceID string) string {
	return strings.ToLower(strings.ReplaceAll(deviceID, "-", ":"))
}

// DeviceIDAsMAC はDeviceIDをMACアドレス表記で返す。
func (u *UserIdentifier) DeviceIDAsMAC() string {
	return FormatMAC(u.DeviceID)
}

// Equal は名前と正規化済みMACが一致するかを返す。
func (u *UserIdentifier) Equal(other *UserIdentifier) bool {
	if u == nil || other == nil {
		return false
	}
	return u.Name == other.Name && u.DeviceIDAsMAC() == other.DeviceIDAsMAC()
}

// CheckExpired はDataがあればその判定を返し、なければfalseを返す。
func (u *UserIdentifier) CheckExpired(increment bool) bool {
	return u.checkExpiredAt(time.Now(), increment)
}

func (u *UserIdentifier) checkExpiredAt(now time.Time, increment bool) bool {
	if u.Data == nil {
		return false
	}
	return u.Data.CheckExpiredAt(now, increment)
}

// IsBlocked はDataがStateBlockedかどうかを返す。
func (u *UserIdentifier) IsBlocked() bool {
	return u.Data != nil && u.Data.JoinState == StateBlocked
}

func (u *UserIdentifier) String() string {
	pw := "No password."
	if u.Password != "" {
		pw = "Password: " + u.Password
	}
	data := "No user data."
	if u.Data != nil {
		data = u.Data.String()
	}
	return fmt.Sprintf("Name: %s\nDevice ID: %s\n%s\n\n%s", u.Name, u.DeviceID, pw, data)
}
