package users

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"time"
)

// passwordSpace は生成するパスワードの値域（6桁の10進数）。
var passwordSpace = big.NewInt(1_000_000)

// Manager は既知ユーザーと承認待ちリクエスト1件を保持する。
//
// Managerは内部でロックを取らない。呼び出し側はRADIUS処理とチャット処理の
// 双方を同一のロックで直列化しなければならない。並行して変更した場合の
// 動作は未定義。
type Manager struct {
	users           map[string]*UserIdentifier
	request         *UserIdentifier
	macAddrs        map[string]struct{}
	currentPassword string
	now             func() time.Time
}

// NewManager は空のManagerを生成する。
func NewManager() *Manager {
	return &Manager{
		users:    make(map[string]*UserIdentifier),
		macAddrs: make(map[string]struct{}),
		now:      time.Now,
	}
}

// SetClock は期限判定に使う時刻関数を差し替える。
func (m *Manager) SetClock(now func() time.Time) {
	if now != nil {
		m.now = now
	}
}

// Now はManagerの時刻関数で現在時刻を返す。
func (m *Manager) Now() time.Time {
	return m.now()
}

// MayJoin は指定ユーザーの参加可否を判定する。
//
// 状態遷移:
//   - NEW → (リクエスト追加) WAITING → (オペレーター応答) ALLOWED/BLOCKED
//   - 有効期限または参加回数超過: ALLOWED → NEW
//   - ユーザー削除: ALLOWED/BLOCKED → NEW
func (m *Manager) MayJoin(id *UserIdentifier) JoinState {
	if id == nil {
		return StateBlocked
	}

	if m.request != nil && id.Equal(m.request) {
		return StateWaiting
	}

	stored, ok := m.users[id.Name]
	if !ok {
		if _, used := m.macAddrs[id.DeviceIDAsMAC()]; used {
			return StateBlocked
		}
		return StateNew
	}

	if !id.Equal(stored) || stored.Data == nil {
		return StateBlocked
	}

	// ブロック済みは期限判定しない
	if stored.Data.JoinState == StateBlocked {
		return StateBlocked
	}

	if stored.checkExpiredAt(m.now(), true) {
		m.Remove(stored)
		return StateNew
	}

	return stored.Data.JoinState
}

// IsRequestPending は承認待ちリクエストの有無を返す。
func (m *Manager) IsRequestPending() bool {
	return m.request != nil
}

// AddRequest は承認待ちリクエストを登録する。
// 既にリクエストがある場合や同名ユーザーが保存済みの場合はfalseを返す。
func (m *Manager) AddRequest(id *UserIdentifier) bool {
	if id == nil || m.request != nil {
		return false
	}
	// 1つの名前は1台のデバイスにのみ対応する
	if _, ok := m.users[id.Name]; ok {
		return false
	}

	m.request = &UserIdentifier{
		Name:     id.Name,
		DeviceID: id.DeviceID,
		Password: m.currentPassword,
	}
	m.macAddrs[id.DeviceIDAsMAC()] = struct{}{}
	return true
}

// GetRequest は承認待ちリクエストを返す。なければnil。
func (m *Manager) GetRequest() *UserIdentifier {
	return m.request
}

// FinishRequest は承認待ちリクエストを破棄する。
// 保存されなかったリクエストのMACは解放する。
func (m *Manager) FinishRequest() {
	if m.request == nil {
		return
	}
	req := m.request
	m.request = nil

	if stored, ok := m.users[req.Name]; ok && stored.Equal(req) {
		return
	}
	delete(m.macAddrs, req.DeviceIDAsMAC())
}

// Find は名前で保存済みユーザーを検索する。
func (m *Manager) Find(name string) *UserIdentifier {
	return m.users[name]
}

// Update は保存済みユーザー、または承認待ちリクエスト本人のみを保存する。
func (m *Manager) Update(id *UserIdentifier) {
	if id == nil {
		return
	}
	if _, ok := m.users[id.Name]; ok || (m.request != nil && id.Equal(m.request)) {
		m.users[id.Name] = id
	}
}

// Remove は保存済みユーザーを削除し、MACの予約を解放する。
func (m *Manager) Remove(id *UserIdentifier) {
	if id == nil {
		return
	}
	stored, ok := m.users[id.Name]
	if !ok {
		return
	}
	delete(m.macAddrs, stored.DeviceIDAsMAC())
	delete(m.users, id.Name)
}

// ListUsers は保存済みユーザーを名前順で返す。
func (m *Manager) ListUsers() []*UserIdentifier {
	list := make([]*UserIdentifier, 0, len(m.users))
	for _, u := range m.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// GetExpiredUsers は期限切れの保存済みユーザーを返す。カウンタは変更しない。
func (m *Manager) GetExpiredUsers() []*UserIdentifier {
	now := m.now()
	var expired []*UserIdentifier
	for _, u := range m.ListUsers() {
		if u.checkExpiredAt(now, false) {
			expired = append(expired, u)
		}
	}
	return expired
}

// GeneratePassword は次のリクエストに付与するパスワードを生成する。
func (m *Manager) GeneratePassword() string {
	// crypto/rand.Readerはエラーを返さない
	n, _ := rand.Int(rand.Reader, passwordSpace)
	m.currentPassword = fmt.Sprintf("%06d", n.Int64())
	return m.currentPassword
}
