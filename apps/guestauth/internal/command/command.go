// Package command はチャット経由のオペレーターコマンドを提供する。
//
// メッセージは "<COMMAND> <arg>..." 形式で、コマンド名は大文字小文字を区別しない。
// すべてのコマンドは文字列の応答を返し、不正な入力には使い方かエラー文言を返す。
package command

import (
	"strings"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/audit"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/authhandler"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
)

// Command はオペレーターコマンド。
type Command interface {
	// Name はコマンド名（大文字）。
	Name() string
	// Description はHELP一覧に表示する1行説明。
	Description() string
	// Usage は詳細な使い方。
	Usage() string
	// Execute はコマンド名を除いた引数で実行し、応答文を返す。
	Execute(args []string) string
}

// Deps はコマンドが操作する依存オブジェクト。
type Deps struct {
	Users   *users.Manager
	Handler authhandler.Handler
	Audit   *audit.Logger
}

// Registry はコマンドを登録順に保持し、名前で振り分ける。
type Registry struct {
	commands map[string]Command
	order    []Command
}

// NewRegistry は空のRegistryを生成する。
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// NewDefaultRegistry はOK/NO/LIST/MANAGE/PASS/HELPを登録したRegistryを生成する。
func NewDefaultRegistry(deps Deps) *Registry {
	r := NewRegistry()
	r.Register(NewAllowCommand(deps))
	r.Register(NewDenyCommand(deps))
	r.Register(NewListCommand(deps))
	r.Register(NewManageCommand(deps))
	r.Register(NewPasswordCommand(deps))
	r.Register(NewHelpCommand(r))
	return r
}

// Register はコマンドを登録する。同名の登録は上書きする。
func (r *Registry) Register(cmd Command) {
	key := strings.ToLower(cmd.Name())
	if _, exists := r.commands[key]; !exists {
		r.order = append(r.order, cmd)
	} else {
		for i, c := range r.order {
			if strings.EqualFold(c.Name(), cmd.Name()) {
				r.order[i] = cmd
			}
		}
	}
	r.commands[key] = cmd
}

// Lookup は名前でコマンドを検索する。
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[strings.ToLower(name)]
	return cmd, ok
}

// Commands は登録順のコマンド一覧を返す。
func (r *Registry) Commands() []Command {
	return append([]Command(nil), r.order...)
}

// Dispatch はメッセージを分解して該当コマンドを実行する。
// 改行を除去し、半角スペース1文字で区切る。
func (r *Registry) Dispatch(text string) string {
	line := strings.ReplaceAll(text, "\n", "")
	parts := strings.Split(line, " ")

	cmd, ok := r.Lookup(parts[0])
	if !ok {
		return "Unknown command: " + line
	}
	return cmd.Execute(parts[1:])
}

// usageOf は"Usage: <NAME>"を返す。
func usageOf(cmd Command) string {
	return "Usage: " + cmd.Name()
}

// buildAnswer はoptionalがあれば改行して連結する。
func buildAnswer(base, optional string) string {
	if optional != "" {
		return base + "\n" + optional
	}
	return base
}
