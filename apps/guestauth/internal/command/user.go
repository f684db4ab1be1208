package command

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/audit"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

const (
	msgNoRequest      = "No request pending."
	msgInvalidRequest = "Invalid request in user registry"
	msgUnknownUser    = "Unknown user"
)

// userModifier はユーザーの許可条件を変更するコマンドの共通処理。
type userModifier struct {
	deps Deps
}

// allowWith は修飾子を適用して保存し、ハンドラに許可を通知する。
func (u *userModifier) allowWith(user *users.UserIdentifier, m modifier, op audit.Operation) string {
	if user.Data == nil {
		user.Data = users.NewUserData()
	}
	m.apply(user.Data, u.deps.Users.Now())
	u.deps.Users.Update(user)
	message := u.deps.Handler.OnHostAccept(user)

	slog.Info("guest allowed",
		logging.WithEventID("GUEST_ALLOWED"),
		logging.WithUser(user.Name),
		slog.String("modifier", m.String()),
	)
	u.deps.Audit.Log(op, user.Name, user.DeviceID, "guest allowed", m.String())

	return buildAnswer("OK", message)
}

// AllowCommand は承認待ちリクエストを許可する（OK）。
type AllowCommand struct {
	userModifier
}

// NewAllowCommand は新しいAllowCommandを生成する。
func NewAllowCommand(deps Deps) *AllowCommand {
	return &AllowCommand{userModifier{deps: deps}}
}

func (c *AllowCommand) Name() string { return "OK" }

func (c *AllowCommand) Description() string { return "Allow an user." }

func (c *AllowCommand) Usage() string {
	return usageOf(c) + " [count | time]\n\n" +
		"where count ::= <n> times\n" +
		"time ::= for <t> h\n\n" +
		"Examples:\n" +
		"OK 10 times\n" +
		"OK for 3 h"
}

// Execute は引数を検証してから承認待ちリクエストの有無を確認する。
func (c *AllowCommand) Execute(args []string) string {
	if len(args) != 2 && len(args) != 3 {
		return c.Usage()
	}

	m, msg, ok := parseModifier(args, c.Usage())
	if !ok {
		return msg
	}

	if !c.deps.Users.IsRequestPending() {
		return msgNoRequest
	}
	req := c.deps.Users.GetRequest()
	if req == nil {
		return msgInvalidRequest
	}

	req.Data = users.NewUserData()
	answer := c.allowWith(req, m, audit.OpAccept)
	c.deps.Users.FinishRequest()
	return answer
}

// DenyCommand は承認待ちリクエストを拒否する（NO）。
type DenyCommand struct {
	deps Deps
}

// NewDenyCommand は新しいDenyCommandを生成する。
func NewDenyCommand(deps Deps) *DenyCommand {
	return &DenyCommand{deps: deps}
}

func (c *DenyCommand) Name() string { return "NO" }

func (c *DenyCommand) Description() string { return "Deny an user." }

func (c *DenyCommand) Usage() string { return usageOf(c) }

// Execute はリクエストをBLOCKEDとして保存し、ハンドラに拒否を通知する。
func (c *DenyCommand) Execute([]string) string {
	if !c.deps.Users.IsRequestPending() {
		return msgNoRequest
	}
	req := c.deps.Users.GetRequest()
	if req == nil {
		return msgInvalidRequest
	}

	req.Data = users.NewUserData()
	req.Data.JoinState = users.StateBlocked
	c.deps.Users.Update(req)
	c.deps.Users.FinishRequest()

	message := c.deps.Handler.OnHostDeny(req)

	slog.Info("guest denied",
		logging.WithEventID("GUEST_DENIED"),
		logging.WithUser(req.Name),
	)
	c.deps.Audit.Log(audit.OpDeny, req.Name, req.DeviceID, "guest denied", "")

	return buildAnswer("User denied.", message)
}

// ListCommand は既知ユーザーを一覧表示する（LIST）。
type ListCommand struct {
	deps Deps
}

// NewListCommand は新しいListCommandを生成する。
func NewListCommand(deps Deps) *ListCommand {
	return &ListCommand{deps: deps}
}

func (c *ListCommand) Name() string { return "LIST" }

func (c *ListCommand) Description() string { return "List known users." }

func (c *ListCommand) Usage() string { return usageOf(c) }

func (c *ListCommand) Execute([]string) string {
	var b strings.Builder
	if c.deps.Users.IsRequestPending() {
		fmt.Fprintf(&b, "There is an ongoing request for %s.\n", userLine(c.deps.Users.GetRequest()))
		b.WriteString("Use OK or NO to decide about this user.\n")
		b.WriteString("Until then, only allowed users may join.\n\n")
	}

	b.WriteString("Known users:\n")
	for _, u := range c.deps.Users.ListUsers() {
		fmt.Fprintf(&b, "* %s\n", userLine(u))
	}
	return b.String()
}

// userLine は"name (device id)[ [blocked]]"を返す。
func userLine(u *users.UserIdentifier) string {
	line := fmt.Sprintf("%s (device %s)", u.Name, u.DeviceID)
	if u.IsBlocked() {
		line += " [blocked]"
	}
	return line
}

// ManageCommand は既存ユーザーの表示・許可・ブロック・削除を行う（MANAGE）。
//
// ユーザー名は空白を含み得るため、サブコマンドの消費トークン数から開始位置を
// 固定で決める（SHOW/BLOCK/DROPは1、ALLOW <n> timesは3、ALLOW for <t> hは4）。
type ManageCommand struct {
	userModifier
}

// NewManageCommand は新しいManageCommandを生成する。
func NewManageCommand(deps Deps) *ManageCommand {
	return &ManageCommand{userModifier{deps: deps}}
}

func (c *ManageCommand) Name() string { return "MANAGE" }

func (c *ManageCommand) Description() string {
	return "Change user options like validity time, maximum Joins etc."
}

func (c *ManageCommand) Usage() string {
	return usageOf(c) + " [show | count | time | block | drop] name\n\n" +
		"where show ::= SHOW\n" +
		"count ::= ALLOW <n> times\n" +
		"time ::= ALLOW for <t> h\n" +
		"block ::= BLOCK\n" +
		"drop ::= DROP\n\n" +
		"Examples:\n" +
		"MANAGE SHOW bob\n" +
		"MANAGE ALLOW for 3 h bob\n\n" +
		"block denies the user without notification, drop deletes " +
		"the user information, leading to notifications when the " +
		"user joins again."
}

func (c *ManageCommand) Execute(args []string) string {
	if len(args) < 2 {
		return c.Usage()
	}

	var action func(*users.UserIdentifier) string
	userPos := 1

	switch strings.ToLower(args[0]) {
	case "show":
		action = func(u *users.UserIdentifier) string { return u.String() }
	case "allow":
		m, msg, ok := parseModifier(args[1:], c.Usage())
		if !ok {
			return msg
		}
		userPos = 1 + m.consumed()
		action = func(u *users.UserIdentifier) string { return c.allowWith(u, m, audit.OpAllow) }
	case "block":
		action = c.block
	case "drop":
		action = c.drop
	default:
		return c.Usage()
	}

	var name string
	if userPos < len(args) {
		name = strings.Join(args[userPos:], " ")
	}
	user := c.deps.Users.Find(name)
	if user == nil {
		return msgUnknownUser
	}
	return action(user)
}

func (c *ManageCommand) block(user *users.UserIdentifier) string {
	if user.Data == nil {
		user.Data = users.NewUserData()
	}
	user.Data.JoinState = users.StateBlocked
	c.deps.Users.Update(user)
	message := c.deps.Handler.OnHostDeny(user)

	slog.Info("guest blocked",
		logging.WithEventID("GUEST_BLOCKED"),
		logging.WithUser(user.Name),
	)
	c.deps.Audit.Log(audit.OpBlock, user.Name, user.DeviceID, "guest blocked", "")

	return buildAnswer("User denied.", message)
}

// drop はユーザーを削除する。ブロック済みのユーザーは通知済みのためハンドラを呼ばない。
func (c *ManageCommand) drop(user *users.UserIdentifier) string {
	wasBlocked := user.IsBlocked()
	c.deps.Users.Remove(user)

	var message string
	if !wasBlocked {
		message = c.deps.Handler.OnHostDeny(user)
	}

	slog.Info("guest dropped",
		logging.WithEventID("GUEST_DROPPED"),
		logging.WithUser(user.Name),
		slog.Bool("was_blocked", wasBlocked),
	)
	c.deps.Audit.Log(audit.OpDrop, user.Name, user.DeviceID, "guest dropped", "")

	return buildAnswer("User removed.", message)
}
