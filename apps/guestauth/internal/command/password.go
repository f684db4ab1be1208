package command

import (
	"log/slog"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/audit"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// PasswordCommand は次に参加するユーザーのパスワードを生成する（PASS）。
type PasswordCommand struct {
	deps Deps
}

// NewPasswordCommand は新しいPasswordCommandを生成する。
func NewPasswordCommand(deps Deps) *PasswordCommand {
	return &PasswordCommand{deps: deps}
}

func (c *PasswordCommand) Name() string { return "PASS" }

func (c *PasswordCommand) Description() string {
	return "Generate a new password which is used for the next joining user."
}

func (c *PasswordCommand) Usage() string { return usageOf(c) }

func (c *PasswordCommand) Execute([]string) string {
	pw := c.deps.Users.GeneratePassword()

	slog.Info("password regenerated", logging.WithEventID("PASSWORD_GENERATED"))
	c.deps.Audit.Log(audit.OpPassword, "", "", "password regenerated", "")

	return "Next Password: " + pw
}
