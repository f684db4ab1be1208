package authhandler

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/users"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// 切断結果メッセージ
const (
	msgDisassociated    = "User forced to re-connect (disassociated)."
	msgDisassociateFail = "Could not disassociate user."
)

// RejectOnlyWhenBlocked はBLOCKEDのみ拒否し、それ以外はパスワード付きで許可する。
func RejectOnlyWhenBlocked(user *users.UserIdentifier, state users.JoinState) (Decision, Attributes) {
	if state == users.StateBlocked || user == nil {
		return DecisionReject, nil
	}
	return DecisionAllow, Attributes{AttrCleartextPassword: user.Password}
}

// CommandRunner はホスト上のコマンドを実行する。
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// SudoRunner はsudo経由でコマンドを実行する。
type SudoRunner struct {
	Timeout time.Duration
}

// NewSudoRunner は既定タイムアウトのSudoRunnerを生成する。
func NewSudoRunner() *SudoRunner {
	return &SudoRunner{Timeout: config.HostCommandTimeout}
}

// Run はsudo name args...を実行する。タイムアウト時はapperr.ErrCommandTimeoutを返す。
func (r *SudoRunner) Run(ctx context.Context, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sudo", append([]string{name}, args...)...)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return apperr.NewCommandError(name, apperr.ErrCommandTimeout)
		}
		return apperr.NewCommandError(name, fmt.Errorf("%w: %v", apperr.ErrCommandFailed, err))
	}
	return nil
}

// runCommand はコマンドを実行し、結果に応じたメッセージを返す。
func runCommand(runner CommandRunner, success, failure, name string, args ...string) string {
	if err := runner.Run(context.Background(), name, args...); err != nil {
		slog.Warn("host command failed",
			logging.WithEventID("HOST_CMD_ERR"),
			slog.String(logging.FieldCommand, name+" "+strings.Join(args, " ")),
			logging.WithError(err),
		)
		return failure
	}
	return success
}

// Disassociator は端末をAPから切断し、再接続を促す。
type Disassociator interface {
	Disassociate(deviceID string) string
}

// HostapdDisassociator はhostapd_cliで切断する（OpenWRT環境向け）。
type HostapdDisassociator struct {
	runner CommandRunner
}

// NewHostapdDisassociator は新しいHostapdDisassociatorを生成する。
func NewHostapdDisassociator(runner CommandRunner) *HostapdDisassociator {
	return &HostapdDisassociator{runner: runner}
}

// Disassociate はhostapd_cli disassociate <mac>を実行する。
func (d *HostapdDisassociator) Disassociate(deviceID string) string {
	return runCommand(d.runner, msgDisassociated, msgDisassociateFail,
		"hostapd_cli", "disassociate", users.FormatMAC(deviceID))
}

// NewDisassociator は設定された切断方式のDisassociatorを生成する。
func NewDisassociator(cfg *config.Config, runner CommandRunner) Disassociator {
	if strings.EqualFold(cfg.DisassociateMode, config.DisassociateCoA) {
		return NewCoADisassociator(cfg.CoAAddr, cfg.CoASecret)
	}
	return NewHostapdDisassociator(runner)
}
