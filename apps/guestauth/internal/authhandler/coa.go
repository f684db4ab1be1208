package authhandler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
	"layeh.com/radius"
	"layeh.com/radius/rfc2865"
)

// CoADisassociator はRFC 5176 Disconnect-RequestでNASに切断を要求する。
// 外部APなどhostapd_cliを直接呼べない環境で使う。
type CoADisassociator struct {
	addr    string
	secret  []byte
	timeout time.Duration
}

// NewCoADisassociator は新しいCoADisassociatorを生成する。
func NewCoADisassociator(addr, secret string) *CoADisassociator {
	return &CoADisassociator{
		addr:    addr,
		secret:  []byte(secret),
		timeout: config.CoATimeout,
	}
}

// Disassociate はCalling-Station-Idを指定したDisconnect-Requestを送信する。
func (d *CoADisassociator) Disassociate(deviceID string) string {
	if err := d.disconnect(deviceID); err != nil {
		slog.Warn("disconnect request failed",
			logging.WithEventID("COA_DISCONNECT_ERR"),
			slog.String("coa_addr", d.addr),
			logging.WithError(err),
		)
		return msgDisassociateFail
	}
	return msgDisassociated
}

func (d *CoADisassociator) disconnect(deviceID string) error {
	packet := radius.New(radius.CodeDisconnectRequest, d.secret)
	// NASはハイフン区切り大文字を期待することが多い
	stationID := strings.ToUpper(strings.ReplaceAll(deviceID, ":", "-"))
	if err := rfc2865.CallingStationID_SetString(packet, stationID); err != nil {
		return fmt.Errorf("set Calling-Station-Id: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	resp, err := radius.Exchange(ctx, packet, d.addr)
	if err != nil {
		return err
	}
	if resp.Code != radius.CodeDisconnectACK {
		return fmt.Errorf("%w: code=%v", apperr.ErrDisconnectNak, resp.Code)
	}
	return nil
}
