package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestauth/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/apperr"
	"github.com/oyaguma3/guestauth-radius-poc/pkg/logging"
)

// UDPTransport はUDPデータグラムでオペレーターコンソール（guestctl）と通信する。
// 送信先はCHAT_UDP_PEER、受信は自身のエフェメラルポートで行う。
type UDPTransport struct {
	mu   sync.RWMutex
	hook func(string)

	conn *net.UDPConn
	peer *net.UDPAddr

	recvTimeout time.Duration
	quit        chan struct{}
	done        chan struct{}
}

// NewUDPTransport は新しいUDPTransportを生成する。
func NewUDPTransport() *UDPTransport {
	return &UDPTransport{
		hook:        func(string) {},
		recvTimeout: config.UDPReceiveTimeout,
	}
}

func (t *UDPTransport) RegisterReceive(hook func(string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hook = hook
}

// Startup はソケットを開き、受信ループを開始する。
func (t *UDPTransport) Startup(cfg *config.Config) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.conn != nil {
		return nil
	}

	peer, err := net.ResolveUDPAddr("udp", cfg.ChatUDPPeer)
	if err != nil {
		return fmt.Errorf("resolve peer %q: %w", cfg.ChatUDPPeer, err)
	}
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return fmt.Errorf("listen udp: %w", err)
	}

	t.conn = conn
	t.peer = peer
	t.quit = make(chan struct{})
	t.done = make(chan struct{})
	go t.receiveLoop(conn, peer)

	slog.Info("udp chat started",
		logging.WithEventID("CHAT_UDP_START"),
		slog.String("local_addr", conn.LocalAddr().String()),
		slog.String("peer", peer.String()),
	)
	return nil
}

// LocalAddr は受信に使うローカルアドレスを返す。未起動の場合はnil。
func (t *UDPTransport) LocalAddr() net.Addr {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.conn == nil {
		return nil
	}
	return t.conn.LocalAddr()
}

// SendMessage はメッセージ末尾に改行を付けて送信する。
func (t *UDPTransport) SendMessage(text string) {
	t.mu.RLock()
	conn, peer := t.conn, t.peer
	t.mu.RUnlock()

	if conn == nil {
		slog.Warn("udp chat send skipped",
			logging.WithEventID("CHAT_SEND_ERR"),
			logging.WithError(apperr.ErrChatNotStarted),
		)
		return
	}
	if _, err := conn.WriteToUDP([]byte(text+"\n"), peer); err != nil {
		slog.Warn("udp chat send failed",
			logging.WithEventID("CHAT_SEND_ERR"),
			logging.WithError(fmt.Errorf("%w: %v", apperr.ErrChatSend, err)),
		)
	}
}

// receiveLoop は受信タイムアウトごとに停止要求を確認しながら受信する。
// CHAT_UDP_PEER以外から届いたデータグラムは破棄する。
func (t *UDPTransport) receiveLoop(conn udpReader, peer *net.UDPAddr) {
	defer close(t.done)
	buf := make([]byte, config.UDPMaxDatagram)

	for {
		select {
		case <-t.quit:
			return
		default:
		}

		_ = conn.SetReadDeadline(time.Now().Add(t.recvTimeout))
		n, from, err := conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			slog.Warn("udp chat receive failed",
				logging.WithEventID("CHAT_RECV_ERR"),
				logging.WithError(err),
			)
			// 恒常的なエラーで空回りしないよう受信タイムアウト分待つ
			select {
			case <-t.quit:
				return
			case <-time.After(t.recvTimeout):
			}
			continue
		}
		if !samePeer(from, peer) {
			slog.Warn("udp chat datagram from unknown sender dropped",
				logging.WithEventID("CHAT_RECV_REJECT"),
				logging.WithSrcIP(from.String()),
			)
			continue
		}
		if n == 0 {
			continue
		}

		t.mu.RLock()
		hook := t.hook
		t.mu.RUnlock()
		hook(string(buf[:n]))
	}
}

// udpReader は受信ループが使う*net.UDPConnのメソッド。
type udpReader interface {
	SetReadDeadline(t time.Time) error
	ReadFromUDP(b []byte) (int, *net.UDPAddr, error)
}

// samePeer は送信元がCHAT_UDP_PEERかを判定する。
// ピアのIPが未指定（0.0.0.0等）の場合はループバックからの同一ポートのみ受け付ける。
func samePeer(from, peer *net.UDPAddr) bool {
	if from == nil || from.Port != peer.Port {
		return false
	}
	if peer.IP == nil || peer.IP.IsUnspecified() {
		return from.IP.IsLoopback()
	}
	return from.IP.Equal(peer.IP)
}

// Shutdown は受信ループの終了を待ってソケットを閉じる。
func (t *UDPTransport) Shutdown() {
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if conn == nil {
		return
	}
	close(t.quit)
	<-t.done
	_ = conn.Close()
}
