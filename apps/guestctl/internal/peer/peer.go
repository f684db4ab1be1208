// Package peer はguestauthのudpチャットと通信するUDPエンドポイントを提供する。
package peer

import (
	"errors"
	"fmt"
	"net"
	"sync"
)

// maxDatagram はguestauthの応答1件の上限。LIST応答が長くなるため大きめに取る。
const maxDatagram = 64 * 1024

// ErrNoPeer はguestauthからまだ受信していない場合のエラー。
var ErrNoPeer = errors.New("guestauth has not contacted this console yet")

// Console はguestauthからのメッセージを受信し、最後の送信元へコマンドを返す。
type Console struct {
	conn *net.UDPConn

	mu   sync.Mutex
	last *net.UDPAddr
}

// Listen は指定アドレスで待ち受けるConsoleを生成する。
func Listen(addr string) (*Console, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("listen %q: %w", addr, err)
	}
	return &Console{conn: conn}, nil
}

// LocalAddr は待ち受けアドレスを返す。
func (c *Console) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// Peer は最後にメッセージを送ってきたguestauthのアドレスを返す。
func (c *Console) Peer() *net.UDPAddr {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Serve はCloseされるまで受信し、onMessageを呼び出す。
func (c *Console) Serve(onMessage func(text string)) error {
	buf := make([]byte, maxDatagram)
	for {
		n, from, err := c.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		c.mu.Lock()
		c.last = from
		c.mu.Unlock()

		onMessage(string(buf[:n]))
	}
}

// Send はコマンドを最後の送信元へ送る。
func (c *Console) Send(text string) error {
	peer := c.Peer()
	if peer == nil {
		return ErrNoPeer
	}
	if _, err := c.conn.WriteToUDP([]byte(text), peer); err != nil {
		return fmt.Errorf("send to %s: %w", peer, err)
	}
	return nil
}

// Close は待ち受けを終了する。
func (c *Console) Close() error {
	return c.conn.Close()
}
