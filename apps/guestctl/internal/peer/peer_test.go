package peer

import (
	"errors"
	"net"
	"testing"
	"time"
)

func TestConsoleRoundTrip(t *testing.T) {
	console, err := Listen("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}

	received := make(chan string, 1)
	served := make(chan error, 1)
	go func() {
		served <- console.Serve(func(text string) { received <- text })
	}()

	if err := console.Send("LIST"); !errors.Is(err, ErrNoPeer) {
		t.Errorf("Send() before contact error = %v, want ErrNoPeer", err)
	}

	// guestauth役
	guest, err := net.DialUDP("udp", nil, console.LocalAddr().(*net.UDPAddr))
	if err != nil {
		t.Fatalf("DialUDP() error = %v", err)
	}
	defer guest.Close()

	if _, err := guest.Write([]byte("Guest Auth module started.\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	select {
	case got := <-received:
		if got != "Guest Auth module started.\n" {
			t.Errorf("received %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("message not received")
	}

	if err := console.Send("OK 3 times"); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	buf := make([]byte, 128)
	_ = guest.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err := guest.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := string(buf[:n]); got != "OK 3 times" {
		t.Errorf("guest received %q", got)
	}

	if err := console.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after Close")
	}
}

func TestListenInvalidAddr(t *testing.T) {
	if _, err := Listen("not an address"); err == nil {
		t.Error("Listen() expected error")
	}
}
