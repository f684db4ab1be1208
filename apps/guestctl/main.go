// guestctl - guestauthのudpチャット用オペレーターコンソール
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/oyaguma3/guestauth-radius-poc/apps/guestctl/internal/config"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestctl/internal/peer"
	"github.com/oyaguma3/guestauth-radius-poc/apps/guestctl/internal/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	console, err := peer.Listen(cfg.ListenAddr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer console.Close()

	app := ui.NewApp(cfg.MaxLines, cfg.HistorySize)
	app.GetStatusBar().SetListenAddr(console.LocalAddr().String())

	app.SetOnSubmit(func(text string) {
		if err := console.Send(text); err != nil {
			if errors.Is(err, peer.ErrNoPeer) {
				app.GetStatusBar().ShowError("Waiting for guestauth to connect")
				return
			}
			app.GetStatusBar().ShowError(err.Error())
			return
		}
		app.AppendOutgoing(text)
	})

	go func() {
		err := console.Serve(func(text string) {
			from := ""
			if p := console.Peer(); p != nil {
				from = p.String()
			}
			app.AppendIncoming(from, text)
		})
		if err != nil {
			app.Stop()
			log.Printf("receive error: %v", err)
		}
	}()

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
