package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gems/internal/games/gems"
	"github.com/vovakirdan/tui-gems/internal/platform/ws"
)

var (
	flagWebAddr      string
	flagMaxBoardSide int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the websocket server",
	Long: `Start an HTTP server exposing the match-3 engine over a websocket.

Clients connect to /ws and exchange JSON messages, one game per connection:
  {"type":"new","seed":42,"width":8,"height":8,"kinds":6}
  {"type":"swap","a":{"row":0,"col":0},"b":{"row":0,"col":1}}
  {"type":"hint"}

The server answers with "board", "result", "hint" or "error" messages.
GET /healthz reports the number of open connections.

Examples:
  gems web
  gems web --addr :9000 --max-board 12`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ws.DefaultConfig().Address, "HTTP listen address (host:port)")
	webCmd.Flags().IntVar(&flagMaxBoardSide, "max-board", ws.DefaultConfig().MaxBoardSide, "Largest board width or height a client may ask for")
}

func runWeb(_ *cobra.Command, _ []string) {
	cfg := ws.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.MaxBoardSide = flagMaxBoardSide
	cfg.Game = gems.Config()

	server, err := ws.NewServer(cfg, logger)
	if err != nil {
		fatal("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting gems websocket server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		fatal("server: %v", err)
	}
}
