package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hiroki-koketsu/taskmate/internal/client"
	"github.com/hiroki-koketsu/taskmate/internal/config"
	"github.com/hiroki-koketsu/taskmate/internal/session"
	"github.com/hiroki-koketsu/taskmate/internal/tui"
)

func main() {
	cfg := config.Load()

	apiURL := flag.String("api", cfg.APIBaseURL, "base URL of the task store")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := session.New(client.New(*apiURL))

	if err := tui.Run(ctx, s); err != nil {
		fmt.Fprintf(os.Stderr, "taskmate: %v\n", err)
		os.Exit(1)
	}
}
