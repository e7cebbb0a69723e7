package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/hyquery/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path, .toml or .yaml (optional, defaults to ~/.config/hyquery/config.toml)")
	pollSeconds := flag.Int("poll", 0, "enable polling every N seconds (optional)")
	once := flag.Bool("once", false, "fetch once, print the result as JSON and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, Once: *once}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "hyquery: %v\n", err)
		return 1
	}
	return 0
}
