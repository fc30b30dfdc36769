// Command fetch sends one HTTP request and prints the response.
//
//	fetch [get|post] [url] [--print-body]
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/cybergodev/fetch"
	"github.com/cybergodev/fetch/internal/cli"
	"github.com/cybergodev/fetch/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := logging.New(stderr, slog.LevelInfo)

	spec := cli.ParseArgs(args)
	if spec.URLDefaulted {
		fmt.Fprintln(stderr, "No CLI URL provided, using default.")
	}

	cfg := fetch.CLIConfig()
	cfg.Logger = logger

	client, err := fetch.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "fetch: %v\n", err)
		return 1
	}
	defer client.Close()

	if err := cli.NewDispatcher(client, stdout, logger).Dispatch(ctx, spec); err != nil {
		fmt.Fprintf(stderr, "fetch: %v\n", err)
		return 1
	}
	return 0
}
