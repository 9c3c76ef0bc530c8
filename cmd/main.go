package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/guttosm/boardpulse/config"
	"github.com/guttosm/boardpulse/internal/app"
	"github.com/guttosm/boardpulse/internal/cli"
	"github.com/guttosm/boardpulse/internal/logger"
)

// notifyInterrupts subscribes to SIGINT and SIGTERM. The returned stop
// func restores default signal handling.
func notifyInterrupts() (<-chan os.Signal, func()) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	return sig, func() { signal.Stop(sig) }
}

// run wires the application and executes one command line, returning the
// process exit code.
func run(ctx context.Context, args []string, stdio cli.IO) int {
	svc, cleanup, err := app.InitializeApp()
	if err != nil {
		logger.L().Error().Err(err).Msg("app init error")
		return cli.Report(stdio.Err, err)
	}
	defer cleanup()

	return cli.Execute(ctx, svc, stdio, args)
}

// main is the entry point of the boardpulse CLI.
//
// Commands:
//   - query <date>:           limit-up stocks of a session, longest streak first.
//   - search <keyword>:       latest match and limit-up history of a stock.
//   - stats:                  distribution summary over an optional window.
//   - trend:                  streak buckets for the most recent sessions.
//   - export <date> <output>: writes a session to .csv, .xlsx or .json.
//   - dates:                  sessions present in the dataset.
//   - interactive:            line-oriented shell over the commands above.
func main() {
	// Load configuration from environment or .env file
	config.LoadConfig()

	logger.Init()

	sig, stop := notifyInterrupts()

	code := run(context.Background(), os.Args[1:], cli.IO{
		In:      os.Stdin,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Signals: sig,
	})
	stop()
	os.Exit(code)
}
