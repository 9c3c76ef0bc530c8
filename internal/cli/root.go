// Package cli exposes the ladder engines as cobra commands and an
// interactive shell.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/guttosm/boardpulse/internal/domain/dto"
	"github.com/guttosm/boardpulse/internal/service"
	"github.com/guttosm/boardpulse/internal/storage"
	"github.com/spf13/cobra"
)

// Services bundles the engines and display defaults the commands use.
type Services struct {
	Query    service.QueryService
	Search   service.SearchService
	Stats    service.StatsService
	Trend    service.TrendService
	Export   service.ExportService
	Sessions service.SessionService

	DisplayLimit int
	TrendDays    int
}

// IO carries the process streams and the interrupt source.
type IO struct {
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	Signals <-chan os.Signal
}

// env is shared by every command built for one process.
type env struct {
	svc         *Services
	io          IO
	intr        *interrupts
	interactive bool
}

// interrupts routes the process interrupt to whoever currently owns it:
// the running command's cancel func, or the shell prompt.
type interrupts struct {
	mu sync.Mutex
	fn func()
}

// set installs fn and returns a func restoring the previous handler.
func (i *interrupts) set(fn func()) (restore func()) {
	i.mu.Lock()
	prev := i.fn
	i.fn = fn
	i.mu.Unlock()
	return func() {
		i.mu.Lock()
		i.fn = prev
		i.mu.Unlock()
	}
}

func (i *interrupts) fire() {
	i.mu.Lock()
	fn := i.fn
	i.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Execute runs one command line and returns the process exit code:
// 0 on success or when the user cancelled, 1 on any error.
func Execute(ctx context.Context, svc *Services, stdio IO, args []string) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	e := &env{svc: svc, io: stdio, intr: &interrupts{}}
	e.intr.set(cancel)

	if stdio.Signals != nil {
		go func() {
			for {
				select {
				case <-stdio.Signals:
					e.intr.fire()
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	root := newRootCommand(e)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return Report(stdio.Err, err)
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "boardpulse",
		Short:         "Consecutive limit-up ladder analysis",
		Long:          "Query, search, summarize and export the daily consecutive limit-up ladder.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.SetIn(e.io.In)
	root.SetOut(e.io.Out)
	root.SetErr(e.io.Err)

	root.AddCommand(
		newQueryCommand(e),
		newSearchCommand(e),
		newStatsCommand(e),
		newTrendCommand(e),
		newExportCommand(e),
		newDatesCommand(e),
	)
	if !e.interactive {
		root.AddCommand(newInteractiveCommand(e))
	}
	return root
}

// Report prints err for the user and maps it to an exit code.
func Report(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(w, "operation cancelled")
		return 0
	}

	var missing *storage.MissingDataError
	var resp dto.ErrorResponse
	switch {
	case errors.As(err, &missing):
		fmt.Fprintln(w, errorStyle.Render(dto.NewErrorResponse("ladder data unavailable", err).Error()))
		fmt.Fprintln(w, hintStyle.Render("hint: "+storage.MissingDataHint))
	case errors.As(err, &resp):
		fmt.Fprintln(w, errorStyle.Render(resp.Error()))
	default:
		fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
	}
	return 1
}
