package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/boardpulse/internal/logger"
)

const prompt = "boardpulse> "

// shell reads command lines until exit, EOF or process cancellation.
// Each line runs on a fresh command tree so flag values never leak between
// lines. An interrupt cancels the running line, or prints a hint at the
// prompt.
type shell struct {
	env *env
	in  io.Reader
	out io.Writer
}

func (s *shell) run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(s.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	restore := s.env.intr.set(func() {
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, hintStyle.Render("type exit to leave the shell"))
		fmt.Fprint(s.out, prompt)
	})
	defer restore()

	fmt.Fprintln(s.out, titleStyle.Render("boardpulse interactive shell"))
	fmt.Fprintln(s.out, dimStyle.Render("type help for commands, exit to quit"))

	for {
		fmt.Fprint(s.out, prompt)
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				return nil
			}
			line = l
		}

		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch strings.ToLower(args[0]) {
		case "exit", "quit", "q":
			fmt.Fprintln(s.out, "bye")
			return nil
		}

		s.exec(ctx, args)
	}
}

// exec runs one line. Errors are reported and the shell keeps going.
func (s *shell) exec(ctx context.Context, args []string) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	restore := s.env.intr.set(cancel)
	defer restore()

	child := *s.env
	child.interactive = true
	root := newRootCommand(&child)
	root.SetArgs(args)

	logger.L().Debug().Strs("args", args).Msg("shell line")
	Report(s.env.io.Err, root.ExecuteContext(ctx))
}
