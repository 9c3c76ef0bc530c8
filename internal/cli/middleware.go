package cli

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/boardpulse/internal/domain/dto"
	"github.com/guttosm/boardpulse/internal/logger"
	"github.com/spf13/cobra"
)

type commandIDKey struct{}

// CommandID returns the id instrument attached to ctx, if any.
func CommandID(ctx context.Context) string {
	id, _ := ctx.Value(commandIDKey{}).(string)
	return id
}

type runFunc func(cmd *cobra.Command, args []string) error

// instrument wraps a command body.
//
// Behavior:
//   - Generates a command id (UUID v4) and stores it in the command context.
//   - Recovers panics, logs the stack and returns them as an error.
//   - Logs the command name, outcome and latency in ms.
func instrument(name string, fn runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) (err error) {
		id := uuid.NewString()
		start := time.Now()
		cmd.SetContext(context.WithValue(cmd.Context(), commandIDKey{}, id))

		defer func() {
			if r := recover(); r != nil {
				logger.L().Error().
					Str("command_id", id).
					Str("panic", fmt.Sprintf("%v", r)).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				err = dto.NewErrorResponse("internal error", fmt.Errorf("%v", r))
			}

			ev := logger.L().Info()
			if err != nil && !errors.Is(err, context.Canceled) {
				ev = logger.L().Warn().Err(err)
			}
			ev.Str("command_id", id).
				Str("command", name).
				Strs("args", args).
				Int64("latency_ms", time.Since(start).Milliseconds()).
				Msg("command")
		}()

		return fn(cmd, args)
	}
}
