package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aidanlsb/datekit/internal/dates"
	"github.com/aidanlsb/datekit/internal/schedule"
	"github.com/aidanlsb/datekit/internal/ui"
)

var atDryRun bool

var atCmd = &cobra.Command{
	Use:   "at <when> [-- command [args...]]",
	Short: "Wait until a date, then run a command",
	Long: `Wait until a date, then run a command.

<when> is any text 'dk parse' accepts. Without a command, dk at just waits and
prints the date when it is reached. An instant in the past fires at once.
Interrupting cancels the wait.`,
	Example: `  dk at "in 10 minutes" -- say "tea is ready"
  dk at "tomorrow 8am" --dry-run`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAt,
}

func runAt(cmd *cobra.Command, args []string) error {
	whenArgs, command := args, []string(nil)
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		whenArgs, command = args[:dash], args[dash:]
	}
	if len(whenArgs) != 1 {
		return handleError(ErrInvalidInput, fmt.Errorf("expected one <when> argument, got %d", len(whenArgs)),
			`Quote multi-word dates: dk at "in 10 minutes" -- cmd`)
	}

	k := getKit()
	r, ok, err := parseArg(k, whenArgs[0])
	if !ok {
		return err
	}

	// Relative text is read against the reference clock; the wait itself
	// always uses the real one.
	if atDryRun {
		delay, err := schedule.Delay(r.Date, dates.FromTime(time.Now()))
		if err != nil {
			return handleError(ErrInvalidDate, err, "")
		}
		if isJSONOutput() {
			outputSuccess(map[string]any{
				"at":       r.Date.String(),
				"delay_ms": delay.Milliseconds(),
				"command":  command,
			}, nil)
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, ui.Date(r.Date.String()))
		fmt.Fprintln(w, ui.Field("in", delay.Round(time.Second).String()))
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var runErr error
	h, err := schedule.Schedule(r.Date, dates.FromTime(time.Now()), func() {
		if len(command) == 0 {
			return
		}
		c := exec.CommandContext(ctx, command[0], command[1:]...)
		c.Stdin = cmd.InOrStdin()
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
		runErr = c.Run()
	})
	if err != nil {
		return handleError(ErrInvalidDate, err, "")
	}
	logger.Debug("scheduled",
		zap.String("at", r.Date.String()),
		zap.Duration("delay", h.Delay()),
		zap.Strings("command", command),
	)

	select {
	case <-h.Done():
	case <-ctx.Done():
		if h.Stop() {
			return handleError(ErrInternal, fmt.Errorf("cancelled before %s", r.Date), "")
		}
		<-h.Done()
	}

	if runErr != nil {
		return handleError(ErrCommandFailed, runErr, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]any{"at": r.Date.String(), "command": command}, nil)
		return nil
	}
	if len(command) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Date(r.Date.String()))
	}
	return nil
}

func init() {
	atCmd.Flags().BoolVar(&atDryRun, "dry-run", false, "Print the instant and the wait without running anything")
	rootCmd.AddCommand(atCmd)
}
