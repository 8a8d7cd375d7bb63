package command

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/Iron-Ham/scoreboard/internal/match"
)

// SummaryFunc renders a summary to w.
type SummaryFunc func(w io.Writer, snaps []match.Snapshot) error

// Stats counts what a Runner did.
type Stats struct {
	Lines    int // lines read, including blanks and comments
	Applied  int // commands that succeeded
	Rejected int // commands that failed to parse or were rejected by the board
}

// Runner feeds lines from a reader through an Executor, writing
// confirmations and summaries to out and rejections to errOut.
type Runner struct {
	exec        *Executor
	out         io.Writer
	errOut      io.Writer
	render      SummaryFunc
	stopOnError bool
	echo        bool
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithErrorOutput sends rejection messages to w instead of out.
func WithErrorOutput(w io.Writer) RunnerOption {
	return func(r *Runner) { r.errOut = w }
}

// WithRenderer sets how summary commands are printed.
func WithRenderer(fn SummaryFunc) RunnerOption {
	return func(r *Runner) {
		if fn != nil {
			r.render = fn
		}
	}
}

// WithStopOnError makes Run return at the first rejected line.
func WithStopOnError(stop bool) RunnerOption {
	return func(r *Runner) { r.stopOnError = stop }
}

// WithEcho prints each command before its result.
func WithEcho(echo bool) RunnerOption {
	return func(r *Runner) { r.echo = echo }
}

// NewRunner creates a Runner over exec.
func NewRunner(exec *Executor, out io.Writer, opts ...RunnerOption) *Runner {
	r := &Runner{
		exec:   exec,
		out:    out,
		errOut: out,
		render: plainSummary,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every line of in until EOF, a quit command or ctx is done.
// Rejections are reported as "line N: message" and, unless stop-on-error
// is set, do not end the run.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Stats, error) {
	var stats Stats
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		line := scanner.Text()

		c, err := Parse(line)
		if err == nil && c.Verb == VerbNone {
			continue
		}
		if r.echo && err == nil {
			fmt.Fprintf(r.out, "> %s\n", c)
		}

		var res Result
		if err == nil {
			res, err = r.exec.Execute(c)
		}
		if err != nil {
			stats.Rejected++
			fmt.Fprintf(r.errOut, "line %d: %s\n", stats.Lines, errors.UserMessage(err))
			if r.stopOnError {
				return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
			}
			continue
		}

		stats.Applied++
		if err := r.write(res); err != nil {
			return stats, err
		}
		if res.Quit {
			return stats, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read commands: %w", err)
	}
	return stats, nil
}

func (r *Runner) write(res Result) error {
	if res.Message != "" {
		fmt.Fprintln(r.out, res.Message)
	}
	if res.Help != "" {
		fmt.Fprint(r.out, res.Help)
	}
	if res.ShowSummary {
		return r.render(r.out, res.Summary)
	}
	return nil
}

func plainSummary(w io.Writer, snaps []match.Snapshot) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(w, "No matches in progress.")
		return err
	}
	for i, s := range snaps {
		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, s); err != nil {
			return err
		}
	}
	return nil
}
