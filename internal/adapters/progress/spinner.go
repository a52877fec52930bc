package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/deri-protocol/deri-deploy/internal/domain/config"
	"github.com/deri-protocol/deri-deploy/internal/usecase"
	"github.com/fatih/color"
)

// SpinnerSink shows a spinner on stderr while a stage runs and prints
// the elapsed time of each finished stage.
type SpinnerSink struct {
	spinner      *spinner.Spinner
	out          io.Writer
	currentStage string
	stageStart   time.Time
}

// NewSpinnerSink creates a new spinner-based progress sink
func NewSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.currentStage {
		r.completeCurrentStage()
		r.currentStage = event.Stage
		r.stageStart = time.Now()
	}

	if event.Spinner {
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.printPaused(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.printPaused(color.New(color.FgRed), message)
}

func (r *SpinnerSink) printPaused(c *color.Color, message string) {
	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	_, _ = c.Fprintln(r.out, message)

	// Restart spinner if it was active
	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage stops the spinner and reports how long the stage took
func (r *SpinnerSink) completeCurrentStage() {
	if r.currentStage == "" || r.currentStage == "completed" {
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
	}
	elapsed := time.Since(r.stageStart).Round(time.Millisecond)
	_, _ = fmt.Fprintf(r.out, "%s %s %s\n",
		color.GreenString("✓"),
		r.currentStage,
		color.New(color.Faint).Sprintf("(%s)", elapsed))
}

// ProvideProgressSink picks the spinner for interactive text output and
// the no-op sink otherwise
func ProvideProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.JSON {
		return NewNopSink()
	}
	return NewSpinnerSink(os.Stderr)
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
