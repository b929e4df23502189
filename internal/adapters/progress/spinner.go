package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/nftmarket/nftm/internal/domain/config"
	"github.com/nftmarket/nftm/internal/usecase"
)

// SpinnerSink shows a spinner while a stage is running and a check mark with its duration once it ends
type SpinnerSink struct {
	out          io.Writer
	spinner      *spinner.Spinner
	currentStage string
	stageStart   time.Time
}

// NewSpinnerSink creates a spinner-based progress sink writing to out
func NewSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{out: out, spinner: s}
}

// NewProgressSink picks the sink for the current run. JSON output stays machine readable.
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.JSON {
		return usecase.NopProgress{}
	}
	return NewSpinnerSink(os.Stdout)
}

// OnProgress starts or finishes a stage
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Spinner {
		if r.currentStage != event.Stage {
			r.currentStage = event.Stage
			r.stageStart = time.Now()
		}
		r.spinner.Suffix = " " + event.Message
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if r.currentStage != "" && r.currentStage == event.Stage {
		elapsed := time.Since(r.stageStart).Round(time.Millisecond)
		fmt.Fprintf(r.out, "%s %s %s\n",
			color.New(color.FgGreen).Sprint("✓"),
			event.Stage,
			color.New(color.FgWhite, color.Faint).Sprintf("(%s)", elapsed))
		r.currentStage = ""
	}
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.print(color.New(color.FgRed), message)
}

func (r *SpinnerSink) print(c *color.Color, message string) {
	// Stop spinner temporarily
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
