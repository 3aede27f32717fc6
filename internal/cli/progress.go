package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// progressOut receives progress lines; never stdout, which may carry JSON.
var progressOut io.Writer = os.Stderr

type progressStep struct {
	label   string
	started time.Time
}

// startProgress prints label and returns a step to finish it. It returns
// nil when progress output is disabled; a nil step ignores every call.
func startProgress(label string) *progressStep {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(progressOut, "%s... ", label)
	return &progressStep{label: label, started: time.Now()}
}

// Done finishes the step. Notes are appended after the elapsed time.
func (p *progressStep) Done(notes ...string) {
	if p == nil {
		return
	}
	parts := append([]string{formatDuration(time.Since(p.started))}, notes...)
	fmt.Fprintf(progressOut, "done (%s)\n", strings.Join(parts, ", "))
}

func (p *progressStep) Fail(err error) {
	if p == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(progressOut, "%s: %v\n", colorize("failed", colorRed), err)
		return
	}
	fmt.Fprintln(progressOut, colorize("failed", colorRed))
}

func progressEnabled() bool {
	if noProgress || IsJSONOutput() || IsJSONLOutput() {
		return false
	}
	for _, env := range []string{"POSTING_NO_PROGRESS", "NO_PROGRESS"} {
		if _, ok := os.LookupEnv(env); ok {
			return false
		}
	}
	return hasTTY()
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.String()
	case d < time.Second:
		return d.Round(10 * time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}
