package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/airbytehq/connectors-qa/internal/runner"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// textReporter prints results as they are produced and a summary table at the
// end of the run.
type textReporter struct {
	w       io.Writer
	colored bool
}

func newTextReporter(w io.Writer) *textReporter {
	return &textReporter{w: w, colored: colorEnabled(w)}
}

// colorEnabled reports whether w is a terminal that accepts colours.
func colorEnabled(w io.Writer) bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (r *textReporter) paint(s string, attrs ...color.Attribute) string {
	if !r.colored {
		return s
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

func (r *textReporter) status(s checks.Status) string {
	switch s {
	case checks.StatusPassed:
		return r.paint(string(s), color.FgGreen)
	case checks.StatusFailed:
		return r.paint(string(s), color.FgRed, color.Bold)
	default:
		return r.paint(string(s), color.FgYellow)
	}
}

// onProgress is registered as a runner progress listener.
func (r *textReporter) onProgress(event runner.ProgressEvent) {
	if event.EventType != runner.EventCheckComplete || event.Result == nil {
		return
	}
	res := event.Result
	fmt.Fprintf(r.w, "%s - %s - %s - %s: %s.\n", //nolint:errcheck
		res.Connector, res.Status.Emoji(), r.status(res.Status), res.Check.Name(), res.Message)
}

// printSummary renders one row per connector followed by the totals.
func (r *textReporter) printSummary(summary *runner.Summary) {
	const nameWidth = 40
	headers := []string{"Connector", "Passed", "Failed", "Skipped"}

	fmt.Fprintf(r.w, "\n%s %s %s %s\n%s\n", //nolint:errcheck
		padRight(headers[0], nameWidth), padRight(headers[1], 8), padRight(headers[2], 8), headers[3],
		strings.Repeat("─", nameWidth+3*8+3))

	for _, name := range summary.Connectors {
		var passed, failed, skipped int
		for _, res := range summary.ResultsFor(name) {
			switch res.Status {
			case checks.StatusPassed:
				passed++
			case checks.StatusFailed:
				failed++
			case checks.StatusSkipped:
				skipped++
			}
		}
		marker := checks.StatusPassed.Emoji()
		if failed > 0 {
			marker = checks.StatusFailed.Emoji()
		}
		fmt.Fprintf(r.w, "%s %s %s %d\n", //nolint:errcheck
			padRight(marker+" "+truncateName(name, nameWidth-3), nameWidth),
			padRight(fmt.Sprint(passed), 8), padRight(fmt.Sprint(failed), 8), skipped)
	}

	fmt.Fprintf(r.w, "\n%d checks: %s passed, %s failed, %s skipped in %s\n", //nolint:errcheck
		summary.Total(),
		r.paint(fmt.Sprint(summary.Passed), color.FgGreen),
		r.paint(fmt.Sprint(summary.Failed), color.FgRed),
		r.paint(fmt.Sprint(summary.Skipped), color.FgYellow),
		formatDuration(summary.Duration))
}

// formatDuration formats a duration in a consistent, human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}

// truncateName shortens a name to maxLen runes, replacing the last rune with "…" if needed.
func truncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) <= maxLen {
		return name
	}
	return string(runes[:maxLen-1]) + "…"
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
