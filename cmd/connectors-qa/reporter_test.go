package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/airbytehq/connectors-qa/internal/runner"
	"github.com/stretchr/testify/assert"
)

func TestTextReporter_NoColorOnBuffer(t *testing.T) {
	var buf bytes.Buffer
	r := newTextReporter(&buf)
	assert.False(t, r.colored)

	r.onProgress(runner.ProgressEvent{
		EventType: runner.EventCheckComplete,
		Result: &checks.CheckResult{
			Check:     &checks.CheckConnectorIconIsAvailable{},
			Connector: "source-fauna",
			Status:    checks.StatusFailed,
			Message:   "Icon file icon.svg is missing",
		},
	})
	r.onProgress(runner.ProgressEvent{EventType: runner.EventRunComplete})

	assert.Equal(t, "source-fauna - ❌ - Failed - Connectors must have an icon: Icon file icon.svg is missing.\n", buf.String())
}

func TestTextReporter_Summary(t *testing.T) {
	icon := &checks.CheckConnectorIconIsAvailable{}
	summary := &runner.Summary{
		Duration:   250 * time.Millisecond,
		Connectors: []string{"source-fauna", "destination-s3"},
		Results: []*checks.CheckResult{
			{Check: icon, Connector: "source-fauna", Status: checks.StatusPassed},
			{Check: icon, Connector: "destination-s3", Status: checks.StatusFailed},
		},
		Passed: 1,
		Failed: 1,
	}

	var buf bytes.Buffer
	newTextReporter(&buf).printSummary(summary)
	out := buf.String()

	lines := strings.Split(out, "\n")
	var fauna, s3 string
	for _, l := range lines {
		switch {
		case strings.Contains(l, "source-fauna"):
			fauna = l
		case strings.Contains(l, "destination-s3"):
			s3 = l
		}
	}
	assert.True(t, strings.HasPrefix(fauna, "✅ source-fauna"))
	assert.True(t, strings.HasPrefix(s3, "❌ destination-s3"))
	assert.Contains(t, out, "2 checks: 1 passed, 1 failed, 0 skipped in 250ms")
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "✅ x ", padRight("✅ x", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short", 10))
	assert.Equal(t, "source-go…", truncateName("source-google-sheets", 10))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "250ms", formatDuration(250*time.Millisecond))
	assert.Equal(t, "1.5s", formatDuration(1500*time.Millisecond))
}
