// Package runner evaluates a list of checks against a set of connectors.
package runner

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/airbytehq/connectors-qa/internal/connector"
)

// Resolver turns a connector technical name into a loaded connector.
type Resolver interface {
	Resolve(name string) (*connector.Connector, error)
}

// ProgressListener receives progress updates
type ProgressListener func(event ProgressEvent)

// EventType represents the type of progress event
type EventType string

// EventType constants
const (
	EventRunStart          EventType = "run_start"
	EventConnectorStart    EventType = "connector_start"
	EventCheckComplete     EventType = "check_complete"
	EventConnectorComplete EventType = "connector_complete"
	EventRunComplete       EventType = "run_complete"
)

// ProgressEvent represents a progress update
type ProgressEvent struct {
	EventType       EventType
	Connector       string
	ConnectorNum    int
	TotalConnectors int
	// Result is set for EventCheckComplete.
	Result *checks.CheckResult
}

// Runner evaluates checks connector by connector, in registry order.
type Runner struct {
	resolver  Resolver
	registry  []checks.Check
	listeners []ProgressListener
}

// New creates a runner over a fixed registry.
func New(resolver Resolver, registry []checks.Check, listeners ...ProgressListener) *Runner {
	return &Runner{
		resolver:  resolver,
		registry:  slices.Clone(registry),
		listeners: listeners,
	}
}

// OnProgress registers a progress listener
func (r *Runner) OnProgress(listener ProgressListener) {
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	for _, listener := range r.listeners {
		listener(event)
	}
}

// Run resolves every named connector, then evaluates every check against each
// of them. Resolution errors and operational check errors abort the run.
func (r *Runner) Run(names []string) (*Summary, error) {
	names = uniqueNames(names)
	if len(names) == 0 {
		return nil, fmt.Errorf("no connector to check")
	}

	connectors := make([]*connector.Connector, 0, len(names))
	for _, name := range names {
		c, err := r.resolver.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("resolving connector %s: %w", name, err)
		}
		connectors = append(connectors, c)
	}

	summary := &Summary{StartedAt: time.Now()}
	for _, c := range connectors {
		summary.Connectors = append(summary.Connectors, c.TechnicalName)
	}
	r.notifyProgress(ProgressEvent{EventType: EventRunStart, TotalConnectors: len(connectors)})

	for i, c := range connectors {
		r.notifyProgress(ProgressEvent{
			EventType:       EventConnectorStart,
			Connector:       c.TechnicalName,
			ConnectorNum:    i + 1,
			TotalConnectors: len(connectors),
		})
		for _, check := range r.registry {
			slog.Debug("running check", "connector", c.TechnicalName, "check", check.Name())
			result, err := checks.Run(check, c)
			if err != nil {
				return nil, fmt.Errorf("running %q on %s: %w", check.Name(), c.TechnicalName, err)
			}
			summary.add(result)
			r.notifyProgress(ProgressEvent{
				EventType:       EventCheckComplete,
				Connector:       c.TechnicalName,
				ConnectorNum:    i + 1,
				TotalConnectors: len(connectors),
				Result:          result,
			})
		}
		r.notifyProgress(ProgressEvent{
			EventType:       EventConnectorComplete,
			Connector:       c.TechnicalName,
			ConnectorNum:    i + 1,
			TotalConnectors: len(connectors),
		})
	}

	summary.Duration = time.Since(summary.StartedAt)
	r.notifyProgress(ProgressEvent{EventType: EventRunComplete, TotalConnectors: len(connectors)})
	return summary, nil
}

// uniqueNames normalizes names and drops duplicates, keeping the first
// occurrence.
func uniqueNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = connector.NormalizeName(n)
		if n == "" || slices.Contains(out, n) {
			continue
		}
		out = append(out, n)
	}
	return out
}
