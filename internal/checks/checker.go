// Package checks provides the Check interface, the result model and the
// connector QA checks run by connectors-qa.
package checks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/airbytehq/connectors-qa/internal/connector"
)

// CheckResult holds the outcome of one check evaluated against one connector.
type CheckResult struct {
	// Check is the check that produced the result.
	Check Check
	// Connector is the technical name of the evaluated connector.
	Connector string
	// Status is passed, failed or skipped.
	Status Status
	// Message explains the outcome; failures always say what to fix.
	Message string
}

// String renders the result the way the run command prints it.
func (r *CheckResult) String() string {
	return fmt.Sprintf("%s - %s - %s - %s: %s.", r.Connector, r.Status.Emoji(), r.Status, r.Check.Name(), r.Message)
}

// Check is a single connector QA rule. Implementations are stateless: the
// connector under evaluation is always passed explicitly.
type Check interface {
	// Name is the unique, human-readable check name.
	Name() string
	// Description documents the rule. It may contain markdown.
	Description() string
	Category() Category
	// AppliesTo lists the connector languages the check runs against.
	AppliesTo() []connector.Language
	// Required is documentation-only.
	Required() bool
	// Check evaluates the rule. It returns an error only for operational
	// problems such as a missing environment variable, never for a connector
	// that fails the rule.
	Check(c *connector.Connector) (*CheckResult, error)
}

// Applies reports whether check runs against connectors written in lang.
func Applies(check Check, lang connector.Language) bool {
	return slices.Contains(check.AppliesTo(), lang)
}

// Run evaluates check against c. Connectors whose language the check does not
// apply to get a skipped result without the check being evaluated.
func Run(check Check, c *connector.Connector) (*CheckResult, error) {
	if !Applies(check, c.Language) {
		return skip(check, c, fmt.Sprintf("Check does not apply to %s connectors", c.Language)), nil
	}
	result, err := check.Check(c)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("check %q returned no result for %s", check.Name(), c.TechnicalName)
	}
	return result, nil
}

// LanguageNames joins the languages a check applies to for display.
func LanguageNames(check Check) string {
	names := make([]string, 0, len(check.AppliesTo()))
	for _, l := range check.AppliesTo() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}

func skip(check Check, c *connector.Connector, reason string) *CheckResult {
	return &CheckResult{Check: check, Connector: c.TechnicalName, Status: StatusSkipped, Message: reason}
}

func newResult(check Check, c *connector.Connector, passed bool, message string) *CheckResult {
	status := StatusFailed
	if passed {
		status = StatusPassed
	}
	return &CheckResult{Check: check, Connector: c.TechnicalName, Status: status, Message: message}
}

func pass(check Check, c *connector.Connector, message string) *CheckResult {
	return newResult(check, c, true, message)
}

func fail(check Check, c *connector.Connector, message string) *CheckResult {
	return newResult(check, c, false, message)
}

// pythonLanguages are the languages packaged with Poetry.
var pythonLanguages = []connector.Language{connector.LanguagePython, connector.LanguageLowCode}

func isPythonLike(c *connector.Connector) bool {
	return slices.Contains(pythonLanguages, c.Language)
}

// metadataMissing describes why metadata is unavailable.
func metadataMissing(c *connector.Connector) string {
	if c.MetadataError != nil {
		return fmt.Sprintf("%s file could not be read: %v", connector.MetadataFileName, c.MetadataError)
	}
	return fmt.Sprintf("%s file is missing", connector.MetadataFileName)
}
