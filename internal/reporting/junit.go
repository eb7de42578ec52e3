package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/airbytehq/connectors-qa/internal/checks"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one connector.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one check.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure represents a failed check.
type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a check that does not apply to the connector.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a report to JUnit XML format, one suite per
// connector.
func ConvertToJUnit(report *Report) *JUnitTestSuites {
	suites := &JUnitTestSuites{
		Name:     "connectors-qa",
		Tests:    report.Counts.Total,
		Failures: report.Counts.Failed,
		Skipped:  report.Counts.Skipped,
		Time:     float64(report.DurationMs) / 1000.0,
	}

	for _, cr := range report.Connectors {
		suite := JUnitTestSuite{
			Name:      cr.Name,
			Tests:     cr.Counts.Total,
			Failures:  cr.Counts.Failed,
			Skipped:   cr.Counts.Skipped,
			Timestamp: report.Timestamp.Format(time.RFC3339),
			Properties: []JUnitProperty{
				{Name: "run_id", Value: report.RunID},
			},
		}
		for _, r := range cr.Results {
			suite.TestCases = append(suite.TestCases, convertResult(cr.Name, r))
		}
		suites.TestSuites = append(suites.TestSuites, suite)
	}
	return suites
}

func convertResult(connectorName string, r ResultReport) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      r.Check,
		Classname: connectorName + "." + r.Category,
	}
	switch r.Status {
	case string(checks.StatusFailed):
		tc.Failure = &JUnitFailure{
			Message: firstLine(r.Message),
			Type:    "CheckFailure",
			Body:    r.Message,
		}
	case string(checks.StatusSkipped):
		tc.Skipped = &JUnitSkipped{Message: r.Message}
	}
	return tc
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(report *Report, path string) error {
	data, err := xml.MarshalIndent(ConvertToJUnit(report), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, output, 0644); err != nil {
		return fmt.Errorf("writing JUnit XML: %w", err)
	}
	return nil
}
