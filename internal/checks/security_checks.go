package checks

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/airbytehq/connectors-qa/internal/connector"
)

// PythonConnectorBaseImage is the approved base image repository for Python
// and low-code connectors.
const PythonConnectorBaseImage = "docker.io/airbyte/python-connector-base"

const httpsIgnoreMarker = "# ignore-https-check"

var httpsIgnoredDirectories = map[string]bool{
	".venv":                 true,
	"tests":                 true,
	"unit_tests":            true,
	"integration_tests":     true,
	"build":                 true,
	"source-file":           true,
	".pytest_cache":         true,
	"acceptance_tests_logs": true,
	".hypothesis":           true,
	".ruff_cache":           true,
}

var httpsIgnoredFilePatterns = []string{
	"*Test.java",
	"*.jar",
	"*.pyc",
	"*.gz",
	"*.svg",
	"expected_records.jsonl",
	"expected_records.json",
}

var httpsAllowedURLPrefixes = []string{
	"http://json-schema.org",
	"http://localhost",
}

// commentPrefixes maps a file extension to its line comment marker.
var commentPrefixes = map[string]string{
	".py":   "#",
	".yml":  "#",
	".yaml": "#",
	".java": "//",
	".md":   "<!--",
}

// CheckConnectorUsesHTTPSOnly flags files containing plain http:// URLs.
type CheckConnectorUsesHTTPSOnly struct{}

var _ Check = (*CheckConnectorUsesHTTPSOnly)(nil)

func (*CheckConnectorUsesHTTPSOnly) Name() string { return "Connectors must use HTTPS only" }

func (*CheckConnectorUsesHTTPSOnly) Description() string {
	return "Connectors must use HTTPS only when making requests to external services."
}

func (*CheckConnectorUsesHTTPSOnly) Category() Category { return CategorySecurity }

func (*CheckConnectorUsesHTTPSOnly) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckConnectorUsesHTTPSOnly) Required() bool { return true }

func (ch *CheckConnectorUsesHTTPSOnly) Check(c *connector.Connector) (*CheckResult, error) {
	files, err := filesWithHTTPURLs(c.CodeDirectory)
	if err != nil {
		return fail(ch, c, fmt.Sprintf("Could not scan %s for http:// URLs: %v", c.CodeDirectory, err)), nil
	}
	if len(files) > 0 {
		return fail(ch, c, fmt.Sprintf("The following files have http:// URLs:\n\t- %s", strings.Join(files, "\n\t- "))), nil
	}
	return pass(ch, c, "No file with http:// URLs found"), nil
}

// filesWithHTTPURLs returns the sorted paths, relative to root, of files
// containing an http:// URL outside comments and allow-listed prefixes.
func filesWithHTTPURLs(root string) ([]string, error) {
	if httpsIgnoredDirectories[filepath.Base(root)] {
		return nil, nil
	}
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if path != root && httpsIgnoredDirectories[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if matchesAnyPattern(d.Name(), httpsIgnoredFilePatterns) {
			return nil
		}
		if fileHasHTTPURL(path) {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			found = append(found, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(found)
	return found, nil
}

// fileHasHTTPURL scans a text file line by line. Unreadable and non UTF-8
// files are treated as clean.
func fileHasHTTPURL(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return false
	}
	commentPrefix := commentPrefixes[filepath.Ext(path)]

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for scanner.Scan() {
		if lineHasHTTPURL(scanner.Text(), commentPrefix) {
			return true
		}
	}
	return false
}

func lineHasHTTPURL(line, commentPrefix string) bool {
	line = strings.ToLower(line)
	if commentPrefix != "" && strings.HasPrefix(strings.TrimLeft(line, " \t"), commentPrefix) {
		return false
	}
	if strings.Contains(line, httpsIgnoreMarker) {
		return false
	}
	for _, prefix := range httpsAllowedURLPrefixes {
		line = strings.ReplaceAll(line, prefix, "")
	}
	return strings.Contains(line, "http://")
}

func matchesAnyPattern(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}

// CheckConnectorUsesPythonBaseImage requires Python connectors to declare the
// approved base image in metadata instead of shipping a Dockerfile.
type CheckConnectorUsesPythonBaseImage struct{}

var _ Check = (*CheckConnectorUsesPythonBaseImage)(nil)

func (*CheckConnectorUsesPythonBaseImage) Name() string {
	return fmt.Sprintf("Python connectors must not use a %s and must declare their base image in %s file",
		connector.DockerfileName, connector.MetadataFileName)
}

func (*CheckConnectorUsesPythonBaseImage) Description() string {
	return fmt.Sprintf("Connectors must use our Python connector base image (`%s`), declared through the `connectorBuildOptions.baseImage` in their `%s`.\n"+
		"This is to ensure that all connectors use a base image which is maintained and has security updates.",
		PythonConnectorBaseImage, connector.MetadataFileName)
}

func (*CheckConnectorUsesPythonBaseImage) Category() Category { return CategorySecurity }

func (*CheckConnectorUsesPythonBaseImage) AppliesTo() []connector.Language { return pythonLanguages }

func (*CheckConnectorUsesPythonBaseImage) Required() bool { return true }

func (ch *CheckConnectorUsesPythonBaseImage) Check(c *connector.Connector) (*CheckResult, error) {
	if c.FileExists(connector.DockerfileName) {
		return fail(ch, c, fmt.Sprintf("%s file exists. Please remove it and declare the base image in %s file with the `connectorBuildOptions.baseImage` key",
			connector.DockerfileName, connector.MetadataFileName)), nil
	}
	if !c.HasMetadata() {
		return fail(ch, c, metadataMissing(c)), nil
	}
	raw, _ := c.Lookup("connectorBuildOptions.baseImage")
	baseImage, _ := raw.(string)
	if strings.TrimSpace(baseImage) == "" {
		return fail(ch, c, fmt.Sprintf("connectorBuildOptions.baseImage key is missing in %s file", connector.MetadataFileName)), nil
	}
	if !strings.HasPrefix(baseImage, PythonConnectorBaseImage+":") && !strings.HasPrefix(baseImage, PythonConnectorBaseImage+"@") {
		return fail(ch, c, fmt.Sprintf("connectorBuildOptions.baseImage is %s. Please use %s", baseImage, PythonConnectorBaseImage)), nil
	}
	return pass(ch, c, "Connector uses the Python connector base image"), nil
}
