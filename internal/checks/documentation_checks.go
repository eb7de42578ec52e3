package checks

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/airbytehq/connectors-qa/internal/connector"
)

const documentationStandardsURL = "https://hackmd.io/Bz75cgATSbm7DjrAqgl4rw"

// requiredDocSections must each appear as a line of the documentation.
var requiredDocSections = []string{
	"## Prerequisites",
	"## Setup guide",
	"## Supported sync modes",
	"## Supported streams",
	"## Changelog",
}

const upgradingHeadingPrefix = "## Upgrading to "

// CheckDocumentationExists requires the user facing documentation file.
type CheckDocumentationExists struct{}

var _ Check = (*CheckDocumentationExists)(nil)

func (*CheckDocumentationExists) Name() string {
	return "Connectors must have user facing documentation"
}

func (*CheckDocumentationExists) Description() string {
	return "The user facing connector documentation should be stored under `./docs/integrations/<connector-type>s/<connector-name>.md`."
}

func (*CheckDocumentationExists) Category() Category { return CategoryDocumentation }

func (*CheckDocumentationExists) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckDocumentationExists) Required() bool { return true }

func (ch *CheckDocumentationExists) Check(c *connector.Connector) (*CheckResult, error) {
	if !fileExists(c.DocumentationFilePath) {
		return fail(ch, c, missingDocumentation(c)), nil
	}
	return pass(ch, c, fmt.Sprintf("User facing documentation file %s exists", c.DocumentationFilePath)), nil
}

// CheckDocumentationStructure enforces the documentation title and sections.
type CheckDocumentationStructure struct{}

var _ Check = (*CheckDocumentationStructure)(nil)

func (*CheckDocumentationStructure) Name() string {
	return "Connectors documentation follows our guidelines"
}

func (*CheckDocumentationStructure) Description() string {
	return fmt.Sprintf("The user facing connector documentation should follow the guidelines defined in the [documentation standards](%s).", documentationStandardsURL)
}

func (*CheckDocumentationStructure) Category() Category { return CategoryDocumentation }

func (*CheckDocumentationStructure) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckDocumentationStructure) Required() bool { return true }

func (ch *CheckDocumentationStructure) Check(c *connector.Connector) (*CheckResult, error) {
	if !fileExists(c.DocumentationFilePath) {
		return fail(ch, c, missingDocumentation(c)), nil
	}
	lines, err := readLines(c.DocumentationFilePath)
	if err != nil {
		return fail(ch, c, fmt.Sprintf("User facing documentation file could not be read: %v", err)), nil
	}

	var errs []string
	title, found := firstNonBlank(lines)
	switch {
	case !found:
		errs = append(errs, "The documentation is empty")
	case c.HasMetadata():
		expected := "# " + c.NameFromMetadata()
		if !strings.EqualFold(strings.TrimSpace(title), expected) {
			errs = append(errs, "The connector name is not used as the main header in the documentation")
		}
	case !strings.HasPrefix(title, "# "):
		errs = append(errs, "The connector name is not used as the main header in the documentation")
	}

	for _, section := range requiredDocSections {
		if !containsLineFold(lines, section) {
			errs = append(errs, fmt.Sprintf("Connector documentation is missing a '%s' section", strings.TrimSpace(strings.TrimLeft(section, "#"))))
		}
	}

	if len(errs) > 0 {
		return fail(ch, c, fmt.Sprintf("Connector documentation does not follow the guidelines. %s", strings.Join(errs, ". "))), nil
	}
	return pass(ch, c, "Documentation guidelines are followed"), nil
}

// CheckChangelogEntry requires a changelog line mentioning the current version.
type CheckChangelogEntry struct{}

var _ Check = (*CheckChangelogEntry)(nil)

func (*CheckChangelogEntry) Name() string {
	return "Connectors must have a changelog entry for each version"
}

func (*CheckChangelogEntry) Description() string {
	return "Each new version of a connector must have a changelog entry defined in the user facing documentation in `./docs/integrations/<connector-type>s/<connector-name>.md`."
}

func (*CheckChangelogEntry) Category() Category { return CategoryDocumentation }

func (*CheckChangelogEntry) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckChangelogEntry) Required() bool { return true }

func (ch *CheckChangelogEntry) Check(c *connector.Connector) (*CheckResult, error) {
	if !fileExists(c.DocumentationFilePath) {
		return fail(ch, c, missingDocumentation(c)), nil
	}
	if c.Version == "" {
		return fail(ch, c, fmt.Sprintf("Connector version is unknown. Please declare dockerImageTag in %s", connector.MetadataFileName)), nil
	}
	lines, err := readLines(c.DocumentationFilePath)
	if err != nil {
		return fail(ch, c, fmt.Sprintf("User facing documentation file could not be read: %v", err)), nil
	}

	afterChangelog := false
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "# changelog") {
			afterChangelog = true
		}
		if afterChangelog && strings.Contains(line, c.Version) {
			return pass(ch, c, "Changelog entry found"), nil
		}
	}
	return fail(ch, c, fmt.Sprintf("Changelog entry for version %s is missing in the documentation", c.Version)), nil
}

// CheckMigrationGuide requires a migration guide section per breaking change.
type CheckMigrationGuide struct{}

var _ Check = (*CheckMigrationGuide)(nil)

func (*CheckMigrationGuide) Name() string {
	return "Breaking changes must be accompanied by a migration guide"
}

func (*CheckMigrationGuide) Description() string {
	return "When a breaking change is introduced we check that a migration guide is available. " +
		"It should be stored under `./docs/integrations/<connector-type>s/<connector-name>-migrations.md`.\n" +
		"This document should contain a section for each breaking change, in order of the version descending. " +
		"It must explain users which action to take to migrate to the new version."
}

func (*CheckMigrationGuide) Category() Category { return CategoryDocumentation }

func (*CheckMigrationGuide) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckMigrationGuide) Required() bool { return true }

func (ch *CheckMigrationGuide) Check(c *connector.Connector) (*CheckResult, error) {
	raw, ok := c.Lookup("releases.breakingChanges")
	if !ok || raw == nil {
		return pass(ch, c, "No breaking changes found. A migration guide is not required"), nil
	}
	breakingChanges, isMap := raw.(map[string]any)
	if !isMap {
		return fail(ch, c, fmt.Sprintf("releases.breakingChanges in %s must map versions to breaking change entries", connector.MetadataFileName)), nil
	}
	if len(breakingChanges) == 0 {
		return pass(ch, c, "No breaking changes found. A migration guide is not required"), nil
	}

	if !fileExists(c.MigrationGuideFilePath) {
		return fail(ch, c, fmt.Sprintf("Migration guide file is missing for %s. Please create a migration guide at %s",
			c.TechnicalName, displayPath(c.MigrationGuideFilePath))), nil
	}
	lines, err := readLines(c.MigrationGuideFilePath)
	if err != nil {
		return fail(ch, c, fmt.Sprintf("Migration guide file could not be read: %v", err)), nil
	}
	if len(lines) == 0 {
		return fail(ch, c, fmt.Sprintf("Migration guide file for %s is empty", c.TechnicalName)), nil
	}

	expectedTitle := fmt.Sprintf("# %s Migration Guide", c.NameFromMetadata())
	if lines[0] != expectedTitle {
		return fail(ch, c, fmt.Sprintf("Migration guide file for %s does not start with the correct header. Expected '%s', got '%s'",
			c.TechnicalName, expectedTitle, lines[0])), nil
	}

	expected := sortVersionsDescending(keys(breakingChanges))
	var found []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if version, ok := strings.CutPrefix(trimmed, upgradingHeadingPrefix); ok {
			found = append(found, strings.TrimSpace(version))
		}
	}

	if !slices.Equal(expected, found) {
		return fail(ch, c, migrationGuideDiff(c.TechnicalName, expected, found)), nil
	}
	return pass(ch, c, "The migration guide is correctly templated"), nil
}

func migrationGuideDiff(name string, expected, found []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Migration guide file for %s has incorrect version headings.\n", name)
	b.WriteString("Check for missing, extra, or misordered headings, or headers with typos.\n")
	fmt.Fprintf(&b, "Expected headings: %s\n", strings.Join(headings(expected), ", "))
	fmt.Fprintf(&b, "Found headings: %s", strings.Join(headings(found), ", "))
	if missing := difference(expected, found); len(missing) > 0 {
		fmt.Fprintf(&b, "\nMissing headings: %s", strings.Join(headings(missing), ", "))
	}
	if extra := difference(found, expected); len(extra) > 0 {
		fmt.Fprintf(&b, "\nUnexpected headings: %s", strings.Join(headings(extra), ", "))
	}
	return b.String()
}

func headings(versions []string) []string {
	if len(versions) == 0 {
		return []string{"<none>"}
	}
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = upgradingHeadingPrefix + v
	}
	return out
}

// difference returns the elements of a not present in b, keeping a's order.
func difference(a, b []string) []string {
	var out []string
	for _, v := range a {
		if !slices.Contains(b, v) {
			out = append(out, v)
		}
	}
	return out
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// sortVersionsDescending orders versions newest first. Versions that do not
// parse sort after the ones that do, in reverse lexical order.
func sortVersionsDescending(versions []string) []string {
	out := slices.Clone(versions)
	slices.SortFunc(out, func(a, b string) int {
		va, errA := semver.NewVersion(a)
		vb, errB := semver.NewVersion(b)
		switch {
		case errA == nil && errB == nil:
			if cmp := vb.Compare(va); cmp != 0 {
				return cmp
			}
			return strings.Compare(b, a)
		case errA == nil:
			return -1
		case errB == nil:
			return 1
		default:
			return strings.Compare(b, a)
		}
	})
	return out
}

func missingDocumentation(c *connector.Connector) string {
	return fmt.Sprintf("User facing documentation file %s is missing. Please create it", displayPath(c.DocumentationFilePath))
}

// readLines returns the file's lines without line terminators.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil, nil
	}
	return strings.Split(content, "\n"), nil
}

func firstNonBlank(lines []string) (string, bool) {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return line, true
		}
	}
	return "", false
}

func containsLineFold(lines []string, want string) bool {
	for _, line := range lines {
		if strings.EqualFold(strings.TrimRight(line, " \t"), want) {
			return true
		}
	}
	return false
}
