package checks

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/airbytehq/connectors-qa/internal/connector"
)

const (
	licenseFAQURL          = "https://docs.airbyte.com/developer-guides/licenses/license-faq"
	semverForConnectorsURL = "https://docs.airbyte.com/contributing-to-airbyte/#semantic-versioning-for-connectors"
)

// allowedLicenses are compared case-insensitively.
var allowedLicenses = []string{"MIT", "ELV2"}

// CheckConnectorUsesPoetry requires Poetry-managed dependencies.
type CheckConnectorUsesPoetry struct{}

var _ Check = (*CheckConnectorUsesPoetry)(nil)

func (*CheckConnectorUsesPoetry) Name() string {
	return "Connectors must use Poetry for dependency management"
}

func (*CheckConnectorUsesPoetry) Description() string {
	return "Connectors must use [Poetry](https://python-poetry.org/) for dependency management. " +
		"This is to ensure that all connectors use a dependency management tool which locks dependencies and ensures reproducible installs."
}

func (*CheckConnectorUsesPoetry) Category() Category { return CategoryCodeQuality }

func (*CheckConnectorUsesPoetry) AppliesTo() []connector.Language { return pythonLanguages }

func (*CheckConnectorUsesPoetry) Required() bool { return true }

func (ch *CheckConnectorUsesPoetry) Check(c *connector.Connector) (*CheckResult, error) {
	switch {
	case !c.FileExists(connector.PyProjectFileName):
		return fail(ch, c, fmt.Sprintf("%s file is missing", connector.PyProjectFileName)), nil
	case !c.FileExists(connector.PoetryLockFileName):
		return fail(ch, c, fmt.Sprintf("%s file is missing", connector.PoetryLockFileName)), nil
	case c.FileExists(connector.SetupPyFileName):
		return fail(ch, c, fmt.Sprintf("%s file exists. Please remove it and use %s instead", connector.SetupPyFileName, connector.PyProjectFileName)), nil
	}
	return pass(ch, c, "Poetry is used for dependency management"), nil
}

// CheckPublishToPyPiIsEnabled requires remoteRegistries.pypi.enabled.
type CheckPublishToPyPiIsEnabled struct{}

var _ Check = (*CheckPublishToPyPiIsEnabled)(nil)

func (*CheckPublishToPyPiIsEnabled) Name() string {
	return "Python connectors must have PyPi publishing enabled"
}

func (*CheckPublishToPyPiIsEnabled) Description() string {
	return fmt.Sprintf("Python connectors must have [PyPi](https://pypi.org/) publishing enabled in their `%[1]s` file. "+
		"This is declared by setting `remoteRegistries.pypi.enabled` to `true` in %[1]s. "+
		"This is to ensure that all connectors can be published to PyPi and can be used in `airbyte-lib`.",
		connector.MetadataFileName)
}

func (*CheckPublishToPyPiIsEnabled) Category() Category { return CategoryCodeQuality }

func (*CheckPublishToPyPiIsEnabled) AppliesTo() []connector.Language { return pythonLanguages }

func (*CheckPublishToPyPiIsEnabled) Required() bool { return true }

func (ch *CheckPublishToPyPiIsEnabled) Check(c *connector.Connector) (*CheckResult, error) {
	if !c.HasMetadata() {
		return fail(ch, c, metadataMissing(c)), nil
	}
	raw, _ := c.Lookup("remoteRegistries.pypi.enabled")
	if enabled, _ := raw.(bool); !enabled {
		return fail(ch, c, "PyPi publishing is not enabled. Please enable it in the metadata file"), nil
	}
	return pass(ch, c, "PyPi publishing is enabled"), nil
}

// CheckConnectorLicense requires an allowed license, consistent with
// pyproject.toml when both declare one.
type CheckConnectorLicense struct{}

var _ Check = (*CheckConnectorLicense)(nil)

func (*CheckConnectorLicense) Name() string { return "Connectors must be licensed under MIT or Elv2" }

func (*CheckConnectorLicense) Description() string {
	return fmt.Sprintf("Connectors must be licensed under the MIT or Elv2 license. "+
		"This is to ensure that all connectors are licensed under a permissive license. More details in our [License FAQ](%s).", licenseFAQURL)
}

func (*CheckConnectorLicense) Category() Category { return CategoryCodeQuality }

func (*CheckConnectorLicense) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckConnectorLicense) Required() bool { return true }

func (ch *CheckConnectorLicense) Check(c *connector.Connector) (*CheckResult, error) {
	if !c.HasMetadata() {
		return fail(ch, c, metadataMissing(c)), nil
	}
	raw, _ := c.Lookup("license")
	metadataLicense, _ := raw.(string)
	if strings.TrimSpace(metadataLicense) == "" {
		return fail(ch, c, fmt.Sprintf("license is missing in %s. Please use MIT or Elv2 license", connector.MetadataFileName)), nil
	}
	if !slices.Contains(allowedLicenses, strings.ToUpper(metadataLicense)) {
		return fail(ch, c, fmt.Sprintf("Connector is licensed under %s. Please use MIT or Elv2 license", metadataLicense)), nil
	}

	if isPythonLike(c) && c.HasPyProject() {
		pyproject, err := c.PyProject()
		if err != nil {
			return fail(ch, c, fmt.Sprintf("Could not read the license from %s: %v", connector.PyProjectFileName, err)), nil
		}
		if poetryLicense := pyproject.Tool.Poetry.License; poetryLicense != "" && poetryLicense != metadataLicense {
			return fail(ch, c, fmt.Sprintf("Connector is licensed under %s in %s, but licensed under %s in %s. These two files have to be consistent",
				poetryLicense, connector.PyProjectFileName, metadataLicense, connector.MetadataFileName)), nil
		}
	}
	return pass(ch, c, "Connector is licensed under MIT or ELv2 license"), nil
}

// CheckVersionFollowsSemver requires a semantic version in metadata,
// consistent with pyproject.toml when both declare one.
type CheckVersionFollowsSemver struct{}

var _ Check = (*CheckVersionFollowsSemver)(nil)

func (*CheckVersionFollowsSemver) Name() string {
	return "Connector version must follow Semantic Versioning"
}

func (*CheckVersionFollowsSemver) Description() string {
	return fmt.Sprintf("Connector version must follow the Semantic Versioning scheme. "+
		"This is to ensure that all connectors follow a consistent versioning scheme. "+
		"Refer to our [Semantic Versioning for Connectors](%s) for more details.", semverForConnectorsURL)
}

func (*CheckVersionFollowsSemver) Category() Category { return CategoryCodeQuality }

func (*CheckVersionFollowsSemver) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*CheckVersionFollowsSemver) Required() bool { return true }

func (ch *CheckVersionFollowsSemver) Check(c *connector.Connector) (*CheckResult, error) {
	if !c.HasMetadata() {
		return fail(ch, c, fmt.Sprintf("Connector version is missing in %s", connector.MetadataFileName)), nil
	}
	raw, ok := c.Lookup("dockerImageTag")
	if !ok || raw == nil {
		return fail(ch, c, fmt.Sprintf("dockerImageTag is missing in %s", connector.MetadataFileName)), nil
	}
	tag := fmt.Sprint(raw)
	metadataVersion, err := semver.StrictNewVersion(tag)
	if err != nil {
		return fail(ch, c, fmt.Sprintf("Connector version %s does not follow Semantic Versioning", tag)), nil
	}

	if isPythonLike(c) && c.HasPyProject() {
		pyproject, err := c.PyProject()
		if err != nil {
			return fail(ch, c, fmt.Sprintf("Could not read the version from %s: %v", connector.PyProjectFileName, err)), nil
		}
		if declared := pyproject.Tool.Poetry.Version; declared != "" {
			poetryVersion, err := semver.StrictNewVersion(declared)
			if err != nil {
				return fail(ch, c, fmt.Sprintf("Connector version %s in %s does not follow Semantic Versioning", declared, connector.PyProjectFileName)), nil
			}
			if !metadataVersion.Equal(poetryVersion) {
				return fail(ch, c, fmt.Sprintf("Connector version in %s is %s, but version in %s is %s. These two files have to be consistent",
					connector.MetadataFileName, metadataVersion, connector.PyProjectFileName, poetryVersion)), nil
			}
		}
	}
	return pass(ch, c, "Connector version follows Semantic Versioning"), nil
}
