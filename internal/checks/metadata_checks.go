package checks

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/airbytehq/connectors-qa/internal/connector"
	"github.com/airbytehq/connectors-qa/internal/validation"
)

//go:generate go tool mockgen -source=metadata_checks.go -destination=metadata_validator_mock_test.go -package=checks

const metadataDocumentationURL = "https://docs.airbyte.com/connector-development/connector-metadata-file"

// DefaultRequiredEnv are the credentials the metadata validator needs to look
// up base images on DockerHub.
var DefaultRequiredEnv = []string{"DOCKERHUB_USERNAME", "DOCKERHUB_PASSWORD"}

// MetadataValidator validates a metadata file together with the connector's
// documentation file.
type MetadataValidator interface {
	Validate(metadataPath, documentationPath string) validation.Result
}

// PrerequisiteError reports that the tool itself is misconfigured. It aborts
// a run instead of failing a check.
type PrerequisiteError struct {
	Check  string
	Reason string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("check %q cannot run: %s", e.Check, e.Reason)
}

// ValidateMetadata runs the metadata validator on metadata.yaml.
type ValidateMetadata struct {
	Validator   MetadataValidator
	RequiredEnv []string
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

var _ Check = (*ValidateMetadata)(nil)

func (*ValidateMetadata) Name() string { return "Connectors must have valid metadata" }

func (*ValidateMetadata) Description() string {
	return fmt.Sprintf("Connectors must have a `%s` file at the root of their directory. "+
		"This file is used to build our connector registry. Its structure must follow our metadata schema. "+
		"Field values are also validated. This is to ensure that all connectors have the required metadata fields "+
		"and that the metadata is valid. More details in this [documentation](%s).",
		connector.MetadataFileName, metadataDocumentationURL)
}

func (*ValidateMetadata) Category() Category { return CategoryAssets }

func (*ValidateMetadata) AppliesTo() []connector.Language { return connector.AllLanguages }

func (*ValidateMetadata) Required() bool { return true }

func (v *ValidateMetadata) Check(c *connector.Connector) (*CheckResult, error) {
	lookupEnv := v.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	for _, name := range v.RequiredEnv {
		if _, ok := lookupEnv(name); !ok {
			return nil, &PrerequisiteError{
				Check:  v.Name(),
				Reason: fmt.Sprintf("environment variable %s is required", name),
			}
		}
	}

	if !fileExists(c.MetadataFilePath) {
		return fail(v, c, fmt.Sprintf("%s file is missing", connector.MetadataFileName)), nil
	}
	if c.DocumentationFilePath == "" || !fileExists(c.DocumentationFilePath) {
		return fail(v, c, fmt.Sprintf("User facing documentation file %s is missing. Please create it", displayPath(c.DocumentationFilePath))), nil
	}
	if v.Validator == nil {
		return nil, &PrerequisiteError{Check: v.Name(), Reason: "no metadata validator configured"}
	}

	slog.Debug("Validating metadata", "connector", c.TechnicalName, "path", c.MetadataFilePath)
	result := v.Validator.Validate(c.MetadataFilePath, c.DocumentationFilePath)
	if result.Valid {
		return pass(v, c, "Metadata file is valid"), nil
	}
	return fail(v, c, fmt.Sprintf("Metadata file is invalid: %s", strings.TrimSpace(result.Output))), nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func displayPath(path string) string {
	if path == "" {
		return "<unknown path>"
	}
	return path
}
