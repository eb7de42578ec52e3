// Package validation validates connector metadata files, either in-process
// against the embedded metadata schema or by delegating to an external
// validator command.
package validation

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// Result is the verdict of a metadata validation. Output carries the
// validator's diagnostics and is empty for a clean run.
type Result struct {
	Valid  bool
	Output string
}

//go:embed schemas/metadata.schema.json
var metadataSchemaJSON string

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// metadataSchema is the compiled JSON Schema for metadata.yaml files.
var metadataSchema = mustCompileSchema(metadataSchemaJSON, "metadata.schema.json")

// dateLayout is the format of breaking change upgrade deadlines.
const dateLayout = "2006-01-02"

var pinnedImagePattern = regexp.MustCompile(`^[^\s:@]+:[^\s:@]+@sha256:[0-9a-f]{64}$`)

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// SchemaValidator validates metadata files in-process.
type SchemaValidator struct{}

// metadataFields holds the fields the rule pass inspects once the document
// matched the schema.
type metadataFields struct {
	DockerImageTag        string `mapstructure:"dockerImageTag"`
	DocumentationURL      string `mapstructure:"documentationUrl"`
	ConnectorBuildOptions struct {
		BaseImage string `mapstructure:"baseImage"`
	} `mapstructure:"connectorBuildOptions"`
	Releases struct {
		BreakingChanges map[string]breakingChange `mapstructure:"breakingChanges"`
	} `mapstructure:"releases"`
}

type breakingChange struct {
	Message         string `mapstructure:"message"`
	UpgradeDeadline string `mapstructure:"upgradeDeadline"`
}

// Validate checks the metadata file against the schema and the field rules,
// and requires a non-empty documentation file.
func (SchemaValidator) Validate(metadataPath, documentationPath string) Result {
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return Result{Output: fmt.Sprintf("reading metadata file: %v", err)}
	}
	errs := ValidateMetadataBytes(data)

	if doc, err := os.ReadFile(documentationPath); err != nil {
		errs = append(errs, fmt.Sprintf("reading documentation file: %v", err))
	} else if strings.TrimSpace(string(doc)) == "" {
		errs = append(errs, "documentation file is empty")
	}

	if len(errs) > 0 {
		return Result{Output: strings.Join(errs, "\n")}
	}
	return Result{Valid: true}
}

// ValidateMetadataBytes validates raw metadata YAML and returns one message
// per problem.
func ValidateMetadataBytes(data []byte) []string {
	var yamlDoc any
	if err := yaml.Unmarshal(data, &yamlDoc); err != nil {
		return []string{fmt.Sprintf("YAML parse error: %v", err)}
	}
	doc := convertToJSONCompatible(yamlDoc)

	if errs := validateAgainstSchema(metadataSchema, doc); len(errs) > 0 {
		return errs
	}

	root, _ := doc.(map[string]any)
	var fields metadataFields
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &fields,
	})
	if err != nil {
		return []string{fmt.Sprintf("decoder: %v", err)}
	}
	if err := decoder.Decode(root["data"]); err != nil {
		return []string{fmt.Sprintf("/data: %v", err)}
	}
	return validateFields(fields)
}

func validateFields(f metadataFields) []string {
	var errs []string
	if _, err := semver.StrictNewVersion(f.DockerImageTag); err != nil {
		errs = append(errs, fmt.Sprintf("/data/dockerImageTag: %q is not a semantic version", f.DockerImageTag))
	}
	if !strings.HasPrefix(f.DocumentationURL, "https://") {
		errs = append(errs, fmt.Sprintf("/data/documentationUrl: %q must be an https URL", f.DocumentationURL))
	}
	if image := f.ConnectorBuildOptions.BaseImage; image != "" && !pinnedImagePattern.MatchString(image) {
		errs = append(errs, fmt.Sprintf("/data/connectorBuildOptions/baseImage: %q must be pinned as name:tag@sha256:<digest>", image))
	}

	versions := make([]string, 0, len(f.Releases.BreakingChanges))
	for v := range f.Releases.BreakingChanges {
		versions = append(versions, v)
	}
	slices.Sort(versions)
	for _, v := range versions {
		change := f.Releases.BreakingChanges[v]
		loc := "/data/releases/breakingChanges/" + v
		if _, err := semver.StrictNewVersion(v); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %q is not a semantic version", loc, v))
		}
		if strings.TrimSpace(change.Message) == "" {
			errs = append(errs, loc+"/message: must not be empty")
		}
		if _, err := time.Parse(dateLayout, change.UpgradeDeadline); err != nil {
			errs = append(errs, fmt.Sprintf("%s/upgradeDeadline: %q is not a YYYY-MM-DD date", loc, change.UpgradeDeadline))
		}
	}
	return errs
}

func validateAgainstSchema(schema *jsonschema.Schema, instance any) []string {
	err := schema.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
	var errs []string
	collectSchemaErrors(ve, &errs)
	return errs
}

func collectSchemaErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectSchemaErrors(c, errs)
	}
}

// convertToJSONCompatible converts YAML-decoded values to the types the
// schema validator accepts. Timestamps become strings.
func convertToJSONCompatible(v any) any {
	switch val := v.(type) {
	case map[string]any:
		result := make(map[string]any, len(val))
		for k, v2 := range val {
			result[k] = convertToJSONCompatible(v2)
		}
		return result
	case []any:
		result := make([]any, len(val))
		for i, v2 := range val {
			result[i] = convertToJSONCompatible(v2)
		}
		return result
	case time.Time:
		return val.Format(dateLayout)
	default:
		return val
	}
}
