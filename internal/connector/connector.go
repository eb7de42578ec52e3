// Package connector resolves connector descriptors: where a connector lives on
// disk, what language it is written in and what its metadata.yaml declares.
package connector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language is the implementation language declared by a connector.
type Language string

const (
	LanguagePython  Language = "python"
	LanguageLowCode Language = "low-code"
	LanguageJava    Language = "java"
)

// AllLanguages lists every supported connector language in display order.
var AllLanguages = []Language{LanguagePython, LanguageLowCode, LanguageJava}

// Conventional file names relative to a connector code directory.
const (
	MetadataFileName     = "metadata.yaml"
	IconFileName         = "icon.svg"
	PyProjectFileName    = "pyproject.toml"
	PoetryLockFileName   = "poetry.lock"
	SetupPyFileName      = "setup.py"
	DockerfileName       = "Dockerfile"
	ManifestFileName     = "manifest.yaml"
	BuildGradleFileName  = "build.gradle"
	BuildGradleKtsName   = "build.gradle.kts"
	migrationGuideSuffix = "-migrations.md"
)

// Connector is a resolved connector descriptor. It is read-only once returned
// by a Resolver.
type Connector struct {
	TechnicalName string   `validate:"required"`
	Language      Language `validate:"required,oneof=python low-code java"`
	CodeDirectory string   `validate:"required,dir"`

	// MetadataFilePath is set even when the file does not exist.
	MetadataFilePath string
	// Metadata is the data section of metadata.yaml, nil when absent.
	Metadata map[string]any
	// MetadataError records why an existing metadata.yaml could not be loaded.
	MetadataError error

	DocumentationFilePath  string
	IconPath               string
	MigrationGuideFilePath string

	// Version is the dockerImageTag declared in metadata, empty when unknown.
	Version string
}

// String returns the technical name.
func (c *Connector) String() string { return c.TechnicalName }

// NameFromMetadata returns the display name declared in metadata, falling back
// to the technical name.
func (c *Connector) NameFromMetadata() string {
	if v, ok := c.Lookup("name"); ok {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return c.TechnicalName
}

// ConnectorType returns "source" or "destination" based on the technical name
// prefix, or an empty string when neither applies.
func (c *Connector) ConnectorType() string {
	return connectorType(c.TechnicalName)
}

// HasMetadata reports whether a metadata document was loaded.
func (c *Connector) HasMetadata() bool { return c.Metadata != nil }

// Lookup resolves a dotted path such as "releases.breakingChanges" in the
// metadata document. It reports false when any segment is missing or when an
// intermediate value is not a mapping.
func (c *Connector) Lookup(path string) (any, bool) {
	return lookup(c.Metadata, path)
}

// FileExists reports whether name exists in the code directory.
func (c *Connector) FileExists(name string) bool {
	return fileExists(filepath.Join(c.CodeDirectory, name))
}

func lookup(doc map[string]any, path string) (any, bool) {
	if doc == nil {
		return nil, false
	}
	var current any = doc
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func connectorType(name string) string {
	switch {
	case strings.HasPrefix(name, "source-"):
		return "source"
	case strings.HasPrefix(name, "destination-"):
		return "destination"
	default:
		return ""
	}
}

// LoadMetadata reads a metadata.yaml file and returns its data section. A
// document without a top-level data key is returned as is.
func LoadMetadata(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", MetadataFileName, err)
	}
	return ParseMetadata(content)
}

// ParseMetadata parses metadata.yaml content.
func ParseMetadata(content []byte) (map[string]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("unmarshalling %s: %w", MetadataFileName, err)
	}
	if raw == nil {
		return nil, errors.New("metadata document is empty")
	}
	if data, ok := raw["data"]; ok {
		m, isMap := data.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("%s: data must be a mapping, got %T", MetadataFileName, data)
		}
		return m, nil
	}
	return raw, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
