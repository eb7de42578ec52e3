package checks

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/airbytehq/connectors-qa/internal/connector"
	"github.com/stretchr/testify/require"
)

const faunaMetadata = `data:
  name: Fauna
  connectorType: source
  dockerRepository: airbyte/source-fauna
  dockerImageTag: 0.1.1
  license: MIT
`

const faunaDocumentation = `# Fauna

## Prerequisites

## Setup guide

## Supported sync modes

## Supported streams

## Changelog

| Version | Date       | Pull Request | Subject         |
| 0.1.1   | 2024-01-01 | #1234        | Fix pagination. |
`

// newConnector lays out an empty code directory under a temporary repository
// and returns a descriptor pointing into it. No file is created.
func newConnector(t *testing.T, name string, lang connector.Language) *connector.Connector {
	t.Helper()
	root := t.TempDir()
	code := filepath.Join(root, "airbyte-integrations", "connectors", name)
	docs := filepath.Join(root, "docs", "integrations", "sources")
	require.NoError(t, os.MkdirAll(code, 0755))
	require.NoError(t, os.MkdirAll(docs, 0755))

	return &connector.Connector{
		TechnicalName:          name,
		Language:               lang,
		CodeDirectory:          code,
		MetadataFilePath:       filepath.Join(code, connector.MetadataFileName),
		DocumentationFilePath:  filepath.Join(docs, "fauna.md"),
		MigrationGuideFilePath: filepath.Join(docs, "fauna-migrations.md"),
		IconPath:               filepath.Join(code, connector.IconFileName),
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// writeCodeFile writes a file relative to the connector code directory.
func writeCodeFile(t *testing.T, c *connector.Connector, name, content string) {
	t.Helper()
	writeFile(t, filepath.Join(c.CodeDirectory, name), content)
}

// withMetadata writes metadata.yaml and loads it into c the way the resolver
// does.
func withMetadata(t *testing.T, c *connector.Connector, content string) {
	t.Helper()
	writeFile(t, c.MetadataFilePath, content)
	metadata, err := connector.ParseMetadata([]byte(content))
	require.NoError(t, err)
	c.Metadata = metadata
	if tag, ok := c.Lookup("dockerImageTag"); ok {
		c.Version = fmt.Sprint(tag)
	}
}

func pyproject(version, license string) string {
	return fmt.Sprintf("[tool.poetry]\nname = \"source-fauna\"\nversion = %q\nlicense = %q\n", version, license)
}
