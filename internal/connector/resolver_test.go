package connector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const faunaMetadata = `data:
  name: Fauna
  dockerImageTag: 0.1.2
  license: MIT
  tags:
    - language:python
  releases:
    breakingChanges:
      1.0.0:
        message: Streams were renamed.
        upgradeDeadline: "2024-01-01"
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ConnectorsDir), 0o755))
	return root
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"source-postgres", "source-postgres"},
		{"source-postgres-strict-encrypt", "source-postgres"},
		{"destination-mysql-secure", "destination-mysql"},
		{"  source-faker  ", "source-faker"},
		{"source-secure-api", "source-secure-api"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := newRepo(t)
	nested := filepath.Join(root, ConnectorsDir, "source-fauna", "source_fauna")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindRepoRoot(nested)
	require.NoError(t, err)
	require.Equal(t, root, got)

	_, err = FindRepoRoot(t.TempDir())
	require.ErrorIs(t, err, ErrRepoRootNotFound)
}

func TestResolve(t *testing.T) {
	root := newRepo(t)
	codeDir := filepath.Join(root, ConnectorsDir, "source-fauna")
	writeFile(t, filepath.Join(codeDir, MetadataFileName), faunaMetadata)

	c, err := NewResolver(root).Resolve("source-fauna-strict-encrypt")
	require.NoError(t, err)

	assert.Equal(t, "source-fauna", c.TechnicalName)
	assert.Equal(t, LanguagePython, c.Language)
	assert.Equal(t, codeDir, c.CodeDirectory)
	assert.Equal(t, "0.1.2", c.Version)
	assert.Equal(t, "Fauna", c.NameFromMetadata())
	assert.Equal(t, "source", c.ConnectorType())
	assert.Equal(t, filepath.Join(root, DocsDir, "sources", "fauna.md"), c.DocumentationFilePath)
	assert.Equal(t, filepath.Join(root, DocsDir, "sources", "fauna-migrations.md"), c.MigrationGuideFilePath)
	assert.Equal(t, filepath.Join(codeDir, IconFileName), c.IconPath)

	bc, ok := c.Lookup("releases.breakingChanges")
	require.True(t, ok)
	require.Contains(t, bc, "1.0.0")

	_, ok = c.Lookup("releases.missing.deeper")
	require.False(t, ok)
}

func TestResolveLanguageFromFiles(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  Language
	}{
		{"manifest at root", []string{ManifestFileName, PyProjectFileName}, LanguageLowCode},
		{"manifest in package", []string{"source_x/" + ManifestFileName}, LanguageLowCode},
		{"pyproject", []string{PyProjectFileName}, LanguagePython},
		{"setup.py", []string{SetupPyFileName}, LanguagePython},
		{"gradle", []string{BuildGradleFileName}, LanguageJava},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRepo(t)
			codeDir := filepath.Join(root, ConnectorsDir, "source-x")
			for _, f := range tt.files {
				writeFile(t, filepath.Join(codeDir, f), "")
			}
			c, err := NewResolver(root).Resolve("source-x")
			require.NoError(t, err)
			require.Equal(t, tt.want, c.Language)
			require.False(t, c.HasMetadata())
			require.Empty(t, c.Version)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	root := newRepo(t)

	_, err := NewResolver(root).Resolve("source-unknown")
	require.Error(t, err)
	require.Contains(t, err.Error(), "does not exist")

	writeFile(t, filepath.Join(root, ConnectorsDir, "source-empty", "README.md"), "# empty")
	_, err = NewResolver(root).Resolve("source-empty")
	require.Error(t, err)
	require.Contains(t, err.Error(), "language could not be determined")

	_, err = NewResolver(root).Resolve("  ")
	require.Error(t, err)
}

func TestResolveUnreadableMetadata(t *testing.T) {
	root := newRepo(t)
	codeDir := filepath.Join(root, ConnectorsDir, "source-broken")
	writeFile(t, filepath.Join(codeDir, MetadataFileName), "data: [unterminated")
	writeFile(t, filepath.Join(codeDir, PyProjectFileName), "")

	c, err := NewResolver(root).Resolve("source-broken")
	require.NoError(t, err)
	require.False(t, c.HasMetadata())
	require.Error(t, c.MetadataError)
}

func TestParseMetadataWithoutDataSection(t *testing.T) {
	md, err := ParseMetadata([]byte("name: Plain\ndockerImageTag: 1.0.0\n"))
	require.NoError(t, err)
	require.Equal(t, "Plain", md["name"])

	_, err = ParseMetadata([]byte("data: 3\n"))
	require.Error(t, err)

	_, err = ParseMetadata([]byte(""))
	require.Error(t, err)
}

func TestPyProject(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, PyProjectFileName), `[build-system]
requires = ["poetry-core"]

[tool.poetry]
name = "source-fauna"
version = "0.1.2"
license = "MIT"
`)
	c := &Connector{TechnicalName: "source-fauna", CodeDirectory: dir}
	require.True(t, c.HasPyProject())

	p, err := c.PyProject()
	require.NoError(t, err)
	require.Equal(t, "0.1.2", p.Tool.Poetry.Version)
	require.Equal(t, "MIT", p.Tool.Poetry.License)

	writeFile(t, filepath.Join(dir, PyProjectFileName), "[tool.poetry\nname=")
	_, err = c.PyProject()
	require.Error(t, err)
}
