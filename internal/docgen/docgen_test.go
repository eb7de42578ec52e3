package docgen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSections(t *testing.T) {
	sections := Sections(checks.Registry(checks.RegistryOptions{}))
	require.Len(t, sections, 4)

	var order []checks.Category
	total := 0
	for _, s := range sections {
		order = append(order, s.Category)
		total += len(s.Checks)
	}
	assert.Equal(t, checks.Categories, order)
	assert.Equal(t, 12, total)
}

func TestSectionsOmitsEmptyCategories(t *testing.T) {
	sections := Sections([]checks.Check{&checks.CheckConnectorIconIsAvailable{}})
	require.Len(t, sections, 1)
	assert.Equal(t, checks.CategoryAssets, sections[0].Category)
}

func TestMarkdown(t *testing.T) {
	registry := checks.Registry(checks.RegistryOptions{})
	out, err := Markdown(registry)
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "# Connectors QA Checks\n"))
	for _, c := range registry {
		assert.Contains(t, doc, "### "+c.Name()+"\n")
	}
	assert.Contains(t, doc, "_Applies to the following connector languages: python, low-code_")

	codeQuality := strings.Index(doc, "## 📝 Code Quality")
	documentation := strings.Index(doc, "## 📄 Documentation")
	assets := strings.Index(doc, "## 💼 Assets")
	security := strings.Index(doc, "## 🔒 Security")
	require.NotEqual(t, -1, codeQuality)
	assert.Less(t, codeQuality, documentation)
	assert.Less(t, documentation, assets)
	assert.Less(t, assets, security)
}

func TestHTML(t *testing.T) {
	out, err := HTML(checks.Registry(checks.RegistryOptions{}))
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "<h1>Connectors QA Checks</h1>")
	assert.Contains(t, doc, "<h3>Connectors must have an icon</h3>")
	assert.Contains(t, doc, `<a href="https://hackmd.io/Bz75cgATSbm7DjrAqgl4rw">documentation standards</a>`)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatHTML, FormatForPath("docs/qa-checks.HTML"))
	assert.Equal(t, FormatMarkdown, FormatForPath("docs/qa-checks.md"))
	assert.Equal(t, FormatMarkdown, FormatForPath("qa-checks"))
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qa-checks.md")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0644))

	require.NoError(t, Write(path, FormatMarkdown, checks.Registry(checks.RegistryOptions{})))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale")
	assert.Contains(t, string(content), "Connectors QA Checks")

	require.Error(t, Write(path, Format("pdf"), nil))
}
