// Package docgen renders the reference documentation of the QA checks.
package docgen

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Format is the output format of the generated documentation.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

//go:embed templates/qa_checks.md.tmpl
var markdownTemplate string

var docTemplate = template.Must(template.New("qa_checks").Funcs(template.FuncMap{
	"languages": checks.LanguageNames,
}).Parse(markdownTemplate))

// Section holds the checks of one category.
type Section struct {
	Category checks.Category
	Checks   []checks.Check
}

// Sections groups the registry by category in display order. Empty
// categories are left out.
func Sections(registry []checks.Check) []Section {
	grouped := checks.ByCategory(registry)
	var sections []Section
	for _, category := range checks.Categories {
		if len(grouped[category]) == 0 {
			continue
		}
		sections = append(sections, Section{Category: category, Checks: grouped[category]})
	}
	return sections
}

// Markdown renders the documentation of every check in registry.
func Markdown(registry []checks.Check) ([]byte, error) {
	var buf bytes.Buffer
	if err := docTemplate.Execute(&buf, struct{ Sections []Section }{Sections(registry)}); err != nil {
		return nil, fmt.Errorf("rendering documentation: %w", err)
	}
	return buf.Bytes(), nil
}

// HTML renders the Markdown documentation to an HTML fragment.
func HTML(registry []checks.Check) ([]byte, error) {
	source, err := Markdown(registry)
	if err != nil {
		return nil, err
	}
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithXHTML()),
	)
	var buf bytes.Buffer
	if err := md.Convert(source, &buf); err != nil {
		return nil, fmt.Errorf("converting documentation to HTML: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatForPath infers the format from the output file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatMarkdown
	}
}

// Write renders the documentation in the given format to path, replacing any
// existing file.
func Write(path string, format Format, registry []checks.Check) error {
	var (
		content []byte
		err     error
	)
	switch format {
	case FormatMarkdown:
		content, err = Markdown(registry)
	case FormatHTML:
		content, err = HTML(registry)
	default:
		return fmt.Errorf("unknown documentation format %q", format)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing documentation: %w", err)
	}
	return nil
}
