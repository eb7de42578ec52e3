package connector

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ConnectorsDir is the directory, relative to the repository root, holding
// one code directory per connector.
var ConnectorsDir = filepath.Join("airbyte-integrations", "connectors")

// DocsDir is the directory, relative to the repository root, holding user
// facing connector documentation.
var DocsDir = filepath.Join("docs", "integrations")

// maxParentWalk bounds the search for the repository root.
const maxParentWalk = 10

// strictEncryptSuffixes are variant suffixes sharing the base connector's code.
var strictEncryptSuffixes = []string{"-strict-encrypt", "-secure"}

// ErrRepoRootNotFound is returned when no parent directory contains the
// connectors directory.
var ErrRepoRootNotFound = errors.New("connectors repository root not found")

// NormalizeName strips a strict-encrypt variant suffix from a technical name.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	for _, suffix := range strictEncryptSuffixes {
		if strings.HasSuffix(name, suffix) {
			return strings.TrimSuffix(name, suffix)
		}
	}
	return name
}

// FindRepoRoot walks up from start until it finds a directory containing the
// connectors directory.
func FindRepoRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", start, err)
	}
	for i := 0; i < maxParentWalk; i++ {
		if isDir(filepath.Join(dir, ConnectorsDir)) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w from %s", ErrRepoRootNotFound, start)
}

// Resolver turns technical names into Connector descriptors rooted at a
// repository checkout.
type Resolver struct {
	root     string
	validate *validator.Validate
}

// NewResolver creates a Resolver for the repository at root.
func NewResolver(root string) *Resolver {
	return &Resolver{root: root, validate: validator.New()}
}

// Root returns the repository root the resolver reads from.
func (r *Resolver) Root() string { return r.root }

// Resolve builds the descriptor for the connector named name. The name is
// normalized first, so variant names resolve to their base connector.
func (r *Resolver) Resolve(name string) (*Connector, error) {
	technicalName := NormalizeName(name)
	if technicalName == "" {
		return nil, errors.New("connector name is empty")
	}

	codeDir := filepath.Join(r.root, ConnectorsDir, technicalName)
	c := &Connector{
		TechnicalName:    technicalName,
		CodeDirectory:    codeDir,
		MetadataFilePath: filepath.Join(codeDir, MetadataFileName),
		IconPath:         filepath.Join(codeDir, IconFileName),
	}

	if fileExists(c.MetadataFilePath) {
		md, err := LoadMetadata(c.MetadataFilePath)
		if err != nil {
			slog.Warn("Ignoring unreadable metadata", "connector", technicalName, "error", err)
			c.MetadataError = err
		} else {
			c.Metadata = md
		}
	}

	if tag, ok := c.Lookup("dockerImageTag"); ok && tag != nil {
		c.Version = fmt.Sprint(tag)
	}

	if ct := connectorType(technicalName); ct != "" {
		docName := strings.TrimPrefix(technicalName, ct+"-")
		docDir := filepath.Join(r.root, DocsDir, ct+"s")
		c.DocumentationFilePath = filepath.Join(docDir, docName+".md")
		c.MigrationGuideFilePath = filepath.Join(docDir, docName+migrationGuideSuffix)
	}

	c.Language = detectLanguage(c)

	if err := r.validate.Struct(c); err != nil {
		return nil, fmt.Errorf("resolving connector %s: %w", technicalName, describeValidation(err))
	}

	slog.Debug("Resolved connector",
		"connector", c.TechnicalName,
		"language", c.Language,
		"version", c.Version,
		"codeDirectory", c.CodeDirectory)
	return c, nil
}

// detectLanguage prefers a language:<lang> metadata tag and falls back to
// build files found in the code directory.
func detectLanguage(c *Connector) Language {
	if tags, ok := c.Lookup("tags"); ok {
		if list, isList := tags.([]any); isList {
			for _, t := range list {
				s, isStr := t.(string)
				if !isStr {
					continue
				}
				if lang, found := strings.CutPrefix(s, "language:"); found {
					switch l := Language(lang); l {
					case LanguagePython, LanguageLowCode, LanguageJava:
						return l
					}
				}
			}
		}
	}

	pkgDir := strings.ReplaceAll(c.TechnicalName, "-", "_")
	switch {
	case c.FileExists(ManifestFileName), c.FileExists(filepath.Join(pkgDir, ManifestFileName)):
		return LanguageLowCode
	case c.FileExists(PyProjectFileName), c.FileExists(SetupPyFileName):
		return LanguagePython
	case c.FileExists(BuildGradleFileName), c.FileExists(BuildGradleKtsName):
		return LanguageJava
	}
	return ""
}

// describeValidation converts validator errors into a readable message.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "CodeDirectory":
			msgs = append(msgs, fmt.Sprintf("code directory %v does not exist", fe.Value()))
		case "Language":
			msgs = append(msgs, "connector language could not be determined")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
