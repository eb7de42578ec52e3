// Package projectconfig provides the ProjectConfig struct and loader for
// .connectors-qa.yaml configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working directory.
const FileName = ".connectors-qa.yaml"

// DefaultValidatorTimeout is the external validator timeout, in seconds.
const DefaultValidatorTimeout = 300

// maxWalkLevels bounds the upward search for FileName.
const maxWalkLevels = 10

// DefaultRequiredEnv are the variables the metadata validator needs.
var DefaultRequiredEnv = []string{"DOCKERHUB_USERNAME", "DOCKERHUB_PASSWORD"}

// PathsConfig holds repository paths.
type PathsConfig struct {
	// RepoRoot is auto-detected when empty. Relative values are resolved
	// against the directory holding the config file.
	RepoRoot string `yaml:"repo_root,omitempty"`
}

// ValidatorConfig selects the metadata validator.
type ValidatorConfig struct {
	// Command runs an external validator; empty means the built-in one.
	Command []string `yaml:"command,omitempty"`
	// RequiredEnv is nil when unset, so an explicit empty list disables the
	// environment check.
	RequiredEnv []string `yaml:"required_env"`
	Timeout     int      `yaml:"timeout,omitempty"`
}

// ChecksConfig holds check selection settings.
type ChecksConfig struct {
	Disabled []string `yaml:"disabled,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .connectors-qa.yaml.
type ProjectConfig struct {
	Paths     PathsConfig     `yaml:"paths,omitempty"`
	Validator ValidatorConfig `yaml:"validator,omitempty"`
	Checks    ChecksConfig    `yaml:"checks,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Validator: ValidatorConfig{
			RequiredEnv: slices.Clone(DefaultRequiredEnv),
			Timeout:     DefaultValidatorTimeout,
		},
	}
}

// Load finds .connectors-qa.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
func Load(startDir string) (*ProjectConfig, error) {
	path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return LoadFile(path)
}

// LoadFile reads an explicit config file. A missing file is an error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if root := fileCfg.Paths.RepoRoot; root != "" && !filepath.IsAbs(root) {
		fileCfg.Paths.RepoRoot = filepath.Join(filepath.Dir(path), root)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for FileName and returns its path.
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for range maxWalkLevels {
		p := filepath.Join(dir, FileName)
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Paths.RepoRoot != "" {
		dst.Paths.RepoRoot = src.Paths.RepoRoot
	}

	if len(src.Validator.Command) > 0 {
		dst.Validator.Command = slices.Clone(src.Validator.Command)
	}
	if src.Validator.RequiredEnv != nil {
		dst.Validator.RequiredEnv = slices.Clone(src.Validator.RequiredEnv)
	}
	if src.Validator.Timeout != 0 {
		dst.Validator.Timeout = src.Validator.Timeout
	}

	if len(src.Checks.Disabled) > 0 {
		dst.Checks.Disabled = slices.Clone(src.Checks.Disabled)
	}
}
