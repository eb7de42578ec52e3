package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/airbytehq/connectors-qa/internal/projectconfig"
	"github.com/airbytehq/connectors-qa/internal/validation"
	"github.com/spf13/cobra"
)

var version = "dev"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	debug      bool
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:   "connectors-qa",
		Short: "Run QA checks on Airbyte connectors",
		Long: `connectors-qa runs a fixed set of quality checks against connectors of the
Airbyte repository and reports, for every connector and check, whether the
check passed, failed or was skipped.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a "+projectconfig.FileName+" file (default: searched from the working directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if opts.debug {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newGenerateDocumentationCommand(opts))
	cmd.AddCommand(newListCommand(opts))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// loadConfig reads the explicit --config file, or searches for one from the
// working directory.
func (o *globalOptions) loadConfig() (*projectconfig.ProjectConfig, error) {
	if o.configPath != "" {
		return projectconfig.LoadFile(o.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return projectconfig.Load(wd)
}

// buildRegistry returns the enabled checks for cfg.
func buildRegistry(cfg *projectconfig.ProjectConfig) []checks.Check {
	registry := checks.Registry(checks.RegistryOptions{
		MetadataValidator: newMetadataValidator(cfg),
		RequiredEnv:       cfg.Validator.RequiredEnv,
	})
	return checks.Without(registry, cfg.Checks.Disabled)
}

func newMetadataValidator(cfg *projectconfig.ProjectConfig) checks.MetadataValidator {
	if len(cfg.Validator.Command) == 0 {
		return validation.SchemaValidator{}
	}
	return validation.CommandValidator{
		Command: cfg.Validator.Command,
		Timeout: time.Duration(cfg.Validator.Timeout) * time.Second,
	}
}
