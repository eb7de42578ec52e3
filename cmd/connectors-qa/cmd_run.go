package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/airbytehq/connectors-qa/internal/connector"
	"github.com/airbytehq/connectors-qa/internal/projectconfig"
	"github.com/airbytehq/connectors-qa/internal/reporting"
	"github.com/airbytehq/connectors-qa/internal/runner"
	"github.com/spf13/cobra"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type runOptions struct {
	*globalOptions
	names     []string
	format    string
	junitPath string
	repoRoot  string
}

func newRunCommand(global *globalOptions) *cobra.Command {
	opts := &runOptions{globalOptions: global}
	cmd := &cobra.Command{
		Use:   "run -n <connector> [-n <connector>...]",
		Short: "Run the QA checks on the given connectors",
		Long: `Run every enabled QA check against each named connector.

Results are printed as they are produced. The command exits with status 1 when
at least one check failed and with status 2 when the checks could not run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.names, "name", "n", nil, "Technical name of the connector, e.g. 'source-google-sheets' (can be repeated)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "Output format: text, json")
	cmd.Flags().StringVar(&opts.junitPath, "junit", "", "Write a JUnit XML report to this file")
	cmd.Flags().StringVar(&opts.repoRoot, "repo-root", "", "Root of the Airbyte repository (default: from config or detected from the working directory)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runChecks(cmd *cobra.Command, opts *runOptions) error {
	if opts.format != formatText && opts.format != formatJSON {
		return fmt.Errorf("unknown format %q: must be %s or %s", opts.format, formatText, formatJSON)
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	root, err := resolveRepoRoot(opts.repoRoot, cfg)
	if err != nil {
		return err
	}
	slog.Debug("Using repository", "root", root)

	registry := buildRegistry(cfg)
	out := cmd.OutOrStdout()

	r := runner.New(connector.NewResolver(root), registry)
	var reporter *textReporter
	if opts.format == formatText {
		reporter = newTextReporter(out)
		r.OnProgress(reporter.onProgress)
	}

	summary, err := r.Run(opts.names)
	if err != nil {
		return err
	}

	report := reporting.NewReport(summary)
	if opts.format == formatJSON {
		if err := reporting.WriteJSON(out, report); err != nil {
			return err
		}
	} else {
		reporter.printSummary(summary)
	}

	if opts.junitPath != "" {
		if err := reporting.WriteJUnitXML(report, opts.junitPath); err != nil {
			return err
		}
		slog.Debug("Wrote JUnit report", "path", opts.junitPath)
	}

	if !summary.Succeeded() {
		return &ChecksFailedError{Failed: summary.Failed}
	}
	return nil
}

// resolveRepoRoot picks the flag, then the config value, then walks up from
// the working directory.
func resolveRepoRoot(flagValue string, cfg *projectconfig.ProjectConfig) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Paths.RepoRoot != "" {
		return cfg.Paths.RepoRoot, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return connector.FindRepoRoot(wd)
}
