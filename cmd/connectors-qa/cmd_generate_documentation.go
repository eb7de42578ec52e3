package main

import (
	"fmt"

	"github.com/airbytehq/connectors-qa/internal/docgen"
	"github.com/spf13/cobra"
)

func newGenerateDocumentationCommand(global *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "generate-documentation <output-file>",
		Short: "Generate the documentation for the QA checks",
		Long: `Write the reference documentation of every enabled QA check, grouped by
category, to the given file. The format defaults to HTML for .html files and
to Markdown otherwise.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputFile := args[0]

			f := docgen.FormatForPath(outputFile)
			if format != "" {
				f = docgen.Format(format)
			}
			if f != docgen.FormatMarkdown && f != docgen.FormatHTML {
				return fmt.Errorf("unknown format %q: must be %s or %s", format, docgen.FormatMarkdown, docgen.FormatHTML)
			}

			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			if err := docgen.Write(outputFile, f, buildRegistry(cfg)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Documentation written to %s\n", outputFile) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Output format: markdown, html (default: inferred from the file extension)")
	return cmd
}
