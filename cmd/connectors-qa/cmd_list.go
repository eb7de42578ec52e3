package main

import (
	"fmt"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/spf13/cobra"
)

func newListCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the enabled QA checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.loadConfig()
			if err != nil {
				return err
			}
			registry := buildRegistry(cfg)

			const nameWidth = 72
			const categoryWidth = 16
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n", padRight("Check", nameWidth), padRight("Category", categoryWidth), "Languages") //nolint:errcheck
			for _, c := range registry {
				fmt.Fprintf(out, "%s %s %s\n", //nolint:errcheck
					padRight(c.Name(), nameWidth), padRight(string(c.Category()), categoryWidth), checks.LanguageNames(c))
			}
			fmt.Fprintf(out, "\n%d checks enabled\n", len(registry)) //nolint:errcheck
			return nil
		},
	}
}
