package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reifyd/scriptify/pkg/chain"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <chain-file>",
		Short: "Validate a chain definition",
		Long: `Parses a chain definition file and checks the generator's
preconditions: every resource id classifies to a known kind, seeds are
part of the chain, and parents appear before the resources that
reference them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			c, err := chain.Load(args[0])
			if err != nil {
				return err
			}
			if err := chain.Validate(c); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d resources, %d inputs\n",
				args[0], len(distinct(c.Sequence)), len(c.Inputs))
			return nil
		},
	}

	return cmd
}

func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
