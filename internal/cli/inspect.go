package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reifyd/scriptify/pkg/chain"
	"github.com/reifyd/scriptify/pkg/resource"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <chain-file>",
		Short: "Show the resources and operations of a chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			c, err := chain.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if c.Name != "" {
				fmt.Fprintf(out, "Chain: %s\n\n", c.Name)
			}

			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RESOURCE\tKIND\tOPERATIONS\tSEED")
			for _, id := range distinct(c.Sequence) {
				kind, err := resource.Classify(id)
				if err != nil {
					return err
				}
				seed := ""
				if c.IsInput(id) {
					seed = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, kind, operationList(c.ConfigFor(id)), seed)
			}
			return w.Flush()
		},
	}

	return cmd
}

func operationList(cfg chain.Config) string {
	var ops []string
	for _, op := range []string{chain.OpCreate, chain.OpGet, chain.OpUpdateParser, chain.OpUpdate} {
		if cfg.Has(op) {
			ops = append(ops, op)
		}
	}
	if len(ops) == 0 {
		return "-"
	}
	return strings.Join(ops, ",")
}
