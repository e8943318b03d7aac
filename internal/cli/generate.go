package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reifyd/scriptify/pkg/chain"
	"github.com/reifyd/scriptify/pkg/scriptify"
	"github.com/reifyd/scriptify/pkg/store"
)

func newGenerateCmd() *cobra.Command {
	var (
		retrain  bool
		lastStep bool
		toStdout bool
	)

	cmd := &cobra.Command{
		Use:   "generate <chain-file>",
		Short: "Generate a script from a resource history",
		Long: `Compiles a chain definition file (YAML or HCL) into a WhizzML script
and its creation descriptor, and saves both through the configured
artifact store.

Examples:
  scriptify generate history.yaml
  scriptify generate history.hcl --retrain
  scriptify generate history.yaml --stdout
  scriptify generate history.yaml --store s3 --store-config bucket=my-scripts`,
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
			log.Debug().Int("resources", len(c.Sequence)).Int("inputs", len(c.Inputs)).
				Msg("chain loaded")

			desc, info, err := scriptify.Generate(c, scriptify.Options{
				Retrain:  retrain,
				LastStep: lastStep,
			})
			if err != nil {
				return err
			}
			log.Debug().Str("output", info.OutputName).Str("kind", string(info.TerminalKind)).
				Msg("script generated")

			if toStdout {
				fmt.Fprint(cmd.OutOrStdout(), desc.SourceCode)
				return nil
			}

			manager, err := store.NewManagerFromConfig(storeConfig())
			if err != nil {
				return err
			}
			manifest, err := manager.SaveBundle(cmd.Context(), c.Name, desc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (run %s):\n", desc.Name, manifest.RunID)
			for _, file := range manifest.Files {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", file)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&retrain, "retrain", false, "Generate the periodic-retrain variant for a model-family terminal resource")
	cmd.Flags().BoolVar(&lastStep, "last-step", false, "Name the script as the last step of a multi-script sequence")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the script body instead of saving it")

	return cmd
}

// storeConfig assembles the store backend configuration from flags and
// environment.
func storeConfig() store.Config {
	options := make(map[string]string)
	for _, kv := range viper.GetStringSlice("store-config") {
		if key, value, found := strings.Cut(kv, "="); found {
			options[key] = value
		}
	}
	return store.Config{
		Type:    viper.GetString("store"),
		Options: options,
	}
}
