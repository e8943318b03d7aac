// Package cli implements the scriptify CLI commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	// Import store backends to register them via init()
	_ "github.com/reifyd/scriptify/pkg/store/azblob"
	_ "github.com/reifyd/scriptify/pkg/store/gcs"
	_ "github.com/reifyd/scriptify/pkg/store/local"
	_ "github.com/reifyd/scriptify/pkg/store/s3"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scriptify",
	Short: "Turn ML resource histories into executable scripts",
	Long: `scriptify compiles a recorded history of machine-learning resource
operations (sources, datasets, models, evaluations, ...) into a WhizzML
script that reproduces the history programmatically, together with a
descriptor declaring the script's inputs and outputs.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.scriptify/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("store", "local", "Artifact store backend (local, s3, gcs, azblob)")
	rootCmd.PersistentFlags().StringArray("store-config", nil, "Store backend configuration (key=value)")

	// Bind to viper
	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("store-config", rootCmd.PersistentFlags().Lookup("store-config"))
	viper.SetEnvPrefix("SCRIPTIFY")
	viper.AutomaticEnv()

	// Add subcommands
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func initConfig() {
	configureLogging(verbose)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in home directory
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.scriptify")
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// Read config file if it exists
	_ = viper.ReadInConfig()
}
