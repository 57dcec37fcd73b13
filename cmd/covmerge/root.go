// cmd/covmerge/root.go
// Root command for the `covmerge` CLI. It wires common flags, global
// initialisation (logger, config file) and adds top-level sub-commands
// located in sibling files (merge.go, validate.go, watch.go, serve.go,
// version.go).
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Voskan/covmerge/internal/logging"
	"github.com/Voskan/covmerge/pkg/version"
)

var (
	cfgFile string
	logJSON bool

	rootCmd = &cobra.Command{
		Use:   "covmerge",
		Short: "Merge V8 JavaScript coverage reports",
		Long:  `covmerge merges multiple V8-style JavaScript code-coverage reports for the same script into a single, normalized report.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logging.Initialised() {
				return nil
			}
			return initLogger()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file (YAML/TOML/JSON)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Enable JSON log output (default is human-friendly console)")

	rootCmd.AddCommand(newMergeCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// Execute is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "covmerge"))
		}
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("COVMERGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		logging.Sugar().Infof("Using config file: %s", viper.ConfigFileUsed())
	}
}

func initLogger() error {
	if err := logging.Init(logJSON); err != nil {
		return err
	}
	logging.Sugar().Infow("covmerge starting", "go_version", runtime.Version(), "version", version.String())
	return nil
}
