// Package configcmd prints the effective configuration.
package configcmd

import (
	"fmt"

	"fjacquet/ksef-pdf/cmd/root"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration after defaults, config file, KSEF_* environment
variables and command-line flags have been applied.

Example:
  ksef-pdf config --log-level debug`,
	Args: cobra.NoArgs,
	RunE: configFunc,
}

func configFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return enc.Close()
}
