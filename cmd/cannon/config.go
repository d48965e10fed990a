package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-cannon/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the game configuration",
	Long: `Print the default configuration YAML. Save it to
~/.cannon/configs/cannon.yaml or pass it with --config to customize the game.

With --resolved, prints the configuration the game would actually use:
the loaded file with the --difficulty preset applied.

Examples:
  cannon config > ~/.cannon/configs/cannon.yaml
  cannon config --resolved --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the effective configuration instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagResolved {
		//nolint:errcheck // Nothing useful to do if stdout is gone
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadGameConfig(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(out)
}
