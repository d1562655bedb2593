package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/multiball/internal/config"
	"github.com/vovakirdan/multiball/internal/games/breakout"
)

var (
	flagDefaults bool
	flagClassic  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective breakout configuration as YAML",
	Long: `Print the configuration a new game would use, after the config search
path and --difficulty preset are applied. Redirect it to a file to start a
custom config:

  multiball config --defaults > ~/.multiball/configs/breakout.yaml

Search order: --config, ~/.multiball/configs/breakout.yaml,
./configs/breakout.yaml, then the built-in defaults.`,
	Run: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults file")
	configCmd.Flags().BoolVar(&flagClassic, "classic", false, "Show the classic variant")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagDefaults {
		os.Stdout.Write(config.GetDefaultYAML())
		return
	}

	variant := breakout.VariantMultiBall
	if flagClassic {
		variant = breakout.VariantClassic
	}
	cfg, err := breakout.LoadConfig(variant)
	if err != nil {
		fail("loading config: %v", err)
	}

	data, err := config.MarshalBreakout(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	os.Stdout.Write(data)
}
