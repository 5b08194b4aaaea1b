package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/biostrand/gtconform/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the engine's tunable-constant overrides",
		Long: `Show, get, or set overrides for the reconciliation engine's tunable
constants (window overlap, frequency and correlation significance
coefficients, merge thresholds). Overrides are stored in ~/.gtconform.yaml
and only change the engine's numeric knobs, never its algorithm.`,
		Example: `  gtconform config                          # show all settings, defaults included
  gtconform config set windowOverlap 150    # widen the sliding window
  gtconform config get windowOverlap        # read one setting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a tunable-constant override",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a tunable-constant override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(args[0])
		},
	}
}

func runConfigShow() error {
	if err := config.Init(); err != nil {
		return err
	}
	settings := viper.AllSettings()
	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}

func runConfigSet(key, value string) error {
	if !config.IsKnownKey(key) {
		return fmt.Errorf("unrecognized config key %q (known keys: %v)", key, config.Keys())
	}
	if err := config.Init(); err != nil {
		return err
	}

	// Every known key is numeric; reject non-numeric values early rather
	// than let them silently corrupt the engine's window.Options.
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		return fmt.Errorf("value %q for %s must be numeric", value, key)
	}
	viper.Set(key, value)

	if err := config.Write(); err != nil {
		return err
	}
	path, _ := config.Path()
	fmt.Printf("Set %s = %s in %s\n", key, value, path)
	return nil
}

func runConfigGet(key string) error {
	if !config.IsKnownKey(key) {
		return fmt.Errorf("unrecognized config key %q (known keys: %v)", key, config.Keys())
	}
	if err := config.Init(); err != nil {
		return err
	}
	fmt.Println(viper.Get(key))
	return nil
}
