package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dccd/internal/config"
	"dccd/internal/session"
)

var configWrite bool

// resetCmd clears the saved session
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear saved answers and results",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

// configCmd shows or writes the effective configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after defaults and environment overrides.

With --write the configuration is saved to the config path so it can be edited.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configWrite, "write", false, "Save the effective configuration to the config path")
}

func runReset(cmd *cobra.Command, args []string) error {
	ws, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := session.Open(cfg, ws)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}
	logger.Info("session cleared")
	fmt.Fprintln(cmd.OutOrStdout(), "Session cleared.")
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	ws, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if configWrite {
		path := configPath
		if path == "" {
			path = config.DefaultPath(ws)
		}
		if err := cfg.Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
