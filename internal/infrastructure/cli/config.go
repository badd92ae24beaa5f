package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
)

var (
	configForce bool
	configJSON  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the widget configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default widget config",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}
		if _, err := os.Stat(ws.ConfigPath); err == nil && !configForce {
			return NewCLIError("config already exists", "Pass --force to overwrite "+ws.ConfigPath, nil)
		}
		if err := config.Save(ws.ConfigPath, config.Default()); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ws.ConfigPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config, after .env and environment overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if configJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the config file against the widget schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, ws, err := loadConfig()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", ws.ConfigPath)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite an existing config")
	configShowCmd.Flags().BoolVar(&configJSON, "json", false, "print JSON instead of YAML")
	configCmd.AddCommand(configInitCmd, configShowCmd, configValidateCmd)
	RootCmd.AddCommand(configCmd)
}
