package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/binhbb2204/Top-Movies/cli/config"
	"github.com/binhbb2204/Top-Movies/pkg/logger"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and modify topmovies CLI configuration.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		if _, err := config.Load(); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists at %s\n", path)
			return nil
		}

		cfg, err := config.Init()
		if err != nil {
			return err
		}
		printSuccess(cmd, fmt.Sprintf("Configuration written to %s", path))
		fmt.Fprintf(cmd.OutOrStdout(), "Database: %s\n", cfg.Database.Path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration values.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			if errors.Is(err, config.ErrNotInitialized) {
				printError(cmd, "Configuration not initialized")
				fmt.Fprintln(cmd.OutOrStdout(), "Run: topmovies config init")
			}
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Current Configuration:")
		fmt.Fprintln(out, "----------------------")

		v := reflect.ValueOf(*cfg)
		t := v.Type()

		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			typeField := t.Field(i)

			fmt.Fprintf(out, "[%s]\n", typeField.Tag.Get("yaml"))
			if field.Kind() == reflect.Struct {
				for j := 0; j < field.NumField(); j++ {
					subField := field.Field(j)
					subTypeField := field.Type().Field(j)
					tag := subTypeField.Tag.Get("yaml")
					if tag == "" {
						tag = subTypeField.Name
					}
					fmt.Fprintf(out, "  %s: %v\n", tag, subField.Interface())
				}
			}
			fmt.Fprintln(out)
		}

		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Long:  `Set a configuration value. Key should be in format 'section.key' (e.g., logging.level).`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]
		value := args[1]

		cfg, err := config.Load()
		if err != nil {
			printError(cmd, "Configuration not initialized")
			return err
		}

		switch strings.ToLower(key) {
		case "server.url":
			cfg.Server.URL = strings.TrimRight(value, "/")
		case "database.path":
			cfg.Database.Path = value
		case "logging.level":
			cfg.Logging.Level = strings.ToLower(string(logger.ParseLevel(value)))
		default:
			return fmt.Errorf("unknown configuration key: %s", key)
		}

		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		printSuccess(cmd, fmt.Sprintf("Updated %s to %s", key, value))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
