package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/glorpus-work/podaac-subset/internal/logger"
	"github.com/glorpus-work/podaac-subset/pkg/config"
	"github.com/glorpus-work/podaac-subset/pkg/errors"
	"github.com/glorpus-work/podaac-subset/pkg/fsutil"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command with subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and modify podaac-subset settings.

Settings live in a YAML file (see "config show" for the effective values).
Command-line flags override the file for a single run.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigInitCmd(),
	)

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if asYAML {
				data, err := cfg.ToYAML()
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return printSettings(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print the configuration as YAML")

	return cmd
}

// printSettings writes every setting in key order followed by the derived endpoints.
func printSettings(w io.Writer, cfg *config.Config) error {
	settings := cfg.ToMap()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, TabWidth, ' ', 0)
	_, _ = fmt.Fprintln(tw, "SETTING\tVALUE")
	_, _ = fmt.Fprintln(tw, "-------\t-----")
	for _, k := range keys {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", k, settings[k])
	}
	_, _ = fmt.Fprintf(tw, "\ntoken endpoint\t%s\n", cfg.GetTokenURL())
	_, _ = fmt.Fprintf(tw, "search endpoint\t%s\n", cfg.GetSearchURL())
	_, _ = fmt.Fprintf(tw, "config file\t%s\n", getConfigPath())
	return tw.Flush()
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			value, err := cfg.GetValue(args[0])
			if err != nil {
				return fmt.Errorf("failed to get configuration value: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			path := getConfigPath()

			// Read the file itself so flag overrides are not persisted.
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.SetValue(key, value); err != nil {
				return fmt.Errorf("failed to set configuration value: %w", err)
			}
			if err := cfg.SaveConfig(path); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			logger.Success("Configuration updated", logger.Fields{"key": key, "value": value})
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			path := getConfigPath()
			if fsutil.Exists(path) && !force {
				return fmt.Errorf("%s (use --force to overwrite): %w", path, errors.ErrConfigFileExists)
			}
			if err := config.DefaultConfig().SaveConfig(path); err != nil {
				return fmt.Errorf("failed to save default configuration: %w", err)
			}
			logger.Success("Configuration file created", logger.Fields{"path": path})
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")

	return cmd
}
