package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spiffcs/checkout-ago/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
		Long: `Show or manage configuration.

When run without arguments, shows the current merged configuration.

Subcommands:
  init      Create a minimal config file
  path      Show config file locations
  defaults  Show all default values
  show      Show current merged config (same as bare 'checkout-ago config')
  set       Set a configuration value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath())
	cmd.AddCommand(NewCmdConfigDefaults())
	cmd.AddCommand(NewCmdConfigShow())
	cmd.AddCommand(NewCmdConfigSet())

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a minimal config file",
		Long: `Create a minimal config file with starter settings.

Use --global to create in ~/.config/checkout-ago/config.yaml (applies everywhere)
Use --local to create in ./.checkout-ago.yaml (applies only in this directory)
Without flags, you'll be prompted to choose.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd.InOrStdin(), cmd.OutOrStdout(), config.GetConfigPaths(), global, local)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Create global config file (~/.config/checkout-ago/config.yaml)")
	cmd.Flags().BoolVar(&local, "local", false, "Create local config file (./.checkout-ago.yaml)")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show config file locations",
		Long:  `Show the paths to global and local config files and indicate which exist.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printConfigPaths(cmd.OutOrStdout(), config.GetConfigPaths())
			return nil
		},
	}
}

// NewCmdConfigDefaults creates the config defaults subcommand.
func NewCmdConfigDefaults() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show all default configuration values",
		Long: `Show a complete configuration with all default values.

This can be redirected to create a config file with all defaults:
  checkout-ago config defaults > ~/.config/checkout-ago/config.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeConfig(cmd.OutOrStdout(), config.DefaultConfig(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current merged configuration",
		Long:  `Show the current configuration after merging defaults, global, and local configs.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout(), outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigSet creates the config set subcommand.
func NewCmdConfigSet() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the global config file. Available keys:
  backend         - Git implementation (gogit, gitcli)
  date_field      - Commit date compared (committer, author)
  output          - Plan output format (text, json)
  calendar_first  - Subtract months and years first (true, false)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigPath()
			if local {
				path = config.LocalConfigPath()
			}
			return runConfigSet(cmd.OutOrStdout(), path, args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "Write to the local config file (./.checkout-ago.yaml)")

	return cmd
}

func runConfigInit(in io.Reader, out io.Writer, paths config.ConfigPathInfo, global, local bool) error {
	if global && local {
		return fmt.Errorf("cannot specify both --global and --local")
	}

	var targetPath string
	var location string

	switch {
	case global:
		targetPath = paths.GlobalPath
		location = "global"
	case local:
		targetPath = paths.LocalPath
		location = "local"
	default:
		// Prompt user to choose
		fmt.Fprintln(out, "Where would you like to create the config file?")
		fmt.Fprintf(out, "  [1] Global (%s) - applies everywhere\n", paths.GlobalPath)
		fmt.Fprintf(out, "  [2] Local (%s) - applies only in this directory\n", paths.LocalPath)
		fmt.Fprint(out, "Choose [1/2]: ")

		choice, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && choice == "" {
			return fmt.Errorf("failed to read input: %w", err)
		}

		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			targetPath = paths.GlobalPath
			location = "global"
		case "2":
			targetPath = paths.LocalPath
			location = "local"
		default:
			return fmt.Errorf("invalid choice: %s (must be 1 or 2)", choice)
		}
		fmt.Fprintln(out)
	}

	// Check if file already exists
	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'checkout-ago config show' to view current config", targetPath)
	}

	if err := config.SaveTo(targetPath, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Fprintf(out, "Created %s config file: %s\n\n", location, targetPath)
	fmt.Fprintln(out, "Edit this file to customize checkout-ago behavior.")
	fmt.Fprintln(out, "Run 'checkout-ago config defaults' to see all available options.")

	return nil
}

func printConfigPaths(out io.Writer, paths config.ConfigPathInfo) {
	fmt.Fprintln(out, "Configuration file locations:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Global: %s (%s)\n", paths.GlobalPath, existence(paths.GlobalExists))
	fmt.Fprintf(out, "  Local:  %s (%s)\n", paths.LocalPath, existence(paths.LocalExists))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Load order: defaults -> global -> local (local overrides global)")
}

func existence(exists bool) string {
	if exists {
		return "exists"
	}
	return "not found"
}

func runConfigShow(out io.Writer, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	return writeConfig(out, cfg, format)
}

func writeConfig(out io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		yamlStr, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		fmt.Fprint(out, yamlStr)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	default:
		return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
	}
	return nil
}

// runConfigSet updates one key in the file at path, keeping its other values.
func runConfigSet(out io.Writer, path, key, value string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.SaveFile(path); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s set to %s in %s.\n", key, value, path)
	return nil
}
