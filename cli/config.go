package cli

import (
	"fmt"
	"io"

	"github.com/safedep/envguard/config"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or modify configuration",
		Long: `View or modify configuration.

Values are read from the config file with ENVGUARD_* environment
variables taking precedence, e.g. ENVGUARD_GUARD_ENABLED=false.`,
	}

	cmd.AddCommand(
		newConfigShowCmd(),
		newConfigGetCmd(),
		newConfigSetCmd(),
		newConfigResetCmd(),
	)

	return cmd
}

// configFilePath returns the config file the manager should operate on.
func configFilePath() string {
	if globalFlags.ConfigPath != "" {
		return globalFlags.ConfigPath
	}
	return config.ResolvePaths().ConfigFile
}

func newConfigManager() (*config.Manager, error) {
	mgr, err := config.NewManager(configFilePath())
	if err != nil {
		return nil, ErrConfig("failed to load config", err)
	}
	return mgr, nil
}

func newConfigShowCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := getFormat(format)
			if err != nil {
				return err
			}

			mgr, err := newConfigManager()
			if err != nil {
				return err
			}

			cfg, err := mgr.Config()
			if err != nil {
				cfg = config.Default()
			}
			if globalFlags.NoColor {
				cfg.Display.Colors = config.ColorNever
			}

			presenter := tui.NewPresenter(f, tui.PresenterOptions{
				Writer:    cmd.OutOrStdout(),
				UseColors: cfg.ShouldUseColors(),
				Verbose:   globalFlags.Verbose,
			})

			return presenter.RenderConfig(&tui.ConfigView{
				Location: mgr.ConfigPath(),
				Values:   mgr.AllSettings(),
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

func newConfigGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <key>",
		Short: "Get specific config value",
		Example: `  envguard config get guard.enabled
  envguard config get agents.cursor.enabled`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			mgr, err := newConfigManager()
			if err != nil {
				return err
			}

			if !mgr.HasKey(key) {
				return NewCLIError(ExitConfig, fmt.Sprintf("key not found: %s", key))
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), mgr.Get(key))
			return err
		},
	}

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set config value",
		Example: `  envguard config set guard.fail_open false
  envguard config set agents.gemini.enabled false
  envguard config set display.colors never`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := config.ParseValue(args[1])

			mgr, err := newConfigManager()
			if err != nil {
				return err
			}

			if err := mgr.Set(key, value); err != nil {
				return ErrConfig(fmt.Sprintf("failed to set %s", key), err)
			}

			return printUnlessQuiet(cmd.OutOrStdout(), "Set %s = %v\n", key, value)
		},
	}

	return cmd
}

func newConfigResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset to default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := config.NewManager(configFilePath())
			if err != nil {
				// An unreadable file is what reset is for.
				mgr = config.NewEmptyManager(configFilePath())
			}

			if err := mgr.Reset(); err != nil {
				return ErrConfig("failed to reset config", err)
			}

			return printUnlessQuiet(cmd.OutOrStdout(), "Configuration reset to defaults.\n")
		},
	}

	return cmd
}

func printUnlessQuiet(w io.Writer, format string, args ...any) error {
	if globalFlags.Quiet {
		return nil
	}
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
