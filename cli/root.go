// Package cli provides the command-line interface for envguard.
package cli

import (
	"io"
	"os"

	"github.com/safedep/dry/log"
	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/agent/claudecode"
	"github.com/safedep/envguard/agent/cursor"
	"github.com/safedep/envguard/agent/gemini"
	"github.com/safedep/envguard/agent/opencode"
	"github.com/safedep/envguard/config"
	"github.com/safedep/envguard/core/security"
	"github.com/safedep/envguard/internal/version"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// App holds the application dependencies.
type App struct {
	Config    *config.Config
	Registry  *agent.Registry
	Presenter tui.Presenter
	Paths     *config.Paths
	Security  *security.Evaluator
}

// NewApp creates a new App with the given configuration, rendering to out.
func NewApp(cfg *config.Config, out io.Writer) *App {
	paths := config.ResolvePaths()
	if globalFlags.ConfigPath != "" {
		paths.ConfigFile = globalFlags.ConfigPath
	}

	registry := agent.NewRegistry()
	claudecode.Register(registry)
	cursor.Register(registry)
	gemini.Register(registry)
	opencode.Register(registry)

	if globalFlags.Quiet {
		out = io.Discard
	}

	presenter := tui.NewPresenter(tui.FormatTable, tui.PresenterOptions{
		Writer:    out,
		UseColors: cfg.ShouldUseColors(),
		Verbose:   globalFlags.Verbose,
	})

	sec := security.New(&security.Config{FailOpen: cfg.Guard.FailOpen})
	sec.RegisterCheck(security.NewEnvFileCheck(cfg.Guard.Enabled))

	return &App{
		Config:    cfg,
		Registry:  registry,
		Presenter: presenter,
		Paths:     paths,
		Security:  sec,
	}
}

// UsePresenter switches the output format, keeping the color and verbosity settings.
func (a *App) UsePresenter(format tui.Format, out io.Writer) {
	if globalFlags.Quiet {
		out = io.Discard
	}
	a.Presenter = tui.NewPresenter(format, tui.PresenterOptions{
		Writer:    out,
		UseColors: a.Config.ShouldUseColors(),
		Verbose:   globalFlags.Verbose,
	})
}

// GlobalFlags holds the global command flags.
type GlobalFlags struct {
	ConfigPath string
	Verbose    bool
	Quiet      bool
	NoColor    bool
}

var globalFlags GlobalFlags

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "envguard",
		Short: "Keep AI coding agents from reading .env files",
		Long: `envguard stops AI coding agents from reading environment files.

It installs a pre-tool hook into supported agents (Claude Code, Cursor,
Gemini CLI, OpenCode). When the agent's file read tool targets a file whose
name is .env or starts with .env. the call is denied and the agent is told
to use environment variables or configuration management instead.`,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("NO_COLOR") != "" || os.Getenv("ENVGUARD_NO_COLOR") != "" {
				globalFlags.NoColor = true
			}

			setupInternalLogger()

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigPath, "config", "c", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Verbose, "verbose", "v", false, "increase output verbosity")
	rootCmd.PersistentFlags().BoolVarP(&globalFlags.Quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&globalFlags.NoColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(
		NewInstallCmd(),
		NewUninstallCmd(),
		NewStatusCmd(),
		NewDoctorCmd(),
		NewCheckCmd(),
		NewAgentsCmd(),
		NewConfigCmd(),
		NewVersionCmd(),
		NewHookCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// setupInternalLogger initializes the dry logger. The stdout logger stays
// off because stdout belongs to the presenter and the hook protocol.
func setupInternalLogger() {
	_ = os.Setenv("APP_LOG_SKIP_STDOUT_LOGGER", "true")

	log.Init("envguard", "cli")
}

// loadConfig reads the configuration named by --config or the default location.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(globalFlags.ConfigPath)
	if err != nil {
		return nil, err
	}

	if globalFlags.NoColor {
		cfg.Display.Colors = config.ColorNever
	}
	return cfg, nil
}

// loadApp loads the application with configuration.
func loadApp(out io.Writer) (*App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, ErrConfig("failed to load config", err)
	}

	return NewApp(cfg, out), nil
}

// getFormat returns the output format from flags or default.
func getFormat(format string) (tui.Format, error) {
	if format == "" {
		return tui.FormatTable, nil
	}
	f, err := tui.ParseFormat(format)
	if err != nil {
		return "", NewCLIError(ExitGeneral, err.Error())
	}
	return f, nil
}

// selectAdapters resolves --agent values against the registry.
func selectAdapters(registry *agent.Registry, names []string) ([]agent.Adapter, error) {
	adapters, unknown := registry.Filter(names)
	if len(unknown) > 0 {
		return nil, ErrUnknownAgents(unknown)
	}
	return adapters, nil
}
