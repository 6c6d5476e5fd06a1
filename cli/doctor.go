package cli

import (
	"context"
	"os"
	"os/exec"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/agent/utils"
	"github.com/safedep/envguard/config"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command.
func NewDoctorCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose issues with installation",
		Long: `Diagnose issues with installation.

Performs various health checks:
- Config file is readable and valid
- Protection is enabled
- The envguard binary is on PATH, where agent hooks look for it
- Agent hooks are installed and current`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := getFormat(format)
			if err != nil {
				return err
			}

			// Doctor reports a broken config instead of failing on it.
			cfg, cfgErr := loadConfig()
			if cfgErr != nil {
				cfg = config.Default()
			}
			app := NewApp(cfg, cmd.OutOrStdout())
			app.UsePresenter(f, cmd.OutOrStdout())

			view, err := tui.RunWithSpinner("Checking installation health...", func() (*tui.DoctorView, error) {
				return runDoctorChecks(ctx, app, cfgErr), nil
			}, tui.WithWriter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}

			return app.Presenter.RenderDoctor(view)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

func runDoctorChecks(ctx context.Context, app *App, cfgErr error) *tui.DoctorView {
	v := &tui.DoctorView{AllOK: true}
	add := func(check tui.DoctorCheck) {
		if check.Status == tui.CheckFail {
			v.AllOK = false
		}
		v.Checks = append(v.Checks, check)
	}

	configCheck := tui.DoctorCheck{
		Name:        "Config file",
		Description: "Check if config file exists and is valid",
	}
	switch _, statErr := os.Stat(app.Paths.ConfigFile); {
	case cfgErr != nil:
		configCheck.Status = tui.CheckFail
		configCheck.Message = cfgErr.Error()
		configCheck.Suggestion = "Fix the file or run 'envguard config reset'"
	case os.IsNotExist(statErr):
		configCheck.Status = tui.CheckOK
		configCheck.Message = "Not found, using defaults"
	case statErr != nil:
		configCheck.Status = tui.CheckFail
		configCheck.Message = "Cannot access config file: " + statErr.Error()
	default:
		configCheck.Status = tui.CheckOK
		configCheck.Message = app.Paths.ConfigFile
	}
	add(configCheck)

	guardCheck := tui.DoctorCheck{
		Name:        "Protection",
		Description: "Check if the env file check is enabled",
		Status:      tui.CheckOK,
		Message:     "Reads of .env files are denied",
	}
	if !app.Config.Guard.Enabled {
		guardCheck.Status = tui.CheckWarn
		guardCheck.Message = "guard.enabled is false, every read is allowed"
		guardCheck.Suggestion = "Run 'envguard config set guard.enabled true'"
	} else if app.Config.Guard.FailOpen {
		guardCheck.Status = tui.CheckWarn
		guardCheck.Message = "guard.fail_open is true, check errors allow the read"
		guardCheck.Suggestion = "Run 'envguard config set guard.fail_open false'"
	}
	add(guardCheck)

	binaryCheck := tui.DoctorCheck{
		Name:        "envguard on PATH",
		Description: "Check that agent hooks can run envguard",
	}
	if path, err := exec.LookPath(utils.EnvguardCommand()); err != nil {
		binaryCheck.Status = tui.CheckFail
		binaryCheck.Message = "envguard was not found on PATH, installed hooks cannot run"
		binaryCheck.Suggestion = "Add the directory holding envguard to PATH"
	} else {
		binaryCheck.Status = tui.CheckOK
		binaryCheck.Message = path
	}
	add(binaryCheck)

	for _, adapter := range app.Registry.All() {
		add(agentHookCheck(ctx, adapter, app.Config.IsAgentEnabled(adapter.Name())))
	}

	return v
}

func agentHookCheck(ctx context.Context, adapter agent.Adapter, enabled bool) tui.DoctorCheck {
	detection, _ := adapter.Detect(ctx)
	hookStatus, _ := adapter.Status(ctx)

	hookCheck := tui.DoctorCheck{
		Name:        adapter.DisplayName() + " hooks",
		Description: "Check if hooks are installed and valid",
	}

	switch {
	case detection == nil || !detection.Installed:
		hookCheck.Status = tui.CheckOK
		hookCheck.Message = "Agent not installed"
	case hookStatus == nil || !hookStatus.Installed:
		hookCheck.Status = tui.CheckWarn
		hookCheck.Message = "Hooks not installed"
		hookCheck.Suggestion = "Run 'envguard install --agent " + adapter.Name() + "'"
	case !hookStatus.Valid:
		hookCheck.Status = tui.CheckFail
		hookCheck.Message = "Hooks are invalid"
		if len(hookStatus.Issues) > 0 {
			hookCheck.Message += ": " + hookStatus.Issues[0]
		}
		hookCheck.Suggestion = "Run 'envguard install --force --agent " + adapter.Name() + "'"
	case !enabled:
		hookCheck.Status = tui.CheckWarn
		hookCheck.Message = "Hooks installed but agents." + adapter.Name() + ".enabled is false"
		hookCheck.Suggestion = "Run 'envguard config set agents." + adapter.Name() + ".enabled true'"
	default:
		hookCheck.Status = tui.CheckOK
		hookCheck.Message = "All hooks installed and valid"
	}

	return hookCheck
}
