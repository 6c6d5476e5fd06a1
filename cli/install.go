package cli

import (
	"fmt"
	"strings"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/config"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewInstallCmd creates the install command.
func NewInstallCmd() *cobra.Command {
	var (
		agents   []string
		dryRun   bool
		force    bool
		noBackup bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install hooks for AI coding agents",
		Long: `Install hooks for AI coding agents.

Discovers all supported agents on the system and installs the hook that
denies reads of .env files. Existing hook files are backed up by default.`,
		Example: `  envguard install
  envguard install --agent claude-code
  envguard install --dry-run
  envguard install --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := loadApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if !dryRun {
				if err := config.EnsureDirectories(); err != nil {
					return ErrHookFailed("failed to create envguard directories", err)
				}
			}

			adapters, err := selectAdapters(app.Registry, agents)
			if err != nil {
				return err
			}

			view := &tui.InstallView{
				Config:     app.Paths.ConfigFile,
				BackupsDir: app.Paths.BackupsDir,
				DryRun:     dryRun,
			}
			if noBackup {
				view.BackupsDir = ""
			}

			failed := 0
			for _, adapter := range adapters {
				detection, err := adapter.Detect(ctx)
				if err != nil {
					view.Agents = append(view.Agents, tui.AgentInstallView{
						Name:        adapter.Name(),
						DisplayName: adapter.DisplayName(),
						Error:       err.Error(),
					})
					failed++
					continue
				}

				agentView := tui.AgentInstallView{
					Name:        adapter.Name(),
					DisplayName: adapter.DisplayName(),
					Installed:   detection.Installed,
					Version:     detection.Version,
					Path:        detection.HooksPath,
				}

				if detection.Installed {
					opts := agent.InstallOptions{
						DryRun:    dryRun,
						Force:     force,
						Backup:    !noBackup,
						BackupDir: app.Paths.BackupsDir,
					}

					result, err := adapter.Install(ctx, opts)
					if err != nil {
						agentView.Error = err.Error()
						failed++
					} else {
						agentView.HooksInstalled = result.HooksInstalled
						agentView.BackupPaths = result.BackupPaths
						agentView.Warnings = result.Warnings
					}

					if !app.Config.IsAgentEnabled(adapter.Name()) {
						agentView.Warnings = append(agentView.Warnings,
							fmt.Sprintf("agents.%s.enabled is false, the hook will allow every call", adapter.Name()))
					}
				}

				view.Agents = append(view.Agents, agentView)
			}

			if err := app.Presenter.RenderInstall(view); err != nil {
				return err
			}

			if len(agents) > 0 && !anyDetected(view.Agents) {
				return ErrAgentNotFound(strings.Join(agents, ", "))
			}
			if failed > 0 {
				return NewCLIError(ExitHookFailed, fmt.Sprintf("hook installation failed for %d agent(s)", failed))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&agents, "agent", nil, "install for specific agent only (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be installed")
	cmd.Flags().BoolVar(&force, "force", false, "replace existing envguard hooks")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "skip backup of existing hook files")

	return cmd
}

func anyDetected(agents []tui.AgentInstallView) bool {
	for _, a := range agents {
		if a.Installed {
			return true
		}
	}
	return false
}
