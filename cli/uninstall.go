package cli

import (
	"fmt"

	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd() *cobra.Command {
	var (
		agents        []string
		dryRun        bool
		restoreBackup bool
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove hooks from AI coding agents",
		Long: `Remove hooks from AI coding agents.

Removes envguard hooks from all or specified agents. Hooks that other
tools installed are left in place.`,
		Example: `  envguard uninstall
  envguard uninstall --agent cursor
  envguard uninstall --restore-backup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			app, err := loadApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			adapters, err := selectAdapters(app.Registry, agents)
			if err != nil {
				return err
			}

			view := &tui.UninstallView{DryRun: dryRun}

			failed := 0
			for _, adapter := range adapters {
				opts := agent.UninstallOptions{
					DryRun:        dryRun,
					RestoreBackup: restoreBackup,
					BackupDir:     app.Paths.BackupsDir,
				}

				result, err := adapter.Uninstall(ctx, opts)
				if err != nil {
					view.Agents = append(view.Agents, tui.AgentUninstallView{
						Name:        adapter.Name(),
						DisplayName: adapter.DisplayName(),
						Error:       err.Error(),
					})
					failed++
					continue
				}

				view.Agents = append(view.Agents, tui.AgentUninstallView{
					Name:            adapter.Name(),
					DisplayName:     adapter.DisplayName(),
					HooksRemoved:    result.HooksRemoved,
					BackupsRestored: result.BackupsRestored,
				})
			}

			if err := app.Presenter.RenderUninstall(view); err != nil {
				return err
			}

			if failed > 0 {
				return NewCLIError(ExitHookFailed, fmt.Sprintf("hook removal failed for %d agent(s)", failed))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&agents, "agent", nil, "uninstall from specific agent only (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be removed")
	cmd.Flags().BoolVar(&restoreBackup, "restore-backup", false, "restore the hook file backed up by install")

	return cmd
}
