package cli

import (
	"os"

	"github.com/safedep/envguard/core/security"
	"github.com/safedep/envguard/internal/version"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show installation status",
		Long: `Show installation status.

Displays the current status of the tool including:
- Tool version
- Whether protection is enabled and how check errors are handled
- Installed agents and their hook status
- Configuration location`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := getFormat(format)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			app.UsePresenter(f, cmd.OutOrStdout())

			view := &tui.StatusView{
				Version: version.Version,
				Guard:   guardStatus(app.Security, app.Config.Guard.FailOpen),
			}

			for _, adapter := range app.Registry.All() {
				detection, _ := adapter.Detect(ctx)
				hookStatus, _ := adapter.Status(ctx)

				agentView := tui.AgentStatusView{
					Name:        adapter.Name(),
					DisplayName: adapter.DisplayName(),
					Enabled:     app.Config.IsAgentEnabled(adapter.Name()),
				}

				if detection != nil && detection.Installed {
					agentView.Installed = true
					agentView.Version = detection.Version
					agentView.HooksPath = detection.HooksPath
				}

				if hookStatus != nil {
					agentView.HooksCount = len(hookStatus.Hooks)
					agentView.HooksActive = hookStatus.Installed
					agentView.HooksValid = hookStatus.Valid
					agentView.Issues = hookStatus.Issues
				}

				view.Agents = append(view.Agents, agentView)
			}

			view.Config = tui.ConfigStatusView{Location: app.Paths.ConfigFile}
			if _, err := os.Stat(app.Paths.ConfigFile); err == nil {
				view.Config.Exists = true
			}

			return app.Presenter.RenderStatus(view)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

func guardStatus(sec *security.Evaluator, failOpen bool) tui.GuardStatusView {
	view := tui.GuardStatusView{FailOpen: failOpen, Checks: []string{}}
	for _, check := range sec.Checks() {
		if check.Enabled() {
			view.Enabled = true
			view.Checks = append(view.Checks, check.Name())
		}
	}
	return view
}
