package cli

import (
	"github.com/safedep/envguard/core/guard"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	var (
		tool   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Check whether paths would be denied",
		Long: `Check whether paths would be denied.

Runs the same decision the agent hooks use against each path without
touching the files. Exits with code 6 when any path is denied.`,
		Example: `  envguard check .env config.yaml
  envguard check --format json ./secrets/.env.production
  envguard check --tool write .env`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := getFormat(format)
			if err != nil {
				return err
			}

			app, err := loadApp(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			app.UsePresenter(f, cmd.OutOrStdout())

			view := evaluatePaths(tool, args, app.Config.Guard.Enabled)
			if err := app.Presenter.RenderCheck(view); err != nil {
				return err
			}

			if view.Denied > 0 {
				return ErrDenied(view.Denied)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tool, "tool", guard.ToolRead, "tool kind to evaluate the paths for")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

// evaluatePaths runs the guard predicate over paths. A disabled guard allows
// every path but still reports which ones are protected.
func evaluatePaths(tool string, paths []string, enabled bool) *tui.CheckView {
	view := &tui.CheckView{
		Tool:    tool,
		Results: make([]tui.PathVerdictView, 0, len(paths)),
	}

	for _, path := range paths {
		verdict := tui.PathVerdictView{
			Path:      path,
			BaseName:  guard.BaseName(path),
			Protected: guard.IsProtectedFile(path),
			Allowed:   true,
		}

		if enabled {
			if err := guard.Check(tool, path); err != nil {
				verdict.Allowed = false
				verdict.Reason = err.Error()
				view.Denied++
			}
		}

		view.Results = append(view.Results, verdict)
	}

	return view
}
