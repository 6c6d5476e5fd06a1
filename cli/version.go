package cli

import (
	"github.com/safedep/envguard/config"
	"github.com/safedep/envguard/internal/selfupdate"
	"github.com/safedep/envguard/internal/version"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	var (
		format string
		check  bool
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Example: `  envguard version
  envguard version --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := getFormat(format)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				cfg = config.Default()
			}
			app := NewApp(cfg, cmd.OutOrStdout())
			app.UsePresenter(f, cmd.OutOrStdout())

			view := &tui.VersionView{
				Version: version.Version,
				Commit:  version.Commit,
			}

			if check {
				view.Update = checkForUpdate(cmd, selfupdate.NewChecker())
			}

			return app.Presenter.RenderVersion(view)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")

	return cmd
}

func checkForUpdate(cmd *cobra.Command, checker *selfupdate.Checker) *tui.UpdateView {
	result, err := tui.RunWithSpinner("Checking for updates...", func() (*selfupdate.Result, error) {
		return checker.Check(cmd.Context(), version.Version)
	}, tui.WithWriter(cmd.ErrOrStderr()))
	if err != nil {
		return &tui.UpdateView{Error: err.Error()}
	}

	return &tui.UpdateView{
		LatestVersion: result.LatestVersion,
		ReleaseURL:    result.ReleaseURL,
		Available:     result.UpdateAvailable,
	}
}
