package cli

import (
	"fmt"
	"path/filepath"

	"github.com/safedep/envguard/core/agentdef"
	"github.com/safedep/envguard/tui"
	"github.com/spf13/cobra"
)

// NewAgentsCmd creates the agents command.
func NewAgentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agents",
		Short: "Generate and validate OpenCode agent definitions",
		Long: `Generate and validate OpenCode agent definitions.

Agent files are rendered from YAML specifications and checked against the
agent standard: frontmatter with a description and mode, the required
sections, no placeholders, and for subagents the enforcement markers.`,
	}

	cmd.AddCommand(
		newAgentsGenerateCmd(),
		newAgentsValidateCmd(),
	)

	return cmd
}

func newAgentsGenerateCmd() *cobra.Command {
	var (
		batch        bool
		outputDir    string
		templateDir  string
		noValidation bool
		format       string
	)

	cmd := &cobra.Command{
		Use:   "generate <spec>",
		Short: "Generate agent files from YAML specifications",
		Example: `  envguard agents generate specs/reviewer.yaml
  envguard agents generate --batch specs/
  envguard agents generate --output .opencode/agent --templates ./templates specs/reviewer.yaml`,
		Args: cobra.ExactArgs(1),
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

			generator, err := agentdef.NewGenerator(outputDir, templateDir)
			if err != nil {
				return WrapError(ExitGeneral, "failed to load agent templates", err)
			}

			var results []*agentdef.Result
			if batch {
				results, err = generator.GenerateBatch(args[0], !noValidation)
				if err != nil {
					return WrapError(ExitGeneral, "failed to read specifications", err)
				}
			} else {
				results = []*agentdef.Result{generator.Generate(args[0], !noValidation)}
			}

			return renderAgentDefs(app.Presenter, tui.AgentDefGenerate, results)
		},
	}

	cmd.Flags().BoolVar(&batch, "batch", false, "generate every *.yaml and *.yml spec in the directory")
	cmd.Flags().StringVar(&outputDir, "output", filepath.Join(".opencode", "agent"), "directory to write agent files to")
	cmd.Flags().StringVar(&templateDir, "templates", "", "directory with primary-agent.md.tmpl and subagent.md.tmpl (default: built-in)")
	cmd.Flags().BoolVar(&noValidation, "no-validation", false, "write agent files without validating them")
	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

func newAgentsValidateCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "validate <file>...",
		Short:   "Validate existing agent files",
		Example: `  envguard agents validate .opencode/agent/*.md`,
		Args:    cobra.MinimumNArgs(1),
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

			results := make([]*agentdef.Result, 0, len(args))
			for _, path := range args {
				results = append(results, agentdef.ValidateFile(path))
			}

			return renderAgentDefs(app.Presenter, tui.AgentDefValidate, results)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json")

	return cmd
}

// renderAgentDefs renders results and fails when any of them is invalid.
func renderAgentDefs(presenter tui.Presenter, action tui.AgentDefAction, results []*agentdef.Result) error {
	view := &tui.AgentDefView{
		Action:  action,
		Results: make([]tui.AgentDefResultView, 0, len(results)),
	}

	for _, r := range results {
		view.Results = append(view.Results, tui.AgentDefResultView{
			Source: r.Source,
			Output: r.Output,
			Name:   r.Name,
			Mode:   string(r.Mode),
			Valid:  r.Valid,
			Steps:  r.Steps,
			Errors: r.Errors,
		})
		if r.Valid {
			view.Passed++
		} else {
			view.Failed++
		}
	}

	if err := presenter.RenderAgentDefs(view); err != nil {
		return err
	}

	if view.Failed > 0 {
		return NewCLIError(ExitGeneral, fmt.Sprintf("%d agent definition(s) failed", view.Failed))
	}
	return nil
}
