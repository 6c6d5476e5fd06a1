package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

const (
	defaultTableWidth = 80
	minTableWidth     = 60
	maxTableWidth     = 200
)

// stdoutWidth returns the stdout width clamped to the table bounds, or
// defaultTableWidth when stdout is not a terminal.
func stdoutWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width <= 0:
		return defaultTableWidth
	case width < minTableWidth:
		return minTableWidth
	case width > maxTableWidth:
		return maxTableWidth
	}
	return width
}

// TablePresenter renders output in table format.
type TablePresenter struct {
	out       *tableWriter
	color     *Colorizer
	termWidth int
	verbose   bool
}

// NewTablePresenter creates a new table presenter.
func NewTablePresenter(opts PresenterOptions) *TablePresenter {
	termWidth := opts.TerminalWidth
	if termWidth == 0 {
		termWidth = stdoutWidth()
	}
	return &TablePresenter{
		out:       &tableWriter{w: opts.Writer},
		color:     NewColorizer(opts.UseColors),
		termWidth: termWidth,
		verbose:   opts.Verbose,
	}
}

func onOff(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

// RenderStatus renders the tool status.
func (p *TablePresenter) RenderStatus(status *StatusView) error {
	w := p.out
	w.printf("%s\n\n", p.color.Header("envguard "+status.Version))

	w.printf("%s\n", p.color.Header("Guard"))
	guardState := p.color.Success(onOff(status.Guard.Enabled))
	if !status.Guard.Enabled {
		guardState = p.color.Warning(onOff(false))
	}
	w.printf("  %-14s %s\n", "Protection", guardState)
	failMode := "closed"
	if status.Guard.FailOpen {
		failMode = p.color.Warning("open")
	}
	w.printf("  %-14s %s\n", "On error", failMode)
	w.printf("  %-14s %s\n", "Checks", strings.Join(status.Guard.Checks, ", "))
	w.println()

	w.printf("%s\n", p.color.Header("Agents"))
	for _, agent := range status.Agents {
		var state, versionStr, hooksStr string

		if agent.Installed {
			state = "installed"
			versionStr = agent.Version
			if versionStr == "" {
				versionStr = "-"
			}
			switch {
			case !agent.HooksActive:
				hooksStr = p.color.Dim("hooks: not active")
			case !agent.HooksValid:
				hooksStr = p.color.Warning(fmt.Sprintf("hooks: %d active, needs repair", agent.HooksCount))
			default:
				hooksStr = p.color.Success(fmt.Sprintf("hooks: %d active", agent.HooksCount))
			}
			if !agent.Enabled {
				hooksStr += p.color.Dim(" (disabled in config)")
			}
		} else {
			state = "not found"
			versionStr = "-"
			hooksStr = "-"
		}

		w.printf("  %s %-12s %-12s %s\n",
			p.color.Agent(PadRight(agent.Name, 14)), state, TruncateString(versionStr, 12), hooksStr)

		if p.verbose {
			if agent.HooksPath != "" {
				w.printf("  %-14s %s\n", "", p.color.Path(agent.HooksPath))
			}
			for _, issue := range agent.Issues {
				w.printf("  %-14s %s\n", "", p.color.Dim(issue))
			}
		}
	}
	w.println()

	w.printf("%s\n", p.color.Header("Config"))
	location := status.Config.Location
	if !status.Config.Exists {
		location += p.color.Dim(" (defaults)")
	}
	w.printf("  %-14s %s\n", "Location", p.color.Path(location))

	return w.Err()
}

// RenderCheck renders path verdicts, one line per path.
func (p *TablePresenter) RenderCheck(result *CheckView) error {
	w := p.out
	if len(result.Results) == 0 {
		w.println("No paths checked.")
		return w.Err()
	}

	pathWidth := p.termWidth - 12
	if pathWidth < 20 {
		pathWidth = 20
	}

	for _, r := range result.Results {
		verdict := p.color.Success(PadRight("allow", 6))
		if !r.Allowed {
			verdict = p.color.Denied(PadRight("deny", 6))
		}
		w.printf("  %s %s\n", verdict, p.color.Path(TruncatePathLeft(r.Path, pathWidth)))
		if !r.Allowed && p.verbose && r.Reason != "" {
			w.printf("         %s\n", p.color.Dim(r.Reason))
		}
	}
	w.println()

	summary := fmt.Sprintf("%s checked for tool %q, %d denied.",
		FormatCount(len(result.Results), "path", "paths"), result.Tool, result.Denied)
	if result.Denied > 0 {
		w.println(p.color.Warning(summary))
	} else {
		w.println(summary)
	}

	return w.Err()
}

// RenderInstall renders the installation result.
func (p *TablePresenter) RenderInstall(result *InstallView) error {
	w := p.out
	w.println("Discovering agents...")
	w.println()

	for _, agent := range result.Agents {
		if agent.Installed {
			w.printf("  %s  %s %s\n", p.color.StatusOK(), agent.DisplayName, agent.Version)
			if agent.Path != "" {
				w.printf("        %s\n", p.color.Path(agent.Path))
			}
		} else {
			w.printf("  %s  %s\n", p.color.StatusSkip(), agent.DisplayName)
			w.printf("        not installed\n")
		}
	}
	w.println()

	if result.DryRun {
		w.println("Hooks that would be installed:")
	} else {
		w.println("Installing hooks...")
	}
	w.println()

	failed := false
	for _, agent := range result.Agents {
		if agent.Error != "" {
			failed = true
			w.printf("  %s\n", agent.DisplayName)
			w.printf("    -> %s %s\n", p.color.StatusFail(), p.color.Error(agent.Error))
			w.println()
			continue
		}
		if !agent.Installed || len(agent.HooksInstalled) == 0 {
			continue
		}

		w.printf("  %s\n", agent.DisplayName)
		for _, hook := range agent.HooksInstalled {
			w.printf("    -> %s %s\n", PadRight(hook+" hook", 40), p.color.StatusOK())
		}
		for _, name := range sortedKeys(agent.BackupPaths) {
			w.printf("    -> Backed up %s to %s\n", name, p.color.Path(agent.BackupPaths[name]))
		}
		for _, warning := range agent.Warnings {
			w.printf("    -> Note: %s\n", warning)
		}
		w.println()
	}

	if result.DryRun {
		w.println("Dry run, no changes made.")
		return w.Err()
	}

	if failed {
		w.println(p.color.Warning("Installation finished with errors."))
	} else {
		w.println("Installation complete.")
	}
	w.println()
	w.printf("  %-11s %s\n", "Config", p.color.Path(result.Config))
	if result.BackupsDir != "" {
		w.printf("  %-11s %s\n", "Backups", p.color.Path(result.BackupsDir))
	}
	w.println()
	w.println("Run 'envguard status' to verify.")

	return w.Err()
}

// RenderUninstall renders the uninstallation result.
func (p *TablePresenter) RenderUninstall(result *UninstallView) error {
	w := p.out
	if result.DryRun {
		w.println("Hooks that would be removed:")
	} else {
		w.println("Uninstalling hooks...")
	}
	w.println()

	removed := 0
	for _, agent := range result.Agents {
		if agent.Error != "" {
			w.printf("  %s\n", agent.DisplayName)
			w.printf("    -> %s %s\n", p.color.StatusFail(), p.color.Error(agent.Error))
			w.println()
			continue
		}
		if len(agent.HooksRemoved) == 0 {
			continue
		}

		w.printf("  %s\n", agent.DisplayName)
		for _, hook := range agent.HooksRemoved {
			w.printf("    -> Removed %s hook\n", hook)
			removed++
		}
		if agent.BackupsRestored {
			w.printf("    -> Backups restored\n")
		}
		w.println()
	}

	switch {
	case removed == 0:
		w.println("No envguard hooks found.")
	case result.DryRun:
		w.println("Dry run, no changes made.")
	default:
		w.println("Uninstallation complete.")
	}

	return w.Err()
}

// RenderDoctor renders the doctor check results.
func (p *TablePresenter) RenderDoctor(result *DoctorView) error {
	w := p.out
	w.printf("%s\n", p.color.Header("Doctor"))
	w.line(p.termWidth)
	w.println()

	for _, check := range result.Checks {
		var statusStr string
		switch check.Status {
		case CheckOK:
			statusStr = p.color.StatusOK()
		case CheckWarn:
			statusStr = p.color.StatusWarn()
		case CheckFail:
			statusStr = p.color.StatusFail()
		}

		w.printf("  %s  %s\n", statusStr, check.Name)
		if check.Message != "" {
			w.printf("        %s\n", check.Message)
		}
		if check.Suggestion != "" && check.Status != CheckOK {
			w.printf("        %s\n", p.color.Dim(check.Suggestion))
		}
	}
	w.println()

	if result.AllOK {
		w.println(p.color.Success("All checks passed."))
	} else {
		w.println(p.color.Warning("Some checks failed. See suggestions above."))
	}

	return w.Err()
}

// RenderConfig renders the configuration.
func (p *TablePresenter) RenderConfig(config *ConfigView) error {
	w := p.out
	w.printf("%s\n", p.color.Header("Configuration"))
	w.printf("Location: %s\n", p.color.Path(config.Location))
	w.line(p.termWidth)
	w.println()

	p.renderConfigMap(config.Values, "")

	return w.Err()
}

func (p *TablePresenter) renderConfigMap(m map[string]interface{}, prefix string) {
	for _, key := range sortedKeys(m) {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := m[key].(type) {
		case map[string]interface{}:
			p.renderConfigMap(v, fullKey)
		default:
			p.out.printf("  %-30s %v\n", fullKey, v)
		}
	}
}

// RenderVersion renders build information.
func (p *TablePresenter) RenderVersion(version *VersionView) error {
	p.out.printf("envguard %s", version.Version)
	if version.Commit != "" && p.verbose {
		p.out.printf(" (%s)", version.Commit)
	}
	p.out.println()

	if u := version.Update; u != nil {
		switch {
		case u.Error != "":
			p.out.printf("%s %s\n", p.color.Warning("Update check failed:"), u.Error)
		case u.Available:
			p.out.printf("%s %s\n", p.color.Success("Update available:"), u.LatestVersion)
			if u.ReleaseURL != "" {
				p.out.printf("  %s\n", p.color.Path(u.ReleaseURL))
			}
		default:
			p.out.printf("%s\n", p.color.Dim("Up to date (latest "+u.LatestVersion+")"))
		}
	}
	return p.out.Err()
}

// RenderAgentDefs renders generated or validated agent definitions.
func (p *TablePresenter) RenderAgentDefs(result *AgentDefView) error {
	w := p.out
	if len(result.Results) == 0 {
		w.println("No agent definitions found.")
		return w.Err()
	}

	for _, r := range result.Results {
		status := p.color.StatusOK()
		if !r.Valid {
			status = p.color.StatusFail()
		}

		target := p.color.Path(r.Source)
		if r.Output != "" {
			target += " -> " + p.color.Path(r.Output)
		}
		w.printf("  %s  %s\n", status, target)

		if p.verbose {
			for _, step := range r.Steps {
				w.printf("        %s\n", p.color.Dim(step))
			}
		}
		for _, e := range r.Errors {
			w.printf("        %s\n", p.color.Error(e))
		}
	}
	w.println()

	total := len(result.Results)
	var summary string
	if result.Action == AgentDefGenerate {
		summary = fmt.Sprintf("Generated %d of %s, %d failed.", result.Passed, FormatCount(total, "agent", "agents"), result.Failed)
	} else {
		summary = fmt.Sprintf("%s checked, %d invalid.", FormatCount(total, "agent file", "agent files"), result.Failed)
	}
	if result.Failed > 0 {
		w.println(p.color.Warning(summary))
	} else {
		w.println(summary)
	}

	return w.Err()
}

// RenderError renders an error message.
func (p *TablePresenter) RenderError(err error) error {
	p.out.printf("%s %s\n", p.color.Error("Error:"), err.Error())
	return p.out.Err()
}

// RenderMessage renders a simple message.
func (p *TablePresenter) RenderMessage(message string) error {
	p.out.println(message)
	return p.out.Err()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ Presenter = (*TablePresenter)(nil)
