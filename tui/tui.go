// Package tui provides the presentation layer for terminal output.
package tui

import (
	"fmt"
	"io"
	"os"
)

// Format represents the output format.
type Format string

const (
	// FormatTable is the default table format.
	FormatTable Format = "table"
	// FormatJSON is JSON format.
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON:
		return Format(s), nil
	default:
		return "", fmt.Errorf("invalid format %q (must be table or json)", s)
	}
}

// Presenter defines the interface for output rendering.
type Presenter interface {
	// RenderStatus renders the tool status.
	RenderStatus(status *StatusView) error

	// RenderCheck renders path verdicts from `envguard check`.
	RenderCheck(result *CheckView) error

	// RenderInstall renders the installation result.
	RenderInstall(result *InstallView) error

	// RenderUninstall renders the uninstallation result.
	RenderUninstall(result *UninstallView) error

	// RenderDoctor renders the doctor check results.
	RenderDoctor(result *DoctorView) error

	// RenderConfig renders the configuration.
	RenderConfig(config *ConfigView) error

	// RenderVersion renders build information.
	RenderVersion(version *VersionView) error

	// RenderAgentDefs renders generated or validated agent definitions.
	RenderAgentDefs(result *AgentDefView) error

	// RenderError renders an error message.
	RenderError(err error) error

	// RenderMessage renders a simple message.
	RenderMessage(message string) error
}

// PresenterOptions configures presenter behavior.
type PresenterOptions struct {
	// Writer is the output destination.
	Writer io.Writer
	// UseColors indicates if colors should be used.
	UseColors bool
	// Verbose increases output verbosity.
	Verbose bool
	// TerminalWidth is the width of the terminal for table rendering.
	// If 0, the width will be auto-detected.
	TerminalWidth int
}

// NewPresenter creates a new presenter for the given format.
func NewPresenter(format Format, opts PresenterOptions) Presenter {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case FormatJSON:
		return NewJSONPresenter(opts)
	default:
		return NewTablePresenter(opts)
	}
}
