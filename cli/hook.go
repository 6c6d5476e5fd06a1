package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/safedep/dry/log"
	"github.com/safedep/envguard/agent"
	"github.com/safedep/envguard/config"
	"github.com/safedep/envguard/core/security"
	"github.com/spf13/cobra"
)

// NewHookCmd creates the internal _hook command.
func NewHookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "_hook <agent> <type>",
		Short:  "Internal command invoked by agent hooks",
		Hidden: true,
		Args:   cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHook(cmd.Context(), cmd, args[0], args[1])
		},
	}

	return cmd
}

func runHook(ctx context.Context, cmd *cobra.Command, agentName, hookType string) error {
	// A broken config file must not switch the guard off.
	cfg, err := loadConfig()
	if err != nil {
		log.Warnf("failed to load config, using defaults: %v", err)
		cfg = config.Default()
	}

	app := NewApp(cfg, cmd.OutOrStdout())

	adapter, ok := app.Registry.Get(agentName)
	if !ok {
		return &exitError{code: ExitGeneral, message: fmt.Sprintf("envguard: unknown agent: %s", agentName)}
	}

	if !cfg.Guard.Enabled || !cfg.IsAgentEnabled(agentName) {
		log.Debugf("guard disabled for %s, allowing %s", agentName, hookType)
		// The host may still be writing the payload.
		if _, err := io.Copy(io.Discard, cmd.InOrStdin()); err != nil {
			log.Warnf("failed to drain stdin: %v", err)
		}
		return writeHookResponse(cmd, adapter.Respond(hookType, security.NewAllowResult()))
	}

	rawData, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return &exitError{code: ExitGeneral, message: fmt.Sprintf("envguard: failed to read stdin: %v", err)}
	}

	event, err := adapter.ParseEvent(ctx, hookType, rawData)
	if err != nil {
		return &exitError{code: ExitGeneral, message: fmt.Sprintf("envguard: failed to parse %s event: %v", hookType, err)}
	}

	result := app.Security.Evaluate(ctx, event)
	if !result.IsAllowed() {
		log.Debugf("blocked %s %s (%s) for %s: %s", event.ToolName, event.ID,
			event.ActionType.DisplayName(), agentName, result.BlockedBy)
	}

	return writeHookResponse(cmd, adapter.Respond(hookType, result))
}

// writeHookResponse writes the adapter's reply. A non-zero exit code is
// returned as an exitError so main can exit with it after printing stderr.
func writeHookResponse(cmd *cobra.Command, resp *agent.HookResponse) error {
	if len(resp.Stdout) > 0 {
		if _, err := cmd.OutOrStdout().Write(resp.Stdout); err != nil {
			log.Errorf("failed to write to stdout: %v", err)
		}
	}

	if resp.ExitCode != 0 {
		return &exitError{code: resp.ExitCode, message: resp.Stderr}
	}

	if resp.Stderr != "" {
		if _, err := fmt.Fprintln(cmd.ErrOrStderr(), resp.Stderr); err != nil {
			log.Errorf("failed to write to stderr: %v", err)
		}
	}
	return nil
}

// exitError is an error that carries a specific exit code.
// It implements the ExitCoder interface expected by main.
type exitError struct {
	code    int
	message string
}

// Validate that exitError implements the ExitCoder interface.
var _ ExitCoder = &exitError{}

func (e *exitError) Error() string {
	return e.message
}

// ExitCode returns the exit code for this error.
func (e *exitError) ExitCode() int {
	return e.code
}

// Message returns the message to write to stderr.
func (e *exitError) Message() string {
	if e.message == "" {
		return ""
	}
	return e.message + "\n"
}
