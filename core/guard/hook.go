package guard

import "context"

// HookToolExecuteBefore is the host hook name invoked before a tool runs.
const HookToolExecuteBefore = "tool.execute.before"

// FilePathArg is the argument key under which hosts pass the target file path.
const FilePathArg = "filePath"

// ToolInput identifies the tool invocation about to run.
type ToolInput struct {
	Tool      string
	SessionID string
	CallID    string
}

// ToolOutput carries the arguments the tool will be executed with.
type ToolOutput struct {
	Args map[string]any
}

// FilePath returns the target file path, or "" when absent or not a string.
func (o *ToolOutput) FilePath() string {
	if o == nil || o.Args == nil {
		return ""
	}
	path, _ := o.Args[FilePathArg].(string)
	return path
}

// PluginContext is the auxiliary context a host hands to a plugin when
// registering it. The env protection hook does not use it.
type PluginContext struct {
	Project   string
	Directory string
	Worktree  string
}

// HookFunc is a host hook. A non-nil error vetoes the invocation.
type HookFunc func(ctx context.Context, input *ToolInput, output *ToolOutput) error

// Hooks maps host hook names to callbacks.
type Hooks map[string]HookFunc

// Before returns the hook registered under name, if any.
func (h Hooks) Before(name string) (HookFunc, bool) {
	fn, ok := h[name]
	return fn, ok && fn != nil
}

// EnvProtection returns the hooks that deny reads of environment files.
func EnvProtection(_ PluginContext) Hooks {
	return Hooks{
		HookToolExecuteBefore: func(_ context.Context, input *ToolInput, output *ToolOutput) error {
			if input == nil {
				return nil
			}
			return Check(input.Tool, output.FilePath())
		},
	}
}
