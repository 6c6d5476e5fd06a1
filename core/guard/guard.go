// Package guard implements the pre-execution hook that blocks agents from
// reading environment files such as .env and .env.local.
package guard

import (
	"regexp"
	"strings"
)

// ToolRead is the tool identifier that designates a single-file read.
// Only invocations of this tool are inspected.
const ToolRead = "read"

// envFilePattern matches base names starting with ".env" followed by either
// the end of the name or a dot.
var envFilePattern = regexp.MustCompile(`(?i)^\.env(\.|$)`)

// BaseName returns the final segment of path after the last "/".
// The whole string is returned when there is no separator. No cleaning is
// applied, so "." and ".." segments are taken as they are.
func BaseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// IsProtectedFile reports whether the base name of path is an environment file.
func IsProtectedFile(path string) bool {
	return envFilePattern.MatchString(BaseName(path))
}

// Check decides whether a tool invocation may proceed. It returns nil to allow
// and a *ProtectedReadError to deny.
func Check(tool, path string) error {
	if tool == ToolRead && IsProtectedFile(path) {
		return &ProtectedReadError{Tool: tool, Path: path}
	}
	return nil
}
