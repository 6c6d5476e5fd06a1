// Package utils holds helpers shared by the agent adapters.
package utils

import (
	"fmt"
	"strings"
)

// EnvguardCommand returns the envguard executable command.
// It assumes envguard is on PATH.
func EnvguardCommand() string {
	return "envguard"
}

// HookCommand returns the command line an agent runs for the given hook.
func HookCommand(agentName, hookType string) string {
	return fmt.Sprintf("%s _hook %s %s", EnvguardCommand(), agentName, hookType)
}

// IsEnvguardCommand checks if a command string is an envguard hook command.
func IsEnvguardCommand(cmd string) bool {
	return strings.HasPrefix(strings.TrimSpace(cmd), EnvguardCommand()+" ")
}
