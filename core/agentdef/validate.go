package agentdef

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RequiredSections must appear in every agent file.
var RequiredSections = []string{
	"## Overview",
	"## Core Responsibilities",
	"## Behavioral Guidelines",
	"## Workflow",
	"## Memory Integration",
	"## Quality Standards",
	"## Success Criteria",
}

// SubagentEnforcementMarkers must appear in every subagent file.
var SubagentEnforcementMarkers = []string{
	"MANDATORY WORKFLOW STEPS",
	"BLOCKING PATTERNS",
	"EXECUTION VALIDATION",
	"ENFORCEMENT RULE",
}

// placeholders are matched case-insensitively.
var placeholders = []string{
	"[TODO]",
	"[FILL IN]",
	"[PLACEHOLDER]",
	"[ADD CONTENT]",
	"{TODO}",
	"{FILL IN}",
}

// splitFrontmatter returns the YAML between the leading "---" markers and
// the body after them. ok is false when the markers are missing.
func splitFrontmatter(content string) (frontmatter, body string, ok bool) {
	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// ValidateContent checks agent markdown against the agent standard and
// returns every violation found.
func ValidateContent(content string, mode Mode) []string {
	var errs []string

	if !strings.HasPrefix(content, "---") {
		errs = append(errs, "Missing YAML frontmatter")
	} else if fm, _, ok := splitFrontmatter(content); !ok {
		errs = append(errs, "Invalid YAML frontmatter structure")
	} else {
		errs = append(errs, validateFrontmatter(fm)...)
	}

	for _, section := range RequiredSections {
		if !strings.Contains(content, section) {
			errs = append(errs, fmt.Sprintf("Missing required section: %s", section))
		}
	}

	if mode == ModeSubagent {
		for _, marker := range SubagentEnforcementMarkers {
			if !strings.Contains(content, marker) {
				errs = append(errs, fmt.Sprintf("Missing enforcement marker: %s", marker))
			}
		}
	}

	lower := strings.ToLower(content)
	for _, p := range placeholders {
		if strings.Contains(lower, strings.ToLower(p)) {
			errs = append(errs, fmt.Sprintf("Found placeholder: %s", p))
		}
	}

	return errs
}

func validateFrontmatter(fm string) []string {
	var meta map[string]interface{}
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return []string{fmt.Sprintf("Invalid YAML in frontmatter: %v", err)}
	}

	var errs []string
	if desc, ok := meta["description"]; !ok {
		errs = append(errs, "Missing 'description' in frontmatter")
	} else if msg := checkDescriptionLength(desc); msg != "" {
		errs = append(errs, msg)
	}

	if mode, ok := meta["mode"]; !ok {
		errs = append(errs, "Missing 'mode' in frontmatter")
	} else if s, _ := mode.(string); !Mode(s).IsValid() {
		errs = append(errs, fmt.Sprintf("Invalid mode: %v (must be 'primary' or 'subagent')", mode))
	}

	return errs
}

// ValidateFile validates an existing agent file. The mode is taken from the
// frontmatter and defaults to subagent.
func ValidateFile(path string) *Result {
	result := &Result{Source: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = []string{fmt.Sprintf("failed to read agent file: %v", err)}
		return result
	}
	content := string(data)

	fm, _, ok := splitFrontmatter(content)
	if !ok {
		result.Errors = []string{"Invalid file structure: missing frontmatter"}
		return result
	}

	result.Mode = ModeSubagent
	var meta struct {
		Mode Mode `yaml:"mode"`
	}
	if err := yaml.Unmarshal([]byte(fm), &meta); err == nil && meta.Mode != "" {
		result.Mode = meta.Mode
	}

	result.Errors = ValidateContent(content, result.Mode)
	result.Valid = len(result.Errors) == 0
	return result
}
