// Package agentdef generates OpenCode agent definition files from YAML
// specifications and validates agent files against the agent standard.
package agentdef

import (
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Mode is the OpenCode agent mode.
type Mode string

const (
	ModePrimary  Mode = "primary"
	ModeSubagent Mode = "subagent"
)

// IsValid returns true if the mode is primary or subagent.
func (m Mode) IsValid() bool {
	return m == ModePrimary || m == ModeSubagent
}

const (
	minDescriptionLength = 60
	maxDescriptionLength = 150
)

var agentNamePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

var requiredSpecFields = []string{
	"name",
	"display_name",
	"mode",
	"description",
	"role",
	"responsibilities",
	"behavioral_guidelines",
	"workflow",
	"memory_integration",
	"quality_standards",
	"success_criteria",
}

// Spec is the root of an agent specification file.
type Spec struct {
	Agent AgentSpec `yaml:"agent"`
}

// AgentSpec describes one agent.
type AgentSpec struct {
	Name                 string          `yaml:"name"`
	DisplayName          string          `yaml:"display_name"`
	Mode                 Mode            `yaml:"mode"`
	Description          Description     `yaml:"description"`
	Model                string          `yaml:"model,omitempty"`
	Temperature          *float64        `yaml:"temperature,omitempty"`
	Tools                map[string]bool `yaml:"tools,omitempty"`
	Role                 string          `yaml:"role"`
	Responsibilities     TextList        `yaml:"responsibilities"`
	BehavioralGuidelines TextList        `yaml:"behavioral_guidelines"`
	Workflow             TextList        `yaml:"workflow"`
	MemoryIntegration    TextList        `yaml:"memory_integration"`
	QualityStandards     TextList        `yaml:"quality_standards"`
	SuccessCriteria      TextList        `yaml:"success_criteria"`
}

// Description holds the frontmatter description and optional longer text
// for the overview.
type Description struct {
	Short string `yaml:"short"`
	Long  string `yaml:"long,omitempty"`
}

// TextList accepts either a single string or a list of strings.
type TextList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *TextList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*l = TextList{value.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return err
		}
		*l = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
}

// LoadSpec reads a specification file. The raw document is returned along
// with the decoded spec so callers can validate fields the typed form hides.
func LoadSpec(path string) (*Spec, map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read specification: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, raw, fmt.Errorf("invalid specification %s: %w", path, err)
	}

	return &spec, raw, nil
}

// ValidateSpec checks a raw specification document and returns every problem
// found. An empty result means the spec can be rendered.
func ValidateSpec(raw map[string]interface{}) []string {
	agentRaw, ok := raw["agent"]
	if !ok {
		return []string{"Missing 'agent' root key"}
	}

	agent, ok := agentRaw.(map[string]interface{})
	if !ok {
		return []string{"'agent' must be a mapping"}
	}

	var errs []string
	for _, field := range requiredSpecFields {
		if _, ok := agent[field]; !ok {
			errs = append(errs, fmt.Sprintf("Missing required field: agent.%s", field))
		}
	}

	if name, ok := agent["name"]; ok {
		s, _ := name.(string)
		if !agentNamePattern.MatchString(s) {
			errs = append(errs, fmt.Sprintf("Invalid name format: %v (must be lowercase, hyphen-separated)", name))
		}
	}

	if mode, ok := agent["mode"]; ok {
		s, _ := mode.(string)
		if !Mode(s).IsValid() {
			errs = append(errs, fmt.Sprintf("Invalid mode: %v (must be 'primary' or 'subagent')", mode))
		}
	}

	if desc, ok := agent["description"]; ok {
		descMap, _ := desc.(map[string]interface{})
		short, ok := descMap["short"]
		if !ok {
			errs = append(errs, "Missing 'description.short' field")
		} else if msg := checkDescriptionLength(short); msg != "" {
			errs = append(errs, msg)
		}
	}

	return errs
}

// checkDescriptionLength returns an error message when v is not a string of
// an acceptable length, or "" when it is.
func checkDescriptionLength(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return "Description must be a string"
	}

	n := utf8.RuneCountInString(s)
	switch {
	case n < minDescriptionLength:
		return fmt.Sprintf("Description too short: %d chars (minimum %d)", n, minDescriptionLength)
	case n > maxDescriptionLength:
		return fmt.Sprintf("Description too long: %d chars (maximum %d)", n, maxDescriptionLength)
	}
	return ""
}
