package agentdef

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var defaultTemplates embed.FS

var templateFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// Result is the outcome of generating or validating one agent.
type Result struct {
	// Source is the spec or agent file that was processed.
	Source string
	// Output is the agent file written by a successful generation.
	Output  string
	Name    string
	Mode    Mode
	Valid   bool
	Steps   []string
	Errors  []string
	Content string
}

// Generator renders agent specifications to markdown files.
type Generator struct {
	templates *template.Template
	outputDir string
}

// NewGenerator creates a Generator writing to outputDir. Templates are read
// from templateDir when set, otherwise the built-in templates are used.
func NewGenerator(outputDir, templateDir string) (*Generator, error) {
	var fsys fs.FS
	if templateDir != "" {
		fsys = os.DirFS(templateDir)
	} else {
		sub, err := fs.Sub(defaultTemplates, "templates")
		if err != nil {
			return nil, err
		}
		fsys = sub
	}

	tmpl, err := template.New("agent").Funcs(templateFuncs).ParseFS(fsys, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Generator{templates: tmpl, outputDir: outputDir}, nil
}

// templateName returns the template used for an agent mode.
func templateName(mode Mode) (string, error) {
	switch mode {
	case ModePrimary:
		return "primary-agent.md.tmpl", nil
	case ModeSubagent:
		return "subagent.md.tmpl", nil
	default:
		return "", fmt.Errorf("unknown mode: %s", mode)
	}
}

type frontmatter struct {
	Description string          `yaml:"description"`
	Mode        Mode            `yaml:"mode"`
	Model       string          `yaml:"model,omitempty"`
	Temperature *float64        `yaml:"temperature,omitempty"`
	Tools       map[string]bool `yaml:"tools,omitempty"`
}

// Render produces the agent markdown for spec, with the mode's enforcement
// block in place.
func (g *Generator) Render(spec *Spec) (string, error) {
	agent := spec.Agent

	name, err := templateName(agent.Mode)
	if err != nil {
		return "", err
	}

	fm, err := yaml.Marshal(frontmatter{
		Description: agent.Description.Short,
		Mode:        agent.Mode,
		Model:       agent.Model,
		Temperature: agent.Temperature,
		Tools:       agent.Tools,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		Agent       AgentSpec
		Frontmatter string
	}{Agent: agent, Frontmatter: string(fm)}
	if err := g.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}

	return injectEnforcement(buf.String(), agent.Mode), nil
}

// Generate loads the spec at specPath, renders it and writes
// <outputDir>/<name>.md. With validateOutput the rendered file must pass
// ValidateContent before it is written.
func (g *Generator) Generate(specPath string, validateOutput bool) *Result {
	result := &Result{Source: specPath}

	spec, raw, err := LoadSpec(specPath)
	if raw != nil {
		if errs := ValidateSpec(raw); len(errs) > 0 {
			result.Errors = append([]string{"Specification validation failed"}, errs...)
			return result
		}
	}
	if err != nil {
		result.Errors = []string{fmt.Sprintf("Failed to load specification: %v", err)}
		return result
	}
	result.Steps = append(result.Steps, "Loaded specification", "Specification validated")
	result.Name = spec.Agent.Name
	result.Mode = spec.Agent.Mode

	content, err := g.Render(spec)
	if err != nil {
		result.Errors = []string{fmt.Sprintf("Template rendering failed: %v", err)}
		return result
	}
	result.Content = content
	result.Steps = append(result.Steps, "Agent rendered from template")

	if validateOutput {
		if errs := ValidateContent(content, spec.Agent.Mode); len(errs) > 0 {
			result.Errors = append([]string{"Output validation failed"}, errs...)
			return result
		}
		result.Steps = append(result.Steps, "Output validated against the agent standard")
	}

	outputPath := filepath.Join(g.outputDir, spec.Agent.Name+".md")
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		result.Errors = []string{fmt.Sprintf("Failed to create output directory: %v", err)}
		return result
	}
	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		result.Errors = []string{fmt.Sprintf("Failed to save agent: %v", err)}
		return result
	}

	result.Output = outputPath
	result.Steps = append(result.Steps, "Agent saved")
	result.Valid = true
	return result
}

// GenerateBatch generates every *.yaml and *.yml spec in specDir, in name order.
func (g *Generator) GenerateBatch(specDir string, validateOutput bool) ([]*Result, error) {
	info, err := os.Stat(specDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", specDir)
	}

	var specs []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(specDir, pattern))
		if err != nil {
			return nil, err
		}
		specs = append(specs, matches...)
	}
	sort.Strings(specs)

	results := make([]*Result, 0, len(specs))
	for _, spec := range specs {
		results = append(results, g.Generate(spec, validateOutput))
	}
	return results, nil
}
