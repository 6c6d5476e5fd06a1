package tui

import (
	"encoding/json"
	"io"
)

// JSONPresenter renders output as JSON.
type JSONPresenter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewJSONPresenter creates a new JSON presenter.
func NewJSONPresenter(opts PresenterOptions) *JSONPresenter {
	encoder := json.NewEncoder(opts.Writer)
	encoder.SetIndent("", "  ")
	return &JSONPresenter{
		w:       opts.Writer,
		encoder: encoder,
	}
}

// RenderStatus renders the tool status as JSON.
func (p *JSONPresenter) RenderStatus(status *StatusView) error {
	return p.encoder.Encode(status)
}

// RenderCheck renders path verdicts as JSON.
func (p *JSONPresenter) RenderCheck(result *CheckView) error {
	if result.Results == nil {
		result.Results = []PathVerdictView{}
	}
	return p.encoder.Encode(result)
}

// RenderInstall renders the installation result as JSON.
func (p *JSONPresenter) RenderInstall(result *InstallView) error {
	return p.encoder.Encode(result)
}

// RenderUninstall renders the uninstallation result as JSON.
func (p *JSONPresenter) RenderUninstall(result *UninstallView) error {
	return p.encoder.Encode(result)
}

// RenderDoctor renders the doctor check results as JSON.
func (p *JSONPresenter) RenderDoctor(result *DoctorView) error {
	return p.encoder.Encode(result)
}

// RenderConfig renders the configuration as JSON.
func (p *JSONPresenter) RenderConfig(config *ConfigView) error {
	return p.encoder.Encode(config)
}

// RenderVersion renders build information as JSON.
func (p *JSONPresenter) RenderVersion(version *VersionView) error {
	return p.encoder.Encode(version)
}

// RenderAgentDefs renders agent definition results as JSON.
func (p *JSONPresenter) RenderAgentDefs(result *AgentDefView) error {
	if result.Results == nil {
		result.Results = []AgentDefResultView{}
	}
	return p.encoder.Encode(result)
}

// RenderError renders an error message as JSON.
func (p *JSONPresenter) RenderError(err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return p.encoder.Encode(output)
}

// RenderMessage renders a simple message as JSON.
func (p *JSONPresenter) RenderMessage(message string) error {
	output := struct {
		Message string `json:"message"`
	}{
		Message: message,
	}
	return p.encoder.Encode(output)
}

var _ Presenter = (*JSONPresenter)(nil)
