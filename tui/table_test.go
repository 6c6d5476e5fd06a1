package tui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTablePresenter(buf *bytes.Buffer, verbose bool) *TablePresenter {
	return NewTablePresenter(PresenterOptions{
		Writer:        buf,
		UseColors:     false,
		Verbose:       verbose,
		TerminalWidth: 80,
	})
}

func TestTablePresenter_RenderCheck(t *testing.T) {
	var buf bytes.Buffer
	p := newTestTablePresenter(&buf, true)

	err := p.RenderCheck(&CheckView{
		Tool: "read",
		Results: []PathVerdictView{
			{Path: "/p/.env", BaseName: ".env", Protected: true, Allowed: false, Reason: "Reading .env files is prohibited"},
			{Path: "/p/main.go", BaseName: "main.go", Allowed: true},
		},
		Denied: 1,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "deny   /p/.env")
	assert.Contains(t, out, "allow  /p/main.go")
	assert.Contains(t, out, "Reading .env files is prohibited")
	assert.Contains(t, out, `2 paths checked for tool "read", 1 denied.`)
}

func TestTablePresenter_RenderCheck_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestTablePresenter(&buf, false).RenderCheck(&CheckView{Tool: "read"}))
	assert.Equal(t, "No paths checked.\n", buf.String())
}

func TestTablePresenter_RenderStatus(t *testing.T) {
	var buf bytes.Buffer
	p := newTestTablePresenter(&buf, false)

	err := p.RenderStatus(&StatusView{
		Version: "1.2.3",
		Guard:   GuardStatusView{Enabled: true, Checks: []string{"env-file"}},
		Agents: []AgentStatusView{
			{Name: "claude-code", Installed: true, Enabled: true, Version: "2.0.1", HooksCount: 1, HooksActive: true, HooksValid: true},
			{Name: "cursor", Installed: false},
		},
		Config: ConfigStatusView{Location: "/home/u/.config/envguard/config.yaml"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "envguard 1.2.3")
	assert.Contains(t, out, "Protection     enabled")
	assert.Contains(t, out, "On error       closed")
	assert.Contains(t, out, "env-file")
	assert.Contains(t, out, "hooks: 1 active")
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "(defaults)")
}

func TestTablePresenter_RenderInstall(t *testing.T) {
	var buf bytes.Buffer
	p := newTestTablePresenter(&buf, false)

	err := p.RenderInstall(&InstallView{
		Agents: []AgentInstallView{
			{Name: "gemini", DisplayName: "Gemini CLI", Installed: true, Version: "0.9.0", HooksInstalled: []string{"BeforeTool"}},
			{Name: "cursor", DisplayName: "Cursor", Installed: true, Error: "permission denied"},
			{Name: "opencode", DisplayName: "OpenCode"},
		},
		Config: "/cfg/config.yaml",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "BeforeTool hook")
	assert.Contains(t, out, "permission denied")
	assert.Contains(t, out, "Installation finished with errors.")
	assert.Contains(t, out, "not installed")
}

func TestTablePresenter_RenderUninstall_Nothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestTablePresenter(&buf, false).RenderUninstall(&UninstallView{
		Agents: []AgentUninstallView{{Name: "cursor", DisplayName: "Cursor"}},
	}))
	assert.Contains(t, buf.String(), "No envguard hooks found.")
}

func TestTablePresenter_RenderDoctor(t *testing.T) {
	var buf bytes.Buffer
	err := newTestTablePresenter(&buf, false).RenderDoctor(&DoctorView{
		Checks: []DoctorCheck{
			{Name: "Config", Status: CheckOK, Message: "valid"},
			{Name: "Claude Code hooks", Status: CheckWarn, Message: "not installed", Suggestion: "Run 'envguard install'"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[ok]  Config")
	assert.Contains(t, out, "[!!]  Claude Code hooks")
	assert.Contains(t, out, "Run 'envguard install'")
	assert.Contains(t, out, "Some checks failed.")
}

func TestTablePresenter_RenderConfig_SortedKeys(t *testing.T) {
	var buf bytes.Buffer
	err := newTestTablePresenter(&buf, false).RenderConfig(&ConfigView{
		Location: "/cfg/config.yaml",
		Values: map[string]interface{}{
			"guard":   map[string]interface{}{"fail_open": false, "enabled": true},
			"display": map[string]interface{}{"colors": "auto"},
		},
	})
	require.NoError(t, err)

	out := buf.String()
	colors := bytes.Index(buf.Bytes(), []byte("display.colors"))
	enabled := bytes.Index(buf.Bytes(), []byte("guard.enabled"))
	failOpen := bytes.Index(buf.Bytes(), []byte("guard.fail_open"))
	require.True(t, colors >= 0 && enabled >= 0 && failOpen >= 0, out)
	assert.Less(t, colors, enabled)
	assert.Less(t, enabled, failOpen)
}

func TestTablePresenter_RenderError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newTestTablePresenter(&buf, false).RenderError(errors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestTablePresenter_WriteFailure(t *testing.T) {
	p := NewTablePresenter(PresenterOptions{Writer: &failWriter{}, TerminalWidth: 80})
	assert.Error(t, p.RenderMessage("hello"))
}

func TestTablePresenter_RenderVersion(t *testing.T) {
	var buf bytes.Buffer
	p := newTestTablePresenter(&buf, false)

	require.NoError(t, p.RenderVersion(&VersionView{
		Version: "v0.1.0",
		Commit:  "abc123",
		Update:  &UpdateView{LatestVersion: "v0.2.0", ReleaseURL: "https://example.com/v0.2.0", Available: true},
	}))

	assert.Equal(t, "envguard v0.1.0\nUpdate available: v0.2.0\n  https://example.com/v0.2.0\n", buf.String())
}

func TestTablePresenter_RenderAgentDefs(t *testing.T) {
	var buf bytes.Buffer
	p := newTestTablePresenter(&buf, true)

	err := p.RenderAgentDefs(&AgentDefView{
		Action: AgentDefGenerate,
		Results: []AgentDefResultView{
			{Source: "specs/reviewer.yaml", Output: "agent/go-reviewer.md", Valid: true, Steps: []string{"Agent saved"}},
			{Source: "specs/broken.yaml", Errors: []string{"Missing required field: agent.role"}},
		},
		Passed: 1,
		Failed: 1,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[ok]  specs/reviewer.yaml -> agent/go-reviewer.md")
	assert.Contains(t, out, "Agent saved")
	assert.Contains(t, out, "[!!]  specs/broken.yaml")
	assert.Contains(t, out, "Missing required field: agent.role")
	assert.Contains(t, out, "Generated 1 of 2 agents, 1 failed.")
}

func TestTablePresenter_RenderAgentDefs_Validate(t *testing.T) {
	var buf bytes.Buffer
	p := newTestTablePresenter(&buf, false)

	err := p.RenderAgentDefs(&AgentDefView{
		Action:  AgentDefValidate,
		Results: []AgentDefResultView{{Source: "agent/go-reviewer.md", Valid: true, Steps: []string{"hidden"}}},
		Passed:  1,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "1 agent file checked, 0 invalid.")
	assert.NotContains(t, out, "hidden")
}

func TestStdoutWidth_WithinTableBounds(t *testing.T) {
	w := stdoutWidth()
	assert.GreaterOrEqual(t, w, minTableWidth)
	assert.LessOrEqual(t, w, maxTableWidth)
}
