package cli_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/safedep/envguard/cli"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	t          *testing.T
	home       string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithConfig(t, "")
}

func newTestEnvWithConfig(t *testing.T, configYAML string) *testEnv {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("NO_COLOR", "1")

	configPath := filepath.Join(home, "envguard.yaml")
	if configYAML == "" {
		configYAML = `guard:
  enabled: true
  fail_open: false
display:
  colors: never
`
	}
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0o600))

	return &testEnv{
		t:          t,
		home:       home,
		configPath: configPath,
	}
}

// withAgentDir creates the directory an agent's detection looks for.
func (env *testEnv) withAgentDir(rel string) string {
	env.t.Helper()
	dir := filepath.Join(env.home, rel)
	require.NoError(env.t, os.MkdirAll(dir, 0o700))
	return dir
}

func (env *testEnv) run(args ...string) (stdout, stderr string, err error) {
	env.t.Helper()
	return env.runWithInput(nil, args...)
}

func (env *testEnv) runWithInput(stdin []byte, args ...string) (stdout, stderr string, err error) {
	env.t.Helper()
	return env.runWithReader(bytes.NewReader(stdin), args...)
}

func (env *testEnv) runWithReader(stdin io.Reader, args ...string) (stdout, stderr string, err error) {
	env.t.Helper()

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetIn(stdin)

	fullArgs := append([]string{"--config", env.configPath, "--no-color"}, args...)
	rootCmd.SetArgs(fullArgs)
	err = rootCmd.ExecuteContext(context.Background())
	return outBuf.String(), errBuf.String(), err
}

func (env *testEnv) runHook(agentName, hookType string, payload []byte) (stdout string, err error) {
	env.t.Helper()

	stdout, _, err = env.runWithInput(payload, "_hook", agentName, hookType)
	return stdout, err
}

func readFixture(t *testing.T, rel string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "agent", rel))
	require.NoError(t, err)
	return data
}

// exitCode returns the code main would exit with for err.
func exitCode(err error) int {
	if err == nil {
		return cli.ExitSuccess
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return cli.ExitGeneral
}
