package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorizer_Disabled(t *testing.T) {
	c := NewColorizer(false)

	assert.Equal(t, "Agents", c.Header("Agents"))
	assert.Equal(t, "/p/.env", c.Path("/p/.env"))
	assert.Equal(t, "deny", c.Denied("deny"))
	assert.Equal(t, "[ok]", c.StatusOK())
	assert.Equal(t, "[!!]", c.StatusFail())
	assert.Equal(t, "[!!]", c.StatusWarn())
	assert.Equal(t, "[--]", c.StatusSkip())
}

func TestColorizer_Enabled(t *testing.T) {
	c := NewColorizer(true)

	styled := c.Error("blocked")
	assert.NotEqual(t, "blocked", styled)
	assert.Contains(t, styled, "blocked")
	assert.True(t, strings.HasPrefix(styled, "\x1b["), "expected ANSI escape prefix, got %q", styled)

	assert.Contains(t, c.StatusOK(), "[ok]")
}

func TestColorizer_EmptyText(t *testing.T) {
	assert.Equal(t, "", NewColorizer(true).Success(""))
}
