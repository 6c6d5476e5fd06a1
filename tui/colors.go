package tui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ANSI palette indexes used by the styles.
const (
	colorRed    = lipgloss.Color("1")
	colorGreen  = lipgloss.Color("2")
	colorYellow = lipgloss.Color("3")
	colorBlue   = lipgloss.Color("4")
	colorCyan   = lipgloss.Color("6")
	colorGray   = lipgloss.Color("8")
	colorWhite  = lipgloss.Color("15")
)

// Colorizer styles text with lipgloss when colors are enabled.
type Colorizer struct {
	enabled bool

	header  lipgloss.Style
	agent   lipgloss.Style
	path    lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	dim     lipgloss.Style
}

// NewColorizer creates a new Colorizer. The renderer is pinned to the basic
// ANSI profile so output does not depend on the writer's terminal.
func NewColorizer(enabled bool) *Colorizer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)

	return &Colorizer{
		enabled: enabled,
		header:  r.NewStyle().Bold(true).Foreground(colorWhite),
		agent:   r.NewStyle().Foreground(colorCyan),
		path:    r.NewStyle().Foreground(colorBlue),
		success: r.NewStyle().Foreground(colorGreen),
		failure: r.NewStyle().Foreground(colorRed),
		warning: r.NewStyle().Foreground(colorYellow),
		dim:     r.NewStyle().Foreground(colorGray),
	}
}

func (c *Colorizer) apply(style lipgloss.Style, text string) string {
	if !c.enabled || text == "" {
		return text
	}
	return style.Render(text)
}

// Header formats text as a header.
func (c *Colorizer) Header(text string) string {
	return c.apply(c.header, text)
}

// Agent formats an agent name.
func (c *Colorizer) Agent(text string) string {
	return c.apply(c.agent, text)
}

// Path formats a file path.
func (c *Colorizer) Path(text string) string {
	return c.apply(c.path, text)
}

// Success formats success text.
func (c *Colorizer) Success(text string) string {
	return c.apply(c.success, text)
}

// Error formats error text.
func (c *Colorizer) Error(text string) string {
	return c.apply(c.failure, text)
}

// Warning formats warning text.
func (c *Colorizer) Warning(text string) string {
	return c.apply(c.warning, text)
}

// Dim formats secondary/dim text.
func (c *Colorizer) Dim(text string) string {
	return c.apply(c.dim, text)
}

// Cyan formats text in cyan color.
func (c *Colorizer) Cyan(text string) string {
	return c.apply(c.agent, text)
}

// StatusOK formats an OK status indicator.
func (c *Colorizer) StatusOK() string {
	return c.Success("[ok]")
}

// StatusFail formats a fail status indicator.
func (c *Colorizer) StatusFail() string {
	return c.Error("[!!]")
}

// StatusWarn formats a warning status indicator.
func (c *Colorizer) StatusWarn() string {
	return c.Warning("[!!]")
}

// StatusSkip formats a skip status indicator.
func (c *Colorizer) StatusSkip() string {
	return c.Dim("[--]")
}

// Denied formats a deny verdict.
func (c *Colorizer) Denied(text string) string {
	return c.apply(c.failure.Bold(true), text)
}
