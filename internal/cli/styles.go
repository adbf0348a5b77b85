package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the renderers for text output.
type Styles struct {
	Title  lipgloss.Style
	Path   lipgloss.Style
	Name   lipgloss.Style
	Number lipgloss.Style
	Kind   lipgloss.Style
	Dim    lipgloss.Style
	Warn   lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Title:  plain,
			Path:   plain,
			Name:   plain,
			Number: plain,
			Kind:   plain,
			Dim:    plain,
			Warn:   plain,
		}
	}
	return &Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Path:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Name:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Number: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Kind:   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
