package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Styles for the human-readable serialization. JSON output is never styled.
var (
	yearHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	titleStyle      = lipgloss.NewStyle().Bold(true)
	scoreStyle      = lipgloss.NewStyle().Faint(true)
	linkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Underline(true)
	segmentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// terminalWidth returns the stdout terminal width, or a sane default when
// stdout is not a terminal (pipes, tests).
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w
	}
	return 100
}
