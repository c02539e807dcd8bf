package cli

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ConfigureOutput picks the colour profile for rendered output. Colour is
// dropped when stdout is piped, when NO_COLOR is set, or when noColor is true.
func ConfigureOutput(noColor bool) termenv.Profile {
	profile := termenv.EnvColorProfile()
	if noColor || !IsTerminal(os.Stdout) {
		profile = termenv.Ascii
	}
	lipgloss.SetColorProfile(profile)
	return profile
}
