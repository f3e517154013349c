package debugger

import "github.com/charmbracelet/lipgloss"

type styles struct {
	io       lipgloss.Style
	mmio     lipgloss.Style
	i2c      lipgloss.Style
	ddc      lipgloss.Style
	vga      lipgloss.Style
	err      lipgloss.Style
	watch    lipgloss.Style
	debugger lipgloss.Style
}

// ANSI Color reference
// 0	Black
// 1	Red
// 2	Green
// 3	Yellow
// 4	Blue
// 5	Magenta
// 6	Cyan
// 7	White

func newStyles() styles {
	return styles{
		io:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		mmio:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(5)),
		i2c:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(4)),
		ddc:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(6)),
		vga:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(2)),
		err:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		watch:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(4)),
		debugger: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
	}
}
