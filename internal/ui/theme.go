package ui

import "github.com/charmbracelet/lipgloss"

// tofi's palette: slate background tones with a single teal highlight.
var (
	Teal   = lipgloss.Color("#2AA198")
	Sky    = lipgloss.Color("#6CB6FF")
	Sand   = lipgloss.Color("#E5C07B")
	Rose   = lipgloss.Color("#E06C75")
	Leaf   = lipgloss.Color("#98C379")
	Slate  = lipgloss.Color("#3B4252")
	Dim    = lipgloss.Color("#666666")
	Bright = lipgloss.Color("#FFFFFF")

	// Semantic styles
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Teal)

	Success = lipgloss.NewStyle().
		Foreground(Leaf)

	Error = lipgloss.NewStyle().
		Foreground(Rose)

	Warning = lipgloss.NewStyle().
		Foreground(Sand)

	Info = lipgloss.NewStyle().
		Foreground(Sky)

	Muted = lipgloss.NewStyle().
		Foreground(Dim)

	Accent = lipgloss.NewStyle().
		Foreground(Teal).
		Bold(true)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Sky).
			Bold(true)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Bright)
)

const (
	IconWarn   = "! "
	IconError  = "✗ "
	IconOk     = "✓ "
	IconArrow  = "→"
	IconDot    = "·"
	IconCursor = "▸ "
)
