// Package style provides consistent terminal styling via Lipgloss.
package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette for the patchbot CLI (works in 256-color and true color).
var (
	Green  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	Red    = lipgloss.AdaptiveColor{Light: "#E03C31", Dark: "#E03C31"}
	Yellow = lipgloss.AdaptiveColor{Light: "#D4A00D", Dark: "#D4A00D"}
	Cyan   = lipgloss.AdaptiveColor{Light: "#00A4B4", Dark: "#00A4B4"}
	Muted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
)

// Styles for common CLI output.
var (
	// Success for confirmations and positive outcomes.
	Success = lipgloss.NewStyle().
		Foreground(Green)

	// Warning for non-fatal cautions (skipped bundles, missing metadata).
	Warning = lipgloss.NewStyle().
		Foreground(Yellow)

	// Error for failures.
	Error = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	// Info for neutral hints and links.
	Info = lipgloss.NewStyle().
		Foreground(Cyan)

	// MutedStyle for secondary text (debug, checksums, timestamps).
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)
)
