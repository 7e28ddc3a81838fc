// Package color names the terminal colors used across the application.
package color

import "github.com/charmbracelet/lipgloss"

// New wraps a color value (ANSI index or hex) as a lipgloss.Color.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// The basic ANSI palette, resolved by the user's terminal theme.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
	White  = New("7")
	Black  = New("8")
)

// Bright ANSI variants.
var (
	HiRed    = New("9")
	HiGreen  = New("10")
	HiYellow = New("11")
	HiBlue   = New("12")
	HiPurple = New("13")
	HiCyan   = New("14")
	HiWhite  = New("15")
	HiBlack  = New("16")
)

// Fixed accents that have no ANSI counterpart.
var (
	Orange = New("#fb8500")
	Gray   = New("#7d7d7d")
)
