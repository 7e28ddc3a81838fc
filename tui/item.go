// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/streamdex-cli/streamdex/history"
	"github.com/streamdex-cli/streamdex/icon"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/style"
)

// listItem implements the list.Item interface, wrapping domain models for terminal display.
type listItem struct {
	internal interface{}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *media.Candidate:
		title = e.String()
		if e.LowConfidence && viper.GetBool(key.TUIShowLowConfidence) {
			title = fmt.Sprintf("%s %s", title, style.Fg(style.Yellow)(icon.Get(icon.Question)))
		}
	case *history.SavedEngagement:
		title = e.String()
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	return
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *media.Candidate:
		var parts []string

		if e.Quality != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.AccentColor).Render(e.Quality))
		}
		if e.Size != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(e.Size))
		}
		if e.Seeders > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).Render(fmt.Sprintf("%d seeders", e.Seeders)))
		}
		if e.Cached {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Green).Render("cached"))
		}
		if e.Provider != "" {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(e.Provider))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Subtext).Render(e.Origin.String()))
		}

		description = strings.Join(parts, " • ")
	case *history.SavedEngagement:
		progress := ""
		if fraction := e.Progress(); fraction > 0 {
			progress = lipgloss.NewStyle().Foreground(style.Yellow).Render(fmt.Sprintf(" (%.0f%%)", fraction*100))
		}
		description = fmt.Sprintf("%s%s", e.Kind, progress)
	case string:
		description = ""
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *media.Candidate:
		return e.Title
	case *history.SavedEngagement:
		return e.Title
	case string:
		return e
	default:
		return ""
	}
}
