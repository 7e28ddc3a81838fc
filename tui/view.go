// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"

	"github.com/streamdex-cli/streamdex/color"
	"github.com/streamdex-cli/streamdex/icon"
	"github.com/streamdex-cli/streamdex/style"
	"github.com/streamdex-cli/streamdex/util"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

func (b *statefulBubble) View() string {
	switch b.state {
	case loadingState:
		return b.viewLoading()
	case historyState:
		return listExtraPaddingStyle.Render(b.historyC.View())
	case searchState:
		return b.viewSearch()
	case resultsState:
		return b.viewResults()
	case episodePickState:
		return b.viewEpisodePick()
	case streamsState:
		return b.viewStreams()
	case watchState:
		return b.viewWatch()
	case errorState:
		return b.viewError()
	default:
		return "Unknown state"
	}
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.resultsStatus,
		},
	)
}

func (b *statefulBubble) viewSearch() string {
	lines := []string{
		style.Title(fmt.Sprintf("Search %s", util.Capitalize(string(b.searchKind)))),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.searchSuggestion.Get(); ok {
		lines = append(lines, "", style.Faint("suggestion: "+suggestion))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewResults() string {
	view := b.resultsC.View()
	if b.resultsStatus != "" {
		view += "\n" + style.Faint(b.resultsStatus)
	}
	return listExtraPaddingStyle.Render(view)
}

func (b *statefulBubble) viewEpisodePick() string {
	var title string
	if b.selectedItem != nil {
		title = b.selectedItem.Title
	}

	return b.renderLines(
		true,
		[]string{
			style.Title("Pick Episode"),
			"",
			style.Fg(color.Purple)(title),
			"",
			b.episodeC.View(),
			"",
			style.Faint(`formats: "s01e03", "1x3" or a bare episode number`),
		},
	)
}

func (b *statefulBubble) viewStreams() string {
	view := b.streamsC.View()

	st := b.streamAgg.Filter()
	status := fmt.Sprintf("sort: %s", st.SortBy)
	if st.CachedOnly {
		status += ", cached only"
	}
	if b.streamsStatus != "" {
		status += " | " + b.streamsStatus
	}
	view += "\n" + style.Faint(status)

	return listExtraPaddingStyle.Render(view)
}

func (b *statefulBubble) viewWatch() string {
	var streamName string
	if b.selectedStream != nil {
		streamName = b.selectedStream.Title
	}

	lines := []string{
		style.Title("Now Watching"),
		"",
		style.Truncate(b.width)(fmt.Sprintf(icon.Get(icon.Progress)+" %s", style.Fg(color.Purple)(streamName))),
		"",
		style.Truncate(b.width)(b.spinnerC.View() + " " + fmt.Sprintf("position %s", formatOffset(b.playbackOffset))),
	}

	if b.selectedStream != nil && b.selectedStream.URL != "" {
		lines = append(lines, "", style.Faint(b.selectedStream.URL))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("%v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)

	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

func formatOffset(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
