// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/streamdex-cli/streamdex/aggregate"
	"github.com/streamdex-cli/streamdex/client"
	"github.com/streamdex-cli/streamdex/constant"
	"github.com/streamdex-cli/streamdex/dedupe"
	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/session"
	"github.com/streamdex-cli/streamdex/style"
	"github.com/streamdex-cli/streamdex/track"
	"github.com/streamdex-cli/streamdex/util"
)

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool

	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	inputC     textinput.Model
	episodeC   textinput.Model
	historyC   list.Model
	resultsC   list.Model
	streamsC   list.Model
	helpC      help.Model

	api       *client.Client
	searchAgg *aggregate.Aggregator
	streamAgg *aggregate.Aggregator
	tracker   track.Tracker

	snapshot session.Snapshot

	searchKind    media.Kind
	searchQuery   string
	searchChannel <-chan aggregate.Result
	streamChannel <-chan aggregate.Result
	cancelSearch  context.CancelFunc
	cancelStreams context.CancelFunc

	selectedItem   *media.Candidate
	selectedStream *media.Candidate
	rawStreams     []*media.Candidate
	historyHint    mo.Option[session.Hint]

	resultsStatus string
	streamsStatus string

	progress       *track.ProgressWriter
	playbackOffset float64
	duration       float64

	lastError        error
	searchSuggestion mo.Option[string]

	width, height int

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if !lo.Contains([]state{loadingState, watchState}, b.state) {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.resultsC.SetSize(listWidth, listHeight)
	b.resultsC.Help.Width = listWidth

	b.streamsC.SetSize(listWidth, listHeight)
	b.streamsC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = listWidth
}

func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	return tea.Batch(b.resultsC.StartSpinner(), b.streamsC.StartSpinner())
}

func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.resultsC.StopSpinner()
	b.streamsC.StopSpinner()
	return nil
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		api:        client.Default(),
		searchKind: media.KindMovie,
	}

	bubble.searchAgg = aggregate.New(dedupe.FromConfig(), filter.State{})
	bubble.streamAgg = aggregate.New(dedupe.FromConfig(), filter.FromConfig())
	bubble.tracker = &track.ServiceTracker{API: bubble.api}

	makeList := func(title string, description bool, titleBackground mo.Option[lipgloss.Color]) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if background, ok := titleBackground.Get(); ok {
			listC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(background).Padding(0, 1)
		}
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(style.AccentColor)

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Search (v%s)", constant.Version)
	bubble.inputC.CharLimit = 60
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.episodeC = textinput.New()
	bubble.episodeC.Placeholder = "s01e01"
	bubble.episodeC.CharLimit = 12
	bubble.episodeC.Prompt = "Episode: "

	bubble.historyC = makeList("History", true, mo.Some(style.Yellow))
	bubble.historyC.SetStatusBarItemName("entry", "entries")

	bubble.resultsC = makeList("Results", true, mo.Some(style.Lavender))
	bubble.resultsC.SetStatusBarItemName("result", "results")

	bubble.streamsC = makeList("Streams", true, mo.Some(style.Peach))
	bubble.streamsC.SetStatusBarItemName("stream", "streams")

	bubble.options = options

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
