// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/streamdex-cli/streamdex/aggregate"
	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/history"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/query"
	"github.com/streamdex-cli/streamdex/session"
	"github.com/streamdex-cli/streamdex/track"
	"github.com/streamdex-cli/streamdex/util"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case spinner.TickMsg:
		if !b.loading && b.state != watchState {
			return b, nil
		}
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd

	case searchSnapshotMsg:
		return b.handleSearchSnapshot(aggregate.Result(msg))

	case searchDoneMsg:
		return b, b.stopLoading()

	case streamSnapshotMsg:
		return b.handleStreamSnapshot(aggregate.Result(msg))

	case streamsDoneMsg:
		return b, b.stopLoading()

	case engagedMsg:
		return b.handleEngaged(msg.engagement)

	case watchTickMsg:
		return b.handleWatchTick()

	case errorMsg:
		b.stopLoading()
		b.raiseError(msg)
		return b, nil

	case tea.KeyMsg:
		if key.Matches(msg, b.keymap.forceQuit) {
			b.shutdown()
			return b, tea.Quit
		}
		return b.handleKey(msg)
	}

	return b.updateComponents(msg)
}

func (b *statefulBubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch b.state {
	case searchState:
		return b.handleSearchKey(msg)
	case resultsState:
		return b.handleResultsKey(msg)
	case episodePickState:
		return b.handleEpisodePickKey(msg)
	case streamsState:
		return b.handleStreamsKey(msg)
	case historyState:
		return b.handleHistoryKey(msg)
	case watchState:
		return b.handleWatchKey(msg)
	case errorState, loadingState:
		switch {
		case key.Matches(msg, b.keymap.back):
			b.stopSearches()
			b.previousState()
			return b, nil
		case key.Matches(msg, b.keymap.quit):
			b.shutdown()
			return b, tea.Quit
		}
		return b, nil
	}

	return b.updateComponents(msg)
}

func (b *statefulBubble) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.confirm):
		q := b.inputC.Value()
		if q == "" {
			return b, nil
		}
		b.newState(loadingState)
		return b, tea.Batch(b.startSearch(q), b.spinnerC.Tick)

	case key.Matches(msg, b.keymap.acceptSearchSuggestion):
		if suggestion, ok := b.searchSuggestion.Get(); ok {
			b.inputC.SetValue(suggestion)
			b.inputC.CursorEnd()
		}
		return b, nil

	case key.Matches(msg, b.keymap.cycleKind):
		b.cycleSearchKind()
		b.inputC.Placeholder = fmt.Sprintf("Search %s", util.Capitalize(string(b.searchKind)))
		return b, nil
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)
	b.searchSuggestion = query.Suggest(b.inputC.Value())
	return b, cmd
}

func (b *statefulBubble) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.confirm):
		item, ok := b.resultsC.SelectedItem().(*listItem)
		if !ok {
			return b, nil
		}
		candidate, ok := item.internal.(*media.Candidate)
		if !ok {
			return b, nil
		}

		b.selectedItem = candidate
		b.historyHint = mo.None[session.Hint]()

		if candidate.Kind == media.KindSeries {
			b.episodeC.SetValue("")
			b.episodeC.Focus()
			b.newState(episodePickState)
			return b, nil
		}

		b.reduceSession(mo.None[string]())
		b.newState(loadingState)
		return b, tea.Batch(b.startStreams(), b.spinnerC.Tick)

	case key.Matches(msg, b.keymap.back):
		b.stopSearches()
		b.previousState()
		return b, nil
	}

	var cmd tea.Cmd
	b.resultsC, cmd = b.resultsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) handleEpisodePickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.confirm):
		b.episodeC.Blur()
		b.reduceSession(mo.None[string]())
		b.newState(loadingState)
		return b, tea.Batch(b.startStreams(), b.spinnerC.Tick)

	case key.Matches(msg, b.keymap.back):
		b.episodeC.Blur()
		b.previousState()
		return b, nil
	}

	var cmd tea.Cmd
	b.episodeC, cmd = b.episodeC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) handleStreamsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.watch):
		item, ok := b.streamsC.SelectedItem().(*listItem)
		if !ok {
			return b, nil
		}
		stream, ok := item.internal.(*media.Candidate)
		if !ok {
			return b, nil
		}

		b.selectedStream = stream
		b.reduceSession(mo.Some(stream.ID))
		b.newState(loadingState)
		return b, tea.Batch(b.engage(stream), b.spinnerC.Tick)

	case key.Matches(msg, b.keymap.cycleSort):
		b.cycleStreamSort()
		b.refreshStreamItems()
		return b, nil

	case key.Matches(msg, b.keymap.toggleCached):
		b.toggleCachedOnly()
		b.refreshStreamItems()
		return b, nil

	case key.Matches(msg, b.keymap.back):
		b.stopSearches()
		b.previousState()
		return b, nil
	}

	var cmd tea.Cmd
	b.streamsC, cmd = b.streamsC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.confirm):
		item, ok := b.historyC.SelectedItem().(*listItem)
		if !ok {
			return b, nil
		}
		record, ok := item.internal.(*history.SavedEngagement)
		if !ok {
			return b, nil
		}

		b.resumeFromHistory(record)
		b.newState(loadingState)
		return b, tea.Batch(b.startStreams(), b.spinnerC.Tick)

	case key.Matches(msg, b.keymap.remove):
		item, ok := b.historyC.SelectedItem().(*listItem)
		if !ok {
			return b, nil
		}
		record, ok := item.internal.(*history.SavedEngagement)
		if !ok {
			return b, nil
		}

		if err := history.Remove(record); err != nil {
			b.raiseError(err)
			return b, nil
		}
		if err := b.loadHistory(); err != nil {
			b.raiseError(err)
		}
		return b, nil

	case key.Matches(msg, b.keymap.back):
		b.previousState()
		return b, nil
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) handleWatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, b.keymap.back) {
		b.abortProgress()
		b.setState(streamsState)
		return b, nil
	}
	return b, nil
}

// resumeFromHistory rebuilds the navigation context from a saved record.
func (b *statefulBubble) resumeFromHistory(record *history.SavedEngagement) {
	b.selectedItem = &media.Candidate{
		ID:    record.ItemID,
		Title: record.Title,
		Kind:  media.Kind(record.Kind),
	}
	b.searchKind = media.Kind(record.Kind)
	if record.Season > 0 || record.Episode > 0 {
		b.episodeC.SetValue(fmt.Sprintf("s%02de%02d", record.Season, record.Episode))
	} else {
		b.episodeC.SetValue("")
	}

	b.historyHint = mo.Some(session.Hint{
		CandidateID: record.CandidateID,
		SourceID:    record.SourceID,
		ProviderID:  record.ProviderID,
		Offset:      record.Offset,
	})
	b.reduceSession(mo.None[string]())
}

func (b *statefulBubble) handleSearchSnapshot(snapshot aggregate.Result) (tea.Model, tea.Cmd) {
	if snapshot.Status == aggregate.Error {
		b.stopLoading()
		b.raiseError(errors.New("every source failed"))
		return b, nil
	}

	items := lo.Map(snapshot.Candidates, func(c *media.Candidate, _ int) list.Item {
		return &listItem{internal: c}
	})
	cmd := b.resultsC.SetItems(items)
	b.resultsStatus = snapshotStatusLine(snapshot)

	if snapshot.Status != aggregate.Loading && b.state == loadingState {
		b.newState(resultsState)
	}

	if snapshot.Status == aggregate.Complete {
		return b, tea.Batch(cmd, b.stopLoading())
	}
	return b, tea.Batch(cmd, b.waitForSearchSnapshot())
}

func (b *statefulBubble) handleStreamSnapshot(snapshot aggregate.Result) (tea.Model, tea.Cmd) {
	if snapshot.Status == aggregate.Error {
		b.stopLoading()
		b.raiseError(errors.New("stream resolution failed"))
		return b, nil
	}

	b.rawStreams = snapshot.Candidates
	cmd := b.refreshStreamItems()
	b.streamsStatus = snapshotStatusLine(snapshot)

	if snapshot.Status != aggregate.Loading && b.state == loadingState {
		b.newState(streamsState)
	}

	// Keep the session selection consistent with what is on screen.
	b.reduceSession(mo.None[string]())

	if snapshot.Status == aggregate.Complete {
		return b, tea.Batch(cmd, b.stopLoading())
	}
	return b, tea.Batch(cmd, b.waitForStreamSnapshot())
}

// refreshStreamItems republishes the stream list through the current
// filter state. Raw candidates are kept, so narrowing is reversible.
func (b *statefulBubble) refreshStreamItems() tea.Cmd {
	visible := filter.Apply(b.rawStreams, b.streamAgg.Filter())
	items := lo.Map(visible, func(c *media.Candidate, _ int) list.Item {
		return &listItem{internal: c}
	})
	return b.streamsC.SetItems(items)
}

func (b *statefulBubble) handleEngaged(engagement track.Engagement) (tea.Model, tea.Cmd) {
	b.abortProgress()
	b.progress = track.NewProgressWriter(b.tracker, engagement.ID, track.Interval())
	b.playbackOffset = util.Max(engagement.ResumeOffset, b.snapshot.Selection.ResumeOffset)
	b.duration = engagement.Duration

	// The duration only becomes known here, refresh the history record so
	// progress percentages render.
	b.persistSelection()

	b.stopLoading()
	b.setState(watchState)
	return b, tea.Batch(b.spinnerC.Tick, watchTick())
}

func (b *statefulBubble) handleWatchTick() (tea.Model, tea.Cmd) {
	if b.state != watchState || b.progress == nil {
		return b, nil
	}

	b.playbackOffset++
	b.progress.Offer(context.Background(), b.playbackOffset, b.duration)
	return b, watchTick()
}

func watchTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return watchTickMsg{}
	})
}

func snapshotStatusLine(snapshot aggregate.Result) string {
	line := fmt.Sprintf("%s, %s", snapshot.Status, util.Quantify(len(snapshot.Candidates), "candidate", "candidates"))
	if len(snapshot.Failed) > 0 {
		line += fmt.Sprintf(", %s failed", util.Quantify(len(snapshot.Failed), "source", "sources"))
	}
	return line
}

// stopSearches cancels any in-flight fan-out runs.
func (b *statefulBubble) stopSearches() {
	if b.cancelSearch != nil {
		b.cancelSearch()
	}
	if b.cancelStreams != nil {
		b.cancelStreams()
	}
	b.stopLoading()
}

// shutdown flushes pending progress before the program exits.
func (b *statefulBubble) shutdown() {
	b.abortProgress()
	b.stopSearches()
}

func (b *statefulBubble) updateComponents(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch b.state {
	case searchState:
		b.inputC, cmd = b.inputC.Update(msg)
		cmds = append(cmds, cmd)
	case episodePickState:
		b.episodeC, cmd = b.episodeC.Update(msg)
		cmds = append(cmds, cmd)
	case resultsState:
		b.resultsC, cmd = b.resultsC.Update(msg)
		cmds = append(cmds, cmd)
	case streamsState:
		b.streamsC, cmd = b.streamsC.Update(msg)
		cmds = append(cmds, cmd)
	case historyState:
		b.historyC, cmd = b.historyC.Update(msg)
		cmds = append(cmds, cmd)
	}

	return b, tea.Batch(cmds...)
}
