// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/streamdex-cli/streamdex/aggregate"
	"github.com/streamdex-cli/streamdex/history"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/provider"
	"github.com/streamdex-cli/streamdex/query"
	"github.com/streamdex-cli/streamdex/rank"
	"github.com/streamdex-cli/streamdex/session"
	"github.com/streamdex-cli/streamdex/track"
	"github.com/streamdex-cli/streamdex/util"
)

type (
	searchSnapshotMsg aggregate.Result
	searchDoneMsg     struct{}
	streamSnapshotMsg aggregate.Result
	streamsDoneMsg    struct{}
	engagedMsg        struct {
		engagement track.Engagement
	}
	watchTickMsg struct{}
	errorMsg     error
)

// startSearch launches a fan-out run for the query, superseding any
// previous one still in flight.
func (b *statefulBubble) startSearch(q string) tea.Cmd {
	if b.cancelSearch != nil {
		b.cancelSearch()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelSearch = cancel
	b.searchQuery = q
	b.searchChannel = b.searchAgg.Run(ctx, provider.SearchSources(b.api, q, b.searchKind))

	util.Ignore(func() error { return query.Remember(q, 1) })

	return tea.Batch(b.startLoading(), b.waitForSearchSnapshot())
}

func (b *statefulBubble) waitForSearchSnapshot() tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-b.searchChannel
		if !ok {
			return searchDoneMsg{}
		}
		return searchSnapshotMsg(snapshot)
	}
}

// startStreams launches the stream fan-out for the current context.
func (b *statefulBubble) startStreams() tea.Cmd {
	if b.cancelStreams != nil {
		b.cancelStreams()
	}

	ctx, cancel := context.WithCancel(context.Background())
	b.cancelStreams = cancel

	id := b.contextID()
	b.streamChannel = b.streamAgg.Run(ctx, provider.StreamSources(b.api, id, b.streamAgg.Filter().Providers))

	return tea.Batch(b.startLoading(), b.waitForStreamSnapshot())
}

func (b *statefulBubble) waitForStreamSnapshot() tea.Cmd {
	return func() tea.Msg {
		snapshot, ok := <-b.streamChannel
		if !ok {
			return streamsDoneMsg{}
		}
		return streamSnapshotMsg(snapshot)
	}
}

// contextID derives the navigation context from the selected item and the
// episode input.
func (b *statefulBubble) contextID() session.ContextID {
	id := session.ContextID{Kind: b.searchKind}
	if b.selectedItem != nil {
		id.ItemID = b.selectedItem.ID
		id.Kind = b.selectedItem.Kind
	}
	if id.Kind == media.KindSeries {
		id.Season, id.Episode = parseEpisodeRef(b.episodeC.Value())
	}
	return id
}

// reduceSession recomputes the session snapshot for the current context and
// executes the emitted effects.
func (b *statefulBubble) reduceSession(userCandidate mo.Option[string]) []session.Effect {
	id := b.contextID()

	hint := b.historyHint
	if hint.IsAbsent() {
		if record, ok := history.Find(id.ItemID, string(id.Kind), id.Season, id.Episode); ok {
			hint = mo.Some(session.Hint{
				CandidateID: record.CandidateID,
				SourceID:    record.SourceID,
				ProviderID:  record.ProviderID,
				Offset:      record.Offset,
			})
		}
	}

	streams := b.currentStreams()
	inputs := session.Inputs{
		Context:       id,
		Sources:       viper.GetStringSlice(key.SourcesEnabled),
		Providers:     streamProviderIDs(streams),
		Candidates:    streams,
		Hint:          hint,
		UserCandidate: userCandidate,
	}

	next, effects := session.Reduce(b.snapshot, inputs)
	b.snapshot = next

	for _, effect := range effects {
		switch effect {
		case session.EffectContextReset:
			b.abortProgress()
		case session.EffectPersistSelection:
			b.persistSelection()
		}
	}

	return effects
}

func streamProviderIDs(streams []*media.Candidate) []string {
	return lo.Uniq(lo.FilterMap(streams, func(c *media.Candidate, _ int) (string, bool) {
		return c.Provider, c.Provider != ""
	}))
}

func (b *statefulBubble) currentStreams() []*media.Candidate {
	return lo.FilterMap(b.streamsC.Items(), func(item list.Item, _ int) (*media.Candidate, bool) {
		c, ok := item.(*listItem).internal.(*media.Candidate)
		return c, ok
	})
}

// persistSelection writes the committed selection to history.
func (b *statefulBubble) persistSelection() {
	if !viper.GetBool(key.HistorySaveOnWatch) {
		return
	}

	id := b.snapshot.Context
	record := &history.SavedEngagement{
		ItemID:      id.ItemID,
		Kind:        string(id.Kind),
		Season:      id.Season,
		Episode:     id.Episode,
		CandidateID: b.snapshot.Selection.CandidateID,
		SourceID:    b.snapshot.Selection.SourceID,
		ProviderID:  b.snapshot.Selection.ProviderID,
		Offset:      b.snapshot.Selection.ResumeOffset,
		Duration:    b.duration,
	}
	if b.selectedItem != nil {
		record.Title = b.selectedItem.Title
	}

	if err := history.Save(record); err != nil {
		b.raiseError(err)
	}
}

// engage opens a tracked playback session for the selected stream.
func (b *statefulBubble) engage(stream *media.Candidate) tea.Cmd {
	id := b.snapshot.Context
	payload := track.Payload{
		ItemID:      id.ItemID,
		Kind:        string(id.Kind),
		Season:      id.Season,
		Episode:     id.Episode,
		CandidateID: stream.ID,
		SourceID:    b.snapshot.Selection.SourceID,
		ProviderID:  stream.Provider,
	}

	return func() tea.Msg {
		engagement, err := b.tracker.Open(context.Background(), payload)
		if err != nil {
			return errorMsg(err)
		}
		return engagedMsg{engagement: engagement}
	}
}

// abortProgress flushes and drops the active progress writer, if any.
func (b *statefulBubble) abortProgress() {
	if b.progress == nil {
		return
	}
	b.progress.Flush(context.Background(), b.playbackOffset, b.duration)
	b.progress = nil
	b.playbackOffset = 0
}

// loadHistory fills the history list from the persistent registry.
func (b *statefulBubble) loadHistory() error {
	saved, err := history.Get()
	if err != nil {
		return err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return strings.Compare(entries[i].String(), entries[j].String()) < 0
	})

	items := lo.Map(entries, func(e *history.SavedEngagement, _ int) list.Item {
		return &listItem{internal: e}
	})
	b.historyC.SetItems(items)

	return nil
}

// cycleSearchKind rotates movie -> series -> channel.
func (b *statefulBubble) cycleSearchKind() {
	kinds := media.Kinds()
	for i, kind := range kinds {
		if kind == b.searchKind {
			b.searchKind = kinds[(i+1)%len(kinds)]
			return
		}
	}
	b.searchKind = kinds[0]
}

// cycleStreamSort rotates the stream ordering comparator and republishes
// the filtered view on the next snapshot.
func (b *statefulBubble) cycleStreamSort() {
	st := b.streamAgg.Filter()
	comparators := rank.Comparators()
	for i, by := range comparators {
		if by == st.SortBy {
			st.SortBy = comparators[(i+1)%len(comparators)]
			b.streamAgg.SetFilter(st)
			return
		}
	}
	st.SortBy = comparators[0]
	b.streamAgg.SetFilter(st)
}

func (b *statefulBubble) toggleCachedOnly() {
	st := b.streamAgg.Filter()
	st.CachedOnly = !st.CachedOnly
	b.streamAgg.SetFilter(st)
}
