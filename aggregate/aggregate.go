// Package aggregate fans a query out to every enabled source concurrently
// and publishes progressively merged snapshots as sources complete.
//
// Snapshots only ever grow: a candidate disclosed once stays disclosed for
// the rest of the run. The merged content of the final snapshot does not
// depend on the order in which sources happened to finish, because each
// source's results live in a bucket indexed by registration order and the
// merge is rebuilt from those buckets on every completion.
package aggregate

import (
	"context"
	"sync"

	"github.com/streamdex-cli/streamdex/dedupe"
	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/log"
	"github.com/streamdex-cli/streamdex/media"
)

// Source is one fan-out target. Fetch returns already-normalized candidates.
// A nil Enabled means always enabled.
type Source struct {
	ID      string
	Enabled func() bool
	Fetch   func(ctx context.Context) ([]*media.Candidate, error)
}

// Status describes how settled a snapshot is.
type Status int

const (
	// Loading means no source has completed yet.
	Loading Status = iota
	// Partial means some sources completed, others are still in flight.
	Partial
	// Complete means every source settled and at least one succeeded.
	Complete
	// Error means every source failed.
	Error
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Partial:
		return "partial"
	case Complete:
		return "complete"
	default:
		return "error"
	}
}

// Result is one published snapshot.
type Result struct {
	// Candidates is the merged, filtered, ordered view so far.
	Candidates []*media.Candidate
	Status     Status
	// Completed and Failed list source ids that have settled.
	Completed []string
	Failed    []string
}

type completion struct {
	index      int
	candidates []*media.Candidate
	err        error
}

// Aggregator runs fan-out queries. Starting a new run invalidates any
// previous one: snapshots of a superseded run are silently discarded so a
// stale query can never overwrite a newer one's view.
type Aggregator struct {
	mu         sync.Mutex
	generation uint64
	priorityOf dedupe.Priority
	filterSt   filter.State
}

// New builds an aggregator with the given dedupe priority and filter state.
func New(priorityOf dedupe.Priority, st filter.State) *Aggregator {
	return &Aggregator{priorityOf: priorityOf, filterSt: st}
}

// SetFilter swaps the filter state applied to subsequently published snapshots.
func (a *Aggregator) SetFilter(st filter.State) {
	a.mu.Lock()
	a.filterSt = st
	a.mu.Unlock()
}

// Filter returns the current filter state.
func (a *Aggregator) Filter() filter.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filterSt
}

// Run starts a fan-out over the enabled subset of sources and returns a
// channel of snapshots. The channel is closed once the run settles, the
// context is canceled or the run is superseded by a newer one. The channel
// is buffered for the whole run, so an abandoned reader never leaks the
// collector goroutine.
func (a *Aggregator) Run(ctx context.Context, sources []Source) <-chan Result {
	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.mu.Unlock()

	var enabled []Source
	for _, src := range sources {
		if src.Enabled == nil || src.Enabled() {
			enabled = append(enabled, src)
		}
	}

	out := make(chan Result, len(enabled)+2)

	if len(enabled) == 0 {
		out <- Result{Status: Complete}
		close(out)
		return out
	}

	completions := make(chan completion, len(enabled))
	for i, src := range enabled {
		go func(index int, src Source) {
			candidates, err := src.Fetch(ctx)
			if err != nil {
				log.Warnf("aggregate: source %s failed: %s", src.ID, err)
			}
			completions <- completion{index: index, candidates: candidates, err: err}
		}(i, src)
	}

	go a.collect(ctx, gen, enabled, completions, out)

	return out
}

func (a *Aggregator) collect(ctx context.Context, gen uint64, enabled []Source, completions <-chan completion, out chan<- Result) {
	defer close(out)

	buckets := make([][]*media.Candidate, len(enabled))
	var completed, failed []string

	out <- Result{Status: Loading}

	for settled := 0; settled < len(enabled); settled++ {
		var done completion
		select {
		case <-ctx.Done():
			return
		case done = <-completions:
		}

		src := enabled[done.index]
		if done.err != nil {
			failed = append(failed, src.ID)
		} else {
			buckets[done.index] = done.candidates
			completed = append(completed, src.ID)
		}

		if a.stale(gen) {
			log.Debugf("aggregate: discarding stale snapshot of generation %d", gen)
			return
		}

		// Fold buckets in registration order so the merge outcome is
		// independent of completion order.
		var merged []*media.Candidate
		for _, bucket := range buckets {
			if len(bucket) == 0 {
				continue
			}
			merged = dedupe.Merge(merged, bucket, a.priorityOf)
		}

		status := Partial
		if settled == len(enabled)-1 {
			status = Complete
			if len(failed) == len(enabled) {
				status = Error
			}
		}

		out <- Result{
			Candidates: filter.Apply(merged, a.Filter()),
			Status:     status,
			Completed:  append([]string(nil), completed...),
			Failed:     append([]string(nil), failed...),
		}
	}
}

func (a *Aggregator) stale(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.generation != gen
}

// Collect drains a run and returns the final settled snapshot. Used by the
// non-interactive surfaces that have no use for intermediate disclosure.
func (a *Aggregator) Collect(ctx context.Context, sources []Source) Result {
	var last Result
	for snapshot := range a.Run(ctx, sources) {
		last = snapshot
	}
	return last
}
