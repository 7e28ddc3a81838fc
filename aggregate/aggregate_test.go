package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/dedupe"
	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/media"
)

func fixedSource(id string, delay time.Duration, candidates ...*media.Candidate) Source {
	return Source{
		ID: id,
		Fetch: func(ctx context.Context) ([]*media.Candidate, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
				return candidates, nil
			}
		},
	}
}

func failingSource(id string, delay time.Duration) Source {
	return Source{
		ID: id,
		Fetch: func(ctx context.Context) ([]*media.Candidate, error) {
			time.Sleep(delay)
			return nil, errors.New("boom")
		},
	}
}

func candidate(id, title string, origin media.Origin) *media.Candidate {
	return &media.Candidate{ID: id, Title: title, Year: 2020, Origin: origin}
}

func drain(ch <-chan Result) []Result {
	var out []Result
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func TestRun(t *testing.T) {
	priority := dedupe.OriginPriority([]string{"internal", "external"})

	Convey("Run", t, func() {
		Convey("Discloses progressively and never shrinks", func() {
			agg := New(priority, filter.State{})
			snapshots := drain(agg.Run(context.Background(), []Source{
				fixedSource("fast", 0, candidate("a", "Alpha", media.OriginInternal)),
				fixedSource("slow", 30*time.Millisecond, candidate("b", "Beta", media.OriginExternal)),
			}))

			So(len(snapshots), ShouldEqual, 3)
			So(snapshots[0].Status, ShouldEqual, Loading)
			So(snapshots[1].Status, ShouldEqual, Partial)
			So(snapshots[2].Status, ShouldEqual, Complete)

			for i := 1; i < len(snapshots); i++ {
				So(len(snapshots[i].Candidates), ShouldBeGreaterThanOrEqualTo, len(snapshots[i-1].Candidates))
			}
			So(snapshots[2].Candidates, ShouldHaveLength, 2)
		})

		Convey("Final content does not depend on completion order", func() {
			shared := func(origin media.Origin, id string) *media.Candidate {
				c := candidate(id, "Gamma", origin)
				c.ExternalIDs = map[string]string{"imdb": "tt1"}
				return c
			}

			run := func(internalDelay, externalDelay time.Duration) []string {
				agg := New(priority, filter.State{})
				final := agg.Collect(context.Background(), []Source{
					fixedSource("catalog", internalDelay, shared(media.OriginInternal, "int")),
					fixedSource("cinemeta", externalDelay, shared(media.OriginExternal, "ext")),
				})
				ids := make([]string, len(final.Candidates))
				for i, c := range final.Candidates {
					ids[i] = c.ID
				}
				return ids
			}

			internalFirst := run(0, 30*time.Millisecond)
			externalFirst := run(30*time.Millisecond, 0)

			So(internalFirst, ShouldResemble, []string{"int"})
			So(externalFirst, ShouldResemble, internalFirst)
		})

		Convey("A failed source surfaces in Failed without sinking the run", func() {
			agg := New(priority, filter.State{})
			final := agg.Collect(context.Background(), []Source{
				fixedSource("ok", 0, candidate("a", "Alpha", media.OriginInternal)),
				failingSource("broken", 10*time.Millisecond),
			})

			So(final.Status, ShouldEqual, Complete)
			So(final.Failed, ShouldResemble, []string{"broken"})
			So(final.Candidates, ShouldHaveLength, 1)
		})

		Convey("All sources failing yields Error status", func() {
			agg := New(priority, filter.State{})
			final := agg.Collect(context.Background(), []Source{
				failingSource("x", 0),
				failingSource("y", 0),
			})

			So(final.Status, ShouldEqual, Error)
			So(final.Candidates, ShouldBeEmpty)
		})

		Convey("Disabled sources are skipped entirely", func() {
			disabled := fixedSource("off", 0, candidate("z", "Zeta", media.OriginInternal))
			disabled.Enabled = func() bool { return false }

			agg := New(priority, filter.State{})
			final := agg.Collect(context.Background(), []Source{
				disabled,
				fixedSource("on", 0, candidate("a", "Alpha", media.OriginInternal)),
			})

			So(final.Candidates, ShouldHaveLength, 1)
			So(final.Completed, ShouldResemble, []string{"on"})
		})

		Convey("No enabled sources settles immediately as Complete", func() {
			agg := New(priority, filter.State{})
			final := agg.Collect(context.Background(), nil)
			So(final.Status, ShouldEqual, Complete)
			So(final.Candidates, ShouldBeEmpty)
		})

		Convey("A newer run supersedes the older one", func() {
			agg := New(priority, filter.State{})

			slow := agg.Run(context.Background(), []Source{
				fixedSource("slow", 50*time.Millisecond, candidate("old", "Old", media.OriginInternal)),
			})
			fast := agg.Run(context.Background(), []Source{
				fixedSource("fast", 0, candidate("new", "New", media.OriginInternal)),
			})

			fastSnapshots := drain(fast)
			slowSnapshots := drain(slow)

			final := fastSnapshots[len(fastSnapshots)-1]
			So(final.Candidates, ShouldHaveLength, 1)
			So(final.Candidates[0].ID, ShouldEqual, "new")

			// The superseded run stops before publishing settled content.
			for _, snapshot := range slowSnapshots {
				So(snapshot.Candidates, ShouldBeEmpty)
			}
		})

		Convey("Cancellation stops publication", func() {
			ctx, cancel := context.WithCancel(context.Background())
			agg := New(priority, filter.State{})
			ch := agg.Run(ctx, []Source{
				fixedSource("slow", time.Second, candidate("a", "Alpha", media.OriginInternal)),
			})
			cancel()

			snapshots := drain(ch)
			for _, snapshot := range snapshots {
				So(snapshot.Status, ShouldEqual, Loading)
			}
		})

		Convey("Filter state applies to published snapshots", func() {
			agg := New(priority, filter.State{OnlyID: "b"})
			final := agg.Collect(context.Background(), []Source{
				fixedSource("s", 0,
					candidate("a", "Alpha", media.OriginInternal),
					candidate("b", "Beta", media.OriginInternal),
				),
			})

			So(final.Candidates, ShouldHaveLength, 1)
			So(final.Candidates[0].ID, ShouldEqual, "b")
		})
	})
}
