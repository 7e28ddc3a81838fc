package session

import (
	"testing"

	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/media"
)

func TestReduce(t *testing.T) {
	Convey("Reduce", t, func() {
		episode1 := ContextID{ItemID: "show-1", Kind: media.KindSeries, Season: 1, Episode: 1}
		episode2 := ContextID{ItemID: "show-1", Kind: media.KindSeries, Season: 1, Episode: 2}

		candidates := []*media.Candidate{
			{ID: "stream-a"},
			{ID: "stream-b"},
		}

		baseInputs := func(ctx ContextID) Inputs {
			return Inputs{
				Context:    ctx,
				Sources:    []string{"catalog", "cinemeta"},
				Providers:  []string{"realdebrid", "alldebrid"},
				Candidates: candidates,
			}
		}

		Convey("Entering a context from scratch resets and picks firsts", func() {
			next, effects := Reduce(Snapshot{}, baseInputs(episode1))

			So(effects, ShouldContain, EffectContextReset)
			So(next.Initialized, ShouldBeTrue)
			So(next.Selection.SourceID, ShouldEqual, "catalog")
			So(next.Selection.ProviderID, ShouldEqual, "realdebrid")
			So(next.Selection.CandidateID, ShouldBeEmpty)
		})

		Convey("Reset happens exactly once per identity change", func() {
			first, effects := Reduce(Snapshot{}, baseInputs(episode1))
			So(effects, ShouldContain, EffectContextReset)

			second, effects := Reduce(first, baseInputs(episode1))
			So(effects, ShouldNotContain, EffectContextReset)
			So(second.Selection, ShouldResemble, first.Selection)
		})

		Convey("Moving to the next episode is an identity change", func() {
			first, _ := Reduce(Snapshot{}, baseInputs(episode1))
			first.Selection.ResumeOffset = 1337

			next, effects := Reduce(first, baseInputs(episode2))
			So(effects, ShouldContain, EffectContextReset)
			So(next.Selection.ResumeOffset, ShouldEqual, 0)
		})

		Convey("A valid user choice wins over the default", func() {
			in := baseInputs(episode1)
			in.UserSource = mo.Some("cinemeta")

			next, _ := Reduce(Snapshot{}, in)
			So(next.Selection.SourceID, ShouldEqual, "cinemeta")
		})

		Convey("An unavailable user choice falls back to the first available", func() {
			in := baseInputs(episode1)
			in.UserProvider = mo.Some("premiumize")

			next, _ := Reduce(Snapshot{}, in)
			So(next.Selection.ProviderID, ShouldEqual, "realdebrid")
		})

		Convey("A surviving previous choice is kept over the first available", func() {
			in := baseInputs(episode1)
			in.UserProvider = mo.Some("alldebrid")
			first, _ := Reduce(Snapshot{}, in)

			second, _ := Reduce(first, baseInputs(episode1))
			So(second.Selection.ProviderID, ShouldEqual, "alldebrid")
		})

		Convey("A selected provider survives an episode change when still offered", func() {
			in := baseInputs(episode1)
			in.UserProvider = mo.Some("alldebrid")
			first, _ := Reduce(Snapshot{}, in)
			So(first.Selection.ProviderID, ShouldEqual, "alldebrid")

			next, effects := Reduce(first, baseInputs(episode2))
			So(effects, ShouldContain, EffectContextReset)
			So(next.Selection.ProviderID, ShouldEqual, "alldebrid")
			So(next.Selection.SourceID, ShouldEqual, "catalog")
		})

		Convey("A selected provider no longer offered falls back to the first", func() {
			in := baseInputs(episode1)
			in.UserProvider = mo.Some("alldebrid")
			first, _ := Reduce(Snapshot{}, in)

			in = baseInputs(episode2)
			in.Providers = []string{"realdebrid"}
			next, _ := Reduce(first, in)
			So(next.Selection.ProviderID, ShouldEqual, "realdebrid")
		})

		Convey("Picking a candidate emits a persist effect", func() {
			in := baseInputs(episode1)
			in.UserCandidate = mo.Some("stream-b")

			next, effects := Reduce(Snapshot{}, in)
			So(next.Selection.CandidateID, ShouldEqual, "stream-b")
			So(effects, ShouldContain, EffectPersistSelection)
		})

		Convey("Switching candidates zeroes the resume offset", func() {
			in := baseInputs(episode1)
			in.Hint = mo.Some(Hint{CandidateID: "stream-a", Offset: 900})
			first, _ := Reduce(Snapshot{}, in)
			So(first.Selection.ResumeOffset, ShouldEqual, 900)

			in = baseInputs(episode1)
			in.UserCandidate = mo.Some("stream-b")
			second, _ := Reduce(first, in)
			So(second.Selection.ResumeOffset, ShouldEqual, 0)
		})

		Convey("A history hint seeds the fresh selection", func() {
			in := baseInputs(episode1)
			in.Hint = mo.Some(Hint{CandidateID: "stream-a", SourceID: "cinemeta", Offset: 420})

			next, _ := Reduce(Snapshot{}, in)
			So(next.Selection.CandidateID, ShouldEqual, "stream-a")
			So(next.Selection.SourceID, ShouldEqual, "cinemeta")
			So(next.Selection.ResumeOffset, ShouldEqual, 420)
		})

		Convey("A hinted candidate no longer offered is dropped", func() {
			in := baseInputs(episode1)
			in.Hint = mo.Some(Hint{CandidateID: "stream-gone", Offset: 420})

			next, _ := Reduce(Snapshot{}, in)
			So(next.Selection.CandidateID, ShouldBeEmpty)
		})

		Convey("Reduction is deterministic", func() {
			in := baseInputs(episode1)
			a, ea := Reduce(Snapshot{}, in)
			b, eb := Reduce(Snapshot{}, in)
			So(a, ShouldResemble, b)
			So(ea, ShouldResemble, eb)
		})

		Convey("Key renders season and episode only when set", func() {
			So(episode1.Key(), ShouldEqual, "show-1/series/s01e01")
			movie := ContextID{ItemID: "m-1", Kind: media.KindMovie}
			So(movie.Key(), ShouldEqual, "m-1/movie")
		})
	})
}
