package filter

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/rank"
)

func TestApply(t *testing.T) {
	Convey("Apply", t, func() {
		streams := []*media.Candidate{
			{ID: "a", Provider: "RealDebrid", Quality: "1080p WEB-DL", Size: "4.2 GB", Cached: true},
			{ID: "b", Provider: "AllDebrid", Quality: "2160p", Size: "14 GB", Cached: false},
			{ID: "c", Provider: "RealDebrid", Quality: "720p", Size: "700 MB", Cached: true},
			{ID: "d", Provider: "", Quality: "", Size: "", Cached: false},
		}

		ids := func(cs []*media.Candidate) []string {
			out := make([]string, len(cs))
			for i, c := range cs {
				out[i] = c.ID
			}
			return out
		}

		Convey("Zero state keeps everything in order", func() {
			So(ids(Apply(streams, State{})), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("Provider tokens match bidirectionally and case-insensitively", func() {
			got := Apply(streams, State{Providers: []string{"realdebrid"}})
			So(ids(got), ShouldResemble, []string{"a", "c", "d"})
		})

		Convey("Quality tokens match substrings", func() {
			got := Apply(streams, State{Qualities: []string{"1080p"}})
			So(ids(got), ShouldResemble, []string{"a", "d"})
		})

		Convey("Min size excludes smaller streams but keeps unsized ones", func() {
			got := Apply(streams, State{MinSizeGB: 1})
			So(ids(got), ShouldResemble, []string{"a", "b", "d"})
		})

		Convey("Max size caps from above", func() {
			got := Apply(streams, State{MaxSizeGB: 5})
			So(ids(got), ShouldResemble, []string{"a", "c", "d"})
		})

		Convey("CachedOnly drops uncached streams including unlabeled", func() {
			got := Apply(streams, State{CachedOnly: true})
			So(ids(got), ShouldResemble, []string{"a", "c"})
		})

		Convey("Predicates compose as a conjunction", func() {
			got := Apply(streams, State{Providers: []string{"realdebrid"}, MinSizeGB: 1, CachedOnly: true})
			So(ids(got), ShouldResemble, []string{"a"})
		})

		Convey("OnlyID narrows to one candidate and composes with the rest", func() {
			got := Apply(streams, State{}.WithOnlyID("b"))
			So(ids(got), ShouldResemble, []string{"b"})

			got = Apply(streams, State{CachedOnly: true}.WithOnlyID("b"))
			So(got, ShouldBeEmpty)
		})

		Convey("Ordering applies after filtering", func() {
			got := Apply(streams, State{CachedOnly: true, SortBy: rank.BySize, SortDir: rank.Descending})
			So(ids(got), ShouldResemble, []string{"a", "c"})
		})

		Convey("Input slice is never reordered", func() {
			_ = Apply(streams, State{SortBy: rank.BySize, SortDir: rank.Descending})
			So(ids(streams), ShouldResemble, []string{"a", "b", "c", "d"})
		})
	})
}
