package rank

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/media"
)

func TestParseSize(t *testing.T) {
	Convey("ParseSize", t, func() {
		Convey("Understands common unit labels case-insensitively", func() {
			So(ParseSize("700 MB"), ShouldEqual, 700*float64(1<<20))
			So(ParseSize("1.4gb"), ShouldEqual, 1.4*float64(1<<30))
			So(ParseSize("2 TiB"), ShouldEqual, 2*float64(1<<40))
			So(ParseSize("512kb"), ShouldEqual, 512*float64(1<<10))
		})

		Convey("Accepts comma decimals", func() {
			So(ParseSize("1,5 GB"), ShouldEqual, 1.5*float64(1<<30))
		})

		Convey("Maps unparsable labels to zero", func() {
			So(ParseSize(""), ShouldEqual, 0)
			So(ParseSize("unknown"), ShouldEqual, 0)
			So(ParseSize("GB 1.4"), ShouldEqual, 0)
		})
	})
}

func TestQualityTier(t *testing.T) {
	Convey("QualityTier", t, func() {
		So(QualityTier("4K HDR"), ShouldEqual, 4)
		So(QualityTier("2160p"), ShouldEqual, 4)
		So(QualityTier("1080p BluRay"), ShouldEqual, 3)
		So(QualityTier("720p"), ShouldEqual, 2)
		So(QualityTier("480p"), ShouldEqual, 1)
		So(QualityTier("CAM"), ShouldEqual, 0)
		So(QualityTier(""), ShouldEqual, 0)
	})
}

func TestRank(t *testing.T) {
	Convey("Rank", t, func() {
		candidates := []*media.Candidate{
			{ID: "a", Title: "a", Quality: "720p", Size: "700 MB", Seeders: 10},
			{ID: "b", Title: "b", Quality: "2160p", Size: "14 GB", Seeders: 3},
			{ID: "c", Title: "c", Quality: "1080p", Size: "4.2 GB", Seeders: 50},
			{ID: "d", Title: "d", Quality: "", Size: "", Seeders: 0},
		}

		ids := func(cs []*media.Candidate) []string {
			out := make([]string, len(cs))
			for i, c := range cs {
				out[i] = c.ID
			}
			return out
		}

		Convey("Sorts by quality descending with unlabeled last", func() {
			So(ids(Rank(candidates, ByQuality, Descending)), ShouldResemble, []string{"b", "c", "a", "d"})
		})

		Convey("Sorts by size ascending with unsized first", func() {
			So(ids(Rank(candidates, BySize, Ascending)), ShouldResemble, []string{"d", "a", "c", "b"})
		})

		Convey("Sorts by seeders descending", func() {
			So(ids(Rank(candidates, BySeeders, Descending)), ShouldResemble, []string{"c", "a", "b", "d"})
		})

		Convey("Ties keep their original relative order", func() {
			tied := []*media.Candidate{
				{ID: "x", Quality: "1080p"},
				{ID: "y", Quality: "1080p"},
				{ID: "z", Quality: "720p"},
			}
			So(ids(Rank(tied, ByQuality, Descending)), ShouldResemble, []string{"x", "y", "z"})
		})

		Convey("Input order is preserved", func() {
			_ = Rank(candidates, ByQuality, Descending)
			So(ids(candidates), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("Unknown comparator returns an unsorted copy", func() {
			So(ids(Rank(candidates, By("nope"), Ascending)), ShouldResemble, []string{"a", "b", "c", "d"})
		})

		Convey("ParseBy validates names", func() {
			by, ok := ParseBy(" Quality ")
			So(ok, ShouldBeTrue)
			So(by, ShouldEqual, ByQuality)

			_, ok = ParseBy("bogus")
			So(ok, ShouldBeFalse)
		})
	})
}
