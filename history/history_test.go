package history

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an engagement record", t, func() {
		record := &SavedEngagement{
			ItemID:      "show-1",
			Title:       "The Expanse",
			Kind:        "series",
			Season:      1,
			Episode:     3,
			CandidateID: "stream-a",
			Offset:      420,
			Duration:    2640,
		}

		Convey("Saving and finding it round-trips", func() {
			So(Save(record), ShouldBeNil)

			found, ok := Find("show-1", "series", 1, 3)
			So(ok, ShouldBeTrue)
			So(found.CandidateID, ShouldEqual, "stream-a")
			So(found.Offset, ShouldEqual, 420)
		})

		Convey("Re-saving the same candidate keeps the maximum offset", func() {
			So(Save(record), ShouldBeNil)

			regressed := *record
			regressed.Offset = 100
			So(Save(&regressed), ShouldBeNil)

			found, _ := Find("show-1", "series", 1, 3)
			So(found.Offset, ShouldEqual, 420)
		})

		Convey("A new candidate for the same context replaces the entry", func() {
			So(Save(record), ShouldBeNil)

			replacement := *record
			replacement.CandidateID = "stream-b"
			replacement.Offset = 5
			So(Save(&replacement), ShouldBeNil)

			found, _ := Find("show-1", "series", 1, 3)
			So(found.CandidateID, ShouldEqual, "stream-b")
			So(found.Offset, ShouldEqual, 5)
		})

		Convey("Episodes of the same show are tracked independently", func() {
			So(Save(record), ShouldBeNil)

			other := *record
			other.Episode = 4
			other.Offset = 10
			So(Save(&other), ShouldBeNil)

			first, _ := Find("show-1", "series", 1, 3)
			second, _ := Find("show-1", "series", 1, 4)
			So(first.Offset, ShouldEqual, 420)
			So(second.Offset, ShouldEqual, 10)
		})

		Convey("Removing deletes the record", func() {
			So(Save(record), ShouldBeNil)
			So(Remove(record), ShouldBeNil)

			_, ok := Find("show-1", "series", 1, 3)
			So(ok, ShouldBeFalse)
		})

		Convey("Progress is a fraction of the duration", func() {
			So(record.Progress(), ShouldAlmostEqual, 420.0/2640.0)
			So((&SavedEngagement{}).Progress(), ShouldEqual, 0)
		})
	})
}
