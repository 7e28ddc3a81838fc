package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/media"
)

func TestAsJson(t *testing.T) {
	Convey("asJson", t, func() {
		Convey("Produces a valid envelope for an empty result", func() {
			data, err := asJson(&Output{Query: "dune", Kind: "movie", Status: "complete"})
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(data, &output), ShouldBeNil)
			So(output.Query, ShouldEqual, "dune")
			So(output.Result, ShouldHaveLength, 0)
		})

		Convey("Candidates serialize with their identity fields", func() {
			data, err := asJson(&Output{
				Query:  "dune",
				Kind:   "movie",
				Status: "complete",
				Result: []*media.Candidate{{ID: "m-1", Title: "Dune", Year: 2021}},
			})
			So(err, ShouldBeNil)
			So(bytes.Contains(data, []byte(`"title":"Dune"`)), ShouldBeTrue)
		})
	})
}

func TestParseCandidatePicker(t *testing.T) {
	Convey("ParseCandidatePicker", t, func() {
		candidates := []*media.Candidate{
			{ID: "a", Title: "Alpha"},
			{ID: "b", Title: "Beta"},
			{ID: "c", Title: "Gamma"},
		}

		Convey("first and last", func() {
			first, err := ParseCandidatePicker("first", "")
			So(err, ShouldBeNil)
			So(first(candidates).ID, ShouldEqual, "a")

			last, err := ParseCandidatePicker("last", "")
			So(err, ShouldBeNil)
			So(last(candidates).ID, ShouldEqual, "c")

			So(first(nil), ShouldBeNil)
		})

		Convey("exact matches title or id", func() {
			exact, err := ParseCandidatePicker("exact", "Beta")
			So(err, ShouldBeNil)
			So(exact(candidates).ID, ShouldEqual, "b")

			exact, _ = ParseCandidatePicker("exact", "c")
			So(exact(candidates).ID, ShouldEqual, "c")

			exact, _ = ParseCandidatePicker("exact", "missing")
			So(exact(candidates), ShouldBeNil)
		})

		Convey("index clamps to the last candidate", func() {
			byIndex, err := ParseCandidatePicker("index", "99")
			So(err, ShouldBeNil)
			So(byIndex(candidates).ID, ShouldEqual, "c")

			_, err = ParseCandidatePicker("index", "not a number")
			So(err, ShouldNotBeNil)
		})

		Convey("unknown picker kind errors", func() {
			_, err := ParseCandidatePicker("median", "")
			So(err, ShouldNotBeNil)
		})
	})
}
