package media

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/client"
)

func TestDedupeKey(t *testing.T) {
	Convey("DedupeKey", t, func() {
		Convey("Prefers a shared external id over the composite key", func() {
			a := &Candidate{Title: "Blade Runner", Year: 1982, ExternalIDs: map[string]string{"imdb": "tt0083658"}}
			b := &Candidate{Title: "Blade Runner: The Final Cut", Year: 1982, ExternalIDs: map[string]string{"imdb": "tt0083658"}}
			So(a.DedupeKey(), ShouldEqual, b.DedupeKey())
			So(a.DedupeKey(), ShouldEqual, "imdb:tt0083658")
		})

		Convey("Composite key survives punctuation and casing differences", func() {
			a := &Candidate{Title: "WALL-E", Year: 2008}
			b := &Candidate{Title: "wall e", Year: 2008}
			So(a.DedupeKey(), ShouldEqual, b.DedupeKey())
		})

		Convey("Different years produce different composite keys", func() {
			a := &Candidate{Title: "Dune", Year: 1984}
			b := &Candidate{Title: "Dune", Year: 2021}
			So(a.DedupeKey(), ShouldNotEqual, b.DedupeKey())
		})

		Convey("Missing year still yields a stable key", func() {
			c := &Candidate{Title: "Dune"}
			So(c.DedupeKey(), ShouldEqual, "title:dune")
		})
	})
}

func TestNormalize(t *testing.T) {
	Convey("Normalization", t, func() {
		Convey("Internal records carry origin and external ids", func() {
			c := NormalizeInternal(client.InternalRecord{
				ID:     "int-1",
				Title:  " The Expanse ",
				Year:   2015,
				Kind:   "series",
				IMDBID: "tt3230854",
			})

			So(c.Origin, ShouldEqual, OriginInternal)
			So(c.Title, ShouldEqual, "The Expanse")
			So(c.Kind, ShouldEqual, KindSeries)
			So(c.ExternalIDs["imdb"], ShouldEqual, "tt3230854")
		})

		Convey("External records keep the provider name", func() {
			c := NormalizeExternal(client.ExternalRecord{
				ID:          "ext-1",
				Name:        "The Expanse",
				ReleaseYear: 2015,
				Type:        "show",
				ExternalIDs: map[string]string{"IMDB": "tt3230854"},
			}, "cinemeta")

			So(c.Origin, ShouldEqual, OriginExternal)
			So(c.Provider, ShouldEqual, "cinemeta")
			So(c.Kind, ShouldEqual, KindSeries)
			So(c.ExternalIDs["imdb"], ShouldEqual, "tt3230854")
		})

		Convey("Streams dedupe by info hash when present", func() {
			withHash := NormalizeStream(client.StreamRecord{ID: "s1", Title: "x", InfoHash: "ABCDEF"}, "debrid", KindMovie)
			So(withHash.DedupeKey(), ShouldEqual, "infohash:abcdef")

			withoutHash := NormalizeStream(client.StreamRecord{ID: "s2", Title: "x"}, "debrid", KindMovie)
			So(withoutHash.DedupeKey(), ShouldEqual, "stream:s2")
		})

		Convey("Unknown kinds default to movie", func() {
			So(ParseKind("whatever"), ShouldEqual, KindMovie)
			So(ParseKind("live"), ShouldEqual, KindChannel)
		})
	})
}
