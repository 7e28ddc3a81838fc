package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/streamdex-cli/streamdex/filesystem"
	"github.com/streamdex-cli/streamdex/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.SearchShowQuerySuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given query history", t, func() {
		Convey("When remembering queries", func() {
			So(Remember("the expanse", 1), ShouldBeNil)
			So(Remember("the boys", 10), ShouldBeNil)

			Convey("Then suggestions are sorted by rank", func() {
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("the")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 2)
				So(s[0], ShouldEqual, "the boys")
			})

			Convey("Suggest returns the top match", func() {
				suggestionCache = make(map[string][]*queryRecord)

				So(Suggest("the boy").MustGet(), ShouldEqual, "the boys")
			})

			Convey("No match yields none", func() {
				So(Suggest("zzzzz").IsAbsent(), ShouldBeTrue)
			})

			Convey("Suggestions can be disabled", func() {
				viper.Set(key.SearchShowQuerySuggestions, false)
				So(SuggestMany("the"), ShouldBeEmpty)
				viper.Set(key.SearchShowQuerySuggestions, true)
			})

			Convey("Input is sanitized", func() {
				So(sanitize("  The Boys  "), ShouldEqual, "the boys")
			})
		})
	})
}
