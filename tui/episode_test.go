package tui

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseEpisodeRef(t *testing.T) {
	Convey("parseEpisodeRef", t, func() {
		cases := []struct {
			raw              string
			season, episode int
		}{
			{"s01e03", 1, 3},
			{"S02E11", 2, 11},
			{"1x3", 1, 3},
			{"4x12", 4, 12},
			{"7", 1, 7},
			{"", 1, 1},
			{"garbage", 1, 1},
			{"s00e00", 1, 1},
		}

		for _, c := range cases {
			season, episode := parseEpisodeRef(c.raw)
			So(season, ShouldEqual, c.season)
			So(episode, ShouldEqual, c.episode)
		}
	})
}

func TestFormatOffset(t *testing.T) {
	Convey("formatOffset", t, func() {
		So(formatOffset(0), ShouldEqual, "00:00:00")
		So(formatOffset(61), ShouldEqual, "00:01:01")
		So(formatOffset(3723), ShouldEqual, "01:02:03")
		So(formatOffset(-5), ShouldEqual, "00:00:00")
	})
}
