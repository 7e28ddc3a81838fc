package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackendSwap(t *testing.T) {
	Convey("Given the in-memory backend", t, func() {
		SetMemMapFs()
		defer SetOsFs()

		Convey("When writing a file", func() {
			err := API().WriteFile("/swap-test", []byte("ok"), 0644)
			So(err, ShouldBeNil)

			Convey("Then it should be readable through the same API", func() {
				data, err := API().ReadFile("/swap-test")
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "ok")
			})
		})
	})
}
