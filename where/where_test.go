package where

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/streamdex-cli/streamdex/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestConfig(t *testing.T) {
	Convey("Given a custom config path override", t, func() {
		So(os.Setenv(EnvConfigPath, "/custom-config"), ShouldBeNil)
		defer func() {
			So(os.Unsetenv(EnvConfigPath), ShouldBeNil)
		}()

		Convey("When resolving the config directory", func() {
			path := Config()

			Convey("Then the override should win", func() {
				So(path, ShouldEqual, "/custom-config")
			})

			Convey("And the directory should exist", func() {
				exists, err := filesystem.API().DirExists(path)
				So(err, ShouldBeNil)
				So(exists, ShouldBeTrue)
			})
		})
	})
}

func TestDerivedPaths(t *testing.T) {
	Convey("Derived paths resolve under their parents", t, func() {
		So(os.Setenv(EnvConfigPath, "/custom-config"), ShouldBeNil)
		defer func() {
			So(os.Unsetenv(EnvConfigPath), ShouldBeNil)
		}()

		So(History(), ShouldEqual, "/custom-config/history.json")
		So(Logs(), ShouldStartWith, "/custom-config")
	})
}
