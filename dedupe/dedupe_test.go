package dedupe

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
)

func internalFirst() Priority {
	return OriginPriority([]string{"internal", "external"})
}

func TestMerge(t *testing.T) {
	Convey("Merge", t, func() {
		viper.Set(key.DedupeLowConfidenceDistance, 5)

		catalog := &media.Candidate{
			ID:          "int-1",
			Title:       "Blade Runner",
			Year:        1982,
			Origin:      media.OriginInternal,
			ExternalIDs: map[string]string{"imdb": "tt0083658"},
		}
		cinemeta := &media.Candidate{
			ID:          "ext-1",
			Title:       "Blade Runner",
			Year:        1982,
			Image:       "poster.jpg",
			Origin:      media.OriginExternal,
			Provider:    "cinemeta",
			ExternalIDs: map[string]string{"imdb": "tt0083658"},
		}
		other := &media.Candidate{
			ID:     "ext-2",
			Title:  "Soylent Green",
			Year:   1973,
			Origin: media.OriginExternal,
		}

		Convey("Duplicates collapse to the higher-priority origin", func() {
			merged := Merge([]*media.Candidate{catalog}, []*media.Candidate{cinemeta, other}, internalFirst())

			So(merged, ShouldHaveLength, 2)
			So(merged[0].ID, ShouldEqual, "int-1")
			So(merged[1].ID, ShouldEqual, "ext-2")
		})

		Convey("The winner absorbs fields it was missing", func() {
			merged := Merge([]*media.Candidate{catalog}, []*media.Candidate{cinemeta}, internalFirst())

			So(merged, ShouldHaveLength, 1)
			So(merged[0].ID, ShouldEqual, "int-1")
			So(merged[0].Image, ShouldEqual, "poster.jpg")
		})

		Convey("Inverted priority flips the winner", func() {
			externalFirst := OriginPriority([]string{"external", "internal"})
			merged := Merge([]*media.Candidate{catalog}, []*media.Candidate{cinemeta}, externalFirst)

			So(merged, ShouldHaveLength, 1)
			So(merged[0].ID, ShouldEqual, "ext-1")
		})

		Convey("Equal priority keeps the first seen", func() {
			flat := OriginPriority(nil)
			merged := Merge([]*media.Candidate{cinemeta}, []*media.Candidate{catalog}, flat)

			So(merged, ShouldHaveLength, 1)
			So(merged[0].ID, ShouldEqual, "ext-1")
		})

		Convey("Merge result does not depend on arrival order", func() {
			a := Merge(Merge(nil, []*media.Candidate{catalog}, internalFirst()), []*media.Candidate{cinemeta, other}, internalFirst())
			b := Merge(Merge(nil, []*media.Candidate{cinemeta, other}, internalFirst()), []*media.Candidate{catalog}, internalFirst())

			ids := func(cs []*media.Candidate) map[string]bool {
				out := make(map[string]bool)
				for _, c := range cs {
					out[c.ID] = true
				}
				return out
			}
			So(ids(a), ShouldResemble, ids(b))
		})

		Convey("Inputs are never mutated", func() {
			cinemeta.ExternalIDs["tmdb"] = "78"
			loserBefore := *cinemeta

			merged := Merge([]*media.Candidate{catalog}, []*media.Candidate{cinemeta}, internalFirst())

			So(*cinemeta, ShouldResemble, loserBefore)

			// The winner absorbs the loser's schemes into its own copy, not
			// into the caller's candidate.
			So(merged[0].ExternalIDs, ShouldContainKey, "tmdb")
			So(catalog.ExternalIDs, ShouldNotContainKey, "tmdb")
		})

		Convey("Distant titles colliding on a composite key get flagged", func() {
			a := &media.Candidate{ID: "a", Title: "The Office", Year: 2005, Origin: media.OriginInternal}
			b := &media.Candidate{ID: "b", Title: "The Office", Year: 2005, Origin: media.OriginExternal}
			b.Title = "The Office: An American Workplace"
			// Force a collision via explicit shared id.
			a.ExternalIDs = map[string]string{"imdb": "tt0386676"}
			b.ExternalIDs = map[string]string{"imdb": "tt0386676"}

			merged := Merge([]*media.Candidate{a}, []*media.Candidate{b}, internalFirst())
			So(merged, ShouldHaveLength, 1)
			So(merged[0].LowConfidence, ShouldBeTrue)
		})

		Convey("Near-identical titles are not flagged", func() {
			a := &media.Candidate{ID: "a", Title: "Dune", Year: 2021, Origin: media.OriginInternal}
			b := &media.Candidate{ID: "b", Title: "Dune ", Year: 2021, Origin: media.OriginExternal}

			merged := Merge([]*media.Candidate{a}, []*media.Candidate{b}, internalFirst())
			So(merged, ShouldHaveLength, 1)
			So(merged[0].LowConfidence, ShouldBeFalse)
		})
	})
}
