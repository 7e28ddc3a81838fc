// Package rank orders candidate lists by named comparators.
//
// Sorting is always stable, so candidates that compare equal keep the order
// the merge produced. Missing data sorts neutrally instead of sinking an
// otherwise good candidate.
package rank

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/util"
)

// Direction controls sort order.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// By names a comparator.
type By string

const (
	ByYear    By = "year"
	ByQuality By = "quality"
	BySize    By = "size"
	BySeeders By = "seeders"
	BySource  By = "source"
)

// Comparators lists every supported comparator name.
func Comparators() []By {
	return []By{ByYear, ByQuality, BySize, BySeeders, BySource}
}

// ParseBy validates a raw comparator name.
func ParseBy(raw string) (By, bool) {
	b := By(strings.ToLower(strings.TrimSpace(raw)))
	return b, lo.Contains(Comparators(), b)
}

// Rank returns a sorted copy of candidates. The input is left untouched.
// An unknown comparator returns the copy unsorted.
func Rank(candidates []*media.Candidate, by By, dir Direction) []*media.Candidate {
	out := make([]*media.Candidate, len(candidates))
	copy(out, candidates)

	cmp, ok := comparator(by)
	if !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b *media.Candidate) int {
		if dir == Descending {
			a, b = b, a
		}
		return cmp(a, b)
	})

	return out
}

// comparator returns a three-way comparison for the named ordering.
func comparator(by By) (func(a, b *media.Candidate) int, bool) {
	switch by {
	case ByYear:
		return func(a, b *media.Candidate) int { return a.Year - b.Year }, true
	case ByQuality:
		return func(a, b *media.Candidate) int { return QualityTier(a.Quality) - QualityTier(b.Quality) }, true
	case BySize:
		return func(a, b *media.Candidate) int { return compareFloat(ParseSize(a.Size), ParseSize(b.Size)) }, true
	case BySeeders:
		return func(a, b *media.Candidate) int { return a.Seeders - b.Seeders }, true
	case BySource:
		return func(a, b *media.Candidate) int { return strings.Compare(sourceName(a), sourceName(b)) }, true
	default:
		return nil, false
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func sourceName(c *media.Candidate) string {
	if c.Provider != "" {
		return strings.ToLower(c.Provider)
	}
	return c.Origin.String()
}

var sizePattern = regexp.MustCompile(`(?i)^\s*(?P<value>\d+(?:[.,]\d+)?)\s*(?P<unit>[kmgt]?i?b)\s*$`)

var sizeMultipliers = map[string]float64{
	"b":  1,
	"kb": 1 << 10, "kib": 1 << 10,
	"mb": 1 << 20, "mib": 1 << 20,
	"gb": 1 << 30, "gib": 1 << 30,
	"tb": 1 << 40, "tib": 1 << 40,
}

// ParseSize converts a human readable size label like "1.4 GB" into bytes.
// Unparsable labels map to zero so sized and unsized candidates can share
// a single numeric ordering.
func ParseSize(label string) float64 {
	groups := util.ReGroups(sizePattern, label)
	if len(groups) == 0 {
		return 0
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(groups["value"], ",", "."), 64)
	if err != nil {
		return 0
	}

	multiplier, ok := sizeMultipliers[strings.ToLower(groups["unit"])]
	if !ok {
		return 0
	}

	return value * multiplier
}

// QualityTier maps a quality label onto an ordinal: 4K beats 1080p beats
// 720p beats 480p beats everything unlabeled.
func QualityTier(label string) int {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "2160") || strings.Contains(l, "4k"):
		return 4
	case strings.Contains(l, "1080"):
		return 3
	case strings.Contains(l, "720"):
		return 2
	case strings.Contains(l, "480"):
		return 1
	default:
		return 0
	}
}
