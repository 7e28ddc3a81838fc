// Package filter narrows candidate lists down by a declarative State.
//
// Each State field is an independent predicate; a candidate survives only
// when every active predicate accepts it. Inactive (zero) fields accept
// everything, and a candidate missing the data a predicate inspects is
// kept rather than silently dropped.
package filter

import (
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/rank"
)

const gb = float64(1 << 30)

// State is a value object describing the active filters and ordering.
type State struct {
	Providers  []string
	Qualities  []string
	MinSizeGB  float64
	MaxSizeGB  float64
	CachedOnly bool
	OnlyID     string

	SortBy  rank.By
	SortDir rank.Direction
}

// FromConfig builds the State the user configured under streams.*.
func FromConfig() State {
	dir := rank.Ascending
	if viper.GetBool(key.StreamsSortDescending) {
		dir = rank.Descending
	}

	sortBy, ok := rank.ParseBy(viper.GetString(key.StreamsSortBy))
	if !ok {
		sortBy = rank.ByQuality
	}

	return State{
		Providers:  viper.GetStringSlice(key.StreamsProviders),
		Qualities:  viper.GetStringSlice(key.StreamsQualities),
		MinSizeGB:  viper.GetFloat64(key.StreamsMinSizeGB),
		MaxSizeGB:  viper.GetFloat64(key.StreamsMaxSizeGB),
		CachedOnly: viper.GetBool(key.StreamsCachedOnly),
		SortBy:     sortBy,
		SortDir:    dir,
	}
}

// WithOnlyID returns a copy of the state narrowed to a single candidate id.
func (s State) WithOnlyID(id string) State {
	s.OnlyID = id
	return s
}

// Apply filters and then orders candidates. The input slice is untouched.
func Apply(candidates []*media.Candidate, s State) []*media.Candidate {
	kept := lo.Filter(candidates, func(c *media.Candidate, _ int) bool {
		return s.accepts(c)
	})

	if s.SortBy == "" {
		return kept
	}
	return rank.Rank(kept, s.SortBy, s.SortDir)
}

func (s State) accepts(c *media.Candidate) bool {
	if s.OnlyID != "" && c.ID != s.OnlyID {
		return false
	}

	if len(s.Providers) > 0 && c.Provider != "" && !matchesAny(c.Provider, s.Providers) {
		return false
	}

	if len(s.Qualities) > 0 && c.Quality != "" && !matchesAny(c.Quality, s.Qualities) {
		return false
	}

	if s.CachedOnly && !c.Cached {
		return false
	}

	// Size bounds never exclude candidates with no reported size.
	if s.MinSizeGB > 0 || s.MaxSizeGB > 0 {
		size := rank.ParseSize(c.Size)
		if size > 0 {
			if s.MinSizeGB > 0 && size < s.MinSizeGB*gb {
				return false
			}
			if s.MaxSizeGB > 0 && size > s.MaxSizeGB*gb {
				return false
			}
		}
	}

	return true
}

// matchesAny reports whether value matches one of the tokens under a
// case-insensitive bidirectional substring match, so "web" matches
// "WEB-DL" and "1080p BluRay" matches "1080p".
func matchesAny(value string, tokens []string) bool {
	v := strings.ToLower(value)
	for _, token := range tokens {
		t := strings.ToLower(strings.TrimSpace(token))
		if t == "" {
			continue
		}
		if strings.Contains(v, t) || strings.Contains(t, v) {
			return true
		}
	}
	return false
}
