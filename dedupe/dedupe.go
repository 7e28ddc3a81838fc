// Package dedupe merges candidate lists from multiple sources into a single
// duplicate-free list.
//
// Identity comes from media.Candidate.DedupeKey. When two candidates share a
// key, the one whose origin has the higher configured priority wins; at equal
// priority the first seen wins, so merge output does not depend on which
// source finished last.
package dedupe

import (
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/spf13/viper"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
)

// Priority ranks an origin; a higher value beats a lower one.
type Priority func(media.Origin) int

// OriginPriority builds a Priority from an ordered origin name list,
// earliest name ranking highest. Unlisted origins rank lowest.
func OriginPriority(order []string) Priority {
	ranks := make(map[string]int, len(order))
	for i, name := range order {
		ranks[name] = len(order) - i
	}
	return func(o media.Origin) int {
		return ranks[o.String()]
	}
}

// FromConfig builds the Priority currently configured under sources.priority_order.
// sources.external_first flips the configured order, letting external metadata
// win merges without rewriting the order list.
func FromConfig() Priority {
	order := viper.GetStringSlice(key.SourcesPriorityOrder)
	if viper.GetBool(key.SourcesExternalFirst) {
		reversed := make([]string, len(order))
		for i, name := range order {
			reversed[len(order)-1-i] = name
		}
		order = reversed
	}
	return OriginPriority(order)
}

// Merge folds incoming into existing, returning a new duplicate-free slice.
// Neither input is mutated. Output order is deterministic for a given pair
// of inputs: surviving existing candidates first, then unseen incoming ones,
// each group in its input order with higher-priority origins ahead.
func Merge(existing, incoming []*media.Candidate, priorityOf Priority) []*media.Candidate {
	if priorityOf == nil {
		priorityOf = func(media.Origin) int { return 0 }
	}

	ordered := make([]*media.Candidate, 0, len(existing)+len(incoming))
	ordered = append(ordered, existing...)
	ordered = append(ordered, incoming...)

	// Stable: equal priorities keep first-seen order.
	stableSortByPriority(ordered, priorityOf)

	seen := make(map[string]*media.Candidate, len(ordered))
	merged := make([]*media.Candidate, 0, len(ordered))

	for _, candidate := range ordered {
		k := candidate.DedupeKey()
		winner, dup := seen[k]
		if !dup {
			kept := *candidate
			// absorb writes into this map, so the winner needs its own copy.
			if len(candidate.ExternalIDs) > 0 {
				kept.ExternalIDs = make(map[string]string, len(candidate.ExternalIDs))
				for scheme, id := range candidate.ExternalIDs {
					kept.ExternalIDs[scheme] = id
				}
			}
			seen[k] = &kept
			merged = append(merged, &kept)
			continue
		}
		absorb(winner, candidate)
	}

	return merged
}

// stableSortByPriority moves higher-priority candidates ahead while keeping
// relative order within each priority class.
func stableSortByPriority(candidates []*media.Candidate, priorityOf Priority) {
	buckets := make(map[int][]*media.Candidate)
	var priorities []int
	for _, c := range candidates {
		p := priorityOf(c.Origin)
		if _, ok := buckets[p]; !ok {
			priorities = append(priorities, p)
		}
		buckets[p] = append(buckets[p], c)
	}

	// Few distinct priorities in practice, selection over the keys is enough.
	for i := range priorities {
		for j := i + 1; j < len(priorities); j++ {
			if priorities[j] > priorities[i] {
				priorities[i], priorities[j] = priorities[j], priorities[i]
			}
		}
	}

	idx := 0
	for _, p := range priorities {
		for _, c := range buckets[p] {
			candidates[idx] = c
			idx++
		}
	}
}

// absorb copies fields the winner is missing from a merged-away duplicate
// and flags the merge when the titles disagree enough that the composite
// key match looks accidental.
func absorb(winner, loser *media.Candidate) {
	if winner.Image == "" {
		winner.Image = loser.Image
	}
	if winner.Year == 0 {
		winner.Year = loser.Year
	}
	for scheme, id := range loser.ExternalIDs {
		if winner.ExternalIDs == nil {
			winner.ExternalIDs = make(map[string]string)
		}
		if _, ok := winner.ExternalIDs[scheme]; !ok {
			winner.ExternalIDs[scheme] = id
		}
	}

	if winner.Title != loser.Title && levenshtein.Distance(winner.Title, loser.Title) > threshold() {
		winner.LowConfidence = true
	}
}

func threshold() int {
	if t := viper.GetInt(key.DedupeLowConfidenceDistance); t > 0 {
		return t
	}
	return 5
}
