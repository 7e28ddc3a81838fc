// Package media defines the unified candidate model shared by every source.
//
// Raw provider records differ in shape and field coverage; everything that
// flows through deduplication, ranking and filtering is first normalized
// into a Candidate.
package media

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind is the content category of a candidate.
type Kind string

const (
	KindMovie   Kind = "movie"
	KindSeries  Kind = "series"
	KindChannel Kind = "channel"
)

// Kinds lists every supported content kind.
func Kinds() []Kind {
	return []Kind{KindMovie, KindSeries, KindChannel}
}

// ParseKind maps a raw kind label onto a known Kind, defaulting to movie.
func ParseKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "series", "show", "tv":
		return KindSeries
	case "channel", "live":
		return KindChannel
	default:
		return KindMovie
	}
}

// Origin tells whether a candidate came from the internal catalog or an
// external metadata provider.
type Origin int

const (
	OriginInternal Origin = iota
	OriginExternal
)

func (o Origin) String() string {
	if o == OriginInternal {
		return "internal"
	}
	return "external"
}

// Candidate is a normalized search or stream result.
type Candidate struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Year        int               `json:"year,omitempty"`
	Image       string            `json:"image,omitempty"`
	Kind        Kind              `json:"kind"`
	Origin      Origin            `json:"-"`
	Provider    string            `json:"provider,omitempty"`
	ExternalIDs map[string]string `json:"externalIds,omitempty"`

	// Stream payload, zero for plain metadata candidates.
	Quality string `json:"quality,omitempty"`
	Size    string `json:"size,omitempty"`
	Seeders int    `json:"seeders,omitempty"`
	Cached  bool   `json:"cached,omitempty"`
	URL     string `json:"url,omitempty"`

	// LowConfidence marks a merge whose identity match relied on a fuzzy
	// composite key rather than a shared external id.
	LowConfidence bool `json:"lowConfidence,omitempty"`
}

func (c *Candidate) String() string {
	if c.Year > 0 {
		return fmt.Sprintf("%s (%d)", c.Title, c.Year)
	}
	return c.Title
}

// DedupeKey returns the identity under which candidates from different
// sources are considered the same entity. A shared external id wins over
// the fuzzy title+year composite.
func (c *Candidate) DedupeKey() string {
	for _, scheme := range []string{"infohash", "stream", "imdb", "tmdb"} {
		if id, ok := c.ExternalIDs[scheme]; ok && id != "" {
			return scheme + ":" + id
		}
	}
	return CompositeKey(c.Title, c.Year)
}

// CompositeKey builds the fallback identity from a normalized title and year.
func CompositeKey(title string, year int) string {
	normalized := normalizeTitle(title)
	if year > 0 {
		return fmt.Sprintf("title:%s:%d", normalized, year)
	}
	return "title:" + normalized
}

// normalizeTitle lowercases the title and collapses every run of
// non-alphanumeric characters so punctuation and spacing differences
// between providers do not break identity.
func normalizeTitle(title string) string {
	var b strings.Builder
	previousSpace := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			previousSpace = false
			continue
		}
		if !previousSpace && b.Len() > 0 {
			b.WriteRune(' ')
			previousSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
