package history

import (
	"fmt"

	"github.com/streamdex-cli/streamdex/media"
)

// SavedEngagement is a single persisted playback entry.
type SavedEngagement struct {
	ItemID      string  `json:"item_id"`
	Title       string  `json:"title"`
	Kind        string  `json:"kind"`
	Season      int     `json:"season,omitempty"`
	Episode     int     `json:"episode,omitempty"`
	CandidateID string  `json:"candidate_id"`
	SourceID    string  `json:"source_id,omitempty"`
	ProviderID  string  `json:"provider_id,omitempty"`
	Offset      float64 `json:"offset"`
	Duration    float64 `json:"duration,omitempty"`
}

// encode keys the registry by context identity, one entry per item (and
// per episode for series).
func (s *SavedEngagement) encode() string {
	if s.Season > 0 || s.Episode > 0 {
		return fmt.Sprintf("%s/%s/s%02de%02d", s.ItemID, s.Kind, s.Season, s.Episode)
	}
	return fmt.Sprintf("%s/%s", s.ItemID, s.Kind)
}

func (s *SavedEngagement) String() string {
	label := s.Title
	if label == "" {
		label = s.ItemID
	}
	if s.Kind == string(media.KindSeries) {
		return fmt.Sprintf("%s S%02dE%02d", label, s.Season, s.Episode)
	}
	return label
}

// Progress renders the resume position as a fraction of the duration.
func (s *SavedEngagement) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return s.Offset / s.Duration
}
