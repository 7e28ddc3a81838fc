// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/util"
)

// CandidatePicker narrows the merged result set down to one candidate.
type CandidatePicker func([]*media.Candidate) *media.Candidate

type Options struct {
	Out io.Writer

	Query string
	Kind  media.Kind

	Json    bool
	Streams bool
	Season  int
	Episode int

	Picker mo.Option[CandidatePicker]
	Filter filter.State
}

// ParseCandidatePicker parses the picker description given on the command line.
// Supported forms: "first", "last", "exact" (with value), or a numeric index.
func ParseCandidatePicker(kind, value string) (CandidatePicker, error) {
	switch kind {
	case "first":
		return func(candidates []*media.Candidate) *media.Candidate {
			if len(candidates) == 0 {
				return nil
			}
			return candidates[0]
		}, nil
	case "last":
		return func(candidates []*media.Candidate) *media.Candidate {
			if len(candidates) == 0 {
				return nil
			}
			return candidates[len(candidates)-1]
		}, nil
	case "exact":
		return func(candidates []*media.Candidate) *media.Candidate {
			for _, c := range candidates {
				if c.Title == value || c.ID == value {
					return c
				}
			}
			return nil
		}, nil
	case "index":
		idx, err := strconv.ParseUint(strings.TrimSpace(value), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid index: %s", value)
		}
		return func(candidates []*media.Candidate) *media.Candidate {
			if len(candidates) == 0 {
				return nil
			}
			i := util.Min(idx, uint64(len(candidates)-1))
			return candidates[i]
		}, nil
	default:
		return nil, fmt.Errorf("unknown picker type: %s", kind)
	}
}
