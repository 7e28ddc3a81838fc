// Package session derives the selection state of the console from the
// current navigation context via a pure reducer.
//
// The reducer owns the rules for when a selection resets and when it is
// carried over; hosts feed it inputs and execute the effects it emits.
// Being pure makes the transition rules testable without a running UI.
package session

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/streamdex-cli/streamdex/media"
)

// ContextID identifies what the user is looking at. For series the season
// and episode are part of the identity, so moving to the next episode is a
// context change.
type ContextID struct {
	ItemID  string
	Kind    media.Kind
	Season  int
	Episode int
}

// Key renders the identity as a stable string, used for history lookups.
func (c ContextID) Key() string {
	if c.Season > 0 || c.Episode > 0 {
		return fmt.Sprintf("%s/%s/s%02de%02d", c.ItemID, c.Kind, c.Season, c.Episode)
	}
	return fmt.Sprintf("%s/%s", c.ItemID, c.Kind)
}

// Selection is what the user currently has picked within a context.
type Selection struct {
	SourceID     string
	ProviderID   string
	CandidateID  string
	ResumeOffset float64
}

// Snapshot is the full session state. The zero Snapshot means no context
// has been entered yet.
type Snapshot struct {
	Context     ContextID
	Selection   Selection
	Initialized bool
}

// Hint seeds a fresh context's selection from persisted history.
type Hint struct {
	CandidateID string
	SourceID    string
	ProviderID  string
	Offset      float64
}

// Inputs is everything a reduction step may read.
type Inputs struct {
	Context    ContextID
	Sources    []string
	Providers  []string
	Candidates []*media.Candidate

	Hint mo.Option[Hint]

	UserSource    mo.Option[string]
	UserProvider  mo.Option[string]
	UserCandidate mo.Option[string]
}

// Effect tells the host what to do after a transition.
type Effect int

const (
	// EffectContextReset means the context identity changed: abort any
	// in-flight progress writer and reload dependent data.
	EffectContextReset Effect = iota
	// EffectPersistSelection means the user committed to a candidate and
	// the selection should be written to history.
	EffectPersistSelection
)

// Reduce computes the next snapshot from the previous one and the inputs.
// It is deterministic and mutates neither argument.
func Reduce(prev Snapshot, in Inputs) (Snapshot, []Effect) {
	var effects []Effect

	next := Snapshot{Context: in.Context, Initialized: true}
	identityChanged := !prev.Initialized || prev.Context != in.Context

	if identityChanged {
		effects = append(effects, EffectContextReset)
		next.Selection = seedSelection(prev, in)
	} else {
		next.Selection = prev.Selection
	}

	next.Selection.SourceID = pickToken(in.UserSource, next.Selection.SourceID, in.Sources)
	next.Selection.ProviderID = pickToken(in.UserProvider, next.Selection.ProviderID, in.Providers)

	if id, ok := in.UserCandidate.Get(); ok && hasCandidate(in.Candidates, id) {
		if next.Selection.CandidateID != id {
			next.Selection.ResumeOffset = 0
		}
		next.Selection.CandidateID = id
		effects = append(effects, EffectPersistSelection)
	} else if next.Selection.CandidateID != "" && !hasCandidate(in.Candidates, next.Selection.CandidateID) {
		next.Selection.CandidateID = ""
		next.Selection.ResumeOffset = 0
	}

	return next, effects
}

// seedSelection builds the initial selection for a fresh context. Only the
// context-dependent fields (candidate, resume offset) start from zero: the
// source and provider carry over from the previous context, since switching
// episodes is no reason to forget which provider the user prefers. A history
// hint overrides whatever it specifies.
func seedSelection(prev Snapshot, in Inputs) Selection {
	var s Selection
	if prev.Initialized {
		s.SourceID = prev.Selection.SourceID
		s.ProviderID = prev.Selection.ProviderID
	}
	if hint, ok := in.Hint.Get(); ok {
		if hint.SourceID != "" {
			s.SourceID = hint.SourceID
		}
		if hint.ProviderID != "" {
			s.ProviderID = hint.ProviderID
		}
		s.ResumeOffset = hint.Offset
		if hasCandidate(in.Candidates, hint.CandidateID) || len(in.Candidates) == 0 {
			s.CandidateID = hint.CandidateID
		}
	}
	return s
}

// pickToken resolves a token against the available set: an explicit valid
// user choice wins, then a still-valid previous choice, then the first
// available entry.
func pickToken(user mo.Option[string], previous string, available []string) string {
	if choice, ok := user.Get(); ok && lo.Contains(available, choice) {
		return choice
	}
	if previous != "" && lo.Contains(available, previous) {
		return previous
	}
	if len(available) > 0 {
		return available[0]
	}
	return ""
}

func hasCandidate(candidates []*media.Candidate, id string) bool {
	if id == "" {
		return false
	}
	return lo.ContainsBy(candidates, func(c *media.Candidate) bool { return c.ID == id })
}
