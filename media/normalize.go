package media

import (
	"strings"

	"github.com/streamdex-cli/streamdex/client"
)

// NormalizeInternal converts a catalog record into a Candidate.
func NormalizeInternal(r client.InternalRecord) *Candidate {
	external := make(map[string]string)
	if r.IMDBID != "" {
		external["imdb"] = r.IMDBID
	}
	if r.TMDBID != "" {
		external["tmdb"] = r.TMDBID
	}

	return &Candidate{
		ID:          r.ID,
		Title:       strings.TrimSpace(r.Title),
		Year:        r.Year,
		Image:       r.Poster,
		Kind:        ParseKind(r.Kind),
		Origin:      OriginInternal,
		ExternalIDs: external,
	}
}

// NormalizeExternal converts an external provider record into a Candidate.
func NormalizeExternal(r client.ExternalRecord, provider string) *Candidate {
	external := make(map[string]string, len(r.ExternalIDs))
	for scheme, id := range r.ExternalIDs {
		if id != "" {
			external[strings.ToLower(scheme)] = id
		}
	}

	return &Candidate{
		ID:          r.ID,
		Title:       strings.TrimSpace(r.Name),
		Year:        r.ReleaseYear,
		Image:       r.Image,
		Kind:        ParseKind(r.Type),
		Origin:      OriginExternal,
		Provider:    provider,
		ExternalIDs: external,
	}
}

// NormalizeStream converts a resolved stream into a Candidate.
// Streams dedupe by info hash when present, otherwise by service id.
func NormalizeStream(r client.StreamRecord, provider string, kind Kind) *Candidate {
	external := make(map[string]string)
	if r.InfoHash != "" {
		external["infohash"] = strings.ToLower(r.InfoHash)
	} else if r.ID != "" {
		external["stream"] = r.ID
	}

	return &Candidate{
		ID:          r.ID,
		Title:       strings.TrimSpace(r.Title),
		Kind:        kind,
		Origin:      OriginExternal,
		Provider:    provider,
		ExternalIDs: external,
		Quality:     r.Quality,
		Size:        r.Size,
		Seeders:     r.Seeders,
		Cached:      r.Cached,
		URL:         r.URL,
	}
}
