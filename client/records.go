// Package client implements a typed HTTP client for the streamdex aggregation service API.
package client

// InternalRecord is a raw catalog search hit as returned by the service's internal index.
type InternalRecord struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Year   int    `json:"year,omitempty"`
	Poster string `json:"poster,omitempty"`
	Kind   string `json:"kind"`
	IMDBID string `json:"imdbId,omitempty"`
	TMDBID string `json:"tmdbId,omitempty"`
}

// ExternalRecord is a raw metadata hit as returned by an external provider proxy endpoint.
// Field coverage varies per provider; absent fields stay zero.
type ExternalRecord struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	ReleaseYear int               `json:"releaseYear,omitempty"`
	Image       string            `json:"image,omitempty"`
	Type        string            `json:"type"`
	ExternalIDs map[string]string `json:"externalIds,omitempty"`
}

// StreamRecord is a raw playable stream as resolved by the service for a content item.
type StreamRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url,omitempty"`
	InfoHash string `json:"infoHash,omitempty"`
	Quality  string `json:"quality,omitempty"`
	Size     string `json:"size,omitempty"`
	Seeders  int    `json:"seeders,omitempty"`
	Cached   bool   `json:"cached,omitempty"`
}

// ProviderInfo describes a stream provider available for a content item.
type ProviderInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchResponse wraps internal catalog search results.
type SearchResponse struct {
	Results []InternalRecord `json:"results"`
}

// ExternalSearchResponse wraps external provider search results.
type ExternalSearchResponse struct {
	Results []ExternalRecord `json:"results"`
}

// StreamsResponse wraps resolved streams plus the providers able to serve the item.
type StreamsResponse struct {
	Streams            []StreamRecord `json:"streams"`
	AvailableProviders []ProviderInfo `json:"availableProviders"`
}

// EngagementPayload opens a tracked playback session on the service.
type EngagementPayload struct {
	ItemID      string `json:"itemId"`
	Kind        string `json:"kind"`
	Season      int    `json:"season,omitempty"`
	Episode     int    `json:"episode,omitempty"`
	CandidateID string `json:"candidateId"`
	SourceID    string `json:"sourceId,omitempty"`
	ProviderID  string `json:"providerId,omitempty"`
}

// EngagementResponse is the service acknowledgement for a new engagement.
type EngagementResponse struct {
	EngagementID string  `json:"engagementId"`
	ResumeOffset float64 `json:"resumeOffset"`
	Duration     float64 `json:"duration,omitempty"`
}

// progressPayload updates the resume offset of an active engagement.
type progressPayload struct {
	Offset   float64 `json:"offset"`
	Duration float64 `json:"duration,omitempty"`
}
