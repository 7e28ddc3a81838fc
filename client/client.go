package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/streamdex-cli/streamdex/auth"
	"github.com/streamdex-cli/streamdex/internal/cache"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/log"
	"github.com/streamdex-cli/streamdex/network"
)

// Client talks to the streamdex aggregation service.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

var (
	defaultClient *Client
	defaultOnce   sync.Once
)

// Default returns the process-wide client configured from viper and the keyring.
func Default() *Client {
	defaultOnce.Do(func() {
		defaultClient = New()
	})
	return defaultClient
}

// New builds a client from the current configuration.
// A missing auth token is not an error, the service allows anonymous reads.
func New() *Client {
	token, err := auth.GetToken()
	if err != nil {
		log.Debugf("client: no stored token: %s", err)
	}

	httpClient := network.Client
	if timeout := viper.GetInt(key.APITimeout); timeout > 0 {
		copied := *network.Client
		copied.Timeout = time.Duration(timeout) * time.Second
		httpClient = &copied
	}

	return &Client{
		baseURL: viper.GetString(key.APIBaseURL),
		http:    httpClient,
		token:   token,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, target any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Tracef("client: %s %s", method, endpoint)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %s", method, path, resp.Status)
	}

	if target == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(target)
}

// Search queries the service's internal catalog index.
// Responses are cached on disk under the configured TTL.
func (c *Client) Search(ctx context.Context, query, kind string) ([]InternalRecord, error) {
	cacheKey := cache.GenerateKey("catalog", kind, query)

	var cached SearchResponse
	if cache.Read(cacheKey, &cached) {
		log.Debugf("client: catalog cache hit for %q", query)
		return cached.Results, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("kind", kind)
	params.Set("limit", strconv.Itoa(viper.GetInt(key.SearchLimit)))

	var resp SearchResponse
	if err := c.do(ctx, http.MethodGet, "/catalog/search", params, nil, &resp); err != nil {
		return nil, err
	}

	cache.Write(cacheKey, resp)
	return resp.Results, nil
}

// SearchExternal queries an external metadata provider through the service proxy.
func (c *Client) SearchExternal(ctx context.Context, provider, query, kind string) ([]ExternalRecord, error) {
	cacheKey := cache.GenerateKey(provider, kind, query)

	var cached ExternalSearchResponse
	if cache.Read(cacheKey, &cached) {
		log.Debugf("client: %s cache hit for %q", provider, query)
		return cached.Results, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("kind", kind)

	var resp ExternalSearchResponse
	if err := c.do(ctx, http.MethodGet, "/providers/"+url.PathEscape(provider)+"/search", params, nil, &resp); err != nil {
		return nil, err
	}

	cache.Write(cacheKey, resp)
	return resp.Results, nil
}

// Streams resolves the playable streams for a content item.
// Season and episode are zero for movies and channels. An empty providerID
// asks for all providers the account can reach.
func (c *Client) Streams(ctx context.Context, kind, id string, season, episode int, providerID string) (*StreamsResponse, error) {
	params := url.Values{}
	if season > 0 {
		params.Set("season", strconv.Itoa(season))
	}
	if episode > 0 {
		params.Set("episode", strconv.Itoa(episode))
	}
	if providerID != "" {
		params.Set("provider", providerID)
	}

	path := "/streams/" + url.PathEscape(kind) + "/" + url.PathEscape(id)

	var resp StreamsResponse
	if err := c.do(ctx, http.MethodGet, path, params, nil, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// OpenEngagement registers a playback session and returns its id plus the
// offset to resume from.
func (c *Client) OpenEngagement(ctx context.Context, payload EngagementPayload) (*EngagementResponse, error) {
	var resp EngagementResponse
	if err := c.do(ctx, http.MethodPost, "/engagements", nil, payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateProgress pushes the current resume offset of an active engagement.
func (c *Client) UpdateProgress(ctx context.Context, engagementID string, offset, duration float64) error {
	path := "/engagements/" + url.PathEscape(engagementID) + "/progress"
	return c.do(ctx, http.MethodPut, path, nil, progressPayload{Offset: offset, Duration: duration}, nil)
}
