package provider

import (
	"context"

	"github.com/samber/lo"

	"github.com/streamdex-cli/streamdex/aggregate"
	"github.com/streamdex-cli/streamdex/client"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/session"
)

// StreamProviders asks the service which stream providers can serve an item.
func StreamProviders(ctx context.Context, api *client.Client, id session.ContextID) ([]client.ProviderInfo, error) {
	resp, err := api.Streams(ctx, string(id.Kind), id.ItemID, id.Season, id.Episode, "")
	if err != nil {
		return nil, err
	}
	return resp.AvailableProviders, nil
}

// StreamSources builds one fan-out target per stream provider for an item.
// An empty provider list yields a single target covering all providers.
func StreamSources(api *client.Client, id session.ContextID, providerIDs []string) []aggregate.Source {
	if len(providerIDs) == 0 {
		providerIDs = []string{""}
	}

	return lo.Map(providerIDs, func(providerID string, _ int) aggregate.Source {
		sourceID := providerID
		if sourceID == "" {
			sourceID = "streams"
		}
		return aggregate.Source{
			ID: sourceID,
			Fetch: func(ctx context.Context) ([]*media.Candidate, error) {
				resp, err := api.Streams(ctx, string(id.Kind), id.ItemID, id.Season, id.Episode, providerID)
				if err != nil {
					return nil, err
				}
				return lo.Map(resp.Streams, func(r client.StreamRecord, _ int) *media.Candidate {
					return media.NormalizeStream(r, providerID, id.Kind)
				}), nil
			},
		}
	})
}
