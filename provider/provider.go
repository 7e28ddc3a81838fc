// Package provider manages the registry of search sources and builds the
// fan-out targets for the aggregator.
package provider

import (
	"context"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/streamdex-cli/streamdex/aggregate"
	"github.com/streamdex-cli/streamdex/client"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
)

// Provider represents one registered search source.
type Provider struct {
	ID     string
	Name   string
	Origin media.Origin
	Kinds  []media.Kind

	fetch func(ctx context.Context, api *client.Client, query string, kind media.Kind) ([]*media.Candidate, error)
}

func (p *Provider) String() string {
	return p.Name
}

// Supports reports whether the provider serves the given content kind.
func (p *Provider) Supports(kind media.Kind) bool {
	return lo.Contains(p.Kinds, kind)
}

// Builtins returns every registered provider, the internal catalog first.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:     "catalog",
			Name:   "Catalog",
			Origin: media.OriginInternal,
			Kinds:  media.Kinds(),
			fetch: func(ctx context.Context, api *client.Client, query string, kind media.Kind) ([]*media.Candidate, error) {
				records, err := api.Search(ctx, query, string(kind))
				if err != nil {
					return nil, err
				}
				return lo.Map(records, func(r client.InternalRecord, _ int) *media.Candidate {
					return media.NormalizeInternal(r)
				}), nil
			},
		},
		external("cinemeta", "Cinemeta", media.KindMovie, media.KindSeries),
		external("tvmaze", "TVmaze", media.KindSeries, media.KindChannel),
	}
}

// external builds a provider backed by the service's external metadata proxy.
func external(id, name string, kinds ...media.Kind) *Provider {
	return &Provider{
		ID:     id,
		Name:   name,
		Origin: media.OriginExternal,
		Kinds:  kinds,
		fetch: func(ctx context.Context, api *client.Client, query string, kind media.Kind) ([]*media.Candidate, error) {
			records, err := api.SearchExternal(ctx, id, query, string(kind))
			if err != nil {
				return nil, err
			}
			return lo.Map(records, func(r client.ExternalRecord, _ int) *media.Candidate {
				return media.NormalizeExternal(r, id)
			}), nil
		},
	}
}

// Get finds a provider by id or name.
func Get(name string) (*Provider, bool) {
	for _, p := range Builtins() {
		if p.ID == name || p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// enabled reports whether the provider is turned on in the configuration.
func (p *Provider) enabled() bool {
	return lo.Contains(viper.GetStringSlice(key.SourcesEnabled), p.ID)
}

// SearchSources builds the aggregator fan-out targets for a search query.
// Disabled providers and providers that do not serve the kind are skipped
// at run time through the Enabled hook, so the target list itself stays
// stable across configuration changes.
func SearchSources(api *client.Client, query string, kind media.Kind) []aggregate.Source {
	var sources []aggregate.Source
	for _, p := range Builtins() {
		p := p
		if !p.Supports(kind) {
			continue
		}
		sources = append(sources, aggregate.Source{
			ID:      p.ID,
			Enabled: p.enabled,
			Fetch: func(ctx context.Context) ([]*media.Candidate, error) {
				return p.fetch(ctx, api, query, kind)
			},
		})
	}
	return sources
}
