// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"os"

	"github.com/streamdex-cli/streamdex/aggregate"
	"github.com/streamdex-cli/streamdex/client"
	"github.com/streamdex-cli/streamdex/dedupe"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/provider"
	"github.com/streamdex-cli/streamdex/query"
	"github.com/streamdex-cli/streamdex/session"
	"github.com/streamdex-cli/streamdex/util"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	api := client.Default()
	aggregator := aggregate.New(dedupe.FromConfig(), options.Filter)

	final := aggregator.Collect(ctx, provider.SearchSources(api, options.Query, options.Kind))
	if final.Status == aggregate.Error {
		return fmt.Errorf("every source failed for %q", options.Query)
	}

	util.Ignore(func() error { return query.Remember(options.Query, 1) })

	output := &Output{
		Query:  options.Query,
		Kind:   string(options.Kind),
		Status: final.Status.String(),
		Failed: final.Failed,
		Result: final.Candidates,
	}

	if picker, ok := options.Picker.Get(); ok {
		if choice := picker(final.Candidates); choice != nil {
			output.Result = []*media.Candidate{choice}
		} else {
			output.Result = nil
		}
	}

	if options.Streams && len(output.Result) == 1 {
		streams, err := resolveStreams(ctx, api, aggregator, options, output.Result[0])
		if err != nil {
			return err
		}
		output.Streams = streams
	}

	if options.Json {
		data, err := asJson(output)
		if err != nil {
			return err
		}
		_, err = options.Out.Write(data)
		return err
	}

	for _, c := range output.Result {
		fmt.Fprintln(options.Out, c)
	}
	for _, s := range output.Streams {
		if s.URL != "" {
			fmt.Fprintln(options.Out, s.URL)
		} else {
			fmt.Fprintln(options.Out, s.Title)
		}
	}

	return nil
}

// resolveStreams runs the stream fan-out for a single picked candidate.
func resolveStreams(ctx context.Context, api *client.Client, aggregator *aggregate.Aggregator, options *Options, picked *media.Candidate) ([]*media.Candidate, error) {
	id := session.ContextID{
		ItemID:  picked.ID,
		Kind:    picked.Kind,
		Season:  options.Season,
		Episode: options.Episode,
	}

	final := aggregator.Collect(ctx, provider.StreamSources(api, id, options.Filter.Providers))
	if final.Status == aggregate.Error {
		return nil, fmt.Errorf("stream resolution failed for %s", picked)
	}

	return final.Candidates, nil
}
