// Package inline provides the implementation for the application's non-interactive, programmable execution mode.
package inline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/streamdex-cli/streamdex/aggregate"
	"github.com/streamdex-cli/streamdex/client"
	"github.com/streamdex-cli/streamdex/dedupe"
	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/provider"
	"github.com/streamdex-cli/streamdex/session"
)

// StreamsOptions configures a direct stream resolution run for a known item.
type StreamsOptions struct {
	Out io.Writer

	ID      string
	Kind    media.Kind
	Season  int
	Episode int

	Json   bool
	Filter filter.State
}

// RunStreams resolves, merges and filters the candidate streams for one item
// and writes the settled view.
func RunStreams(ctx context.Context, options *StreamsOptions) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	api := client.Default()
	aggregator := aggregate.New(dedupe.FromConfig(), options.Filter)

	id := session.ContextID{
		ItemID:  options.ID,
		Kind:    options.Kind,
		Season:  options.Season,
		Episode: options.Episode,
	}

	final := aggregator.Collect(ctx, provider.StreamSources(api, id, options.Filter.Providers))
	if final.Status == aggregate.Error {
		return fmt.Errorf("stream resolution failed for %s", options.ID)
	}

	if options.Json {
		data, err := asJson(&Output{
			Query:   options.ID,
			Kind:    string(options.Kind),
			Status:  final.Status.String(),
			Failed:  final.Failed,
			Streams: final.Candidates,
		})
		if err != nil {
			return err
		}
		_, err = options.Out.Write(data)
		return err
	}

	for _, s := range final.Candidates {
		if s.URL != "" {
			fmt.Fprintln(options.Out, s.URL)
		} else {
			fmt.Fprintln(options.Out, s.Title)
		}
	}

	return nil
}
