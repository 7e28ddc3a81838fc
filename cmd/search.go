// Package cmd implements the command-line interface for streamdex.
package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/streamdex-cli/streamdex/filesystem"
	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/inline"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/query"
	"github.com/streamdex-cli/streamdex/rank"
)

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "The search query to fan out to the enabled sources")
	searchCmd.Flags().StringP("kind", "k", "movie", "The content kind to search for (movie, series, channel)")
	searchCmd.Flags().StringP("pick", "p", "", "Criteria for picking one candidate (first, last, exact, index)")
	searchCmd.Flags().StringP("pick-value", "P", "", "The value accompanying the pick criteria")
	searchCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	searchCmd.Flags().BoolP("streams", "s", false, "Resolve streams for the picked candidate")
	searchCmd.Flags().IntP("season", "", 0, "Season number for series stream resolution")
	searchCmd.Flags().IntP("episode", "e", 0, "Episode number for series stream resolution")
	searchCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	searchCmd.Flags().Bool("output-schema", false, "Print the JSON schema of the structured output and exit")

	_ = searchCmd.RegisterFlagCompletionFunc("query", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

// searchCmd executes a one-shot aggregated search in non-interactive mode.
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Execute a one-shot aggregated search across the enabled sources",
	Long: `Fan the query out to every enabled source, merge and deduplicate the
results, and print the settled view.

Candidate pickers:
  first - first candidate in the merged list
  last - last candidate in the merged list
  exact - candidate whose title or id equals --pick-value
  index - candidate at position --pick-value (clamped)`,
	PreRun: func(cmd *cobra.Command, args []string) {
		streams, _ := cmd.Flags().GetBool("streams")
		if streams {
			lo.Must0(cmd.MarkFlagRequired("pick"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("output-schema")) {
			printOutputSchema()
			return
		}

		q := lo.Must(cmd.Flags().GetString("query"))
		if q == "" {
			handleErr(errors.New("query is required"))
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			writer = f
		} else {
			writer = os.Stdout
		}

		pickFlag := lo.Must(cmd.Flags().GetString("pick"))
		picker := mo.None[inline.CandidatePicker]()
		if pickFlag != "" {
			fn, err := inline.ParseCandidatePicker(pickFlag, lo.Must(cmd.Flags().GetString("pick-value")))
			handleErr(err)
			picker = mo.Some(fn)
		}

		options := &inline.Options{
			Out:     writer,
			Query:   q,
			Kind:    media.ParseKind(lo.Must(cmd.Flags().GetString("kind"))),
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Streams: lo.Must(cmd.Flags().GetBool("streams")),
			Season:  lo.Must(cmd.Flags().GetInt("season")),
			Episode: lo.Must(cmd.Flags().GetInt("episode")),
			Picker:  picker,
			Filter:  searchFilter(),
		}

		handleErr(inline.Run(cmd.Context(), options))
	},
}

// searchFilter builds the result ordering for one-shot searches. Search
// results rank by year, streams keep the configured stream ordering.
func searchFilter() filter.State {
	st := filter.FromConfig()
	st.SortBy = rank.ByYear
	st.SortDir = rank.Descending
	return st
}

// printOutputSchema emits the JSON schema of the structured output envelope.
func printOutputSchema() {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		name := t.Name()
		switch strings.ToLower(name) {
		case "candidate", "output":
			return "streamdex." + name
		}
		return name
	}

	schema := reflector.Reflect(&inline.Output{})
	handleErr(json.NewEncoder(os.Stdout).Encode(schema))
}
