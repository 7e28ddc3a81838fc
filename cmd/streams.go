// Package cmd implements the command-line interface for streamdex.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/streamdex-cli/streamdex/filesystem"
	"github.com/streamdex-cli/streamdex/filter"
	"github.com/streamdex-cli/streamdex/inline"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/rank"
)

func init() {
	rootCmd.AddCommand(streamsCmd)

	streamsCmd.Flags().IntP("season", "", 0, "Season number for series stream resolution")
	streamsCmd.Flags().IntP("episode", "e", 0, "Episode number for series stream resolution")
	streamsCmd.Flags().StringSliceP("provider", "p", []string{}, "Restrict the resolution to the given debrid providers")
	streamsCmd.Flags().StringSliceP("quality", "q", []string{}, "Keep only streams matching the given quality labels")
	streamsCmd.Flags().Float64P("min-size", "", 0, "Drop streams smaller than the given size in gigabytes")
	streamsCmd.Flags().Float64P("max-size", "", 0, "Drop streams larger than the given size in gigabytes")
	streamsCmd.Flags().BoolP("cached", "c", false, "Keep only streams already cached by their provider")
	streamsCmd.Flags().StringP("sort", "s", "", "Order the streams by the given comparator")
	streamsCmd.Flags().BoolP("desc", "d", false, "Sort in descending order")
	streamsCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	streamsCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(streamsCmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(rank.Comparators(), func(by rank.By, _ int) string {
			return string(by)
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// streamsCmd resolves candidate streams for a known catalog item.
var streamsCmd = &cobra.Command{
	Use:   "streams <kind> <id>",
	Short: "Resolve, merge and filter the candidate streams for a catalog item",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			writer = f
		} else {
			writer = os.Stdout
		}

		options := &inline.StreamsOptions{
			Out:     writer,
			ID:      args[1],
			Kind:    media.ParseKind(args[0]),
			Season:  lo.Must(cmd.Flags().GetInt("season")),
			Episode: lo.Must(cmd.Flags().GetInt("episode")),
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Filter:  streamsFilter(cmd),
		}

		handleErr(inline.RunStreams(cmd.Context(), options))
	},
}

// streamsFilter layers the command flags over the configured stream filter.
func streamsFilter(cmd *cobra.Command) filter.State {
	st := filter.FromConfig()

	if cmd.Flags().Changed("provider") {
		st.Providers = lo.Must(cmd.Flags().GetStringSlice("provider"))
	}
	if cmd.Flags().Changed("quality") {
		st.Qualities = lo.Must(cmd.Flags().GetStringSlice("quality"))
	}
	if cmd.Flags().Changed("min-size") {
		st.MinSizeGB = lo.Must(cmd.Flags().GetFloat64("min-size"))
	}
	if cmd.Flags().Changed("max-size") {
		st.MaxSizeGB = lo.Must(cmd.Flags().GetFloat64("max-size"))
	}
	if cmd.Flags().Changed("cached") {
		st.CachedOnly = lo.Must(cmd.Flags().GetBool("cached"))
	}
	if cmd.Flags().Changed("sort") {
		raw := lo.Must(cmd.Flags().GetString("sort"))
		by, ok := rank.ParseBy(raw)
		if !ok {
			handleErr(fmt.Errorf("unknown sort comparator: %s", raw))
		}
		st.SortBy = by
	}
	if cmd.Flags().Changed("desc") {
		st.SortDir = rank.Ascending
		if lo.Must(cmd.Flags().GetBool("desc")) {
			st.SortDir = rank.Descending
		}
	}

	return st
}
