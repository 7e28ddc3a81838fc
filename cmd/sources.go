// Package cmd implements the command-line interface for streamdex.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/streamdex-cli/streamdex/color"
	"github.com/streamdex-cli/streamdex/icon"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/media"
	"github.com/streamdex-cli/streamdex/provider"
	"github.com/streamdex-cli/streamdex/style"
)

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

// sourcesCmd provides a parent command for managing search sources.
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage the registered search sources",
}

func init() {
	sourcesCmd.AddCommand(sourcesListCmd)

	sourcesListCmd.Flags().BoolP("raw", "r", false, "Suppress header and metadata descriptions in the output")
	sourcesListCmd.Flags().BoolP("enabled", "e", false, "Display only the sources enabled in the configuration")

	sourcesListCmd.SetOut(os.Stdout)
}

func completionSourceIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(provider.Builtins(), func(p *provider.Provider, _ int) string {
		return p.ID
	}), cobra.ShellCompDirectiveNoFileComp
}

// writeEnabledSources persists the enabled source list to the config file.
func writeEnabledSources(enabled []string) {
	viper.Set(key.SourcesEnabled, enabled)
	switch err := viper.WriteConfig(); err.(type) {
	case viper.ConfigFileNotFoundError:
		handleErr(viper.SafeWriteConfig())
	default:
		handleErr(err)
	}
}

func init() {
	sourcesCmd.AddCommand(sourcesEnableCmd)
}

// sourcesEnableCmd turns the given sources on in the configuration.
var sourcesEnableCmd = &cobra.Command{
	Use:               "enable <source>...",
	Short:             "Enable the given search sources",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionSourceIDs,
	Run: func(cmd *cobra.Command, args []string) {
		enabled := viper.GetStringSlice(key.SourcesEnabled)
		for _, name := range args {
			p, ok := provider.Get(name)
			if !ok {
				handleErr(fmt.Errorf("unknown source: %s", name))
			}
			if !lo.Contains(enabled, p.ID) {
				enabled = append(enabled, p.ID)
			}
		}

		writeEnabledSources(enabled)
		fmt.Printf("%s enabled %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), strings.Join(args, ", "))
	},
}

func init() {
	sourcesCmd.AddCommand(sourcesDisableCmd)
}

// sourcesDisableCmd turns the given sources off in the configuration.
var sourcesDisableCmd = &cobra.Command{
	Use:               "disable <source>...",
	Short:             "Disable the given search sources",
	Args:              cobra.MinimumNArgs(1),
	ValidArgsFunction: completionSourceIDs,
	Run: func(cmd *cobra.Command, args []string) {
		var ids []string
		for _, name := range args {
			p, ok := provider.Get(name)
			if !ok {
				handleErr(fmt.Errorf("unknown source: %s", name))
			}
			ids = append(ids, p.ID)
		}

		enabled := lo.Filter(viper.GetStringSlice(key.SourcesEnabled), func(id string, _ int) bool {
			return !lo.Contains(ids, id)
		})

		writeEnabledSources(enabled)
		fmt.Printf("%s disabled %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), strings.Join(args, ", "))
	},
}

// sourcesListCmd displays a summary of all registered search sources.
var sourcesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display a collection of all registered search sources",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			raw         = lo.Must(cmd.Flags().GetBool("raw"))
			enabledOnly = lo.Must(cmd.Flags().GetBool("enabled"))
			enabled     = viper.GetStringSlice(key.SourcesEnabled)
			headerStyle = style.New().Foreground(color.HiBlue).Bold(true).Render
		)

		sources := provider.Builtins()
		if enabledOnly {
			sources = lo.Filter(sources, func(p *provider.Provider, _ int) bool {
				return lo.Contains(enabled, p.ID)
			})
		}

		if !raw {
			cmd.Println(headerStyle("Sources:"))
		}

		for _, p := range sources {
			if raw {
				cmd.Println(p.ID)
				continue
			}

			mark := icon.Get(icon.Fail)
			if lo.Contains(enabled, p.ID) {
				mark = icon.Get(icon.Success)
			}

			kinds := strings.Join(lo.Map(p.Kinds, func(k media.Kind, _ int) string {
				return string(k)
			}), ", ")

			cmd.Printf(
				"%s %s %s %s\n",
				mark,
				style.Bold(p.Name),
				style.Faint(p.Origin.String()),
				style.Fg(color.Yellow)(kinds),
			)
		}
	},
}
