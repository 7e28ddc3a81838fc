// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"github.com/streamdex-cli/streamdex/color"
	"github.com/streamdex-cli/streamdex/constant"
	"github.com/streamdex-cli/streamdex/key"
	"github.com/streamdex-cli/streamdex/style"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Streamdex + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.SourcesEnabled, []string{"catalog", "cinemeta", "tvmaze"}, "Sources to fan out to on search.\nType \"streamdex sources list\" to show available sources")
	register(key.SourcesPriorityOrder, []string{"internal", "external"}, "Dedupe priority by source origin.\nWhen two sources return the same entity, the earlier origin in this list wins")
	register(key.SourcesExternalFirst, false, "Rank external provider hits above catalog hits in the merged view")
	register(key.SourcesResultCacheTTL, 24, "Hours to keep cached provider results before refetching")
	register(key.APIBaseURL, "http://localhost:7474", "Base URL of the aggregation service API")
	register(key.APITimeout, 30, "Request timeout in seconds for aggregation service calls")
	register(key.SearchShowQuerySuggestions, true, "Show query suggestions when searching")
	register(key.SearchLimit, 50, "Limit of search results to show per source")
	register(key.StreamsSortBy, "quality", "Default stream ordering.\nAvailable options are: year, quality, size, seeders, source")
	register(key.StreamsSortDescending, true, "Sort streams in descending order")
	register(key.StreamsMinSizeGB, 0.0, "Hide streams smaller than this size in GB.\nStreams with no reported size are always kept")
	register(key.StreamsMaxSizeGB, 0.0, "Hide streams larger than this size in GB. 0 disables the bound")
	register(key.StreamsCachedOnly, false, "Only show streams already cached on the service")
	register(key.StreamsProviders, []string{}, "Restrict streams to these providers. Empty allows all")
	register(key.StreamsQualities, []string{}, "Restrict streams to these quality labels. Empty allows all")
	register(key.DedupeLowConfidenceDistance, 5, "Levenshtein distance between colliding titles beyond which a merge is flagged low-confidence")
	register(key.HistorySaveOnWatch, true, "Save the engaged stream to history on watch")
	register(key.ProgressWriteInterval, 15, "Minimum seconds between resume-offset writes to the service")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIItemSpacing, 1, "Spacing between items in the TUI")
	register(key.TUISearchPromptString, "> ", "Search prompt string to use")
	register(key.TUIShowLowConfidence, true, "Mark merged results whose identity match is low-confidence")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
