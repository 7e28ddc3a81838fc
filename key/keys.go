// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Aggregation Sources - these keys manage the registration and enablement of result sources.
const (
	SourcesEnabled        = "sources.enabled"
	SourcesPriorityOrder  = "sources.priority"
	SourcesExternalFirst  = "sources.external_first"
	SourcesResultCacheTTL = "sources.result_cache_hours"
)

// Remote Service API - these keys configure the connection to the aggregation service.
const (
	APIBaseURL = "api.url"
	APITimeout = "api.timeout_seconds"
)

// Search Interaction - these keys define the UI/UX parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
	SearchLimit                = "search.limit"
)

// Stream Resolution - these keys hold the default filter/sort pipeline configuration.
const (
	StreamsSortBy         = "streams.sort_by"
	StreamsSortDescending = "streams.sort_descending"
	StreamsMinSizeGB      = "streams.min_size_gb"
	StreamsMaxSizeGB      = "streams.max_size_gb"
	StreamsCachedOnly     = "streams.cached_only"
	StreamsProviders      = "streams.providers"
	StreamsQualities      = "streams.qualities"
)

// Deduplication - these keys tune the merge behavior across sources.
const (
	DedupeLowConfidenceDistance = "dedupe.low_confidence_distance"
)

// Engagement Tracking - these keys configure the persistence of playback session state.
const (
	HistorySaveOnWatch    = "history.save_on_watch"
	ProgressWriteInterval = "progress.write_interval_seconds"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the primary interactive environment's styling and logic.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowLowConfidence  = "tui.mark_low_confidence"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
