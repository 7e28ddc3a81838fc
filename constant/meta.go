// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Streamdex is the canonical application identifier used for filesystem paths and CLI branding.
	Streamdex = "streamdex"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string used for requests to the aggregation service.
	UserAgent = Streamdex + "/" + Version
)

// Build metadata, overridable at link time.
var (
	Revision = "unknown"
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
)
