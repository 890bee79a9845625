package analyzer

// Constants defining default values for configuration options. These are
// used when setting up Viper defaults in the CLI configuration loading.
const (
	// DefaultConcurrency determines the default worker count. 0 means
	// runtime.NumCPU().
	DefaultConcurrency = 0
	// DefaultEncodingFallback controls whether files that are not valid
	// UTF-8 are re-decoded with the fallback encoding.
	DefaultEncodingFallback = true
	// DefaultFallbackEncoding is the lenient encoding used when UTF-8
	// decoding fails. Any IANA name resolvable by charset.Lookup is valid.
	DefaultFallbackEncoding = "latin-1"
	// DefaultTuiEnabled is the default state for the terminal UI.
	DefaultTuiEnabled = true
	// DefaultVerbose is the default state for verbose logging.
	DefaultVerbose = false
)

// ReportSchemaVersion indicates the version of the serialized report
// structure. Increment on incompatible changes to Report/RunSummary.
const ReportSchemaVersion = "1.0"
