package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel          string // sets the log level (zap log level values)
	LogFormat         string // text vs json
	LogFilters        string // zapfilter rules for named loggers
	APIBaseURL        string // base URL of the timing data provider
	CacheDir          string // directory for the session cache ("" disables disk caching)
	CacheTTL          string // duration after which a cached session expires ("0" keeps it forever)
	HTTPServerAddr    string // listen addr for the HTTP server
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry
	ProfilingPort     int    // port for profiling
	Season            int    // selected season (analyze command)
	GrandPrix         string // selected grand prix venue (analyze command)
)
