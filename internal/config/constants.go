package config

import "time"

const (
	envAPIDomain          = "LIIGA_API_DOMAIN"
	envLogFile            = "LIIGA_LOG_FILE"
	envDebug              = "LIIGA_DEBUG"
	envCacheSize          = "LIIGA_CACHE_SIZE"
	envFetchTimeout       = "LIIGA_API_FETCH_TIMEOUT"
	envMinRefreshInterval = "LIIGA_MIN_REFRESH_INTERVAL"
	envMetricsPort        = "LIIGA_METRICS_PORT"
	envMetricsOn          = "LIIGA_METRICS_ENABLED"
	envOtelEndpoint       = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService        = "OTEL_SERVICE_NAME"
	envOtelInsecure       = "OTEL_EXPORTER_OTLP_INSECURE"

	keyAPIDomain   = "api_domain"
	keyLogFilePath = "log_file_path"

	appDirName     = "liiga_teletext"
	configFileName = "config.toml"
	logFileName    = "liiga_teletext.log"

	defaultFetchTimeout = 30 * Duration(time.Second)
	// Floor for the starting-soon refresh cadence; users may raise it.
	defaultMinRefreshInterval = 15 * Duration(time.Second)
	defaultHTTPCacheSize      = 100
	defaultMetricsPort        = "9464"
	defaultServiceName        = "liiga-teletext"
)
