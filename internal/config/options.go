package config

const (
	defaultLogFile            = "isidore.log"
	defaultLogLevel           = "info"
	defaultLogFileMaxSize     = 20
	defaultLogFileMaxBackups  = 3
	defaultLogFileMaxAge      = 28
	defaultLogCompress        = false
	defaultPort               = 8083
	defaultHost               = "0.0.0.0"
	defaultLibrary            = "/var/opt/isidore/library"
	defaultUILanguage         = "en"
	defaultPageSize           = 60
	defaultQueryTimeout       = 30
	defaultMetricsCollector   = false
	defaultMetricsPath        = "/metrics"
	defaultWatchInterval      = 60
	defaultVersion            = "0.2.0"
)

// UserOption declares one account in the config file. Passwords are bcrypt
// hashes; RestrictLang/RestrictTag feed the per-user catalog filter.
type UserOption struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
	Admin        bool   `mapstructure:"admin"`
	// RestrictLang limits the catalog to one language code (e.g. "eng").
	RestrictLang string `mapstructure:"restrict_lang"`
	// RestrictTag hides every book carrying this tag.
	RestrictTag string `mapstructure:"restrict_tag"`
}

// Options is unmarshalled by viper, hence the mapstructure tags.
type Options struct {
	// LogFile is the file to write logs to
	LogFile string `mapstructure:"log_file"`
	// LogLevel is the level of logging to show
	LogLevel string `mapstructure:"log_level"`
	// LogFileMaxSize is the maximum size of the log file before it is rotated
	LogFileMaxSize int `mapstructure:"log_file_max_size"`
	// LogFileMaxBackups is the maximum number of log files to keep
	LogFileMaxBackups int `mapstructure:"log_file_max_backups"`
	// LogFileMaxAge is the maximum number of days to keep a log file
	LogFileMaxAge int `mapstructure:"log_file_max_age"`
	// LogCompress is whether or not to compress the log files
	LogCompress bool `mapstructure:"log_compress"`
	// Library is the Calibre library directory holding metadata.db and the books
	Library string `mapstructure:"library"`
	// MetaDSN overrides the metadata.db path; derived from Library when empty
	MetaDSN string `mapstructure:"meta_dsn_uri"`
	// Port is the port to listen on
	Port int `mapstructure:"port"`
	// Host is the host to listen on
	Host string `mapstructure:"host"`
	// UILanguage is the language used for language display names
	UILanguage string `mapstructure:"ui_language"`
	// PageSize is the default number of entries per catalog page
	PageSize int `mapstructure:"page_size"`
	// QueryTimeout bounds a single catalog query, in seconds
	QueryTimeout int `mapstructure:"query_timeout"`
	// WatchInterval is how often the library watcher re-checks metadata.db, in seconds
	WatchInterval int `mapstructure:"watch_interval"`
	// JWTSecret signs API access tokens
	JWTSecret string `mapstructure:"jwt_secret"`
	Users     []UserOption `mapstructure:"users"`
	// For metrics
	MetricsCollector bool   `mapstructure:"metrics_collector"`
	MetricsPath      string `mapstructure:"metrics_path"`
	Version          string `mapstructure:"version"`
}

func GetDefaultOptions() *Options {
	Opts = &Options{
		LogFile:           defaultLogFile,
		LogLevel:          defaultLogLevel,
		LogFileMaxSize:    defaultLogFileMaxSize,
		LogFileMaxBackups: defaultLogFileMaxBackups,
		LogFileMaxAge:     defaultLogFileMaxAge,
		LogCompress:       defaultLogCompress,
		Library:           defaultLibrary,
		Port:              defaultPort,
		Host:              defaultHost,
		UILanguage:        defaultUILanguage,
		PageSize:          defaultPageSize,
		QueryTimeout:      defaultQueryTimeout,
		WatchInterval:     defaultWatchInterval,
		MetricsCollector:  defaultMetricsCollector,
		MetricsPath:       defaultMetricsPath,
		Version:           defaultVersion,
	}
	return Opts
}
