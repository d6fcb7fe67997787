// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Validation errors wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects "text", "json" or "auto" log output.
	LogFormat string `koanf:"log_format"`

	// LogFile, when set, also writes records to a size-rotated file.
	LogFile string `koanf:"log_file"`

	// LogMaxSizeMB rotates LogFile once it grows past this size.
	LogMaxSizeMB int `koanf:"log_max_size_mb"`

	// LogMaxBackups is how many rotated files are retained.
	LogMaxBackups int `koanf:"log_max_backups"`

	// LogMaxAgeDays removes rotated files older than this.
	LogMaxAgeDays int `koanf:"log_max_age_days"`

	// LogCompress gzips rotated files.
	LogCompress bool `koanf:"log_compress"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// GroupsPath points at the roster JSON file.
	GroupsPath string `koanf:"groups_path"`

	// PerformanceGlob matches one or more performance JSON files.
	PerformanceGlob string `koanf:"performance_glob"`

	// TimeZone decides which calendar day counts as "today".
	TimeZone string `koanf:"time_zone"`

	// AlumnaeSuffix marks "<Base><suffix>" groups as alumnae of Base.
	AlumnaeSuffix string `koanf:"alumnae_suffix"`

	// Alumnae lists explicit alumnae -> base group edges.
	Alumnae map[string]string `koanf:"alumnae"`

	// MilestoneStep is the appearance interval that counts as a milestone.
	MilestoneStep int `koanf:"milestone_step"`

	// MilestoneWindow is how close a milestone must be to be predicted.
	MilestoneWindow int `koanf:"milestone_window"`

	// CollationLanguage is the BCP 47 tag used to order tied names.
	CollationLanguage string `koanf:"collation_language"`

	// Watch enables reloading the dataset when data files change.
	Watch bool `koanf:"watch"`

	// WatchDebounceMS coalesces bursts of file events.
	WatchDebounceMS int `koanf:"watch_debounce_ms"`

	// MaxRankingLimit caps ?limit on ranking endpoints.
	MaxRankingLimit int `koanf:"max_ranking_limit"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		LogMaxSizeMB:      16,
		LogMaxBackups:     8,
		LogMaxAgeDays:     28,
		LogCompress:       true,
		Addr:              ":9080",
		GroupsPath:        "data/groups.json",
		PerformanceGlob:   "data/performance*.json",
		TimeZone:          "Asia/Tokyo",
		AlumnaeSuffix:     " 卒業生",
		Alumnae:           map[string]string{},
		MilestoneStep:     100,
		MilestoneWindow:   10,
		CollationLanguage: "ja",
		Watch:             true,
		WatchDebounceMS:   500,
		MaxRankingLimit:   500,
	}
}
