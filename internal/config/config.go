// Package config provides configuration types and defaults for txtreader.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/azario0/prototypes-txt-reader/internal/log"
)

// Config holds all configuration options for txtreader.
type Config struct {
	UI      UIConfig      `mapstructure:"ui"`
	Search  SearchConfig  `mapstructure:"search"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Tracing TracingConfig `mapstructure:"tracing"`
}

// UIConfig controls layout and scrolling.
type UIConfig struct {
	ShowGutter    bool `mapstructure:"show_gutter"`
	ShowSlider    bool `mapstructure:"show_slider"`
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ScrollStep    int  `mapstructure:"scroll_step"` // lines per arrow key / wheel notch
	TabWidth      int  `mapstructure:"tab_width"`
}

// SearchConfig controls the regex engine.
type SearchConfig struct {
	IgnoreCase   bool          `mapstructure:"ignore_case"`
	MatchTimeout time.Duration `mapstructure:"match_timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	CountLimit   int           `mapstructure:"count_limit"` // 0 disables the match counter
}

// WatchConfig controls reloading when the open file changes on disk.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// ThemeConfig overrides colour tokens. Empty values keep the built-in colour.
type ThemeConfig struct {
	Highlight string `mapstructure:"highlight"`
	Gutter    string `mapstructure:"gutter"`
	Slider    string `mapstructure:"slider"`
	Error     string `mapstructure:"error"`
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file, stdout, otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ShowGutter:    true,
			ShowSlider:    true,
			ShowStatusBar: true,
			ScrollStep:    1,
			TabWidth:      4,
		},
		Search: SearchConfig{
			IgnoreCase:   false,
			MatchTimeout: 2 * time.Second,
			CacheTTL:     10 * time.Minute,
			CountLimit:   10000,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // derived from the config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// Dir returns ~/.config/txtreader, or "" when the home dir is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "txtreader")
}

// DefaultTracesFilePath returns ~/.config/txtreader/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate reports every invalid setting in cfg.
func Validate(cfg Config) error {
	var errs []error

	if cfg.UI.ScrollStep < 1 {
		errs = append(errs, fmt.Errorf("ui.scroll_step must be at least 1, got %d", cfg.UI.ScrollStep))
	}
	if cfg.UI.TabWidth < 1 || cfg.UI.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("ui.tab_width must be between 1 and 16, got %d", cfg.UI.TabWidth))
	}
	if cfg.Search.MatchTimeout <= 0 {
		errs = append(errs, fmt.Errorf("search.match_timeout must be positive, got %s", cfg.Search.MatchTimeout))
	}
	if cfg.Search.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("search.cache_ttl must not be negative, got %s", cfg.Search.CacheTTL))
	}
	if cfg.Search.CountLimit < 0 {
		errs = append(errs, fmt.Errorf("search.count_limit must not be negative, got %d", cfg.Search.CountLimit))
	}
	if cfg.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce must not be negative, got %s", cfg.Watch.Debounce))
	}

	for name, value := range map[string]string{
		"highlight": cfg.Theme.Highlight,
		"gutter":    cfg.Theme.Gutter,
		"slider":    cfg.Theme.Slider,
		"error":     cfg.Theme.Error,
	} {
		if value != "" && !hexColor.MatchString(value) {
			errs = append(errs, fmt.Errorf("theme.%s: %q is not a hex color", name, value))
		}
	}

	if err := ValidateTracing(cfg.Tracing); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be one of none, file, stdout, otlp; got %q", tracing.Exporter)
	}
	if tracing.SampleRate < 0 || tracing.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1, got %v", tracing.SampleRate)
	}
	if tracing.Enabled && tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
		return errors.New("tracing.otlp_endpoint is required for the otlp exporter")
	}
	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# txtreader configuration

# Layout and scrolling
ui:
  show_gutter: true       # line numbers on the left
  show_slider: true       # navigation slider (0-100) on the far left
  show_status_bar: true   # file, position and match count at the bottom
  scroll_step: 1          # lines per arrow key or mouse wheel notch
  tab_width: 4            # columns a tab expands to

# Regular expression search
search:
  ignore_case: false      # toggle at runtime with alt+c
  match_timeout: 2s       # give up on pathological patterns
  cache_ttl: 10m          # how long compiled patterns are kept
  count_limit: 10000      # stop counting matches here (0 hides the counter)

# Reload the open file when it changes on disk
watch:
  enabled: true
  debounce: 200ms

# Colour overrides (hex); leave empty for the built-in palette
theme:
  highlight: ""           # e.g. "#FFD166"
  gutter: ""              # e.g. "#6C7086"
  slider: ""              # e.g. "#54A0FF"
  error: ""               # e.g. "#FF6B6B"

# OpenTelemetry tracing of file loads and searches
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/txtreader/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0
`
}

// WriteDefaultConfig creates a config file at configPath with default
// settings and comments, creating the parent directory when needed.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "created default config", "path", configPath)
	return nil
}
