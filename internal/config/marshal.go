package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yaml.v3 writes time.Duration as nanoseconds; the printed form uses the
// same "2s" strings the config file accepts.
type printable struct {
	UI struct {
		ShowGutter    bool `yaml:"show_gutter"`
		ShowSlider    bool `yaml:"show_slider"`
		ShowStatusBar bool `yaml:"show_status_bar"`
		ScrollStep    int  `yaml:"scroll_step"`
		TabWidth      int  `yaml:"tab_width"`
	} `yaml:"ui"`
	Search struct {
		IgnoreCase   bool   `yaml:"ignore_case"`
		MatchTimeout string `yaml:"match_timeout"`
		CacheTTL     string `yaml:"cache_ttl"`
		CountLimit   int    `yaml:"count_limit"`
	} `yaml:"search"`
	Watch struct {
		Enabled  bool   `yaml:"enabled"`
		Debounce string `yaml:"debounce"`
	} `yaml:"watch"`
	Theme struct {
		Highlight string `yaml:"highlight,omitempty"`
		Gutter    string `yaml:"gutter,omitempty"`
		Slider    string `yaml:"slider,omitempty"`
		Error     string `yaml:"error,omitempty"`
	} `yaml:"theme"`
	Tracing struct {
		Enabled      bool    `yaml:"enabled"`
		Exporter     string  `yaml:"exporter"`
		FilePath     string  `yaml:"file_path,omitempty"`
		OTLPEndpoint string  `yaml:"otlp_endpoint"`
		SampleRate   float64 `yaml:"sample_rate"`
	} `yaml:"tracing"`
}

// Marshal renders cfg as YAML in the config file layout.
func Marshal(cfg Config) ([]byte, error) {
	var p printable
	p.UI.ShowGutter = cfg.UI.ShowGutter
	p.UI.ShowSlider = cfg.UI.ShowSlider
	p.UI.ShowStatusBar = cfg.UI.ShowStatusBar
	p.UI.ScrollStep = cfg.UI.ScrollStep
	p.UI.TabWidth = cfg.UI.TabWidth
	p.Search.IgnoreCase = cfg.Search.IgnoreCase
	p.Search.MatchTimeout = cfg.Search.MatchTimeout.String()
	p.Search.CacheTTL = cfg.Search.CacheTTL.String()
	p.Search.CountLimit = cfg.Search.CountLimit
	p.Watch.Enabled = cfg.Watch.Enabled
	p.Watch.Debounce = cfg.Watch.Debounce.String()
	p.Theme.Highlight = cfg.Theme.Highlight
	p.Theme.Gutter = cfg.Theme.Gutter
	p.Theme.Slider = cfg.Theme.Slider
	p.Theme.Error = cfg.Theme.Error
	p.Tracing.Enabled = cfg.Tracing.Enabled
	p.Tracing.Exporter = cfg.Tracing.Exporter
	p.Tracing.FilePath = cfg.Tracing.FilePath
	p.Tracing.OTLPEndpoint = cfg.Tracing.OTLPEndpoint
	p.Tracing.SampleRate = cfg.Tracing.SampleRate

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&p); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}
