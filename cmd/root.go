package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azario0/prototypes-txt-reader/internal/app"
	"github.com/azario0/prototypes-txt-reader/internal/config"
	"github.com/azario0/prototypes-txt-reader/internal/log"
	"github.com/azario0/prototypes-txt-reader/internal/paths"
	"github.com/azario0/prototypes-txt-reader/internal/tracing"
	"github.com/azario0/prototypes-txt-reader/internal/ui/styles"
)

// helpStyle is the glamour style matching the terminal background.
var helpStyle string

func init() {
	// Query the terminal background before any Bubble Tea program starts so
	// the OSC 11 reply cannot race with the input loop.
	if lipgloss.HasDarkBackground() {
		helpStyle = "dark"
	} else {
		helpStyle = "light"
	}
}

const envPrefix = "TXTREADER"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "txtreader [file]",
	Short:   "A terminal reader for large UTF-8 text files",
	Long:    `A terminal reader for UTF-8 text files with a line-number gutter, a navigation slider and incremental regular expression search.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/txtreader/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log and enable the log overlay (ctrl+x)")
	rootCmd.Flags().Bool("no-watch", false,
		"do not reload the file when it changes on disk")
	rootCmd.Flags().BoolP("ignore-case", "i", false,
		"start with case-insensitive search")
}

// initConfig loads the global config for commands that need it.
// writeDefault creates the default file when none is found.
func initConfig(writeDefault bool) error {
	var err error
	cfg, err = loadConfig(viper.GetViper(), cfgFile, writeDefault)
	return err
}

// setDefaults registers every key so env overrides and Unmarshal see them.
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("ui.show_gutter", d.UI.ShowGutter)
	v.SetDefault("ui.show_slider", d.UI.ShowSlider)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.scroll_step", d.UI.ScrollStep)
	v.SetDefault("ui.tab_width", d.UI.TabWidth)
	v.SetDefault("search.ignore_case", d.Search.IgnoreCase)
	v.SetDefault("search.match_timeout", d.Search.MatchTimeout)
	v.SetDefault("search.cache_ttl", d.Search.CacheTTL)
	v.SetDefault("search.count_limit", d.Search.CountLimit)
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
	v.SetDefault("theme.highlight", d.Theme.Highlight)
	v.SetDefault("theme.gutter", d.Theme.Gutter)
	v.SetDefault("theme.slider", d.Theme.Slider)
	v.SetDefault("theme.error", d.Theme.Error)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// loadConfig reads configuration into v. Lookup order: explicit file,
// .txtreader/config.yaml in the working directory, then the user config
// directory, where a commented default is written if nothing exists and
// writeDefault is set.
func loadConfig(v *viper.Viper, explicit string, writeDefault bool) (config.Config, error) {
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case explicit != "":
		v.SetConfigFile(paths.Expand(explicit))
	case fileExists(filepath.Join(".txtreader", "config.yaml")):
		v.SetConfigFile(filepath.Join(".txtreader", "config.yaml"))
	default:
		if dir := config.Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Defaults(), fmt.Errorf("reading config: %w", err)
		}
		if dir := config.Dir(); dir != "" && writeDefault {
			path := filepath.Join(dir, "config.yaml")
			if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
				v.SetConfigFile(path)
				_ = v.ReadInConfig()
			}
		}
	}

	var out config.Config
	if err := v.Unmarshal(&out); err != nil {
		return config.Defaults(), fmt.Errorf("decoding config: %w", err)
	}
	return out, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// configPath is the file `config set` writes to.
func configPath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	if cfgFile != "" {
		return paths.Expand(cfgFile)
	}
	return filepath.Join(config.Dir(), "config.yaml")
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := initConfig(true); err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	debug := os.Getenv(envPrefix+"_DEBUG") != "" || debugFlag
	if debug {
		logPath := os.Getenv(envPrefix + "_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		cleanup, err := log.Init(logPath)
		if err != nil {
			return fmt.Errorf("initializing logging: %w", err)
		}
		defer cleanup()
		log.Info(log.CatConfig, "txtreader starting", "version", version, "config", viper.ConfigFileUsed())
	}

	if noWatch, _ := cmd.Flags().GetBool("no-watch"); noWatch {
		cfg.Watch.Enabled = false
	}
	if cmd.Flags().Changed("ignore-case") {
		cfg.Search.IgnoreCase, _ = cmd.Flags().GetBool("ignore-case")
	}

	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown failed", err)
		}
	}()

	styles.ApplyTheme(styles.Theme{
		Highlight: cfg.Theme.Highlight,
		Gutter:    cfg.Theme.Gutter,
		Slider:    cfg.Theme.Slider,
		Error:     cfg.Theme.Error,
	})
	zone.NewGlobal()
	defer zone.Close()

	var path string
	if len(args) == 1 {
		path = paths.Expand(args[0])
	}
	model := app.New(app.Options{
		Config:    cfg,
		Path:      path,
		Debug:     debug,
		Tracer:    provider.Tracer(),
		HelpStyle: helpStyle,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
