package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/azario0/prototypes-txt-reader/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initConfig(true); err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), cfg, viper.ConfigFileUsed())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the config file, e.g. search.ignore_case true",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(false); err != nil {
			return err
		}
		path := configPath()
		if err := setConfigValue(path, args[0], args[1]); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s (%s)\n", args[0], args[1], path)
		return err
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initConfig(false); err != nil {
			return err
		}
		_, err := fmt.Fprintln(cmd.OutOrStdout(), configPath())
		return err
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func printConfig(w io.Writer, c config.Config, source string) error {
	data, err := config.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if source == "" {
		source = "defaults"
	}
	if _, err := fmt.Fprintf(w, "# source: %s\n", source); err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// setConfigValue validates the change against the file's current contents
// before writing it.
func setConfigValue(path, key, value string) error {
	v := viper.New()
	setDefaults(v)
	if !v.IsSet(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if fileExists(path) {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	v.Set(key, value)

	var next config.Config
	if err := v.Unmarshal(&next); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := config.Validate(next); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return config.SetValue(path, key, value)
}
