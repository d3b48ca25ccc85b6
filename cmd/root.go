package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hibiken/kilo/internal/config"
	"github.com/hibiken/kilo/internal/editor"
	"github.com/hibiken/kilo/internal/log"
	"github.com/hibiken/kilo/internal/terminal"
)

const helpMessage = "HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find"

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	// cfgErr holds a config file that failed to read or decode; the
	// editor refuses to start with it.
	cfgErr error
)

var rootCmd = &cobra.Command{
	Use:          "kilo [file]",
	Short:        "A small terminal text editor",
	Long:         `kilo is a minimal text editor with syntax highlighting and incremental search.`,
	Version:      version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runApp,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .kilo.yaml or ~/.config/kilo/config.yaml)")
	rootCmd.Flags().Bool("debug", false, "write a debug log")
	rootCmd.Flags().String("log-file", "", "debug log path (default: kilo.log)")

	// Bind flags to viper
	_ = viper.BindPFlag("debug", rootCmd.Flags().Lookup("debug"))
	_ = viper.BindPFlag("log_file", rootCmd.Flags().Lookup("log-file"))

	rootCmd.AddCommand(configCmd)
}

// setDefaults registers every key so that environment variables and
// partial config files resolve against the defaults.
func setDefaults(v *viper.Viper) {
	defaults := config.Defaults()
	v.SetDefault("quit_times", defaults.QuitTimes)
	v.SetDefault("message_timeout", defaults.MessageTimeout)
	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("log_level", defaults.LogLevel)

	// KILO_DEBUG, KILO_LOG_FILE, ...
	v.SetEnvPrefix("kilo")
	v.AutomaticEnv()
}

// configPath returns the file to read when --config is not given, or ""
// when only the user config directory should be searched.
func configPath() string {
	// Config lookup order:
	// 1. .kilo.yaml (current directory)
	// 2. ~/.config/kilo/config.yaml (user config)
	if _, err := os.Stat(".kilo.yaml"); err == nil {
		return ".kilo.yaml"
	}
	return ""
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if path := configPath(); path != "" {
		viper.SetConfigFile(path)
	} else {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "kilo"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	cfg, cfgErr = loadConfig(viper.GetViper())
}

// loadConfig reads the configured file, if any, and decodes it over the
// defaults. A missing file in the search path is not an error.
func loadConfig(v *viper.Viper) (config.Config, error) {
	c := config.Defaults()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("reading config: %w", err)
		}
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// setupLogging installs the debug log described by c.
// Returns a cleanup function to close the log file.
func setupLogging(c config.Config) (func(), error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	cleanup, err := log.Init(c.LogFile)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "kilo starting", "version", version, "config", viper.ConfigFileUsed())
	return cleanup, nil
}

// editorConfig maps the loaded configuration onto the editor's settings.
func editorConfig(c config.Config) editor.Config {
	return editor.Config{
		QuitTimes:      c.QuitTimes,
		MessageTimeout: c.MessageTimeout,
		Profiles:       c.Profiles(),
		Version:        version,
	}
}

func runApp(cmd *cobra.Command, args []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Debug {
		cleanup, err := setupLogging(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	t, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer func() {
		if err := t.Close(); err != nil {
			log.ErrorErr(log.CatTerm, "restoring terminal", err)
		}
	}()

	rows, cols, err := t.Size()
	if err != nil {
		t.Clear()
		return err
	}
	log.Debug(log.CatTerm, "window size", "rows", rows, "cols", cols)

	e := editor.New(t, rows, cols, editorConfig(cfg))
	if len(args) > 0 {
		if err := e.Open(args[0]); err != nil {
			t.Clear()
			return err
		}
	}
	e.SetStatusMessage(helpMessage)

	if err := e.Run(); err != nil {
		t.Clear()
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	data, err := config.DefaultYAML()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the build information (called from main with ldflags).
// The banner shows only the version; --version prints all of it.
func SetVersion(v, commit, date string) {
	version = v
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, commit, date)
}
