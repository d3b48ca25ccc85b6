package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hibiken/kilo/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
quit_times: 1
message_timeout: 2s
syntax:
  - name: shell
    filematch: [".sh"]
    keywords: ["if", "then", "fi", "echo|"]
    comment: "#"
    strings: true
`)
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	c, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, 1, c.QuitTimes)
	require.Equal(t, 2*time.Second, c.MessageTimeout)
	require.Equal(t, "kilo.log", c.LogFile, "unset keys keep their defaults")
	require.Len(t, c.Syntax, 1)
	require.Equal(t, "shell", c.Syntax[0].Name)
	require.Equal(t, []string{".sh"}, c.Syntax[0].FileMatch)
	require.True(t, c.Syntax[0].Strings)
	require.False(t, c.Syntax[0].Numbers)
	require.NoError(t, c.Validate())

	require.Equal(t, "shell", c.Profiles().Select("run.sh").Name)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(t.TempDir())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	c, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, config.Defaults(), c)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("KILO_QUIT_TIMES", "7")
	t.Setenv("KILO_DEBUG", "true")

	v := viper.New()
	setDefaults(v)
	v.AddConfigPath(t.TempDir())
	v.SetConfigName("config")

	c, err := loadConfig(v)
	require.NoError(t, err)
	require.Equal(t, 7, c.QuitTimes)
	require.True(t, c.Debug)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := writeConfig(t, "quit_times: [unterminated\n")
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	_, err := loadConfig(v)
	require.ErrorContains(t, err, "reading config")
}

func TestLoadConfig_InvalidProfileFailsValidation(t *testing.T) {
	path := writeConfig(t, `
syntax:
  - name: broken
`)
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	c, err := loadConfig(v)
	require.NoError(t, err)
	require.ErrorContains(t, c.Validate(), "syntax 0")
}

func TestRunConfig_PrintsDefaults(t *testing.T) {
	var out bytes.Buffer
	c := &cobra.Command{}
	c.SetOut(&out)

	require.NoError(t, runConfig(c, nil))

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	require.Equal(t, 3, doc["quit_times"])
	require.Equal(t, "5s", doc["message_timeout"])
}

func TestSetupLogging(t *testing.T) {
	c := config.Defaults()
	c.LogFile = filepath.Join(t.TempDir(), "kilo.log")

	cleanup, err := setupLogging(c)
	require.NoError(t, err)
	cleanup()

	data, err := os.ReadFile(c.LogFile)
	require.NoError(t, err)
	require.Contains(t, string(data), "kilo starting")
}

func TestSetupLogging_BadLevel(t *testing.T) {
	c := config.Defaults()
	c.LogFile = filepath.Join(t.TempDir(), "kilo.log")
	c.LogLevel = "loud"

	_, err := setupLogging(c)
	require.Error(t, err)
	_, statErr := os.Stat(c.LogFile)
	require.True(t, os.IsNotExist(statErr), "log file must not be created")
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	require.Error(t, rootCmd.Args(rootCmd, []string{"a", "b"}))
	require.NoError(t, rootCmd.Args(rootCmd, []string{"a"}))
}

func TestRunApp_BadConfigFileAborts(t *testing.T) {
	path := writeConfig(t, "quit_times: [unterminated\n")
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)

	saved, savedErr := cfg, cfgErr
	t.Cleanup(func() { cfg, cfgErr = saved, savedErr })
	cfg, cfgErr = loadConfig(v)

	// returns before the terminal is touched
	err := runApp(rootCmd, nil)
	require.ErrorContains(t, err, "reading config")
}

func TestRunApp_InvalidConfigAborts(t *testing.T) {
	saved, savedErr := cfg, cfgErr
	t.Cleanup(func() { cfg, cfgErr = saved, savedErr })
	cfg, cfgErr = config.Defaults(), nil
	cfg.QuitTimes = -1

	require.ErrorContains(t, runApp(rootCmd, nil), "invalid configuration")
}

func TestSetVersion_BannerGetsShortForm(t *testing.T) {
	savedVersion, savedLong := version, rootCmd.Version
	t.Cleanup(func() { version, rootCmd.Version = savedVersion, savedLong })

	SetVersion("1.2.3", "abc123", "2025-01-01")
	require.Equal(t, "1.2.3 (commit: abc123, built: 2025-01-01)", rootCmd.Version)
	require.Equal(t, "1.2.3", editorConfig(config.Defaults()).Version)
}
