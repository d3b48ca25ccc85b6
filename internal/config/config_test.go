package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hibiken/kilo/internal/syntax"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	require.Equal(t, 3, cfg.QuitTimes)
	require.Equal(t, 5*time.Second, cfg.MessageTimeout)
	require.NoError(t, cfg.Validate())
}

func TestValidate_NegativeQuitTimes(t *testing.T) {
	cfg := Defaults()
	cfg.QuitTimes = -1
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "quit_times")
}

func TestValidate_ZeroTimeout(t *testing.T) {
	cfg := Defaults()
	cfg.MessageTimeout = 0
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "message_timeout")
}

func TestValidate_BadSyntax(t *testing.T) {
	cfg := Defaults()
	cfg.Syntax = []SyntaxConfig{
		{Name: "ok", FileMatch: []string{".ok"}},
		{Name: "", FileMatch: []string{".bad"}},
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "syntax 1")
	require.Contains(t, err.Error(), "name is required")
}

func TestSyntaxConfig_Profile(t *testing.T) {
	p := SyntaxConfig{
		Name:      "sh",
		FileMatch: []string{".sh"},
		Keywords:  []string{"if", "fi"},
		Comment:   "#",
		Numbers:   true,
	}.Profile()

	require.Equal(t, "sh", p.Name)
	require.Equal(t, "#", p.Comment)
	require.Equal(t, syntax.HighlightNumbers, p.Flags)
}

func TestProfiles_ConfiguredFirst(t *testing.T) {
	cfg := Defaults()
	cfg.Syntax = []SyntaxConfig{{Name: "gox", FileMatch: []string{".go"}}}

	table := cfg.Profiles()
	require.Len(t, table, len(syntax.Builtin)+1)
	require.Equal(t, "gox", table.Select("main.go").Name)
	require.Equal(t, "c", table.Select("main.c").Name)
}

func TestDefaultYAML_RoundTrips(t *testing.T) {
	data, err := DefaultYAML()
	require.NoError(t, err)
	require.Contains(t, string(data), "quit_times: 3")
	require.Contains(t, string(data), "message_timeout: 5s")

	var parsed yamlConfig
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	require.Len(t, parsed.Syntax, 1)
	require.Equal(t, "python", parsed.Syntax[0].Name)
	require.NoError(t, parsed.Syntax[0].Profile().Validate())
}
