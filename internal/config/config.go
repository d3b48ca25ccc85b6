// Package config provides configuration types, defaults and validation for kilo.
package config

import (
	"bytes"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hibiken/kilo/internal/syntax"
)

// SyntaxConfig describes an additional highlighting profile.
type SyntaxConfig struct {
	Name      string   `mapstructure:"name" yaml:"name"`
	FileMatch []string `mapstructure:"filematch" yaml:"filematch"`
	Keywords  []string `mapstructure:"keywords" yaml:"keywords"` // '|' suffix marks a secondary keyword
	Comment   string   `mapstructure:"comment" yaml:"comment"`   // single-line comment prefix
	Numbers   bool     `mapstructure:"numbers" yaml:"numbers"`
	Strings   bool     `mapstructure:"strings" yaml:"strings"`
}

// Config holds all configuration options for kilo.
type Config struct {
	// QuitTimes is how many extra Ctrl-Q presses quit with unsaved changes.
	QuitTimes int `mapstructure:"quit_times"`
	// MessageTimeout is how long a status message stays on screen.
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
	Debug          bool          `mapstructure:"debug"`
	LogFile        string        `mapstructure:"log_file"`
	LogLevel       string        `mapstructure:"log_level"`
	// Syntax profiles are consulted before the built-in ones.
	Syntax []SyntaxConfig `mapstructure:"syntax"`
}

// Defaults returns the configuration used when no file overrides a key.
func Defaults() Config {
	return Config{
		QuitTimes:      3,
		MessageTimeout: 5 * time.Second,
		LogFile:        "kilo.log",
		LogLevel:       "debug",
	}
}

// Validate checks the configuration for values the editor cannot use.
func (c Config) Validate() error {
	if c.QuitTimes < 0 {
		return fmt.Errorf("quit_times must not be negative, got %d", c.QuitTimes)
	}
	if c.MessageTimeout <= 0 {
		return fmt.Errorf("message_timeout must be positive, got %s", c.MessageTimeout)
	}
	for i, s := range c.Syntax {
		p := s.Profile()
		if err := p.Validate(); err != nil {
			return fmt.Errorf("syntax %d: %w", i, err)
		}
	}
	return nil
}

// Profile converts the configured syntax into a highlighting profile.
func (s SyntaxConfig) Profile() *syntax.Profile {
	p := &syntax.Profile{
		Name:      s.Name,
		FileMatch: s.FileMatch,
		Keywords:  s.Keywords,
		Comment:   s.Comment,
	}
	if s.Numbers {
		p.Flags |= syntax.HighlightNumbers
	}
	if s.Strings {
		p.Flags |= syntax.HighlightStrings
	}
	return p
}

// Profiles returns the configured profiles followed by the built-in ones.
func (c Config) Profiles() syntax.Table {
	table := make(syntax.Table, 0, len(c.Syntax)+len(syntax.Builtin))
	for _, s := range c.Syntax {
		table = append(table, s.Profile())
	}
	return append(table, syntax.Builtin...)
}

// yamlConfig mirrors Config with a printable duration.
type yamlConfig struct {
	QuitTimes      int            `yaml:"quit_times"`
	MessageTimeout string         `yaml:"message_timeout"`
	Debug          bool           `yaml:"debug"`
	LogFile        string         `yaml:"log_file"`
	LogLevel       string         `yaml:"log_level"`
	Syntax         []SyntaxConfig `yaml:"syntax"`
}

// exampleSyntax is written into the default file to document the format.
var exampleSyntax = SyntaxConfig{
	Name:      "python",
	FileMatch: []string{".py"},
	Keywords: []string{
		"def", "class", "if", "elif", "else", "for", "while", "return",
		"import", "from", "with", "try", "except", "finally", "pass",
		"None|", "True|", "False|", "self|",
	},
	Comment: "#",
	Numbers: true,
	Strings: true,
}

// DefaultYAML renders the default configuration as a YAML document,
// including one example syntax profile.
func DefaultYAML() ([]byte, error) {
	d := Defaults()
	out := yamlConfig{
		QuitTimes:      d.QuitTimes,
		MessageTimeout: d.MessageTimeout.String(),
		Debug:          d.Debug,
		LogFile:        d.LogFile,
		LogLevel:       d.LogLevel,
		Syntax:         []SyntaxConfig{exampleSyntax},
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()
	return buf.Bytes(), nil
}
