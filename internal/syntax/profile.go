// Package syntax holds the language profiles and the per-row classifier
// that produces highlight categories for a rendered row.
package syntax

import (
	"errors"
	"path/filepath"
	"strings"
)

const (
	HighlightNumbers = 1 << iota
	HighlightStrings
)

// Profile is a language specific highlighting ruleset.
type Profile struct {
	// Name of the filetype displayed in the status bar.
	Name string
	// List of patterns to match a filename against. A pattern starting
	// with '.' is compared to the extension, anything else is a substring.
	FileMatch []string
	// List of keywords to highlight. Use '|' suffix for keyword2 highlight.
	Keywords []string
	// Comment is a single-line comment start pattern (e.g. "//" for golang).
	// Set to an empty string if comment highlighting is not needed.
	Comment string
	// Bit field that contains flags for whether to highlight numbers and
	// whether to highlight strings.
	Flags int
}

// Validate reports whether the profile can be used for highlighting.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("name is required")
	}
	if len(p.FileMatch) == 0 {
		return errors.New("at least one filematch pattern is required")
	}
	for _, kw := range p.Keywords {
		if strings.TrimSuffix(kw, "|") == "" {
			return errors.New("empty keyword")
		}
	}
	return nil
}

// Matches reports whether filename selects this profile.
func (p *Profile) Matches(filename string) bool {
	if filename == "" {
		return false
	}
	ext := filepath.Ext(filename)
	for _, pattern := range p.FileMatch {
		isExt := strings.HasPrefix(pattern, ".")
		if (isExt && pattern == ext) || (!isExt && strings.Contains(filename, pattern)) {
			return true
		}
	}
	return false
}

// Table maps filenames to profiles. The first matching profile wins.
type Table []*Profile

// Select returns the profile for filename, or nil when none matches.
func (t Table) Select(filename string) *Profile {
	for _, p := range t {
		if p.Matches(filename) {
			return p
		}
	}
	return nil
}

// Builtin is the profile table compiled into the editor.
var Builtin = Table{
	{
		Name:      "c",
		FileMatch: []string{".c", ".h", ".cpp", ".cc"},
		Keywords: []string{
			"switch", "if", "while", "for", "break", "continue", "return",
			"else", "struct", "union", "typedef", "static", "enum", "class",
			"case",

			"int|", "long|", "double|", "float|", "char|", "unsigned|",
			"signed|", "void|",
		},
		Comment: "//",
		Flags:   HighlightNumbers | HighlightStrings,
	},
	{
		Name:      "go",
		FileMatch: []string{".go"},
		Keywords: []string{
			"break", "default", "func", "interface", "select", "case", "defer",
			"go", "map", "struct", "chan", "else", "goto", "package", "switch",
			"const", "fallthrough", "if", "range", "type", "continue", "for",
			"import", "return", "var",

			"append|", "bool|", "byte|", "cap|", "close|", "complex|",
			"complex64|", "complex128|", "error|", "uint16|", "copy|", "false|",
			"float32|", "float64|", "imag|", "int|", "int8|", "int16|",
			"uint32|", "int32|", "int64|", "iota|", "len|", "make|", "new|",
			"nil|", "panic|", "uint64|", "print|", "println|", "real|",
			"recover|", "rune|", "string|", "true|", "uint|", "uint8|",
			"uintptr|",
		},
		Comment: "//",
		Flags:   HighlightNumbers | HighlightStrings,
	},
}
