package syntax

import (
	"bytes"
	"strings"
)

// Highlight is the category assigned to one rendered byte.
type Highlight uint8

const (
	Normal Highlight = iota
	Comment
	Keyword1
	Keyword2
	String
	Number
	Match
)

// Color returns the SGR foreground color for the category.
func (h Highlight) Color() int {
	switch h {
	case Comment:
		return 90
	case Keyword1:
		return 94
	case Keyword2:
		return 96
	case String:
		return 36
	case Number:
		return 33
	case Match:
		return 32
	default:
		return 37
	}
}

func (h Highlight) String() string {
	switch h {
	case Normal:
		return "normal"
	case Comment:
		return "comment"
	case Keyword1:
		return "keyword1"
	case Keyword2:
		return "keyword2"
	case String:
		return "string"
	case Number:
		return "number"
	case Match:
		return "match"
	default:
		return "unknown"
	}
}

// IsSeparator reports whether c ends a word for keyword and number matching.
func IsSeparator(c byte) bool {
	return isSpace(c) || c == 0 || strings.IndexByte(",.()+-/*=~%<>[]{}:;", c) != -1
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Classify returns one highlight category per byte of render.
// State never carries over from a previous row: comments and strings
// end at the end of the line.
func Classify(render []byte, p *Profile) []Highlight {
	hl := make([]Highlight, len(render))
	if p == nil {
		return hl
	}

	prevSep := true

	// set to the quote when inside of a string.
	// set to zero when outside of a string.
	var strQuote byte

	idx := 0
	for idx < len(render) {
		c := render[idx]
		prevHl := Normal
		if idx > 0 {
			prevHl = hl[idx-1]
		}

		if p.Comment != "" && strQuote == 0 && bytes.HasPrefix(render[idx:], []byte(p.Comment)) {
			for ; idx < len(render); idx++ {
				hl[idx] = Comment
			}
			break
		}

		if strQuote != 0 {
			hl[idx] = String
			// deal with escape quote when inside a string
			if c == '\\' && idx+1 < len(render) {
				hl[idx+1] = String
				idx += 2
				continue
			}
			if c == strQuote {
				strQuote = 0
			}
			idx++
			prevSep = true
			continue
		}

		if p.Flags&HighlightStrings != 0 && (c == '"' || c == '\'') {
			strQuote = c
			hl[idx] = String
			idx++
			continue
		}

		if p.Flags&HighlightNumbers != 0 {
			if isDigit(c) && (prevSep || prevHl == Number) || c == '.' && prevHl == Number {
				hl[idx] = Number
				idx++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if n, secondary := longestKeyword(render, idx, p.Keywords); n > 0 {
				cat := Keyword1
				if secondary {
					cat = Keyword2
				}
				for end := idx + n; idx < end; idx++ {
					hl[idx] = cat
				}
				prevSep = false
				continue
			}
		}

		prevSep = IsSeparator(c)
		idx++
	}
	return hl
}

// longestKeyword returns the longest keyword starting at idx that is
// followed by a separator or the end of the row, and whether it is a
// secondary keyword. The length is zero when nothing matches.
func longestKeyword(render []byte, idx int, keywords []string) (n int, secondary bool) {
	for _, kw := range keywords {
		isKeyword2 := strings.HasSuffix(kw, "|")
		if isKeyword2 {
			kw = strings.TrimSuffix(kw, "|")
		}
		end := idx + len(kw)
		if len(kw) <= n || end > len(render) || string(render[idx:end]) != kw {
			continue
		}
		if end < len(render) && !IsSeparator(render[end]) {
			continue
		}
		n, secondary = len(kw), isKeyword2
	}
	return n, secondary
}
