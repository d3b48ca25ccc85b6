package editor

import (
	"github.com/hibiken/kilo/internal/syntax"
)

const tabstop = 8

// Row is one line of the document.
type Row struct {
	// Raw character data for the row.
	chars []byte
	// Actual characters to draw on the screen: chars with tabs expanded.
	render []byte
	// Syntax highlight value for each byte in render.
	hl []syntax.Highlight
}

func newRow(chars []byte, p *syntax.Profile) *Row {
	row := &Row{chars: chars}
	row.update(p)
	return row
}

// Size is the number of raw characters in the row.
func (row *Row) Size() int { return len(row.chars) }

func (row *Row) String() string { return string(row.chars) }

// Render returns the tab-expanded display content.
func (row *Row) Render() []byte { return row.render }

// Highlights returns one category per byte of Render.
func (row *Row) Highlights() []syntax.Highlight { return row.hl }

// CxToRx converts an index into chars to a screen column.
func (row *Row) CxToRx(cx int) int {
	cx = clamp(cx, 0, len(row.chars))
	rx := 0
	for _, c := range row.chars[:cx] {
		if c == '\t' {
			rx += (tabstop - 1) - (rx % tabstop)
		}
		rx++
	}
	return rx
}

// RxToCx converts a screen column back to an index into chars. Columns
// past the end of the row map to the row size.
func (row *Row) RxToCx(rx int) int {
	curRx := 0
	for cx, c := range row.chars {
		if c == '\t' {
			curRx += (tabstop - 1) - (curRx % tabstop)
		}
		curRx++
		if curRx > rx {
			return cx
		}
	}
	return len(row.chars)
}

// update recomputes render and hl from chars. It must run after every
// change to chars.
func (row *Row) update(p *syntax.Profile) {
	tabs := 0
	for _, c := range row.chars {
		if c == '\t' {
			tabs++
		}
	}
	render := make([]byte, 0, len(row.chars)+tabs*(tabstop-1))
	for _, c := range row.chars {
		if c == '\t' {
			// each tab must advance the cursor forward at least one column
			render = append(render, ' ')
			// append spaces until we get to a tab stop
			for len(render)%tabstop != 0 {
				render = append(render, ' ')
			}
		} else {
			render = append(render, c)
		}
	}
	row.render = render
	row.hl = syntax.Classify(row.render, p)
}

func (row *Row) insertChar(at int, c byte) {
	if at < 0 || at > len(row.chars) {
		at = len(row.chars)
	}
	row.chars = append(row.chars, 0) // make room
	copy(row.chars[at+1:], row.chars[at:])
	row.chars[at] = c
}

func (row *Row) appendChars(chars []byte) {
	row.chars = append(row.chars, chars...)
}

func (row *Row) deleteChar(at int) {
	if at < 0 || at >= len(row.chars) {
		return
	}
	row.chars = append(row.chars[:at], row.chars[at+1:]...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
