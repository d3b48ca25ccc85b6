package editor

import (
	"bytes"

	"github.com/hibiken/kilo/internal/syntax"
)

// Document is the ordered list of rows being edited. Rows are only added,
// removed or changed through its methods, which keep every row's render
// and highlight data current.
type Document struct {
	rows []*Row

	// dirty counts the number of edits since the last save to disk.
	dirty int

	filename string

	// specify which syntax highlight to use.
	syntax *syntax.Profile
}

// NewDocument returns an empty, unnamed document.
func NewDocument() *Document {
	return &Document{}
}

// NumRows returns the number of rows.
func (d *Document) NumRows() int { return len(d.rows) }

// Row returns the row at index at, or nil when at is out of range.
func (d *Document) Row(at int) *Row {
	if at < 0 || at >= len(d.rows) {
		return nil
	}
	return d.rows[at]
}

// Dirty returns the number of edits since the document was loaded or saved.
func (d *Document) Dirty() int { return d.dirty }

func (d *Document) Filename() string { return d.filename }

// Syntax returns the active profile, or nil.
func (d *Document) Syntax() *syntax.Profile { return d.syntax }

// SetSyntax activates p and re-highlights every row.
func (d *Document) SetSyntax(p *syntax.Profile) {
	d.syntax = p
	for _, row := range d.rows {
		row.hl = syntax.Classify(row.render, p)
	}
}

// InsertRow inserts a row holding text before index at. Indexes outside
// [0, NumRows()] are ignored.
func (d *Document) InsertRow(at int, text string) {
	if at < 0 || at > len(d.rows) {
		return
	}
	row := newRow([]byte(text), d.syntax)
	d.rows = append(d.rows, nil) // grow the buffer
	copy(d.rows[at+1:], d.rows[at:])
	d.rows[at] = row
	d.dirty++
}

// DeleteRow removes the row at index at. Indexes out of range are ignored.
func (d *Document) DeleteRow(at int) {
	if at < 0 || at >= len(d.rows) {
		return
	}
	copy(d.rows[at:], d.rows[at+1:])
	d.rows[len(d.rows)-1] = nil
	d.rows = d.rows[:len(d.rows)-1]
	d.dirty++
}

// AppendText appends text to the end of the row at index at.
func (d *Document) AppendText(at int, text []byte) {
	row := d.Row(at)
	if row == nil {
		return
	}
	row.appendChars(text)
	row.update(d.syntax)
	d.dirty++
}

// InsertChar inserts c at (cx, cy) and returns the new cursor position.
// Inserting on the line past the end first appends an empty row.
func (d *Document) InsertChar(cx, cy int, c byte) (int, int) {
	cy = clamp(cy, 0, len(d.rows))
	if cy == len(d.rows) {
		d.InsertRow(len(d.rows), "")
	}
	row := d.rows[cy]
	cx = clamp(cx, 0, row.Size())
	row.insertChar(cx, c)
	row.update(d.syntax)
	d.dirty++
	return cx + 1, cy
}

// InsertNewline splits the row at (cx, cy) and returns the new cursor
// position, which is the start of the following row.
func (d *Document) InsertNewline(cx, cy int) (int, int) {
	cy = clamp(cy, 0, len(d.rows))
	if cy == len(d.rows) {
		cx = 0
	} else {
		cx = clamp(cx, 0, d.rows[cy].Size())
	}
	if cx == 0 {
		d.InsertRow(cy, "")
	} else {
		row := d.rows[cy]
		d.InsertRow(cy+1, string(row.chars[cx:]))
		row.chars = row.chars[:cx]
		row.update(d.syntax)
	}
	return 0, cy + 1
}

// DeleteChar removes the character before (cx, cy), joining the row onto
// the previous one when cx is zero, and returns the new cursor position.
func (d *Document) DeleteChar(cx, cy int) (int, int) {
	if cy < 0 || cy >= len(d.rows) {
		return cx, cy
	}
	row := d.rows[cy]
	cx = clamp(cx, 0, row.Size())
	if cx == 0 && cy == 0 {
		return cx, cy
	}
	if cx > 0 {
		row.deleteChar(cx - 1)
		row.update(d.syntax)
		d.dirty++
		return cx - 1, cy
	}
	prevRow := d.rows[cy-1]
	cx = prevRow.Size()
	d.AppendText(cy-1, row.chars)
	d.DeleteRow(cy)
	return cx, cy - 1
}

// Bytes serializes the document with every row terminated by a newline.
func (d *Document) Bytes() []byte {
	var b bytes.Buffer
	for _, row := range d.rows {
		b.Write(row.chars)
		b.WriteByte('\n')
	}
	return b.Bytes()
}

// load replaces the content with lines and marks the document clean.
func (d *Document) load(lines []string) {
	d.rows = d.rows[:0]
	for _, line := range lines {
		d.InsertRow(len(d.rows), line)
	}
	d.dirty = 0
}
