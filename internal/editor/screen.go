package editor

import (
	"bytes"
	"fmt"

	"github.com/mattn/go-runewidth"

	"github.com/hibiken/kilo/internal/syntax"
)

// scroll recomputes rx and moves the viewport by the least amount that
// keeps the cursor visible.
func (e *Editor) scroll() {
	e.rx = 0
	if row := e.doc.Row(e.cy); row != nil {
		e.rx = row.CxToRx(e.cx)
	}
	// scroll up if the cursor is above the visible window.
	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	// scroll down if the cursor is below the visible window.
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}
	// scroll left if the cursor is left of the visible window.
	if e.rx < e.colOffset {
		e.colOffset = e.rx
	}
	// scroll right if the cursor is right of the visible window.
	if e.rx >= e.colOffset+e.screenCols {
		e.colOffset = e.rx - e.screenCols + 1
	}
}

// Refresh redraws the whole screen with a single write.
func (e *Editor) Refresh() error {
	e.scroll()

	var b bytes.Buffer

	b.WriteString("\x1b[?25l") // hide the cursor
	b.WriteString("\x1b[H")    // reposition the cursor at the top left.

	e.drawRows(&b)
	e.drawStatusBar(&b)
	e.drawMessageBar(&b)

	// position the cursor
	fmt.Fprintf(&b, "\x1b[%d;%dH", (e.cy-e.rowOffset)+1, (e.rx-e.colOffset)+1)
	// show the cursor
	b.WriteString("\x1b[?25h")

	_, err := e.term.Write(b.Bytes())
	return err
}

func (e *Editor) drawRows(b *bytes.Buffer) {
	for y := 0; y < e.screenRows; y++ {
		filerow := y + e.rowOffset
		if row := e.doc.Row(filerow); row != nil {
			e.drawRow(b, row)
		} else if e.doc.NumRows() == 0 && y == e.screenRows/3 {
			e.drawWelcome(b)
		} else {
			b.WriteByte('~')
		}
		b.WriteString("\x1b[K") // clear the line
		b.WriteString("\r\n")
	}
}

func (e *Editor) drawWelcome(b *bytes.Buffer) {
	welcomeMsg := fmt.Sprintf("Kilo editor -- version %s", e.cfg.Version)
	if runewidth.StringWidth(welcomeMsg) > e.screenCols {
		welcomeMsg = runewidth.Truncate(welcomeMsg, e.screenCols, "")
	}
	padding := (e.screenCols - runewidth.StringWidth(welcomeMsg)) / 2
	if padding > 0 {
		b.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		b.WriteByte(' ')
	}
	b.WriteString(welcomeMsg)
}

// drawRow writes the visible slice of row, switching colors only where
// the highlight category changes.
func (e *Editor) drawRow(b *bytes.Buffer, row *Row) {
	start := min(e.colOffset, len(row.render))
	end := min(start+e.screenCols, len(row.render))
	line := row.render[start:end]
	hl := row.hl[start:end]

	currentColor := -1 // keep track of color to detect color change
	for i, c := range line {
		switch {
		case isControl(c):
			// deal with non-printable characters (e.g. Ctrl-A)
			sym := byte('?')
			if c <= 26 {
				sym = '@' + c
			}
			b.WriteString("\x1b[7m") // use inverted colors
			b.WriteByte(sym)
			b.WriteString("\x1b[m") // reset all formatting
			if currentColor != -1 {
				// restore the current color
				fmt.Fprintf(b, "\x1b[%dm", currentColor)
			}
		case hl[i] == syntax.Normal:
			if currentColor != -1 {
				currentColor = -1
				b.WriteString("\x1b[39m")
			}
			b.WriteByte(c)
		default:
			color := hl[i].Color()
			if color != currentColor {
				currentColor = color
				fmt.Fprintf(b, "\x1b[%dm", color)
			}
			b.WriteByte(c)
		}
	}
	if currentColor != -1 {
		b.WriteString("\x1b[39m") // reset to normal color
	}
}

func isControl(c byte) bool {
	return c < 32 || c == 127
}

func (e *Editor) drawStatusBar(b *bytes.Buffer) {
	b.WriteString("\x1b[7m")          // switch to inverted colors
	defer b.WriteString("\x1b[m\r\n") // switch back to normal formatting
	filename := e.doc.filename
	if filename == "" {
		filename = "[No Name]"
	}
	dirtyStatus := ""
	if e.doc.dirty > 0 {
		dirtyStatus = "(modified)"
	}
	lmsg := fmt.Sprintf("%.20s - %d lines %s", filename, e.doc.NumRows(), dirtyStatus)
	if runewidth.StringWidth(lmsg) > e.screenCols {
		lmsg = runewidth.Truncate(lmsg, e.screenCols, "")
	}
	b.WriteString(lmsg)
	filetype := "no ft"
	if e.doc.syntax != nil {
		filetype = e.doc.syntax.Name
	}
	rmsg := fmt.Sprintf("%s | %d/%d", filetype, e.cy+1, e.doc.NumRows())
	l := runewidth.StringWidth(lmsg)
	rlen := runewidth.StringWidth(rmsg)
	for l < e.screenCols {
		if e.screenCols-l == rlen {
			b.WriteString(rmsg)
			break
		}
		b.WriteByte(' ')
		l++
	}
}

func (e *Editor) drawMessageBar(b *bytes.Buffer) {
	b.WriteString("\x1b[K")
	// show the message only while it is fresh.
	if e.statusmsg == "" || e.now().Sub(e.statusmsgTime) >= e.cfg.MessageTimeout {
		return
	}
	msg := e.statusmsg
	if runewidth.StringWidth(msg) > e.screenCols {
		msg = runewidth.Truncate(msg, e.screenCols, "")
	}
	b.WriteString(msg)
}
