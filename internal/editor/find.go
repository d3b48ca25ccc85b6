package editor

import (
	"bytes"
	"errors"

	"github.com/hibiken/kilo/internal/log"
	"github.com/hibiken/kilo/internal/syntax"
	"github.com/hibiken/kilo/internal/terminal"
)

// searchSession is the state of one incremental search. It observes the
// search prompt and moves the cursor to each match.
type searchSession struct {
	e *Editor

	lastMatch int // row of the last match, -1 when there is none
	direction int // 1 = forward, -1 = backward

	// highlight of the matched row before the match overlay was applied
	savedHlRow int
	savedHl    []syntax.Highlight
}

func newSearchSession(e *Editor) *searchSession {
	return &searchSession{e: e, lastMatch: -1, direction: 1, savedHlRow: -1}
}

// restoreHighlight removes the match overlay, if any.
func (s *searchSession) restoreHighlight() {
	if s.savedHl == nil {
		return
	}
	if row := s.e.doc.Row(s.savedHlRow); row != nil && len(row.hl) == len(s.savedHl) {
		copy(row.hl, s.savedHl)
	}
	s.savedHl = nil
	s.savedHlRow = -1
}

func (s *searchSession) OnKey(query string, k terminal.Key) {
	s.restoreHighlight()

	switch {
	case k == terminal.KeyEnter || k == terminal.KeyEscape:
		s.lastMatch = -1
		s.direction = 1
		return
	case k.IsArrow():
		// right/down step forward, left/up step backward.
		s.direction = 1
		if k == terminal.KeyArrowLeft || k == terminal.KeyArrowUp {
			s.direction = -1
		}
	default:
		// unless an arrow key was pressed, we'll start over.
		s.lastMatch = -1
		s.direction = 1
	}

	if query == "" {
		return
	}
	s.search([]byte(query))
}

// search looks for query one row past the last match in the current
// direction, wrapping around both ends of the document. The row of the
// last match itself is not searched again.
func (s *searchSession) search(query []byte) {
	e := s.e
	numrows := e.doc.NumRows()

	current := s.lastMatch
	count := numrows - 1
	if current == -1 {
		count = numrows
		if s.direction == -1 {
			current = numrows
		}
	}

	for i := 0; i < count; i++ {
		current += s.direction
		switch {
		case current < 0:
			current = numrows - 1
		case current >= numrows:
			current = 0
		}

		row := e.doc.rows[current]
		rx := bytes.Index(row.render, query)
		if rx == -1 {
			continue
		}
		s.lastMatch = current
		e.cy = current
		e.cx = row.RxToCx(rx)
		// set rowOffset to bottom so that the next scroll() will scroll
		// upwards and the matching line will be at the top of the screen
		e.rowOffset = numrows

		// highlight the matched string
		s.savedHlRow = current
		s.savedHl = make([]syntax.Highlight, len(row.hl))
		copy(s.savedHl, row.hl)
		for j := rx; j < rx+len(query); j++ {
			row.hl[j] = syntax.Match
		}
		log.Debug(log.CatSearch, "match", "row", current, "col", rx)
		return
	}
	s.lastMatch = -1
}

// Find runs an incremental search. Canceling it restores the cursor and
// viewport to where they were before the search started.
func (e *Editor) Find() error {
	savedCx, savedCy := e.cx, e.cy
	savedColOffset, savedRowOffset := e.colOffset, e.rowOffset

	_, err := e.Prompt("Search: %s (Use ESC/Arrows/Enter)", newSearchSession(e))
	// restore cursor position when the user cancels search
	if errors.Is(err, ErrPromptCanceled) {
		e.cx, e.cy = savedCx, savedCy
		e.colOffset, e.rowOffset = savedColOffset, savedRowOffset
	}
	return err
}
