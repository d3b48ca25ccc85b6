// Package editor implements the document model, the screen compositor and
// the key handling of the kilo text editor.
package editor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hibiken/kilo/internal/log"
	"github.com/hibiken/kilo/internal/storage"
	"github.com/hibiken/kilo/internal/syntax"
	"github.com/hibiken/kilo/internal/terminal"
)

// ErrQuit is returned by ProcessKey when the user asks to quit.
var ErrQuit = errors.New("quit editor")

// Terminal is the input source and output sink of the editor.
type Terminal interface {
	// ReadKey blocks until the next key press.
	ReadKey() (terminal.Key, error)
	// Write outputs one complete frame.
	io.Writer
}

// Config tunes editor behavior.
type Config struct {
	// The number of times the user needs to press Ctrl-Q to quit
	// the editor with unsaved changes.
	QuitTimes int
	// How long a status message stays visible.
	MessageTimeout time.Duration
	// Profiles is consulted to pick a syntax by filename.
	Profiles syntax.Table
	// Version is shown in the welcome banner.
	Version string
}

// Editor holds all state of an editing session. It is owned by the
// goroutine running Run and must not be shared.
type Editor struct {
	// cursor coordinates
	cx, cy int // cx is an index into Row.chars
	rx     int // rx is an index into Row.render

	// offsets
	rowOffset int
	colOffset int

	// screen size available for text rows
	screenRows int
	screenCols int

	doc *Document

	// the number of times the user has pressed Ctrl-Q with unsaved changes
	quitCounter int

	// status message and time the message was set
	statusmsg     string
	statusmsgTime time.Time

	term Terminal
	cfg  Config
	now  func() time.Time
}

// New returns an editor with an empty document for a window of the given
// size. Two lines are reserved for the status bar and the message bar.
func New(term Terminal, windowRows, windowCols int, cfg Config) *Editor {
	if cfg.MessageTimeout <= 0 {
		cfg.MessageTimeout = 5 * time.Second
	}
	if cfg.Profiles == nil {
		cfg.Profiles = syntax.Builtin
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Editor{
		screenRows: max(windowRows-2, 1), // make room for status-bar and message-bar
		screenCols: max(windowCols, 1),
		doc:        NewDocument(),
		term:       term,
		cfg:        cfg,
		now:        time.Now,
	}
}

// Document returns the document being edited.
func (e *Editor) Document() *Document { return e.doc }

// Cursor returns the cursor position as (cx, cy).
func (e *Editor) Cursor() (int, int) { return e.cx, e.cy }

// Open loads filename into the document. A file that does not exist yet
// leaves the document empty but named, so the first save creates it.
func (e *Editor) Open(filename string) error {
	e.doc.filename = filename
	e.selectSyntaxHighlight()
	lines, err := storage.Load(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info(log.CatFile, "new file", "name", filename)
			return nil
		}
		return fmt.Errorf("open %s: %w", filename, err)
	}
	e.doc.load(lines)
	log.Info(log.CatFile, "opened", "name", filename, "rows", len(lines))
	return nil
}

// Save writes the document to its file, prompting for a name when it has
// none. Returns the number of bytes written.
func (e *Editor) Save() (int, error) {
	if e.doc.filename == "" {
		fname, err := e.Prompt("Save as: %s (ESC to cancel)", nil)
		if err != nil {
			return 0, err
		}
		e.doc.filename = fname
		e.selectSyntaxHighlight()
	}

	n, err := storage.Save(e.doc.filename, e.doc.Bytes())
	if err != nil {
		log.ErrorErr(log.CatFile, "save failed", err, "name", e.doc.filename)
		return 0, err
	}
	e.doc.dirty = 0
	log.Info(log.CatFile, "saved", "name", e.doc.filename, "bytes", n)
	return n, nil
}

func (e *Editor) selectSyntaxHighlight() {
	e.doc.SetSyntax(e.cfg.Profiles.Select(e.doc.filename))
}

// SetStatusMessage shows a formatted message in the message bar.
func (e *Editor) SetStatusMessage(format string, a ...any) {
	e.statusmsg = fmt.Sprintf(format, a...)
	e.statusmsgTime = e.now()
}

// Run refreshes the screen and processes keys until the user quits.
func (e *Editor) Run() error {
	for {
		if err := e.Refresh(); err != nil {
			return err
		}
		if err := e.ProcessKey(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

func (e *Editor) rowLen(at int) int {
	if row := e.doc.Row(at); row != nil {
		return row.Size()
	}
	return 0
}

// MoveCursor moves the cursor one step in the direction of an arrow key.
func (e *Editor) MoveCursor(k terminal.Key) {
	switch k {
	case terminal.KeyArrowUp:
		if e.cy != 0 {
			e.cy--
		}
	case terminal.KeyArrowDown:
		if e.cy < e.doc.NumRows() {
			e.cy++
		}
	case terminal.KeyArrowLeft:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.rowLen(e.cy)
		}
	case terminal.KeyArrowRight:
		if e.cy < e.doc.NumRows() {
			if e.cx < e.rowLen(e.cy) {
				e.cx++
			} else {
				e.cy++
				e.cx = 0
			}
		}
	}

	// If the cursor ends up past the end of the line it's on
	// put the cursor at the end of the line.
	if linelen := e.rowLen(e.cy); e.cx > linelen {
		e.cx = linelen
	}
}

// ProcessKey reads one key and applies it.
// Returns ErrQuit when user requests to quit.
func (e *Editor) ProcessKey() error {
	k, err := e.term.ReadKey()
	if err != nil {
		return err
	}
	return e.handleKey(k)
}

func (e *Editor) handleKey(k terminal.Key) error {
	switch k {
	case terminal.KeyEnter:
		e.cx, e.cy = e.doc.InsertNewline(e.cx, e.cy)

	case terminal.Ctrl('q'):
		// warn the user about unsaved changes.
		if e.doc.dirty > 0 && e.quitCounter < e.cfg.QuitTimes {
			e.SetStatusMessage(
				"WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.cfg.QuitTimes-e.quitCounter)
			log.Warn(log.CatEditor, "quit with unsaved changes", "dirty", e.doc.dirty, "presses_left", e.cfg.QuitTimes-e.quitCounter)
			e.quitCounter++
			return nil
		}
		_, _ = io.WriteString(e.term, "\x1b[2J\x1b[H") // clear the screen
		log.Info(log.CatEditor, "quit", "dirty", e.doc.dirty)
		return ErrQuit

	case terminal.Ctrl('s'):
		n, err := e.Save()
		if err != nil {
			if errors.Is(err, ErrPromptCanceled) {
				log.Warn(log.CatFile, "save aborted", "dirty", e.doc.dirty)
				e.SetStatusMessage("Save aborted")
			} else {
				e.SetStatusMessage("Can't save! I/O error: %s", err.Error())
			}
		} else {
			e.SetStatusMessage("%d bytes written to disk", n)
		}

	case terminal.Ctrl('f'):
		if err := e.Find(); err != nil {
			if !errors.Is(err, ErrPromptCanceled) {
				return err
			}
			e.SetStatusMessage("")
		}

	case terminal.KeyHome:
		e.cx = 0

	case terminal.KeyEnd:
		e.cx = e.rowLen(e.cy)

	case terminal.KeyBackspace, terminal.Ctrl('h'):
		e.cx, e.cy = e.doc.DeleteChar(e.cx, e.cy)

	case terminal.KeyDelete:
		if e.cy == e.doc.NumRows()-1 && e.cx == e.rowLen(e.cy) {
			// cursor is on the last row and one past the last character,
			// no more character to delete to the right.
			break
		}
		e.MoveCursor(terminal.KeyArrowRight)
		e.cx, e.cy = e.doc.DeleteChar(e.cx, e.cy)

	case terminal.KeyPageUp:
		// position cursor at the top first.
		e.cy = e.rowOffset
		// then scroll up an entire screen worth.
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(terminal.KeyArrowUp)
		}

	case terminal.KeyPageDown:
		// position cursor at the bottom first.
		e.cy = min(e.rowOffset+e.screenRows-1, e.doc.NumRows())
		// then scroll down an entire screen worth.
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(terminal.KeyArrowDown)
		}

	case terminal.KeyArrowUp, terminal.KeyArrowDown, terminal.KeyArrowLeft, terminal.KeyArrowRight:
		e.MoveCursor(k)

	case terminal.Ctrl('l'), terminal.KeyEscape:
		// no op

	default:
		if k >= 0 && k < 256 {
			e.cx, e.cy = e.doc.InsertChar(e.cx, e.cy, byte(k))
		}
	}
	// Reset quitCounter to zero if user pressed any key other than Ctrl-Q.
	e.quitCounter = 0
	return nil
}
