package editor

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hibiken/kilo/internal/terminal"
)

// fakeTerminal replays scripted keys and records every frame written.
type fakeTerminal struct {
	keys   []terminal.Key
	frames []string
}

func (f *fakeTerminal) ReadKey() (terminal.Key, error) {
	if len(f.keys) == 0 {
		return 0, io.EOF
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeTerminal) Write(p []byte) (int, error) {
	f.frames = append(f.frames, string(p))
	return len(p), nil
}

func (f *fakeTerminal) lastFrame() string {
	if len(f.frames) == 0 {
		return ""
	}
	return f.frames[len(f.frames)-1]
}

// typed converts s into one key per byte.
func typed(s string) []terminal.Key {
	keys := make([]terminal.Key, 0, len(s))
	for i := 0; i < len(s); i++ {
		keys = append(keys, terminal.Key(s[i]))
	}
	return keys
}

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time          { return c.t }
func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// newTestEditor returns an editor for a window of rows x cols holding lines.
func newTestEditor(t *testing.T, rows, cols int, lines ...string) (*Editor, *fakeTerminal, *testClock) {
	t.Helper()
	term := &fakeTerminal{}
	e := New(term, rows, cols, Config{QuitTimes: 3, MessageTimeout: 5 * time.Second, Version: "test"})
	clock := &testClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	e.now = clock.now
	if len(lines) > 0 {
		e.doc.load(lines)
	}
	return e, term, clock
}

// screenLines splits a frame into its text rows, status bar and message bar.
func screenLines(frame string) []string {
	return strings.Split(frame, "\r\n")
}
