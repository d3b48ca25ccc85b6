// Package terminal puts the controlling terminal into raw mode, reports its
// size and decodes key presses. It is the only package that touches the tty.
package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoSize is returned when the window size cannot be determined.
var ErrNoSize = errors.New("unable to determine terminal size")

// Terminal is a tty in raw mode.
type Terminal struct {
	in  *os.File
	out *os.File
	*KeyDecoder

	// original termios: used to restore the state on exit.
	origTermios *unix.Termios
}

// Open enables raw mode on in and returns a Terminal writing to out.
func Open(in, out *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}
	t := &Terminal{in: in, out: out, KeyDecoder: NewKeyDecoder(in)}
	termios, err := enableRawMode(int(in.Fd()))
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	t.origTermios = termios
	return t, nil
}

func enableRawMode(fd int) (*unix.Termios, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, err
	}
	raw := *t // make a copy to avoid mutating the original
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	// return from read as soon as there is any input, or after 100ms.
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, err
	}
	return t, nil
}

// Close restores the terminal to the state it was in before Open.
func (t *Terminal) Close() error {
	if t.origTermios == nil {
		return fmt.Errorf("raw mode is not enabled")
	}
	return unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, t.origTermios)
}

// Write sends one frame to the terminal.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

// Clear erases the screen and homes the cursor.
func (t *Terminal) Clear() {
	_, _ = t.out.WriteString("\x1b[2J") // clear the screen
	_, _ = t.out.WriteString("\x1b[H")  // reposition the cursor
}

// Size returns the window size in rows and columns.
func (t *Terminal) Size() (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col != 0 {
		return int(ws.Row), int(ws.Col), nil
	}
	// fallback: get window size by moving the cursor to bottom-right
	// and getting the cursor position.
	if _, err := t.out.WriteString("\x1b[999C\x1b[999B"); err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNoSize, err)
	}
	rows, cols, err = t.cursorPosition()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrNoSize, err)
	}
	return rows, cols, nil
}

func (t *Terminal) cursorPosition() (row, col int, err error) {
	if _, err = t.out.WriteString("\x1b[6n"); err != nil {
		return 0, 0, err
	}
	var buf []byte
	for len(buf) < 32 {
		b, ok, err := t.readByte()
		if err != nil {
			return 0, 0, err
		}
		if !ok || b == 'R' {
			break
		}
		buf = append(buf, b)
	}
	if _, err = fmt.Sscanf(string(buf), "\x1b[%d;%d", &row, &col); err != nil {
		return 0, 0, err
	}
	return row, col, nil
}
