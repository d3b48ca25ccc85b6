package terminal

import (
	"errors"
	"io"
)

// Key is one decoded input event: a byte value for printable and control
// keys, or one of the named special keys below.
type Key int32

const (
	KeyEnter     Key = '\r'
	KeyEscape    Key = '\x1b'
	KeyBackspace Key = 127
)

// Assign an arbitrary large number to the following special keys
// to avoid conflicts with the normal keys.
const (
	KeyArrowLeft Key = iota + 1000
	KeyArrowRight
	KeyArrowUp
	KeyArrowDown
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

// Ctrl returns the key resulting from pressing the given ASCII character
// with the ctrl-key.
func Ctrl(char byte) Key {
	return Key(char & 0x1f)
}

// IsArrow reports whether k is one of the four arrow keys.
func (k Key) IsArrow() bool {
	return k == KeyArrowUp || k == KeyArrowRight ||
		k == KeyArrowDown || k == KeyArrowLeft
}

// KeyDecoder turns the raw byte stream of a terminal in raw mode into keys.
type KeyDecoder struct {
	r   io.Reader
	buf [1]byte
}

// NewKeyDecoder returns a decoder reading from r. A read returning no data
// is treated as a timeout.
func NewKeyDecoder(r io.Reader) *KeyDecoder {
	return &KeyDecoder{r: r}
}

// readByte makes a single read attempt. ok is false on timeout.
func (d *KeyDecoder) readByte() (b byte, ok bool, err error) {
	n, err := d.r.Read(d.buf[:])
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, false, err
	}
	if n == 0 {
		return 0, false, nil
	}
	return d.buf[0], true, nil
}

// ReadKey blocks until a key is available. Escape sequences that are
// truncated or not recognized decode to KeyEscape.
func (d *KeyDecoder) ReadKey() (Key, error) {
	var c byte
	for {
		b, ok, err := d.readByte()
		if err != nil {
			return 0, err
		}
		if ok {
			c = b
			break
		}
	}
	if c != '\x1b' {
		return Key(c), nil
	}

	seq0, ok, err := d.readByte()
	if err != nil || !ok {
		return KeyEscape, err
	}
	seq1, ok, err := d.readByte()
	if err != nil || !ok {
		return KeyEscape, err
	}

	switch seq0 {
	case '[':
		if isCSIFinal(seq1) {
			switch seq1 {
			case 'A':
				return KeyArrowUp, nil
			case 'B':
				return KeyArrowDown, nil
			case 'C':
				return KeyArrowRight, nil
			case 'D':
				return KeyArrowLeft, nil
			case 'H':
				return KeyHome, nil
			case 'F':
				return KeyEnd, nil
			}
			return KeyEscape, nil
		}
		if seq1 < 0x20 || seq1 > 0x3f {
			return KeyEscape, nil
		}
		params, final, err := d.readCSI(seq1)
		if err != nil || len(params) != 1 || final != '~' {
			// modified keys such as ESC [ 1 ; 5 C are consumed whole
			return KeyEscape, err
		}
		switch params[0] {
		case '1', '7':
			return KeyHome, nil
		case '3':
			return KeyDelete, nil
		case '4', '8':
			return KeyEnd, nil
		case '5':
			return KeyPageUp, nil
		case '6':
			return KeyPageDown, nil
		}
	case 'O':
		switch seq1 {
		case 'H':
			return KeyHome, nil
		case 'F':
			return KeyEnd, nil
		}
	}
	return KeyEscape, nil
}

// maxCSILen bounds the parameter bytes read for one control sequence.
const maxCSILen = 16

func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

// readCSI consumes the parameter and intermediate bytes of a control
// sequence starting with first, up to and including its final byte.
// final is 0 when the sequence was truncated or too long.
func (d *KeyDecoder) readCSI(first byte) (params []byte, final byte, err error) {
	params = append(params, first)
	for len(params) < maxCSILen {
		b, ok, err := d.readByte()
		if err != nil || !ok {
			return params, 0, err
		}
		if isCSIFinal(b) {
			return params, b, nil
		}
		params = append(params, b)
	}
	return params, 0, nil
}
