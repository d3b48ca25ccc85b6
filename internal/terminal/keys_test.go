package terminal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyDecoder_ReadKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Key
	}{
		{"printable", "a", Key('a')},
		{"enter", "\r", KeyEnter},
		{"backspace", "\x7f", KeyBackspace},
		{"ctrl-q", "\x11", Ctrl('q')},
		{"arrow up", "\x1b[A", KeyArrowUp},
		{"arrow down", "\x1b[B", KeyArrowDown},
		{"arrow right", "\x1b[C", KeyArrowRight},
		{"arrow left", "\x1b[D", KeyArrowLeft},
		{"home bracket", "\x1b[H", KeyHome},
		{"end bracket", "\x1b[F", KeyEnd},
		{"home O", "\x1bOH", KeyHome},
		{"end O", "\x1bOF", KeyEnd},
		{"home 1~", "\x1b[1~", KeyHome},
		{"home 7~", "\x1b[7~", KeyHome},
		{"end 4~", "\x1b[4~", KeyEnd},
		{"end 8~", "\x1b[8~", KeyEnd},
		{"delete", "\x1b[3~", KeyDelete},
		{"page up", "\x1b[5~", KeyPageUp},
		{"page down", "\x1b[6~", KeyPageDown},
		{"lone escape", "\x1b", KeyEscape},
		{"truncated", "\x1b[", KeyEscape},
		{"truncated number", "\x1b[5", KeyEscape},
		{"unknown letter", "\x1b[Z", KeyEscape},
		{"unknown number", "\x1b[9~", KeyEscape},
		{"missing tilde", "\x1b[5x", KeyEscape},
		{"ctrl arrow", "\x1b[1;5C", KeyEscape},
		{"function key", "\x1b[15~", KeyEscape},
		{"unterminated parameters", "\x1b[1;5", KeyEscape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewKeyDecoder(strings.NewReader(tt.input))
			k, err := d.ReadKey()
			require.NoError(t, err)
			require.Equal(t, tt.want, k)
		})
	}
}

func TestKeyDecoder_Sequence(t *testing.T) {
	d := NewKeyDecoder(strings.NewReader("ab\x1b[Ac"))
	var got []Key
	for i := 0; i < 4; i++ {
		k, err := d.ReadKey()
		require.NoError(t, err)
		got = append(got, k)
	}
	require.Equal(t, []Key{'a', 'b', KeyArrowUp, 'c'}, got)
}

func TestKeyDecoder_UnknownSequenceConsumedWhole(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"ctrl arrow", "\x1b[1;5Cx", []Key{KeyEscape, 'x'}},
		{"shift arrow", "\x1b[1;2Ay", []Key{KeyEscape, 'y'}},
		{"function key", "\x1b[15~z", []Key{KeyEscape, 'z'}},
		{"bracketed paste", "\x1b[200~ab", []Key{KeyEscape, 'a', 'b'}},
		{"known key after", "\x1b[1;5D\x1b[3~", []Key{KeyEscape, KeyDelete}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewKeyDecoder(strings.NewReader(tt.input))
			var got []Key
			for range tt.want {
				k, err := d.ReadKey()
				require.NoError(t, err)
				got = append(got, k)
			}
			require.Equal(t, tt.want, got)
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestKeyDecoder_ReadError(t *testing.T) {
	_, err := NewKeyDecoder(failingReader{}).ReadKey()
	require.Error(t, err)
	require.Contains(t, err.Error(), "boom")
}

func TestKey_IsArrow(t *testing.T) {
	require.True(t, KeyArrowUp.IsArrow())
	require.True(t, KeyArrowLeft.IsArrow())
	require.False(t, KeyHome.IsArrow())
	require.False(t, Key('a').IsArrow())
}

func TestCtrl(t *testing.T) {
	require.Equal(t, Key(17), Ctrl('q'))
	require.Equal(t, Key(8), Ctrl('h'))
}
