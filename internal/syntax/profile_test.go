package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_Select(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"main.go", "go"},
		{"dir/kilo.c", "c"},
		{"header.h", "c"},
		{"notes.txt", ""},
		{"", ""},
		{"go.mod", ""},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p := Builtin.Select(tt.filename)
			if tt.want == "" {
				require.Nil(t, p)
				return
			}
			require.NotNil(t, p)
			require.Equal(t, tt.want, p.Name)
		})
	}
}

func TestProfile_SubstringMatch(t *testing.T) {
	p := &Profile{Name: "make", FileMatch: []string{"Makefile"}}
	require.True(t, p.Matches("src/Makefile"))
	require.True(t, p.Matches("Makefile.am"))
	require.False(t, p.Matches("makefile"))
}

func TestTable_FirstMatchWins(t *testing.T) {
	a := &Profile{Name: "a", FileMatch: []string{".x"}}
	b := &Profile{Name: "b", FileMatch: []string{".x"}}
	require.Same(t, a, Table{a, b}.Select("f.x"))
}

func TestProfile_Validate(t *testing.T) {
	require.NoError(t, Builtin[0].Validate())

	err := (&Profile{FileMatch: []string{".x"}}).Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "name is required")

	err = (&Profile{Name: "x"}).Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "filematch")

	err = (&Profile{Name: "x", FileMatch: []string{".x"}, Keywords: []string{"|"}}).Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty keyword")
}
