package compdb

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cxxerrors "github.com/standardbeagle/cxxindex/internal/errors"
)

const manifest = `[
  {"directory": "/proj/build", "file": "../src/a.cpp", "command": "c++ -I../include -DNAME=\"x y\" -c ../src/a.cpp -o a.o"},
  {"directory": "/proj/build", "file": "/proj/src/b.cpp", "arguments": ["c++", "-isystem", "/usr/include/foo", "-c", "/proj/src/b.cpp"]},
  {"directory": "/proj/build", "file": "/proj/src/b.cpp", "arguments": ["c++", "-DDEBUG", "-c", "/proj/src/b.cpp"]}
]`

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/build/compile_commands.json", []byte(manifest), 0o644))

	db, err := Load(fs, "/proj/build/compile_commands.json")
	require.NoError(t, err)
	require.Len(t, db.Commands, 3)

	first := db.Commands[0]
	assert.Equal(t, "/proj/src/a.cpp", first.Path())
	assert.Equal(t, []string{"c++", "-I../include", "-DNAME=x y", "-c", "../src/a.cpp", "-o", "a.o"}, first.Arguments)

	assert.Equal(t, []string{"/proj/src/a.cpp", "/proj/src/b.cpp"}, db.Files())
	assert.Len(t, db.CommandsFor("/proj/src/b.cpp"), 2)
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := Load(fs, "/missing.json")
	var fileErr *cxxerrors.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, cxxerrors.ErrorTypeFileNotFound, fileErr.Type)
	assert.Equal(t, "/missing.json", fileErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("{not json"), 0o644))
	_, err = Load(fs, "/bad.json")
	assert.Error(t, err)

	require.NoError(t, afero.WriteFile(fs, "/nofile.json", []byte(`[{"directory": "/"}]`), 0o644))
	_, err = Load(fs, "/nofile.json")
	assert.ErrorContains(t, err, "has no file")
}

func TestSplitCommandLine(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"gcc -c a.c", []string{"gcc", "-c", "a.c"}},
		{`gcc  "-DA=1 2"   'b c'`, []string{"gcc", "-DA=1 2", "b c"}},
		{`gcc -DQ=\"x\"`, []string{"gcc", `-DQ="x"`}},
		{`gcc ""`, []string{"gcc", ""}},
	}
	for _, tt := range tests {
		got, err := SplitCommandLine(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := SplitCommandLine(`gcc "open`)
	assert.Error(t, err)
	_, err = SplitCommandLine(`gcc \`)
	assert.Error(t, err)
}
