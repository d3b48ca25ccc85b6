// Package storage loads and saves documents as newline-delimited text.
package storage

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// maxLineSize bounds a single line read by Load.
const maxLineSize = 16 * 1024 * 1024

// Load returns the lines of the file at path with line terminators removed.
// A missing file is reported with an error matching os.ErrNotExist.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for s.Scan() {
		// strip off newline or carriage return
		line := bytes.TrimRight(s.Bytes(), "\r\n")
		lines = append(lines, string(line))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// Save writes data to path and returns the number of bytes written. The
// data goes to a temporary file in the same directory which is then
// renamed over path, so a failed write leaves the original untouched.
// A symlinked path is resolved first so the link itself survives. The
// directory holding the file must be writable.
func Save(path string, data []byte) (int, error) {
	path, err := resolve(path)
	if err != nil {
		return 0, err
	}

	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return 0, err
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	n, err := tmp.Write(data)
	if err != nil {
		cleanup()
		return 0, err
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return 0, err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return 0, err
	}
	return n, nil
}

// resolve follows symlinks in path. A path that does not exist yet, or a
// link pointing nowhere, is returned unchanged.
func resolve(path string) (string, error) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		return "", err
	}
	return target, nil
}
