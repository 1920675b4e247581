package store

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// LogFile is an append-only, newline delimited record file held open for the
// lifetime of a log writer.
type LogFile struct {
	f    *os.File
	sync bool
}

// OpenLog opens path for appending, creating it and its parent directories
// when missing. When syncEach is set every Append is followed by an fsync.
func OpenLog(path string, syncEach bool) (*LogFile, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	return &LogFile{f: f, sync: syncEach}, nil
}

// Append writes record followed by a newline in a single write.
func (l *LogFile) Append(record []byte) error {
	line := make([]byte, 0, len(record)+1)
	line = append(line, record...)
	line = append(line, '\n')
	if _, err := l.f.Write(line); err != nil {
		return err
	}
	if l.sync {
		return l.f.Sync()
	}
	return nil
}

// Name returns the path the file was opened with.
func (l *LogFile) Name() string { return l.f.Name() }

// Close flushes and closes the file.
func (l *LogFile) Close() error {
	if err := l.f.Sync(); err != nil {
		_ = l.f.Close()
		return err
	}
	return l.f.Close()
}

// ReadLines returns every line of path without trailing newlines.
// A missing file yields an empty list without error.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	defer f.Close()

	lines := []string{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
